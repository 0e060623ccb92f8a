package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("não autorizado")
	ErrForbidden            = errors.New("acesso negado")
	ErrInsufficientStock    = errors.New("estoque insuficiente")
	ErrInvariantViolation   = errors.New("quantidade disponível não pode ser negativa nem maior que a quantidade total")
	ErrVersionConflict      = errors.New("conflito de versão: saldo alterado por outra operação")
	ErrConcurrencyExhausted = errors.New("tentativas de atualização esgotadas, tente novamente")
)

package entity

import "time"

// Tipos de movimentação de estoque.
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// MovimentacaoEstoque representa uma entrada ou saída de estoque.
// Imutável após o commit; o ID é atribuído pelo armazenamento em ordem
// monotônica de commit (trilha de auditoria, nunca alterada ou removida).
type MovimentacaoEstoque struct {
	ID              int64
	EstoqueID       string
	MedicamentoID   string
	MedicamentoNome string
	Tipo            string // entrada, saida
	Quantidade      int64  // sempre positiva; o tipo define o sinal aplicado
	Responsavel     string // UserID de quem registrou
	Observacao      string
	Data            time.Time
}

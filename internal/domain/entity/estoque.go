package entity

import (
	"time"

	"github.com/medflow/estoque-api/internal/domain"
)

// Estoque representa o saldo atual de um medicamento em uma localização.
// Linha única por (medicamento, localização) ativa; mutada exclusivamente
// pelo motor de movimentações via AplicarDelta com checagem de versão.
type Estoque struct {
	ID                   string
	MedicamentoID        string
	MedicamentoNome      string
	QuantidadeTotal      int64
	QuantidadeDisponivel int64
	TotalInicial         int64 // total no momento do cadastro; base da conciliação
	EstoqueMinimo        int64
	EstoqueMaximo        int64
	Localizacao          string
	Versao               int64
	Ativo                bool
	UltimaAtualizacao    time.Time
}

// QuantidadeReservada é derivada, nunca armazenada: total - disponível.
func (e *Estoque) QuantidadeReservada() int64 {
	return e.QuantidadeTotal - e.QuantidadeDisponivel
}

// EstoqueBaixo indica se o saldo disponível está no limite mínimo ou abaixo.
func (e *Estoque) EstoqueBaixo() bool {
	return e.QuantidadeDisponivel <= e.EstoqueMinimo
}

// ValidarInvariantes verifica 0 <= disponível <= total e mínimo <= máximo.
func (e *Estoque) ValidarInvariantes() error {
	if e.QuantidadeDisponivel < 0 || e.QuantidadeTotal < 0 {
		return domain.ErrInvariantViolation
	}
	if e.QuantidadeDisponivel > e.QuantidadeTotal {
		return domain.ErrInvariantViolation
	}
	if e.EstoqueMinimo < 0 || e.EstoqueMaximo < e.EstoqueMinimo {
		return domain.ErrInvalidInput
	}
	return nil
}

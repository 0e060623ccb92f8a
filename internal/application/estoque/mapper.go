package estoque

import (
	"github.com/medflow/estoque-api/internal/application/dto"
	"github.com/medflow/estoque-api/internal/domain/entity"
)

// Formato de data esperado pela UI.
const formatoData = "2006-01-02"

func toEstoqueResponse(e *entity.Estoque) dto.EstoqueResponse {
	return dto.EstoqueResponse{
		ID:                   e.ID,
		MedicamentoID:        e.MedicamentoID,
		MedicamentoNome:      e.MedicamentoNome,
		QuantidadeTotal:      e.QuantidadeTotal,
		QuantidadeDisponivel: e.QuantidadeDisponivel,
		QuantidadeReservada:  e.QuantidadeReservada(),
		EstoqueMinimo:        e.EstoqueMinimo,
		EstoqueMaximo:        e.EstoqueMaximo,
		Localizacao:          e.Localizacao,
		EstoqueBaixo:         e.EstoqueBaixo(),
		UltimaAtualizacao:    e.UltimaAtualizacao.Format(formatoData),
	}
}

func toMovimentacaoResponse(m *entity.MovimentacaoEstoque) dto.MovimentacaoResponse {
	return dto.MovimentacaoResponse{
		ID:              m.ID,
		EstoqueID:       m.EstoqueID,
		MedicamentoID:   m.MedicamentoID,
		MedicamentoNome: m.MedicamentoNome,
		Tipo:            m.Tipo,
		Quantidade:      m.Quantidade,
		Responsavel:     m.Responsavel,
		Data:            m.Data.Format(formatoData),
		Observacao:      m.Observacao,
	}
}

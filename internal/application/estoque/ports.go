package estoque

import (
	"context"

	"github.com/medflow/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que atualização de saldo e
// gravação da movimentação sejam atômicas: ou ambas ficam visíveis, ou
// nenhuma (nunca há estado parcial observável).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		estoqueRepo repository.EstoqueRepository,
		movRepo repository.MovimentacaoRepository,
	) error) error
}

// RelatorioPDFGenerator gera o relatório de posição de estoque em PDF.
type RelatorioPDFGenerator interface {
	GerarRelatorioEstoque(ctx context.Context, itens []RelatorioItem) ([]byte, error)
}

// RelatorioItem linha do relatório de estoque.
type RelatorioItem struct {
	MedicamentoNome      string
	Localizacao          string
	QuantidadeTotal      int64
	QuantidadeDisponivel int64
	QuantidadeReservada  int64
	EstoqueMinimo        int64
	EstoqueMaximo        int64
	EstoqueBaixo         bool
	UltimaAtualizacao    string
}

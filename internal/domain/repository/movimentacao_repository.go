package repository

import (
	"context"

	"github.com/medflow/estoque-api/internal/domain/entity"
)

// ListagemMovimentacoes filtros para o histórico de movimentações.
// Tipo vazio ou "todos" não filtra; Busca casa contra nome do medicamento.
type ListagemMovimentacoes struct {
	MedicamentoID string
	Tipo          string
	Busca         string
	Limit         int
	Offset        int
}

// MovimentacaoRepository define o porto de persistência das movimentações.
// Log apenas-append: não há update nem delete; o ID atribuído no Criar é
// monotônico e consistente com a ordem de commit (replay de auditoria).
type MovimentacaoRepository interface {
	Criar(ctx context.Context, m *entity.MovimentacaoEstoque) error
	GetPorID(ctx context.Context, id int64) (*entity.MovimentacaoEstoque, error)
	// Listar ordena por data DESC (atividade recente primeiro) com desempate
	// por ID crescente.
	Listar(ctx context.Context, f ListagemMovimentacoes) ([]*entity.MovimentacaoEstoque, error)
	// SomatorioPorEstoque devolve (soma entradas, soma saídas) de um saldo,
	// usado na conciliação total = inicial + entradas - saídas.
	SomatorioPorEstoque(ctx context.Context, estoqueID string) (entradas, saidas int64, err error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/medflow/estoque-api/internal/domain/entity"
	"github.com/medflow/estoque-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

const colunasMovimentacao = `id, estoque_id, medicamento_id, medicamento_nome, tipo, quantidade,
	responsavel, observacao, data`

// MovimentacaoRepo implementação do log de movimentações sobre PostgreSQL.
// Apenas INSERT e SELECT: a tabela é trilha de auditoria.
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

// Criar persiste a movimentação. O ID vem do BIGSERIAL: monotônico e
// consistente com a ordem de commit.
func (r *MovimentacaoRepo) Criar(ctx context.Context, m *entity.MovimentacaoEstoque) error {
	query := `
		INSERT INTO movimentacao_estoque (estoque_id, medicamento_id, medicamento_nome, tipo, quantidade,
			responsavel, observacao, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.EstoqueID, m.MedicamentoID, m.MedicamentoNome, m.Tipo, m.Quantidade,
		m.Responsavel, m.Observacao, m.Data,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("criar movimentação: %w", err)
	}
	return nil
}

// GetPorID busca uma movimentação por ID.
func (r *MovimentacaoRepo) GetPorID(ctx context.Context, id int64) (*entity.MovimentacaoEstoque, error) {
	query := `SELECT ` + colunasMovimentacao + ` FROM movimentacao_estoque WHERE id = $1`
	m, err := scanMovimentacao(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimentação: %w", err)
	}
	return m, nil
}

// Listar devolve o histórico ordenado por data DESC com desempate por id
// crescente, filtrado por medicamento, tipo e busca textual.
func (r *MovimentacaoRepo) Listar(ctx context.Context, f repository.ListagemMovimentacoes) ([]*entity.MovimentacaoEstoque, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + colunasMovimentacao + ` FROM movimentacao_estoque WHERE TRUE`
	args := []any{}
	pos := 1
	if f.MedicamentoID != "" {
		query += fmt.Sprintf(" AND medicamento_id = $%d", pos)
		args = append(args, f.MedicamentoID)
		pos++
	}
	if f.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, f.Tipo)
		pos++
	}
	if f.Busca != "" {
		query += fmt.Sprintf(" AND lower(medicamento_nome) LIKE '%%' || $%d || '%%'", pos)
		args = append(args, strings.ToLower(strings.TrimSpace(f.Busca)))
		pos++
	}
	query += fmt.Sprintf(" ORDER BY data DESC, id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimentações: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimentacaoEstoque
	for rows.Next() {
		m, err := scanMovimentacao(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimentação: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SomatorioPorEstoque devolve (soma entradas, soma saídas) de um saldo.
func (r *MovimentacaoRepo) SomatorioPorEstoque(ctx context.Context, estoqueID string) (entradas, saidas int64, err error) {
	query := `
		SELECT
			COALESCE(SUM(quantidade) FILTER (WHERE tipo = 'entrada'), 0),
			COALESCE(SUM(quantidade) FILTER (WHERE tipo = 'saida'), 0)
		FROM movimentacao_estoque WHERE estoque_id = $1`
	err = r.q.QueryRow(ctx, query, estoqueID).Scan(&entradas, &saidas)
	if err != nil {
		return 0, 0, fmt.Errorf("somatório movimentações: %w", err)
	}
	return entradas, saidas, nil
}

func scanMovimentacao(row pgx.Row) (*entity.MovimentacaoEstoque, error) {
	var m entity.MovimentacaoEstoque
	err := row.Scan(
		&m.ID, &m.EstoqueID, &m.MedicamentoID, &m.MedicamentoNome, &m.Tipo, &m.Quantidade,
		&m.Responsavel, &m.Observacao, &m.Data,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

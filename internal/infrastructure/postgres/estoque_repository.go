package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/medflow/estoque-api/internal/domain"
	"github.com/medflow/estoque-api/internal/domain/entity"
	"github.com/medflow/estoque-api/internal/domain/repository"
	"github.com/medflow/estoque-api/pkg/texto"
)

var _ repository.EstoqueRepository = (*EstoqueRepo)(nil)

const colunasEstoque = `id, medicamento_id, medicamento_nome, quantidade_total, quantidade_disponivel,
	total_inicial, estoque_minimo, estoque_maximo, localizacao, versao, ativo, ultima_atualizacao`

// EstoqueRepo implementação de EstoqueRepository sobre PostgreSQL
// (usável com pool ou tx).
type EstoqueRepo struct {
	q Querier
}

// NewEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEstoqueRepository(q Querier) *EstoqueRepo {
	return &EstoqueRepo{q: q}
}

// Get busca um saldo por ID.
func (r *EstoqueRepo) Get(ctx context.Context, id string) (*entity.Estoque, error) {
	query := `SELECT ` + colunasEstoque + ` FROM estoque WHERE id = $1`
	e, err := scanEstoque(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estoque: %w", err)
	}
	return e, nil
}

// GetPorMedicamentoLocalizacao busca o saldo ativo de um medicamento em uma
// localização.
func (r *EstoqueRepo) GetPorMedicamentoLocalizacao(ctx context.Context, medicamentoID, localizacao string) (*entity.Estoque, error) {
	query := `SELECT ` + colunasEstoque + `
		FROM estoque WHERE medicamento_id = $1 AND localizacao = $2 AND ativo`
	e, err := scanEstoque(r.q.QueryRow(ctx, query, medicamentoID, localizacao))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estoque por medicamento: %w", err)
	}
	return e, nil
}

// Criar insere o saldo inicial. A constraint única parcial sobre
// (medicamento_id, localizacao) WHERE ativo vira domain.ErrDuplicate.
func (r *EstoqueRepo) Criar(ctx context.Context, e *entity.Estoque) error {
	query := `
		INSERT INTO estoque (id, medicamento_id, medicamento_nome, quantidade_total, quantidade_disponivel,
			total_inicial, estoque_minimo, estoque_maximo, localizacao, busca, versao, ativo, ultima_atualizacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.MedicamentoID, e.MedicamentoNome, e.QuantidadeTotal, e.QuantidadeDisponivel,
		e.TotalInicial, e.EstoqueMinimo, e.EstoqueMaximo, e.Localizacao,
		texto.ChaveBusca(e.MedicamentoNome, e.Localizacao), e.Versao, e.UltimaAtualizacao,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("criar estoque: %w", err)
	}
	return nil
}

// AplicarDelta soma os deltas condicionada à versão esperada. O UPDATE só
// casa se a versão confere e o resultado respeita 0 <= disponível <= total;
// quando nenhuma linha casa, uma releitura distingue conflito de versão,
// violação de invariante e linha inexistente.
func (r *EstoqueRepo) AplicarDelta(ctx context.Context, id string, deltaDisponivel, deltaTotal, versaoEsperada int64) (*entity.Estoque, error) {
	query := `
		UPDATE estoque
		SET quantidade_disponivel = quantidade_disponivel + $2,
		    quantidade_total      = quantidade_total + $3,
		    versao                = versao + 1,
		    ultima_atualizacao    = now()
		WHERE id = $1 AND versao = $4
		  AND quantidade_disponivel + $2 >= 0
		  AND quantidade_total + $3 >= quantidade_disponivel + $2
		RETURNING ` + colunasEstoque
	e, err := scanEstoque(r.q.QueryRow(ctx, query, id, deltaDisponivel, deltaTotal, versaoEsperada))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("aplicar delta: %w", err)
	}

	var versaoAtual int64
	err = r.q.QueryRow(ctx, `SELECT versao FROM estoque WHERE id = $1`, id).Scan(&versaoAtual)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("aplicar delta: reler versão: %w", err)
	}
	if versaoAtual != versaoEsperada {
		return nil, domain.ErrVersionConflict
	}
	return nil, domain.ErrInvariantViolation
}

// Desativar marca o saldo como inativo (nunca há DELETE físico).
func (r *EstoqueRepo) Desativar(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE estoque SET ativo = FALSE, ultima_atualizacao = now() WHERE id = $1 AND ativo`, id)
	if err != nil {
		return fmt.Errorf("desativar estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// colunas de ordenação expostas pela listagem -> colunas reais.
var colunaOrdenacao = map[string]string{
	repository.OrdenarPorMedicamentoNome:      "medicamento_nome",
	repository.OrdenarPorQuantidadeTotal:      "quantidade_total",
	repository.OrdenarPorQuantidadeDisponivel: "quantidade_disponivel",
	repository.OrdenarPorEstoqueMinimo:        "estoque_minimo",
	repository.OrdenarPorLocalizacao:          "localizacao",
	repository.OrdenarPorUltimaAtualizacao:    "ultima_atualizacao",
}

// Listar devolve saldos ativos com busca normalizada, filtro de estoque
// baixo, ordenação e paginação. Desempate sempre por id crescente.
func (r *EstoqueRepo) Listar(ctx context.Context, f repository.ListagemEstoque) ([]*entity.Estoque, error) {
	coluna, ok := colunaOrdenacao[f.OrdenarPor]
	if !ok {
		coluna = "medicamento_nome"
	}
	direcao := "ASC"
	if f.Direcao == "desc" {
		direcao = "DESC"
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + colunasEstoque + ` FROM estoque WHERE ativo`
	args := []any{}
	pos := 1
	if f.Busca != "" {
		query += fmt.Sprintf(" AND busca LIKE '%%' || $%d || '%%'", pos)
		args = append(args, texto.Normalizar(f.Busca))
		pos++
	}
	if f.ApenasEstoqueBaixo {
		query += " AND quantidade_disponivel <= estoque_minimo"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d", coluna, direcao, pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar estoque: %w", err)
	}
	defer rows.Close()

	var list []*entity.Estoque
	for rows.Next() {
		e, err := scanEstoque(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estoque: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListarEstoqueBaixo devolve exatamente os saldos ativos com
// disponível <= mínimo, maior déficit primeiro. Calculado a cada chamada.
func (r *EstoqueRepo) ListarEstoqueBaixo(ctx context.Context) ([]repository.AlertaEstoque, error) {
	query := `
		SELECT id, medicamento_id, medicamento_nome, quantidade_disponivel, estoque_minimo, localizacao
		FROM estoque
		WHERE ativo AND quantidade_disponivel <= estoque_minimo
		ORDER BY (estoque_minimo - quantidade_disponivel) DESC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar estoque baixo: %w", err)
	}
	defer rows.Close()

	var alertas []repository.AlertaEstoque
	for rows.Next() {
		var a repository.AlertaEstoque
		if err := rows.Scan(&a.EstoqueID, &a.MedicamentoID, &a.MedicamentoNome,
			&a.QuantidadeDisponivel, &a.EstoqueMinimo, &a.Localizacao); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		alertas = append(alertas, a)
	}
	return alertas, rows.Err()
}

func scanEstoque(row pgx.Row) (*entity.Estoque, error) {
	var e entity.Estoque
	err := row.Scan(
		&e.ID, &e.MedicamentoID, &e.MedicamentoNome, &e.QuantidadeTotal, &e.QuantidadeDisponivel,
		&e.TotalInicial, &e.EstoqueMinimo, &e.EstoqueMaximo, &e.Localizacao, &e.Versao, &e.Ativo,
		&e.UltimaAtualizacao,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

package estoque_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/medflow/estoque-api/internal/application/estoque"
	"github.com/medflow/estoque-api/internal/domain"
	"github.com/medflow/estoque-api/internal/domain/entity"
	"github.com/medflow/estoque-api/internal/domain/repository"
	"github.com/medflow/estoque-api/pkg/texto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória com a mesma semântica de versão/invariantes do repositório
// PostgreSQL, para exercitar o motor sem banco.
// ──────────────────────────────────────────────────────────────────────────────

type fakeEstoqueRepo struct {
	mu     sync.Mutex
	saldos map[string]*entity.Estoque
}

func newFakeEstoqueRepo() *fakeEstoqueRepo {
	return &fakeEstoqueRepo{saldos: make(map[string]*entity.Estoque)}
}

func (r *fakeEstoqueRepo) Get(_ context.Context, id string) (*entity.Estoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.saldos[id]
	if !ok {
		return nil, nil
	}
	copia := *e
	return &copia, nil
}

func (r *fakeEstoqueRepo) GetPorMedicamentoLocalizacao(_ context.Context, medicamentoID, localizacao string) (*entity.Estoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.saldos {
		if e.Ativo && e.MedicamentoID == medicamentoID && e.Localizacao == localizacao {
			copia := *e
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeEstoqueRepo) Criar(_ context.Context, e *entity.Estoque) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existente := range r.saldos {
		if existente.Ativo && existente.MedicamentoID == e.MedicamentoID && existente.Localizacao == e.Localizacao {
			return domain.ErrDuplicate
		}
	}
	copia := *e
	r.saldos[e.ID] = &copia
	return nil
}

func (r *fakeEstoqueRepo) AplicarDelta(_ context.Context, id string, deltaDisponivel, deltaTotal, versaoEsperada int64) (*entity.Estoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.saldos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.Versao != versaoEsperada {
		return nil, domain.ErrVersionConflict
	}
	novoDisp := e.QuantidadeDisponivel + deltaDisponivel
	novoTotal := e.QuantidadeTotal + deltaTotal
	if novoDisp < 0 || novoTotal < novoDisp {
		return nil, domain.ErrInvariantViolation
	}
	e.QuantidadeDisponivel = novoDisp
	e.QuantidadeTotal = novoTotal
	e.Versao++
	copia := *e
	return &copia, nil
}

func (r *fakeEstoqueRepo) Desativar(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.saldos[id]
	if !ok || !e.Ativo {
		return domain.ErrNotFound
	}
	e.Ativo = false
	return nil
}

func (r *fakeEstoqueRepo) Listar(_ context.Context, f repository.ListagemEstoque) ([]*entity.Estoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Estoque
	busca := texto.Normalizar(f.Busca)
	for _, e := range r.saldos {
		if !e.Ativo {
			continue
		}
		if busca != "" && !strings.Contains(texto.ChaveBusca(e.MedicamentoNome, e.Localizacao), busca) {
			continue
		}
		if f.ApenasEstoqueBaixo && !e.EstoqueBaixo() {
			continue
		}
		copia := *e
		list = append(list, &copia)
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if f.Direcao == "desc" {
			a, b = b, a
		}
		switch f.OrdenarPor {
		case repository.OrdenarPorQuantidadeTotal:
			if a.QuantidadeTotal != b.QuantidadeTotal {
				return a.QuantidadeTotal < b.QuantidadeTotal
			}
		case repository.OrdenarPorQuantidadeDisponivel:
			if a.QuantidadeDisponivel != b.QuantidadeDisponivel {
				return a.QuantidadeDisponivel < b.QuantidadeDisponivel
			}
		case repository.OrdenarPorEstoqueMinimo:
			if a.EstoqueMinimo != b.EstoqueMinimo {
				return a.EstoqueMinimo < b.EstoqueMinimo
			}
		case repository.OrdenarPorLocalizacao:
			if a.Localizacao != b.Localizacao {
				return a.Localizacao < b.Localizacao
			}
		case repository.OrdenarPorUltimaAtualizacao:
			if !a.UltimaAtualizacao.Equal(b.UltimaAtualizacao) {
				return a.UltimaAtualizacao.Before(b.UltimaAtualizacao)
			}
		default:
			if a.MedicamentoNome != b.MedicamentoNome {
				return a.MedicamentoNome < b.MedicamentoNome
			}
		}
		return list[i].ID < list[j].ID
	})
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return nil, nil
		}
		list = list[f.Offset:]
	}
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *fakeEstoqueRepo) ListarEstoqueBaixo(_ context.Context) ([]repository.AlertaEstoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var alertas []repository.AlertaEstoque
	for _, e := range r.saldos {
		if e.Ativo && e.EstoqueBaixo() {
			alertas = append(alertas, repository.AlertaEstoque{
				EstoqueID:            e.ID,
				MedicamentoID:        e.MedicamentoID,
				MedicamentoNome:      e.MedicamentoNome,
				QuantidadeDisponivel: e.QuantidadeDisponivel,
				EstoqueMinimo:        e.EstoqueMinimo,
				Localizacao:          e.Localizacao,
			})
		}
	}
	sort.Slice(alertas, func(i, j int) bool { return alertas[i].EstoqueID < alertas[j].EstoqueID })
	return alertas, nil
}

type fakeMovimentacaoRepo struct {
	mu        sync.Mutex
	proximoID int64
	registros []*entity.MovimentacaoEstoque
	falhar    error // se definido, Criar falha (simula erro de storage)
}

func newFakeMovimentacaoRepo() *fakeMovimentacaoRepo {
	return &fakeMovimentacaoRepo{}
}

func (r *fakeMovimentacaoRepo) Criar(_ context.Context, m *entity.MovimentacaoEstoque) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.falhar != nil {
		return r.falhar
	}
	r.proximoID++
	m.ID = r.proximoID
	copia := *m
	r.registros = append(r.registros, &copia)
	return nil
}

func (r *fakeMovimentacaoRepo) GetPorID(_ context.Context, id int64) (*entity.MovimentacaoEstoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.registros {
		if m.ID == id {
			copia := *m
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeMovimentacaoRepo) Listar(_ context.Context, f repository.ListagemMovimentacoes) ([]*entity.MovimentacaoEstoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.MovimentacaoEstoque
	for _, m := range r.registros {
		if f.MedicamentoID != "" && m.MedicamentoID != f.MedicamentoID {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		if f.Busca != "" && !strings.Contains(strings.ToLower(m.MedicamentoNome), strings.ToLower(f.Busca)) {
			continue
		}
		copia := *m
		list = append(list, &copia)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Data.Equal(list[j].Data) {
			return list[i].Data.After(list[j].Data)
		}
		return list[i].ID < list[j].ID
	})
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			return nil, nil
		}
		list = list[f.Offset:]
	}
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *fakeMovimentacaoRepo) SomatorioPorEstoque(_ context.Context, estoqueID string) (entradas, saidas int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.registros {
		if m.EstoqueID != estoqueID {
			continue
		}
		if m.Tipo == entity.TipoEntrada {
			entradas += m.Quantidade
		} else {
			saidas += m.Quantidade
		}
	}
	return entradas, saidas, nil
}

// fakeTxRunner executa o callback com os fakes e desfaz o delta de saldo se o
// callback falhar depois dele, reproduzindo o rollback da transação real.
type fakeTxRunner struct {
	estoqueRepo repository.EstoqueRepository
	movRepo     repository.MovimentacaoRepository
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentacaoRepository,
) error) error {
	tx := &txEstoqueRepo{EstoqueRepository: t.estoqueRepo}
	err := fn(tx, t.movRepo)
	if err != nil {
		tx.desfazer()
	}
	return err
}

// txEstoqueRepo registra os deltas aplicados para poder desfazê-los em caso
// de rollback.
type txEstoqueRepo struct {
	repository.EstoqueRepository
	aplicado []deltaAplicado
}

type deltaAplicado struct {
	id              string
	deltaDisponivel int64
	deltaTotal      int64
	versao          int64
}

func (t *txEstoqueRepo) AplicarDelta(ctx context.Context, id string, deltaDisponivel, deltaTotal, versaoEsperada int64) (*entity.Estoque, error) {
	e, err := t.EstoqueRepository.AplicarDelta(ctx, id, deltaDisponivel, deltaTotal, versaoEsperada)
	if err == nil {
		t.aplicado = append(t.aplicado, deltaAplicado{id, deltaDisponivel, deltaTotal, e.Versao})
	}
	return e, err
}

func (t *txEstoqueRepo) desfazer() {
	for i := len(t.aplicado) - 1; i >= 0; i-- {
		d := t.aplicado[i]
		_, _ = t.EstoqueRepository.AplicarDelta(context.Background(), d.id, -d.deltaDisponivel, -d.deltaTotal, d.versao)
	}
}

// conflitoEstoqueRepo devolve ErrVersionConflict nas primeiras n chamadas a
// AplicarDelta, depois delega ao fake.
type conflitoEstoqueRepo struct {
	*fakeEstoqueRepo
	mu        sync.Mutex
	restantes int
	chamadas  int
}

func (r *conflitoEstoqueRepo) AplicarDelta(ctx context.Context, id string, deltaDisponivel, deltaTotal, versaoEsperada int64) (*entity.Estoque, error) {
	r.mu.Lock()
	r.chamadas++
	conflitar := r.restantes > 0
	if conflitar {
		r.restantes--
	}
	r.mu.Unlock()
	if conflitar {
		return nil, domain.ErrVersionConflict
	}
	return r.fakeEstoqueRepo.AplicarDelta(ctx, id, deltaDisponivel, deltaTotal, versaoEsperada)
}

// ambiente de teste padrão: saldo + motor prontos.
type ambienteMotor struct {
	estoqueRepo *fakeEstoqueRepo
	movRepo     *fakeMovimentacaoRepo
	uc          *estoque.RegistrarMovimentacaoUseCase
}

func novoAmbienteMotor() *ambienteMotor {
	estoqueRepo := newFakeEstoqueRepo()
	movRepo := newFakeMovimentacaoRepo()
	tx := &fakeTxRunner{estoqueRepo: estoqueRepo, movRepo: movRepo}
	return &ambienteMotor{
		estoqueRepo: estoqueRepo,
		movRepo:     movRepo,
		uc:          estoque.NewRegistrarMovimentacaoUseCase(tx, estoqueRepo),
	}
}

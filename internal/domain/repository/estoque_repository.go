package repository

import (
	"context"

	"github.com/medflow/estoque-api/internal/domain/entity"
)

// Campos de ordenação aceitos pela listagem de estoque.
const (
	OrdenarPorMedicamentoNome      = "medicamentoNome"
	OrdenarPorQuantidadeTotal      = "quantidadeTotal"
	OrdenarPorQuantidadeDisponivel = "quantidadeDisponivel"
	OrdenarPorEstoqueMinimo        = "estoqueMinimo"
	OrdenarPorLocalizacao          = "localizacao"
	OrdenarPorUltimaAtualizacao    = "ultimaAtualizacao"
)

// ListagemEstoque filtros e ordenação para a listagem de saldos.
// Busca é texto livre casado contra nome do medicamento e localização
// (normalizado: caixa e acentos ignorados).
type ListagemEstoque struct {
	Busca              string
	ApenasEstoqueBaixo bool
	OrdenarPor         string
	Direcao            string // asc, desc
	Limit              int
	Offset             int
}

// AlertaEstoque item do conjunto de alertas de estoque baixo
// (disponível <= mínimo), derivado na leitura, nunca armazenado.
type AlertaEstoque struct {
	EstoqueID            string
	MedicamentoID        string
	MedicamentoNome      string
	QuantidadeDisponivel int64
	EstoqueMinimo        int64
	Localizacao          string
}

// EstoqueRepository define o porto de persistência dos saldos de estoque.
// AplicarDelta é o único caminho de escrita das quantidades: atualização
// condicionada à versão esperada (concorrência otimista) que rejeita
// qualquer resultado com disponível < 0 ou disponível > total.
type EstoqueRepository interface {
	Get(ctx context.Context, id string) (*entity.Estoque, error)
	GetPorMedicamentoLocalizacao(ctx context.Context, medicamentoID, localizacao string) (*entity.Estoque, error)
	// Criar registra o saldo inicial. Retorna domain.ErrDuplicate se já existe
	// saldo ativo para (medicamento, localização).
	Criar(ctx context.Context, e *entity.Estoque) error
	// AplicarDelta soma deltaDisponivel/deltaTotal se a versão armazenada for
	// versaoEsperada. Retorna domain.ErrVersionConflict, domain.ErrInvariantViolation
	// ou domain.ErrNotFound conforme o caso; sucesso devolve a linha atualizada.
	AplicarDelta(ctx context.Context, id string, deltaDisponivel, deltaTotal, versaoEsperada int64) (*entity.Estoque, error)
	// Desativar marca o saldo como inativo; o histórico de movimentações
	// continua referenciando a linha (nunca há DELETE físico).
	Desativar(ctx context.Context, id string) error
	Listar(ctx context.Context, f ListagemEstoque) ([]*entity.Estoque, error)
	// ListarEstoqueBaixo devolve exatamente {e : e.disponível <= e.mínimo, e ativo},
	// calculado a cada chamada.
	ListarEstoqueBaixo(ctx context.Context) ([]AlertaEstoque, error)
}

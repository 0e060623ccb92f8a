package estoque

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medflow/estoque-api/internal/application/dto"
	"github.com/medflow/estoque-api/internal/domain"
	"github.com/medflow/estoque-api/internal/domain/entity"
	"github.com/medflow/estoque-api/internal/domain/repository"
)

// CadastroEstoqueUseCase cadastro e ciclo de vida dos saldos de estoque.
// Criação acontece uma única vez por (medicamento, localização); depois
// disso as quantidades só mudam via movimentações.
type CadastroEstoqueUseCase struct {
	estoqueRepo repository.EstoqueRepository
}

// NewCadastroEstoqueUseCase constrói o caso de uso.
func NewCadastroEstoqueUseCase(estoqueRepo repository.EstoqueRepository) *CadastroEstoqueUseCase {
	return &CadastroEstoqueUseCase{estoqueRepo: estoqueRepo}
}

// Criar registra o saldo inicial de um medicamento em uma localização.
// Valida os mesmos limites do formulário da UI; retorna domain.ErrDuplicate
// se já existe saldo ativo para o par.
func (uc *CadastroEstoqueUseCase) Criar(ctx context.Context, in dto.CriarEstoqueRequest) (*dto.EstoqueResponse, error) {
	if strings.TrimSpace(in.MedicamentoNome) == "" || strings.TrimSpace(in.Localizacao) == "" {
		return nil, domain.ErrInvalidInput
	}

	e := &entity.Estoque{
		ID:                   uuid.New().String(),
		MedicamentoID:        in.MedicamentoID,
		MedicamentoNome:      strings.TrimSpace(in.MedicamentoNome),
		QuantidadeTotal:      in.QuantidadeTotal,
		QuantidadeDisponivel: in.QuantidadeDisponivel,
		TotalInicial:         in.QuantidadeTotal,
		EstoqueMinimo:        in.EstoqueMinimo,
		EstoqueMaximo:        in.EstoqueMaximo,
		Localizacao:          strings.TrimSpace(in.Localizacao),
		Versao:               1,
		Ativo:                true,
		UltimaAtualizacao:    time.Now(),
	}
	// Medicamento é chave estrangeira opaca do registro de medicamentos;
	// quando a UI cadastra só pelo nome, o identificador é gerado aqui.
	if e.MedicamentoID == "" {
		e.MedicamentoID = uuid.New().String()
	}
	if err := e.ValidarInvariantes(); err != nil {
		return nil, err
	}
	if err := uc.estoqueRepo.Criar(ctx, e); err != nil {
		return nil, err
	}
	out := toEstoqueResponse(e)
	return &out, nil
}

// Get busca um saldo por ID.
func (uc *CadastroEstoqueUseCase) Get(ctx context.Context, id string) (*dto.EstoqueResponse, error) {
	e, err := uc.estoqueRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	out := toEstoqueResponse(e)
	return &out, nil
}

// Desativar marca o saldo como inativo. O histórico de movimentações segue
// referenciando a linha; não existe remoção física.
func (uc *CadastroEstoqueUseCase) Desativar(ctx context.Context, id string) error {
	return uc.estoqueRepo.Desativar(ctx, id)
}

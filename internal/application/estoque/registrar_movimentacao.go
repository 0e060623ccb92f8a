package estoque

import (
	"context"
	"errors"
	"time"

	"github.com/medflow/estoque-api/internal/domain"
	"github.com/medflow/estoque-api/internal/domain/entity"
	"github.com/medflow/estoque-api/internal/domain/repository"
)

// Política de retry do motor: conflitos de versão são transitórios e
// re-tentados com backoff exponencial antes de desistir.
const (
	maxTentativas  = 5
	backoffInicial = 10 * time.Millisecond
)

// RegistrarMovimentacaoUseCase é o único componente autorizado a transformar
// uma intenção de movimentação em um par (movimentação, saldo atualizado).
// A escrita do saldo usa concorrência otimista (versão por linha); saldo e
// movimentação são gravados na mesma transação.
type RegistrarMovimentacaoUseCase struct {
	txRunner    TxRunner
	estoqueRepo repository.EstoqueRepository
}

// NewRegistrarMovimentacaoUseCase constrói o caso de uso.
func NewRegistrarMovimentacaoUseCase(txRunner TxRunner, estoqueRepo repository.EstoqueRepository) *RegistrarMovimentacaoUseCase {
	return &RegistrarMovimentacaoUseCase{txRunner: txRunner, estoqueRepo: estoqueRepo}
}

// MovimentacaoInput entrada para registrar uma movimentação.
// Identifica o saldo por EstoqueID ou por (MedicamentoID, Localizacao).
type MovimentacaoInput struct {
	EstoqueID     string
	MedicamentoID string
	Localizacao   string
	Tipo          string // entrada | saida
	Quantidade    int64
	Responsavel   string // UserID do token
	Observacao    string
}

// Registrar valida a intenção, lê o saldo corrente com sua versão, computa o
// novo saldo (entrada soma em total e disponível; saída subtrai de ambos,
// modelando consumo) e grava movimentação + delta em uma única transação.
// Em conflito de versão relê e re-tenta até maxTentativas; a rejeição por
// estoque insuficiente é atômica: nada é gravado.
func (uc *RegistrarMovimentacaoUseCase) Registrar(ctx context.Context, input MovimentacaoInput) (*entity.MovimentacaoEstoque, *entity.Estoque, error) {
	if input.Tipo != entity.TipoEntrada && input.Tipo != entity.TipoSaida {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Quantidade <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Responsavel == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.EstoqueID == "" && (input.MedicamentoID == "" || input.Localizacao == "") {
		return nil, nil, domain.ErrInvalidInput
	}

	for tentativa := 0; ; tentativa++ {
		est, err := uc.lerSaldo(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		if est == nil || !est.Ativo {
			return nil, nil, domain.ErrNotFound
		}

		deltaDisponivel := input.Quantidade
		deltaTotal := input.Quantidade
		if input.Tipo == entity.TipoSaida {
			deltaDisponivel = -input.Quantidade
			deltaTotal = -input.Quantidade
		}
		// Rejeição atômica: nenhuma escrita acontece se a saída excede o disponível.
		if est.QuantidadeDisponivel+deltaDisponivel < 0 {
			return nil, nil, domain.ErrInsufficientStock
		}

		var (
			mov        *entity.MovimentacaoEstoque
			atualizado *entity.Estoque
		)
		err = uc.txRunner.Run(ctx, func(
			estoqueRepo repository.EstoqueRepository,
			movRepo repository.MovimentacaoRepository,
		) error {
			atualizado, err = estoqueRepo.AplicarDelta(ctx, est.ID, deltaDisponivel, deltaTotal, est.Versao)
			if err != nil {
				return err
			}
			mov = &entity.MovimentacaoEstoque{
				EstoqueID:       est.ID,
				MedicamentoID:   est.MedicamentoID,
				MedicamentoNome: est.MedicamentoNome,
				Tipo:            input.Tipo,
				Quantidade:      input.Quantidade,
				Responsavel:     input.Responsavel,
				Observacao:      input.Observacao,
				Data:            time.Now(),
			}
			return movRepo.Criar(ctx, mov)
		})
		switch {
		case err == nil:
			return mov, atualizado, nil
		case errors.Is(err, domain.ErrVersionConflict):
			if tentativa+1 >= maxTentativas {
				return nil, nil, domain.ErrConcurrencyExhausted
			}
			if err := aguardarBackoff(ctx, tentativa); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, err
		}
	}
}

func (uc *RegistrarMovimentacaoUseCase) lerSaldo(ctx context.Context, input MovimentacaoInput) (*entity.Estoque, error) {
	if input.EstoqueID != "" {
		return uc.estoqueRepo.Get(ctx, input.EstoqueID)
	}
	return uc.estoqueRepo.GetPorMedicamentoLocalizacao(ctx, input.MedicamentoID, input.Localizacao)
}

func aguardarBackoff(ctx context.Context, tentativa int) error {
	t := time.NewTimer(backoffInicial << tentativa)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

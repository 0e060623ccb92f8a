package estoque

import (
	"context"

	"github.com/medflow/estoque-api/internal/application/dto"
)

// RegistrarFromRequest adapta o request HTTP ao caso de uso Registrar.
// responsavel vem do token validado pelo middleware de autenticação.
func (uc *RegistrarMovimentacaoUseCase) RegistrarFromRequest(ctx context.Context, responsavel string, in dto.RegistrarMovimentacaoRequest) (*dto.RegistrarMovimentacaoResponse, error) {
	mov, est, err := uc.Registrar(ctx, MovimentacaoInput{
		EstoqueID:     in.EstoqueID,
		MedicamentoID: in.MedicamentoID,
		Localizacao:   in.Localizacao,
		Tipo:          in.Tipo,
		Quantidade:    in.Quantidade,
		Responsavel:   responsavel,
		Observacao:    in.Observacao,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegistrarMovimentacaoResponse{
		Movimentacao: toMovimentacaoResponse(mov),
		Estoque:      toEstoqueResponse(est),
	}, nil
}

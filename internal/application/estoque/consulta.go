package estoque

import (
	"context"

	"github.com/medflow/estoque-api/internal/application/dto"
	"github.com/medflow/estoque-api/internal/domain"
	"github.com/medflow/estoque-api/internal/domain/entity"
	"github.com/medflow/estoque-api/internal/domain/repository"
)

// camposOrdenacao whitelist de campos aceitos em ordenarPor.
var camposOrdenacao = map[string]bool{
	repository.OrdenarPorMedicamentoNome:      true,
	repository.OrdenarPorQuantidadeTotal:      true,
	repository.OrdenarPorQuantidadeDisponivel: true,
	repository.OrdenarPorEstoqueMinimo:        true,
	repository.OrdenarPorLocalizacao:          true,
	repository.OrdenarPorUltimaAtualizacao:    true,
}

// ConsultaEstoqueUseCase fachada de leitura: listagens com ordenação e
// filtro estáveis, alertas de estoque baixo, conciliação e relatório.
// A UI não reimplementa comparação nenhuma; o contrato é do servidor.
type ConsultaEstoqueUseCase struct {
	estoqueRepo repository.EstoqueRepository
	movRepo     repository.MovimentacaoRepository
	pdfGen      RelatorioPDFGenerator
}

// NewConsultaEstoqueUseCase constrói o caso de uso.
func NewConsultaEstoqueUseCase(
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentacaoRepository,
	pdfGen RelatorioPDFGenerator,
) *ConsultaEstoqueUseCase {
	return &ConsultaEstoqueUseCase{estoqueRepo: estoqueRepo, movRepo: movRepo, pdfGen: pdfGen}
}

// ListagemEstoqueInput parâmetros de consulta da listagem de saldos.
type ListagemEstoqueInput struct {
	Busca              string
	ApenasEstoqueBaixo bool
	OrdenarPor         string
	Direcao            string
	Limit              int
	Offset             int
}

// Listar devolve a página de saldos. Campo de ordenação fora da whitelist é
// rejeitado; desempate de chaves iguais é sempre por ID crescente.
func (uc *ConsultaEstoqueUseCase) Listar(ctx context.Context, in ListagemEstoqueInput) (*dto.EstoqueListResponse, error) {
	if in.OrdenarPor == "" {
		in.OrdenarPor = repository.OrdenarPorMedicamentoNome
	}
	if !camposOrdenacao[in.OrdenarPor] {
		return nil, domain.ErrInvalidInput
	}
	switch in.Direcao {
	case "":
		in.Direcao = "asc"
	case "asc", "desc":
	default:
		return nil, domain.ErrInvalidInput
	}

	itens, err := uc.estoqueRepo.Listar(ctx, repository.ListagemEstoque{
		Busca:              in.Busca,
		ApenasEstoqueBaixo: in.ApenasEstoqueBaixo,
		OrdenarPor:         in.OrdenarPor,
		Direcao:            in.Direcao,
		Limit:              in.Limit,
		Offset:             in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.EstoqueListResponse{Itens: make([]dto.EstoqueResponse, 0, len(itens))}
	for _, e := range itens {
		out.Itens = append(out.Itens, toEstoqueResponse(e))
	}
	out.Total = len(out.Itens)
	return out, nil
}

// ListagemMovimentacoesInput parâmetros do histórico de movimentações.
type ListagemMovimentacoesInput struct {
	MedicamentoID string
	Tipo          string // entrada | saida | todos
	Busca         string
	Limit         int
	Offset        int
}

// ListarMovimentacoes devolve o histórico, atividade recente primeiro.
func (uc *ConsultaEstoqueUseCase) ListarMovimentacoes(ctx context.Context, in ListagemMovimentacoesInput) (*dto.MovimentacaoListResponse, error) {
	switch in.Tipo {
	case "", "todos":
		in.Tipo = ""
	case entity.TipoEntrada, entity.TipoSaida:
	default:
		return nil, domain.ErrInvalidInput
	}
	itens, err := uc.movRepo.Listar(ctx, repository.ListagemMovimentacoes{
		MedicamentoID: in.MedicamentoID,
		Tipo:          in.Tipo,
		Busca:         in.Busca,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.MovimentacaoListResponse{Itens: make([]dto.MovimentacaoResponse, 0, len(itens))}
	for _, m := range itens {
		out.Itens = append(out.Itens, toMovimentacaoResponse(m))
	}
	out.Total = len(out.Itens)
	return out, nil
}

// ListarAlertas deriva o conjunto de alertas (disponível <= mínimo) fresco a
// cada chamada; não há estado de alerta materializado para envelhecer.
func (uc *ConsultaEstoqueUseCase) ListarAlertas(ctx context.Context) ([]dto.AlertaEstoqueResponse, error) {
	alertas, err := uc.estoqueRepo.ListarEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaEstoqueResponse, 0, len(alertas))
	for _, a := range alertas {
		out = append(out, dto.AlertaEstoqueResponse{
			EstoqueID:            a.EstoqueID,
			MedicamentoID:        a.MedicamentoID,
			MedicamentoNome:      a.MedicamentoNome,
			QuantidadeDisponivel: a.QuantidadeDisponivel,
			EstoqueMinimo:        a.EstoqueMinimo,
			Localizacao:          a.Localizacao,
		})
	}
	return out, nil
}

// Auditoria concilia um saldo contra o log de movimentações:
// total registrado deve igualar totalInicial + entradas - saídas.
func (uc *ConsultaEstoqueUseCase) Auditoria(ctx context.Context, id string) (*dto.AuditoriaEstoqueResponse, error) {
	e, err := uc.estoqueRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	entradas, saidas, err := uc.movRepo.SomatorioPorEstoque(ctx, id)
	if err != nil {
		return nil, err
	}
	esperado := e.TotalInicial + entradas - saidas
	return &dto.AuditoriaEstoqueResponse{
		EstoqueID:       e.ID,
		TotalInicial:    e.TotalInicial,
		Entradas:        entradas,
		Saidas:          saidas,
		TotalEsperado:   esperado,
		TotalRegistrado: e.QuantidadeTotal,
		Consistente:     esperado == e.QuantidadeTotal,
	}, nil
}

// GerarRelatorio monta o relatório de posição de estoque em PDF, ordenado
// por nome do medicamento.
func (uc *ConsultaEstoqueUseCase) GerarRelatorio(ctx context.Context) ([]byte, error) {
	itens, err := uc.estoqueRepo.Listar(ctx, repository.ListagemEstoque{
		OrdenarPor: repository.OrdenarPorMedicamentoNome,
		Direcao:    "asc",
		Limit:      1000,
	})
	if err != nil {
		return nil, err
	}
	linhas := make([]RelatorioItem, 0, len(itens))
	for _, e := range itens {
		linhas = append(linhas, RelatorioItem{
			MedicamentoNome:      e.MedicamentoNome,
			Localizacao:          e.Localizacao,
			QuantidadeTotal:      e.QuantidadeTotal,
			QuantidadeDisponivel: e.QuantidadeDisponivel,
			QuantidadeReservada:  e.QuantidadeReservada(),
			EstoqueMinimo:        e.EstoqueMinimo,
			EstoqueMaximo:        e.EstoqueMaximo,
			EstoqueBaixo:         e.EstoqueBaixo(),
			UltimaAtualizacao:    e.UltimaAtualizacao.Format(formatoData),
		})
	}
	return uc.pdfGen.GerarRelatorioEstoque(ctx, linhas)
}

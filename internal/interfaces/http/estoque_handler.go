package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medflow/estoque-api/internal/application/dto"
	appestoque "github.com/medflow/estoque-api/internal/application/estoque"
	"github.com/medflow/estoque-api/internal/domain"
)

// EstoqueHandler trata as requisições HTTP de estoque e movimentações
// (todas protegidas por autenticação).
type EstoqueHandler struct {
	cadastro  *appestoque.CadastroEstoqueUseCase
	registrar *appestoque.RegistrarMovimentacaoUseCase
	consulta  *appestoque.ConsultaEstoqueUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(
	cadastro *appestoque.CadastroEstoqueUseCase,
	registrar *appestoque.RegistrarMovimentacaoUseCase,
	consulta *appestoque.ConsultaEstoqueUseCase,
) *EstoqueHandler {
	return &EstoqueHandler{cadastro: cadastro, registrar: registrar, consulta: consulta}
}

// Criar godoc
// @Summary      Cadastrar item de estoque
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarEstoqueRequest  true  "Saldo inicial do medicamento na localização"
// @Success      201   {object}  dto.EstoqueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/estoque [post]
func (h *EstoqueHandler) Criar(c *fiber.Ctx) error {
	var in dto.CriarEstoqueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.cadastro.Criar(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvariantViolation), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "já existe estoque ativo para este medicamento nesta localização"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter saldo por ID
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do saldo"
// @Success      200  {object}  dto.EstoqueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/{id} [get]
func (h *EstoqueHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.cadastro.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estoque não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Listar godoc
// @Summary      Listar saldos de estoque
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        busca               query  string  false  "Busca por medicamento ou localização (caixa e acentos ignorados)"
// @Param        apenasEstoqueBaixo  query  bool    false  "Somente itens com disponível <= mínimo"
// @Param        ordenarPor          query  string  false  "medicamentoNome | quantidadeTotal | quantidadeDisponivel | estoqueMinimo | localizacao | ultimaAtualizacao"
// @Param        direcao             query  string  false  "asc | desc"
// @Param        limit               query  int     false  "Limite"  default(20)
// @Param        offset              query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.EstoqueListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque [get]
func (h *EstoqueHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	out, err := h.consulta.Listar(c.Context(), appestoque.ListagemEstoqueInput{
		Busca:              c.Query("busca"),
		ApenasEstoqueBaixo: c.QueryBool("apenasEstoqueBaixo"),
		OrdenarPor:         c.Query("ordenarPor"),
		Direcao:            c.Query("direcao"),
		Limit:              page.Limit,
		Offset:             page.Offset,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parâmetros de ordenação inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Desativar godoc
// @Summary      Desativar saldo de estoque
// @Description  Desativação lógica; o histórico de movimentações é preservado.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do saldo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/{id} [delete]
func (h *EstoqueHandler) Desativar(c *fiber.Ctx) error {
	if err := h.cadastro.Desativar(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estoque não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "estoque desativado"})
}

// RegistrarMovimentacao godoc
// @Summary      Registrar movimentação de estoque
// @Description  Entrada soma em total e disponível; saída subtrai de ambos.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarMovimentacaoRequest  true  "estoqueId (ou medicamentoId+localizacao), tipo, quantidade"
// @Success      201   {object}  dto.RegistrarMovimentacaoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/estoque/movimentacoes [post]
func (h *EstoqueHandler) RegistrarMovimentacao(c *fiber.Ctx) error {
	responsavel := GetUserID(c)
	if responsavel == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarMovimentacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.registrar.RegistrarFromRequest(c.Context(), responsavel, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estoque não encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "estoque insuficiente"})
		case errors.Is(err, domain.ErrInvariantViolation):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVARIANT", Message: err.Error()})
		case errors.Is(err, domain.ErrConcurrencyExhausted):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CONCURRENCY", Message: "sistema ocupado, tente novamente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarMovimentacoes godoc
// @Summary      Histórico de movimentações
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        medicamentoId  query  string  false  "Filtrar por medicamento"
// @Param        tipo           query  string  false  "entrada | saida | todos"
// @Param        busca          query  string  false  "Busca por nome do medicamento"
// @Param        limit          query  int     false  "Limite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovimentacaoListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/movimentacoes [get]
func (h *EstoqueHandler) ListarMovimentacoes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	out, err := h.consulta.ListarMovimentacoes(c.Context(), appestoque.ListagemMovimentacoesInput{
		MedicamentoID: c.Query("medicamentoId"),
		Tipo:          c.Query("tipo"),
		Busca:         c.Query("busca"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimentação inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListarAlertas godoc
// @Summary      Alertas de estoque baixo
// @Description  Conjunto derivado na leitura: disponível <= mínimo. A UI consulta a cada 2 minutos.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertaEstoqueResponse
// @Router       /api/estoque/alertas [get]
func (h *EstoqueHandler) ListarAlertas(c *fiber.Ctx) error {
	alertas, err := h.consulta.ListarAlertas(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(alertas)
}

// Auditoria godoc
// @Summary      Conciliação de um saldo
// @Description  Verifica total = inicial + entradas - saídas contra o log de movimentações.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do saldo"
// @Success      200  {object}  dto.AuditoriaEstoqueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/{id}/auditoria [get]
func (h *EstoqueHandler) Auditoria(c *fiber.Ctx) error {
	out, err := h.consulta.Auditoria(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estoque não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Relatorio godoc
// @Summary      Relatório de estoque em PDF
// @Tags         estoque
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/estoque/relatorio [get]
func (h *EstoqueHandler) Relatorio(c *fiber.Ctx) error {
	pdfBytes, err := h.consulta.GerarRelatorio(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	nome := "estoque-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nome+`"`)
	return c.Send(pdfBytes)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	appestoque "github.com/medflow/estoque-api/internal/application/estoque"
)

// Papéis que podem movimentar e desativar estoque.
var papeisEstoque = []string{"Administrador", "Farmacêutico"}

// RouterDeps dependências do router.
type RouterDeps struct {
	Cadastro  *appestoque.CadastroEstoqueUseCase
	Registrar *appestoque.RegistrarMovimentacaoUseCase
	Consulta  *appestoque.ConsultaEstoqueUseCase
	JWTSecret string
}

// Router registra as rotas da API. Tudo sob /api exige Bearer Token;
// escrita de movimentações e desativação exigem papel de farmácia.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	handler := NewEstoqueHandler(deps.Cadastro, deps.Registrar, deps.Consulta)

	estoque := api.Group("/estoque")
	estoque.Post("/", handler.Criar)
	estoque.Get("/", handler.Listar)
	estoque.Get("/alertas", handler.ListarAlertas)
	estoque.Get("/relatorio", handler.Relatorio)

	estoque.Post("/movimentacoes", RequireRole(papeisEstoque...), handler.RegistrarMovimentacao)
	estoque.Get("/movimentacoes", handler.ListarMovimentacoes)

	estoque.Get("/:id", handler.GetByID)
	estoque.Get("/:id/auditoria", handler.Auditoria)
	estoque.Delete("/:id", RequireRole(papeisEstoque...), handler.Desativar)
}

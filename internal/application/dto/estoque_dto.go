package dto

// CriarEstoqueRequest body para POST /api/estoque.
// Espelha o formulário de cadastro da página de controle de estoque.
type CriarEstoqueRequest struct {
	MedicamentoID        string `json:"medicamentoId"`
	MedicamentoNome      string `json:"medicamentoNome"`
	QuantidadeTotal      int64  `json:"quantidadeTotal"`
	QuantidadeDisponivel int64  `json:"quantidadeDisponivel"`
	EstoqueMinimo        int64  `json:"estoqueMinimo"`
	EstoqueMaximo        int64  `json:"estoqueMaximo"`
	Localizacao          string `json:"localizacao"`
}

// EstoqueResponse saldo de estoque como a UI espera.
// quantidadeReservada é derivada (total - disponível).
type EstoqueResponse struct {
	ID                   string `json:"id"`
	MedicamentoID        string `json:"medicamentoId"`
	MedicamentoNome      string `json:"medicamentoNome"`
	QuantidadeTotal      int64  `json:"quantidadeTotal"`
	QuantidadeDisponivel int64  `json:"quantidadeDisponivel"`
	QuantidadeReservada  int64  `json:"quantidadeReservada"`
	EstoqueMinimo        int64  `json:"estoqueMinimo"`
	EstoqueMaximo        int64  `json:"estoqueMaximo"`
	Localizacao          string `json:"localizacao"`
	EstoqueBaixo         bool   `json:"estoqueBaixo"`
	UltimaAtualizacao    string `json:"ultimaAtualizacao"` // AAAA-MM-DD
}

// EstoqueListResponse página de saldos.
type EstoqueListResponse struct {
	Total int               `json:"total"`
	Itens []EstoqueResponse `json:"itens"`
}

// RegistrarMovimentacaoRequest body para POST /api/estoque/movimentacoes.
type RegistrarMovimentacaoRequest struct {
	MedicamentoID string `json:"medicamentoId"`
	Localizacao   string `json:"localizacao,omitempty"`
	EstoqueID     string `json:"estoqueId,omitempty"` // alternativa a medicamentoId+localizacao
	Tipo          string `json:"tipo"`                // entrada | saida
	Quantidade    int64  `json:"quantidade"`
	Observacao    string `json:"observacao,omitempty"`
}

// MovimentacaoResponse movimentação registrada.
type MovimentacaoResponse struct {
	ID              int64  `json:"id"`
	EstoqueID       string `json:"estoqueId"`
	MedicamentoID   string `json:"medicamentoId"`
	MedicamentoNome string `json:"medicamentoNome"`
	Tipo            string `json:"tipo"`
	Quantidade      int64  `json:"quantidade"`
	Responsavel     string `json:"responsavel"`
	Data            string `json:"data"` // AAAA-MM-DD
	Observacao      string `json:"observacao,omitempty"`
}

// RegistrarMovimentacaoResponse resposta do registro: a movimentação
// confirmada e o saldo já atualizado, para a UI refletir sem re-buscar.
type RegistrarMovimentacaoResponse struct {
	Movimentacao MovimentacaoResponse `json:"movimentacao"`
	Estoque      EstoqueResponse      `json:"estoque"`
}

// MovimentacaoListResponse página do histórico.
type MovimentacaoListResponse struct {
	Total int                    `json:"total"`
	Itens []MovimentacaoResponse `json:"itens"`
}

// AlertaEstoqueResponse item de alerta de estoque baixo.
type AlertaEstoqueResponse struct {
	EstoqueID            string `json:"estoqueId"`
	MedicamentoID        string `json:"medicamentoId"`
	MedicamentoNome      string `json:"medicamentoNome"`
	QuantidadeDisponivel int64  `json:"quantidadeDisponivel"`
	EstoqueMinimo        int64  `json:"estoqueMinimo"`
	Localizacao          string `json:"localizacao"`
}

// AuditoriaEstoqueResponse resultado da conciliação de um saldo:
// quantidadeTotal deve igualar totalInicial + entradas - saidas.
type AuditoriaEstoqueResponse struct {
	EstoqueID       string `json:"estoqueId"`
	TotalInicial    int64  `json:"totalInicial"`
	Entradas        int64  `json:"entradas"`
	Saidas          int64  `json:"saidas"`
	TotalEsperado   int64  `json:"totalEsperado"`
	TotalRegistrado int64  `json:"totalRegistrado"`
	Consistente     bool   `json:"consistente"`
}

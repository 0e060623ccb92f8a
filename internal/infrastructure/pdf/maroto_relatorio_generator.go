// Package pdf gera o relatório impresso de posição de estoque da farmácia.
//
// Layout A4 paisagem:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: MedFLOW — Relatório de Estoque  │  Data de emissão      │
//	│  ────────────────────────────────────────────────────────────────│
//	│  TABELA: Medicamento | Local | Total | Disp. | Reserv. | Mín |   │
//	│          Máx | Atualizado   (linhas em alerta destacadas)        │
//	│  ────────────────────────────────────────────────────────────────│
//	│  RODAPÉ: contagem de itens e de alertas de estoque baixo         │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appestoque "github.com/medflow/estoque-api/internal/application/estoque"
)

var (
	corPrimaria = &props.Color{Red: 0, Green: 90, Blue: 70}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
	corAlerta   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ appestoque.RelatorioPDFGenerator = (*MarotoRelatorioGenerator)(nil)

// MarotoRelatorioGenerator implementa estoque.RelatorioPDFGenerator com Maroto v2.
type MarotoRelatorioGenerator struct{}

// NewMarotoRelatorioGenerator constrói o gerador.
func NewMarotoRelatorioGenerator() *MarotoRelatorioGenerator { return &MarotoRelatorioGenerator{} }

// GerarRelatorioEstoque gera o PDF e devolve seus bytes.
func (g *MarotoRelatorioGenerator) GerarRelatorioEstoque(_ context.Context, itens []appestoque.RelatorioItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		WithAuthor("MedFLOW", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabecalhoRow())
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))

	m.AddRows(tabelaHeaderRow())
	alertas := 0
	for _, item := range itens {
		if item.EstoqueBaixo {
			alertas++
		}
		m.AddRows(tabelaItemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: corCinza, Thickness: 0.3}))
	m.AddRows(rodapeRow(len(itens), alertas))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// cabecalhoRow: título à esquerda, data de emissão à direita.
func cabecalhoRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("MedFLOW — Relatório de Estoque", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: corCinza,
			}),
		),
	)
}

func tabelaHeaderRow() core.Row {
	header := func(tam int, titulo string, alinhamento align.Type) core.Col {
		return col.New(tam).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: alinhamento, Color: corPrimaria, Top: 1,
		}))
	}
	return row.New(8).Add(
		header(3, "Medicamento", align.Left),
		header(2, "Localização", align.Left),
		header(1, "Total", align.Right),
		header(1, "Disp.", align.Right),
		header(1, "Reserv.", align.Right),
		header(1, "Mín.", align.Right),
		header(1, "Máx.", align.Right),
		header(2, "Atualizado", align.Right),
	)
}

func tabelaItemRow(item appestoque.RelatorioItem) core.Row {
	cor := corCinza
	nome := item.MedicamentoNome
	if item.EstoqueBaixo {
		cor = corAlerta
		nome += " (estoque baixo)"
	}
	celula := func(tam int, valor string, alinhamento align.Type) core.Col {
		return col.New(tam).Add(text.New(valor, props.Text{Size: 8, Align: alinhamento, Color: cor}))
	}
	return row.New(6).Add(
		celula(3, nome, align.Left),
		celula(2, item.Localizacao, align.Left),
		celula(1, fmt.Sprintf("%d", item.QuantidadeTotal), align.Right),
		celula(1, fmt.Sprintf("%d", item.QuantidadeDisponivel), align.Right),
		celula(1, fmt.Sprintf("%d", item.QuantidadeReservada), align.Right),
		celula(1, fmt.Sprintf("%d", item.EstoqueMinimo), align.Right),
		celula(1, fmt.Sprintf("%d", item.EstoqueMaximo), align.Right),
		celula(2, item.UltimaAtualizacao, align.Right),
	)
}

func rodapeRow(total, alertas int) core.Row {
	resumo := fmt.Sprintf("%d itens listados", total)
	if alertas > 0 {
		resumo += fmt.Sprintf(" — %d em alerta de estoque baixo", alertas)
	}
	return row.New(8).Add(
		col.New(12).Add(text.New(resumo, props.Text{Size: 8, Color: corCinza, Top: 2})),
	)
}

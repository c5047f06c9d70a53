// Package pdf implementa la hoja de costos de un lote de manufactura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° de lote + producto  │  Estado + fechas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MATERIALES: Material | Cant. | P.Prom | Costo               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍAS: mano de obra, empaque, cierre, ... , otros      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Costo unitario / Participación %           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// categoryLabels títulos de las categorías del desglose.
var categoryLabels = map[string]string{
	manufacturing.CategoryLabor:     "Mano de obra",
	manufacturing.CategoryPackaging: "Empaque",
	manufacturing.CategoryZipper:    "Cierres",
	manufacturing.CategorySticker:   "Stickers",
	manufacturing.CategoryLogo:      "Logos",
	manufacturing.CategoryTag:       "Etiquetas",
	manufacturing.CategoryMisc:      "Otros (CIF, energía, mantenimiento)",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// CostSheetGenerator implementa ports.CostSheetPDFGenerator usando Maroto v2.
type CostSheetGenerator struct {
	printer *message.Printer
}

var _ ports.CostSheetPDFGenerator = (*CostSheetGenerator)(nil)

// NewCostSheetGenerator construye el generador con formato numérico en español.
func NewCostSheetGenerator() *CostSheetGenerator {
	return &CostSheetGenerator{printer: message.NewPrinter(language.Spanish)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *CostSheetGenerator) Generate(data ports.CostSheetData) ([]byte, error) {
	if data.Batch == nil || data.Product == nil {
		return nil, fmt.Errorf("pdf: lote y producto son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de costos "+data.Batch.BatchNumber, true).
		WithAuthor(nonEmpty(data.GeneratedBy, "manufactura-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("MATERIALES (promedio de las últimas compras)"))
	m.AddRows(tableHeaderRow("Material", "Cantidad", "P. promedio", "Costo"))
	if len(data.Breakdown.Materials) == 0 {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Sin materiales registrados", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	for _, r := range g.materialRows(data.Breakdown.Materials) {
		m.AddRows(r)
	}
	m.AddRows(g.amountRow("Subtotal materiales", data.Breakdown.MaterialCost, true))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("COSTOS REGISTRADOS POR CATEGORÍA"))
	for _, c := range manufacturing.Categories() {
		m.AddRows(g.amountRow(categoryLabels[c], data.Breakdown.Categories[c], false))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data.Breakdown))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Generado el %s por %s. Los costos de materiales se calculan al momento de la consulta.",
			time.Now().Format("02/01/2006 15:04"), nonEmpty(data.GeneratedBy, "—")),
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: lote + producto (izq) y estado + fechas (der).
func (g *CostSheetGenerator) headerRow(data ports.CostSheetData) core.Row {
	b := data.Batch
	dates := "Inicio: " + b.StartDate.Format("02/01/2006")
	if b.CompletionDate != nil {
		dates += "   Fin: " + b.CompletionDate.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(b.BatchNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)", data.Product.Name, data.Product.SKU), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE COSTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Estado: %s   Unidades: %s", b.Status, g.qty(b.QuantityProduced)), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(dates, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow(labels ...string) core.Row {
	sizes := []int{6, 2, 2, 2}
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

func (g *CostSheetGenerator) materialRows(lines []manufacturing.MaterialCostLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(nonEmpty(l.MaterialName, l.MaterialID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.qty(l.QuantityRequired)+" "+l.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.AverageUnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.Cost),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *CostSheetGenerator) amountRow(label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
		col.New(4).Add(text.New(g.money(amount), props.Text{Size: 8, Style: style, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: total, costo por unidad y participación.
func (g *CostSheetGenerator) totalsRow(bd manufacturing.Breakdown) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(26).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Materiales %s%%   Mano de obra %s%%   Otros %s%%",
				g.pct(bd.Percentages.Materials), g.pct(bd.Percentages.Labor), g.pct(bd.Percentages.Other)),
				props.Text{Size: 8, Color: colorGray, Top: 2, Left: 1}),
		),
		col.New(3).Add(
			label("Costo total:"),
			label("Costo por unidad:"),
		),
		col.New(3).Add(
			text.New(g.money(bd.TotalCost), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
			value(g.money(bd.CostPerUnit)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *CostSheetGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.InexactFloat64())
}

func (g *CostSheetGenerator) qty(d decimal.Decimal) string {
	return g.printer.Sprintf("%v", d.InexactFloat64())
}

func (g *CostSheetGenerator) pct(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

package manufacturing

import (
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecentPurchaseWindow cantidad de compras recientes que promedia el costo de materiales.
const RecentPurchaseWindow = 5

// Categorías fijas del desglose de costos.
const (
	CategoryLabor     = "labor"
	CategoryPackaging = "packaging"
	CategoryZipper    = "zipper"
	CategorySticker   = "sticker"
	CategoryLogo      = "logo"
	CategoryTag       = "tag"
	CategoryMisc      = "misc"
)

var hundred = decimal.NewFromInt(100)

// Categories devuelve las categorías en el orden de presentación.
func Categories() []string {
	return []string{CategoryLabor, CategoryPackaging, CategoryZipper, CategorySticker, CategoryLogo, CategoryTag, CategoryMisc}
}

// CategoryFor mapea un tipo de costo a su categoría. overhead, electricity, maintenance y other caen en misc.
func CategoryFor(costType string) string {
	switch costType {
	case entity.CostTypeLabor:
		return CategoryLabor
	case entity.CostTypePackaging:
		return CategoryPackaging
	case entity.CostTypeZipper:
		return CategoryZipper
	case entity.CostTypeSticker:
		return CategorySticker
	case entity.CostTypeLogo:
		return CategoryLogo
	case entity.CostTypeTag:
		return CategoryTag
	}
	return CategoryMisc
}

// AverageUnitPrice promedio simple de precios unitarios; cero si no hay compras.
func AverageUnitPrice(prices []decimal.Decimal) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	return decimal.Avg(prices[0], prices[1:]...)
}

// MaterialCostLine costo calculado (no almacenado) de un material del lote.
type MaterialCostLine struct {
	MaterialID       string
	MaterialName     string
	Unit             string
	QuantityRequired decimal.Decimal
	AverageUnitPrice decimal.Decimal
	Cost             decimal.Decimal
}

// Percentages reparto porcentual del costo total. Other es el remanente, así la suma da 100 exacto.
type Percentages struct {
	Materials decimal.Decimal
	Labor     decimal.Decimal
	Other     decimal.Decimal
}

// Breakdown desglose completo del costo de un lote.
type Breakdown struct {
	Materials    []MaterialCostLine
	MaterialCost decimal.Decimal
	Categories   map[string]decimal.Decimal
	TotalCost    decimal.Decimal
	CostPerUnit  decimal.Decimal
	Percentages  Percentages
}

// BuildBreakdown calcula el desglose a partir de las líneas de material (con su precio promedio
// ya resuelto) y los costos registrados.
func BuildBreakdown(quantityProduced decimal.Decimal, materials []MaterialCostLine, costs []*entity.ManufacturingCost) Breakdown {
	b := Breakdown{
		Materials:  make([]MaterialCostLine, 0, len(materials)),
		Categories: make(map[string]decimal.Decimal, 7),
	}
	for _, c := range Categories() {
		b.Categories[c] = decimal.Zero
	}
	for _, m := range materials {
		m.Cost = m.QuantityRequired.Mul(m.AverageUnitPrice)
		b.MaterialCost = b.MaterialCost.Add(m.Cost)
		b.Materials = append(b.Materials, m)
	}
	for _, c := range costs {
		cat := CategoryFor(c.CostType)
		b.Categories[cat] = b.Categories[cat].Add(c.Amount)
	}

	total := b.MaterialCost
	for _, v := range b.Categories {
		total = total.Add(v)
	}
	b.TotalCost = total

	units := quantityProduced
	if units.LessThan(decimal.NewFromInt(1)) {
		units = decimal.NewFromInt(1)
	}
	b.CostPerUnit = total.Div(units).Round(2)

	b.Percentages = Percentages{Materials: decimal.Zero, Labor: decimal.Zero, Other: decimal.Zero}
	if total.GreaterThan(decimal.Zero) {
		mat := b.MaterialCost.Div(total).Mul(hundred).Round(2)
		lab := b.Categories[CategoryLabor].Div(total).Mul(hundred).Round(2)
		b.Percentages = Percentages{
			Materials: mat,
			Labor:     lab,
			Other:     hundred.Sub(mat).Sub(lab),
		}
	}
	return b
}

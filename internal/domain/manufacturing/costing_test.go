package manufacturing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cost(t, amount string) *entity.ManufacturingCost {
	return &entity.ManufacturingCost{CostType: t, Amount: dec(amount)}
}

func TestAverageUnitPrice(t *testing.T) {
	assert.True(t, manufacturing.AverageUnitPrice(nil).IsZero())
	avg := manufacturing.AverageUnitPrice([]decimal.Decimal{dec("10"), dec("20"), dec("30")})
	assert.True(t, dec("20").Equal(avg))
}

func TestCategoryFor_AgrupaEnMisc(t *testing.T) {
	assert.Equal(t, manufacturing.CategoryLabor, manufacturing.CategoryFor(entity.CostTypeLabor))
	assert.Equal(t, manufacturing.CategoryZipper, manufacturing.CategoryFor(entity.CostTypeZipper))
	for _, ct := range []string{entity.CostTypeOverhead, entity.CostTypeElectricity, entity.CostTypeMaintenance, entity.CostTypeOther, entity.CostTypeMisc} {
		assert.Equal(t, manufacturing.CategoryMisc, manufacturing.CategoryFor(ct), ct)
	}
}

func TestBuildBreakdown(t *testing.T) {
	materials := []manufacturing.MaterialCostLine{
		{MaterialID: "m1", QuantityRequired: dec("10"), AverageUnitPrice: dec("3")},  // 30
		{MaterialID: "m2", QuantityRequired: dec("2.5"), AverageUnitPrice: dec("4")}, // 10
	}
	costs := []*entity.ManufacturingCost{
		cost(entity.CostTypeLabor, "25"),
		cost(entity.CostTypeLabor, "5"),
		cost(entity.CostTypeZipper, "7"),
		cost(entity.CostTypeElectricity, "3"),
	}
	b := manufacturing.BuildBreakdown(dec("20"), materials, costs)

	assert.True(t, dec("40").Equal(b.MaterialCost))
	assert.True(t, dec("30").Equal(b.Categories[manufacturing.CategoryLabor]))
	assert.True(t, dec("7").Equal(b.Categories[manufacturing.CategoryZipper]))
	assert.True(t, dec("3").Equal(b.Categories[manufacturing.CategoryMisc]))
	assert.True(t, dec("0").Equal(b.Categories[manufacturing.CategoryTag]))
	assert.True(t, dec("80").Equal(b.TotalCost))
	assert.True(t, dec("4").Equal(b.CostPerUnit))
	require.Len(t, b.Materials, 2)
	assert.True(t, dec("30").Equal(b.Materials[0].Cost))

	assert.True(t, dec("50").Equal(b.Percentages.Materials))
	assert.True(t, dec("37.5").Equal(b.Percentages.Labor))
	assert.True(t, dec("12.5").Equal(b.Percentages.Other))
}

func TestBuildBreakdown_PorcentajesSuman100(t *testing.T) {
	// tercios: 1/3 no es exacto y el redondeo no debe desviar la suma
	materials := []manufacturing.MaterialCostLine{{QuantityRequired: dec("1"), AverageUnitPrice: dec("1")}}
	costs := []*entity.ManufacturingCost{cost(entity.CostTypeLabor, "1"), cost(entity.CostTypeTag, "1")}
	b := manufacturing.BuildBreakdown(dec("3"), materials, costs)

	sum := b.Percentages.Materials.Add(b.Percentages.Labor).Add(b.Percentages.Other)
	assert.True(t, dec("100").Equal(sum), "suma %s", sum)
	assert.True(t, dec("33.33").Equal(b.Percentages.Materials))
	assert.True(t, dec("1").Equal(b.CostPerUnit))
}

func TestBuildBreakdown_SinCostos(t *testing.T) {
	b := manufacturing.BuildBreakdown(dec("0"), nil, nil)
	assert.True(t, b.TotalCost.IsZero())
	assert.True(t, b.CostPerUnit.IsZero())
	assert.True(t, b.Percentages.Materials.IsZero())
	assert.True(t, b.Percentages.Other.IsZero())
	assert.Len(t, b.Categories, 7)
}

func TestBuildBreakdown_CantidadCeroUsaUnaUnidad(t *testing.T) {
	b := manufacturing.BuildBreakdown(dec("0"), nil, []*entity.ManufacturingCost{cost(entity.CostTypeLabor, "12")})
	assert.True(t, dec("12").Equal(b.CostPerUnit))
}

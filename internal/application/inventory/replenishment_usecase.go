package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de materias primas bajo su nivel mínimo.
type ReplenishmentUseCase struct {
	materialRepo repository.RawMaterialRepository
	purchaseRepo repository.PurchaseRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	materialRepo repository.RawMaterialRepository,
	purchaseRepo repository.PurchaseRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{materialRepo: materialRepo, purchaseRepo: purchaseRepo}
}

// LowStockMaterials devuelve los materiales bajo mínimo con la cantidad sugerida
// (mínimo * 1.5 - stock) y su costo estimado según el promedio de compras recientes.
// Orden: mayor déficit relativo primero.
func (uc *ReplenishmentUseCase) LowStockMaterials(ctx context.Context) ([]dto.LowStockMaterialDTO, error) {
	materials, err := uc.materialRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return []dto.LowStockMaterialDTO{}, nil
	}

	hundred := decimal.NewFromInt(100)
	factor := decimal.NewFromFloat(1.5)

	out := make([]dto.LowStockMaterialDTO, 0, len(materials))
	for _, m := range materials {
		suggested := m.MinStockLevel.Mul(factor).Sub(m.StockQuantity)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		prices, err := uc.purchaseRepo.RecentUnitPrices(ctx, m.ID, manufacturing.RecentPurchaseWindow)
		if err != nil {
			return nil, err
		}
		avg := manufacturing.AverageUnitPrice(prices)

		shortfall := decimal.Zero
		if m.MinStockLevel.GreaterThan(decimal.Zero) {
			shortfall = m.MinStockLevel.Sub(m.StockQuantity).Div(m.MinStockLevel).Mul(hundred).Round(2)
		}
		out = append(out, dto.LowStockMaterialDTO{
			MaterialID:         m.ID,
			Name:               m.Name,
			Unit:               m.Unit,
			CurrentStock:       m.StockQuantity,
			MinStockLevel:      m.MinStockLevel,
			SuggestedOrderQty:  suggested,
			AverageUnitPrice:   avg.Round(2),
			EstimatedOrderCost: suggested.Mul(avg).Round(2),
			ShortfallPct:       shortfall,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ShortfallPct.GreaterThan(out[j].ShortfallPct)
	})
	return out, nil
}

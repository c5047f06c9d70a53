// Package inventory contiene las reglas puras del ledger de inventario.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// ValidateAdjustment verifica tipo y cantidad de un ajuste sin conocer el stock actual.
func ValidateAdjustment(adjustmentType string, quantity decimal.Decimal) error {
	switch adjustmentType {
	case entity.AdjustmentAdd, entity.AdjustmentRemove:
		if !quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidAmount
		}
	case entity.AdjustmentSet:
		if quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidAmount
		}
	default:
		return domain.ErrInvalidAdjustmentType
	}
	return nil
}

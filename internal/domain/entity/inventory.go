package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ubicaciones del ledger de inventario.
const (
	LocationManufacturing = "manufacturing"
	LocationTransit       = "transit"
	LocationWholesale     = "wholesale"
)

// IsValidLocation indica si loc es una ubicación conocida.
func IsValidLocation(loc string) bool {
	switch loc {
	case LocationManufacturing, LocationTransit, LocationWholesale:
		return true
	}
	return false
}

// InventoryRecord cantidad de un producto en una ubicación (única por producto+ubicación).
// Es la fuente de verdad del stock: se actualiza explícitamente en cada movimiento.
type InventoryRecord struct {
	ID           string
	ProductID    string
	Location     string
	Quantity     decimal.Decimal
	AttributedTo string // usuario que recibió el stock por última vez (confirmación de traslado)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Tipos de ajuste manual.
const (
	AdjustmentAdd    = "add"
	AdjustmentRemove = "remove"
	AdjustmentSet    = "set"
)

// InventoryAdjustment fila de auditoría de una corrección manual de inventario.
type InventoryAdjustment struct {
	ID               string
	InventoryID      string
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	AdjustmentType   string
	Reason           string
	Notes            string
	AdjustedBy       string
	CreatedAt        time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial materia prima. Ledger separado del inventario de producto terminado:
// las compras suman StockQuantity y la creación de lotes lo descuenta.
type RawMaterial struct {
	ID            string
	Name          string
	Unit          string // metro, kg, unidad...
	StockQuantity decimal.Decimal
	MinStockLevel decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinimum indica si el stock actual está por debajo del nivel mínimo.
func (m *RawMaterial) BelowMinimum() bool {
	return m.StockQuantity.LessThan(m.MinStockLevel)
}

// Purchase recepción de compra de materia prima.
type Purchase struct {
	ID           string
	MaterialID   string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	Supplier     string
	PurchaseDate time.Time
	CreatedBy    string
	CreatedAt    time.Time
}

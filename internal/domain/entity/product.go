package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado. Su stock vive por ubicación en InventoryRecord.
type Product struct {
	ID        string
	Name      string
	SKU       string // código único
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

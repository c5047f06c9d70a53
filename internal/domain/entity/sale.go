package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCredit   = "credit"
)

// Sale venta de producto terminado desde la ubicación wholesale.
type Sale struct {
	ID            string
	SaleNumber    string
	CustomerName  string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	SaleDate      time.Time
	CreatedBy     string
	Items         []SaleItem
}

// SaleItem línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de traslado.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
	TransferStatusConfirmed = "confirmed"
)

// InventoryTransfer traslado de stock entre ubicaciones.
// Directo: nace completed. Confirmable: nace pending hacia transit y lo confirma un vendedor.
type InventoryTransfer struct {
	ID               string
	ProductID        string
	FromLocation     string
	ToLocation       string
	Quantity         decimal.Decimal
	Status           string
	TransferDate     time.Time
	Notes            string
	CreatedBy        string
	ConfirmedBy      string
	ConfirmationDate *time.Time
	NotificationID   string
}

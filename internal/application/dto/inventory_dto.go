package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// InventoryRecordResponse fila del ledger.
type InventoryRecordResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Location     string          `json:"location"`
	Quantity     decimal.Decimal `json:"quantity"`
	AttributedTo string          `json:"attributed_to,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewInventoryRecordResponse mapea la entidad.
func NewInventoryRecordResponse(r *entity.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID: r.ID, ProductID: r.ProductID, Location: r.Location,
		Quantity: r.Quantity, AttributedTo: r.AttributedTo, UpdatedAt: r.UpdatedAt,
	}
}

// QuantityResponse cantidad de un producto en una ubicación (cero si no hay fila).
type QuantityResponse struct {
	ProductID string          `json:"product_id"`
	Location  string          `json:"location"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AdjustInventoryRequest body para POST /api/inventory/:id/adjustments.
type AdjustInventoryRequest struct {
	Type     string          `json:"adjustment_type" validate:"required,oneof=add remove set"`
	Quantity decimal.Decimal `json:"quantity" validate:"min=0"`
	Reason   string          `json:"reason" validate:"required,max=255"`
	Notes    string          `json:"notes"`
}

// AdjustmentResponse fila de auditoría de un ajuste.
type AdjustmentResponse struct {
	ID               string          `json:"id"`
	InventoryID      string          `json:"inventory_id"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	AdjustmentType   string          `json:"adjustment_type"`
	Reason           string          `json:"reason"`
	Notes            string          `json:"notes,omitempty"`
	AdjustedBy       string          `json:"adjusted_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewAdjustmentResponse mapea la entidad.
func NewAdjustmentResponse(a *entity.InventoryAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID: a.ID, InventoryID: a.InventoryID, PreviousQuantity: a.PreviousQuantity, NewQuantity: a.NewQuantity,
		AdjustmentType: a.AdjustmentType, Reason: a.Reason, Notes: a.Notes, AdjustedBy: a.AdjustedBy, CreatedAt: a.CreatedAt,
	}
}

// TransferRequest body para POST /api/transfers.
type TransferRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	From      string          `json:"from_location" validate:"required"`
	To        string          `json:"to_location" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Notes     string          `json:"notes"`
}

// PendingTransferRequest body para POST /api/transfers/pending.
type PendingTransferRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	From      string          `json:"from_location"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Notes     string          `json:"notes"`
}

// ConfirmReceiptRequest body para POST /api/transfers/:id/confirm.
type ConfirmReceiptRequest struct {
	NotificationID string `json:"notification_id"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	FromLocation     string          `json:"from_location"`
	ToLocation       string          `json:"to_location"`
	Quantity         decimal.Decimal `json:"quantity"`
	Status           string          `json:"status"`
	TransferDate     time.Time       `json:"transfer_date"`
	Notes            string          `json:"notes,omitempty"`
	CreatedBy        string          `json:"created_by"`
	ConfirmedBy      string          `json:"confirmed_by,omitempty"`
	ConfirmationDate *time.Time      `json:"confirmation_date,omitempty"`
	NotificationID   string          `json:"notification_id,omitempty"`
}

// NewTransferResponse mapea la entidad.
func NewTransferResponse(t *entity.InventoryTransfer) TransferResponse {
	return TransferResponse{
		ID: t.ID, ProductID: t.ProductID, FromLocation: t.FromLocation, ToLocation: t.ToLocation,
		Quantity: t.Quantity, Status: t.Status, TransferDate: t.TransferDate, Notes: t.Notes,
		CreatedBy: t.CreatedBy, ConfirmedBy: t.ConfirmedBy, ConfirmationDate: t.ConfirmationDate,
		NotificationID: t.NotificationID,
	}
}

// NotificationResponse aviso para vendedores.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	TransferID string    `json:"transfer_id,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNotificationResponse mapea la entidad.
func NewNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, Title: n.Title, Message: n.Message, TransferID: n.TransferID, Read: n.Read, CreatedAt: n.CreatedAt}
}

package entity

import "time"

// ActivityLog registro de auditoría de una operación exitosa.
type ActivityLog struct {
	ID          string
	UserID      string
	ActionType  string // create, update, status_change, transfer, confirm, adjust, sale, purchase
	Module      string // batches, costs, inventory, transfers, sales, purchases, catalog
	Description string
	EntityID    string
	CreatedAt   time.Time
}

// Notification aviso para un rol (p. ej. vendedores ante un traslado pendiente).
type Notification struct {
	ID         string
	Audience   string // rol destinatario
	Title      string
	Message    string
	TransferID string
	Read       bool
	CreatedAt  time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationStockDTO stock total por ubicación.
type LocationStockDTO struct {
	Location string          `json:"location"`
	Quantity decimal.Decimal `json:"quantity"`
	Products int             `json:"products"`
}

// DashboardSummaryResponse resumen operativo para el propietario.
type DashboardSummaryResponse struct {
	BatchesByStatus   map[string]int     `json:"batches_by_status"`
	ActiveBatches     int                `json:"active_batches"`
	StockByLocation   []LocationStockDTO `json:"stock_by_location"`
	PendingTransfers  int                `json:"pending_transfers"`
	LowStockMaterials int                `json:"low_stock_materials"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// ActivityLogResponse entrada del log de actividad.
type ActivityLogResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ActionType  string    `json:"action_type"`
	Module      string    `json:"module"`
	Description string    `json:"description"`
	EntityID    string    `json:"entity_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

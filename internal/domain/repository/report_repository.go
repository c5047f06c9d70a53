package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusCount cantidad de lotes en un estado.
type StatusCount struct {
	Status string
	Count  int
}

// LocationStock stock total (todas las referencias) en una ubicación.
type LocationStock struct {
	Location string
	Quantity decimal.Decimal
	Products int
}

// InventoryRow fila plana de inventario para reportes.
type InventoryRow struct {
	ProductID   string
	SKU         string
	ProductName string
	Location    string
	Quantity    decimal.Decimal
}

// ReportRepository consultas de solo lectura para dashboard y reportes.
type ReportRepository interface {
	BatchesByStatus(ctx context.Context) ([]StatusCount, error)
	StockByLocation(ctx context.Context) ([]LocationStock, error)
	CountPendingTransfers(ctx context.Context) (int, error)
	CountLowStockMaterials(ctx context.Context) (int, error)
	InventoryRows(ctx context.Context) ([]InventoryRow, error)
}

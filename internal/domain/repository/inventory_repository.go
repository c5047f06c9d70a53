package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// InventoryFilter filtros opcionales para listar registros del ledger.
type InventoryFilter struct {
	ProductID string
	Location  string
}

// UpsertMode indica qué hace Upsert cuando la fila (producto, ubicación) ya existe.
type UpsertMode int

const (
	// UpsertAdd suma la cantidad a la existente.
	UpsertAdd UpsertMode = iota
	// UpsertReplace reemplaza la cantidad existente.
	UpsertReplace
)

// InventoryRepository define el puerto del ledger de inventario (producto+ubicación).
// Los Get devuelven (nil, nil) si la fila no existe; los ForUpdate bloquean la fila.
type InventoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error)
	Get(ctx context.Context, productID, location string) (*entity.InventoryRecord, error)
	GetForUpdate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error)
	// Upsert inserta la fila o, si (producto, ubicación) ya existe, la actualiza según mode en la
	// misma sentencia. attributed_to vacío conserva el valor anterior. Deja en record el estado final
	// y reporta si la fila es nueva.
	Upsert(ctx context.Context, record *entity.InventoryRecord, mode UpsertMode) (inserted bool, err error)
	// Save persiste quantity, attributed_to y updated_at de un registro existente.
	Save(ctx context.Context, record *entity.InventoryRecord) error
	List(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryRecord, error)
}

// AdjustmentRepository define el puerto para la auditoría de ajustes manuales.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.InventoryAdjustment) error
	ListByInventory(ctx context.Context, inventoryID string) ([]*entity.InventoryAdjustment, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traslados entre ubicaciones.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.InventoryTransfer) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransfer, error)
	// GetPendingForUpdate bloquea el traslado solo si sigue pending; (nil, nil) en otro caso.
	GetPendingForUpdate(ctx context.Context, id string) (*entity.InventoryTransfer, error)
	Update(ctx context.Context, transfer *entity.InventoryTransfer) error
	// List filtra por estado cuando status no es vacío. Más recientes primero.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryTransfer, error)
}

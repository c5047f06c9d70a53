package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// BatchFilter filtros opcionales para listar lotes.
type BatchFilter struct {
	Status    string
	ProductID string
	Limit     int
	Offset    int
}

// BatchRepository define el puerto de persistencia para lotes de manufactura,
// sus materiales y su historial de estados.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.ManufacturingBatch) error
	GetByID(ctx context.Context, id string) (*entity.ManufacturingBatch, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ManufacturingBatch, error)
	ExistsByNumber(ctx context.Context, batchNumber string) (bool, error)
	// Update persiste status, completion_date y updated_at.
	Update(ctx context.Context, batch *entity.ManufacturingBatch) error
	List(ctx context.Context, filter BatchFilter) ([]*entity.ManufacturingBatch, error)

	AddMaterial(ctx context.Context, material *entity.BatchMaterial) error
	ListMaterials(ctx context.Context, batchID string) ([]*entity.BatchMaterial, error)

	AddStatusEntry(ctx context.Context, entry *entity.BatchStatusEntry) error
	// ListStatusEntries en orden cronológico.
	ListStatusEntries(ctx context.Context, batchID string) ([]*entity.BatchStatusEntry, error)
}

// CostRepository define el puerto para los costos (solo-anexo) de un lote.
type CostRepository interface {
	Create(ctx context.Context, cost *entity.ManufacturingCost) error
	ListByBatch(ctx context.Context, batchID string) ([]*entity.ManufacturingCost, error)
}

// Package ports declara los puertos de salida que comparten los casos de uso.
package ports

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products    repository.ProductRepository
	Materials   repository.RawMaterialRepository
	Purchases   repository.PurchaseRepository
	Inventory   repository.InventoryRepository
	Adjustments repository.AdjustmentRepository
	Transfers   repository.TransferRepository
	Batches     repository.BatchRepository
	Costs       repository.CostRepository
	Sales       repository.SaleRepository
	// Activity escribe detrás de un savepoint: un fallo no invalida la tx externa.
	Activity repository.ActivityLogRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repos atados a esa tx.
// Si fn devuelve error se hace Rollback de todo; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los SELECT ... FOR UPDATE de los repos quedan vigentes hasta el Commit.
func (r *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ReposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReposFor arma el juego de repositorios sobre q (pool o tx).
func ReposFor(q Querier) ports.Repos {
	return ports.Repos{
		Products:    NewProductRepository(q),
		Materials:   NewRawMaterialRepository(q),
		Purchases:   NewPurchaseRepository(q),
		Inventory:   NewInventoryRepository(q),
		Adjustments: NewAdjustmentRepository(q),
		Transfers:   NewTransferRepository(q),
		Batches:     NewBatchRepository(q),
		Costs:       NewCostRepository(q),
		Sales:       NewSaleRepository(q),
		Activity:    NewActivityLogRepository(q),
	}
}

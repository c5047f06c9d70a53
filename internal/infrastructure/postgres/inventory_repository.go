package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository  = (*InventoryRepo)(nil)
	_ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)
)

// InventoryRepo ledger de inventario (producto+ubicación) sobre PostgreSQL (pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, location, quantity, attributed_to, created_at, updated_at`

func (r *InventoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	var attributed *string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&rec.ID, &rec.ProductID, &rec.Location, &rec.Quantity, &attributed, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.AttributedTo = deref(attributed)
	return &rec, nil
}

// GetByID obtiene un registro por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory", `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el registro y bloquea la fila.
func (r *InventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory for update",
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = $1 FOR UPDATE`, id)
}

// Get obtiene el registro de un producto en una ubicación.
func (r *InventoryRepo) Get(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory by location",
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND location = $2`, productID, location)
}

// GetForUpdate obtiene el registro de producto+ubicación y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory by location for update",
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND location = $2 FOR UPDATE`,
		productID, location)
}

const (
	upsertAddQuantity     = `inventory.quantity + EXCLUDED.quantity`
	upsertReplaceQuantity = `EXCLUDED.quantity`
)

// Upsert INSERT ... ON CONFLICT (product_id, location) DO UPDATE: dos primeras llegadas
// concurrentes a la misma ubicación se serializan en la fila en vez de chocar en la restricción UNIQUE.
func (r *InventoryRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord, mode repository.UpsertMode) (bool, error) {
	quantityExpr := upsertAddQuantity
	if mode == repository.UpsertReplace {
		quantityExpr = upsertReplaceQuantity
	}
	query := `
		INSERT INTO inventory (id, product_id, location, quantity, attributed_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, location) DO UPDATE SET
			quantity      = ` + quantityExpr + `,
			attributed_to = COALESCE(EXCLUDED.attributed_to, inventory.attributed_to),
			updated_at    = EXCLUDED.updated_at
		RETURNING id, quantity, attributed_to, created_at, (xmax = 0) AS inserted`

	var attributed *string
	var inserted bool
	err := r.q.QueryRow(ctx, query,
		rec.ID, rec.ProductID, rec.Location, rec.Quantity, nullIfEmpty(rec.AttributedTo), rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID, &rec.Quantity, &attributed, &rec.CreatedAt, &inserted)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return false, domain.ErrProductNotFound
		case isCheckViolation(err):
			return false, domain.ErrInsufficientQuantity
		}
		return false, fmt.Errorf("upsert inventory: %w", err)
	}
	rec.AttributedTo = deref(attributed)
	return inserted, nil
}

// Save persiste cantidad, atribución y fecha de actualización.
func (r *InventoryRepo) Save(ctx context.Context, rec *entity.InventoryRecord) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory SET quantity = $2, attributed_to = $3, updated_at = $4 WHERE id = $1`,
		rec.ID, rec.Quantity, nullIfEmpty(rec.AttributedTo), rec.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientQuantity
		}
		return fmt.Errorf("save inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

// List registros filtrados por producto y/o ubicación.
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + ` FROM inventory
		WHERE ($1 = '' OR product_id::text = $1)
		  AND ($2 = '' OR location = $2)
		ORDER BY product_id, location`
	rows, err := r.q.Query(ctx, query, filter.ProductID, filter.Location)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryRecord, 0)
	for rows.Next() {
		var rec entity.InventoryRecord
		var attributed *string
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Location, &rec.Quantity, &attributed,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		rec.AttributedTo = deref(attributed)
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// AdjustmentRepo auditoría de ajustes manuales.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de ajustes.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create registra un ajuste.
func (r *AdjustmentRepo) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments
			(id, inventory_id, previous_quantity, new_quantity, adjustment_type, reason, notes, adjusted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, adj.InventoryID, adj.PreviousQuantity, adj.NewQuantity, adj.AdjustmentType,
		adj.Reason, adj.Notes, nullIfEmpty(adj.AdjustedBy), adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory adjustment: %w", err)
	}
	return nil
}

// ListByInventory ajustes de un registro, más recientes primero.
func (r *AdjustmentRepo) ListByInventory(ctx context.Context, inventoryID string) ([]*entity.InventoryAdjustment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_id, previous_quantity, new_quantity, adjustment_type, reason, notes, adjusted_by, created_at
		FROM inventory_adjustments
		WHERE inventory_id = $1
		ORDER BY created_at DESC`, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list inventory adjustments: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryAdjustment, 0)
	for rows.Next() {
		var a entity.InventoryAdjustment
		var by *string
		if err := rows.Scan(&a.ID, &a.InventoryID, &a.PreviousQuantity, &a.NewQuantity, &a.AdjustmentType,
			&a.Reason, &a.Notes, &by, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory adjustment: %w", err)
		}
		a.AdjustedBy = deref(by)
		list = append(list, &a)
	}
	return list, rows.Err()
}

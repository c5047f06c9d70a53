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
	_ repository.BatchRepository = (*BatchRepo)(nil)
	_ repository.CostRepository  = (*CostRepo)(nil)
)

// BatchRepo lotes de manufactura, sus materiales y su historial de estados.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes (pool o tx).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, batch_number, product_id, quantity_produced, status, start_date,
	expected_completion_date, completion_date, notes, created_by, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.ManufacturingBatch, error) {
	var b entity.ManufacturingBatch
	var createdBy *string
	err := row.Scan(&b.ID, &b.BatchNumber, &b.ProductID, &b.QuantityProduced, &b.Status, &b.StartDate,
		&b.ExpectedCompletionDate, &b.CompletionDate, &b.Notes, &createdBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.CreatedBy = deref(createdBy)
	return &b, nil
}

// Create persiste el lote. Número repetido devuelve domain.ErrDuplicate.
func (r *BatchRepo) Create(ctx context.Context, b *entity.ManufacturingBatch) error {
	query := `
		INSERT INTO manufacturing_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProductID, b.QuantityProduced, b.Status, b.StartDate,
		b.ExpectedCompletionDate, b.CompletionDate, b.Notes, nullIfEmpty(b.CreatedBy), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrProductNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidStatus
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; (nil, nil) si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.ManufacturingBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM manufacturing_batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el lote y bloquea la fila: serializa avances de estado y registro de costos.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ManufacturingBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx,
		`SELECT `+batchColumns+` FROM manufacturing_batches WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// ExistsByNumber indica si ya hay un lote con ese número.
func (r *BatchRepo) ExistsByNumber(ctx context.Context, batchNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM manufacturing_batches WHERE batch_number = $1)`, batchNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists batch number: %w", err)
	}
	return exists, nil
}

// Update persiste status, completion_date y updated_at.
func (r *BatchRepo) Update(ctx context.Context, b *entity.ManufacturingBatch) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE manufacturing_batches SET status = $2, completion_date = $3, updated_at = $4
		WHERE id = $1`, b.ID, b.Status, b.CompletionDate, b.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidStatus
		}
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

// List lotes más recientes primero, con filtros opcionales de estado y producto.
func (r *BatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.ManufacturingBatch, error) {
	lim, off := pageArgs(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+batchColumns+` FROM manufacturing_batches
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR product_id::text = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, f.Status, f.ProductID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ManufacturingBatch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// AddMaterial registra el consumo planificado de una materia prima.
func (r *BatchRepo) AddMaterial(ctx context.Context, m *entity.BatchMaterial) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batch_materials (id, batch_id, material_id, quantity_required)
		VALUES ($1, $2, $3, $4)`, m.ID, m.BatchID, m.MaterialID, m.QuantityRequired)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrMaterialNotFound
		}
		return fmt.Errorf("insert batch material: %w", err)
	}
	return nil
}

// ListMaterials materiales del lote.
func (r *BatchRepo) ListMaterials(ctx context.Context, batchID string) ([]*entity.BatchMaterial, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, batch_id, material_id, quantity_required
		FROM batch_materials WHERE batch_id = $1`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch materials: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.BatchMaterial, 0)
	for rows.Next() {
		var m entity.BatchMaterial
		if err := rows.Scan(&m.ID, &m.BatchID, &m.MaterialID, &m.QuantityRequired); err != nil {
			return nil, fmt.Errorf("scan batch material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// AddStatusEntry anexa una entrada al historial de estados.
func (r *BatchRepo) AddStatusEntry(ctx context.Context, e *entity.BatchStatusEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batch_status_history (id, batch_id, from_status, to_status, message, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.BatchID, e.FromStatus, e.ToStatus, e.Message, nullIfEmpty(e.ChangedBy), e.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert batch status entry: %w", err)
	}
	return nil
}

// ListStatusEntries historial en orden de inserción, con el nombre de quien hizo el cambio.
func (r *BatchRepo) ListStatusEntries(ctx context.Context, batchID string) ([]*entity.BatchStatusEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT h.id, h.batch_id, h.from_status, h.to_status, h.message, h.changed_by, COALESCE(u.name, ''), h.changed_at
		FROM batch_status_history h
		LEFT JOIN users u ON u.id = h.changed_by
		WHERE h.batch_id = $1
		ORDER BY h.seq`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch status entries: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.BatchStatusEntry, 0)
	for rows.Next() {
		var e entity.BatchStatusEntry
		var by *string
		if err := rows.Scan(&e.ID, &e.BatchID, &e.FromStatus, &e.ToStatus, &e.Message, &by,
			&e.ChangedByName, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan batch status entry: %w", err)
		}
		e.ChangedBy = deref(by)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CostRepo costos de manufactura (solo-anexo).
type CostRepo struct {
	q Querier
}

// NewCostRepository construye el adaptador de costos.
func NewCostRepository(q Querier) *CostRepo {
	return &CostRepo{q: q}
}

// Create registra un costo.
func (r *CostRepo) Create(ctx context.Context, c *entity.ManufacturingCost) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO manufacturing_costs (id, batch_id, cost_type, amount, recorded_date, description, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.BatchID, c.CostType, c.Amount, c.RecordedDate, c.Description, nullIfEmpty(c.RecordedBy))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrBatchNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidCostType
		}
		return fmt.Errorf("insert manufacturing cost: %w", err)
	}
	return nil
}

// ListByBatch costos del lote en orden de registro.
func (r *CostRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.ManufacturingCost, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, batch_id, cost_type, amount, recorded_date, description, recorded_by
		FROM manufacturing_costs
		WHERE batch_id = $1
		ORDER BY recorded_date, id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list manufacturing costs: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ManufacturingCost, 0)
	for rows.Next() {
		var c entity.ManufacturingCost
		var by *string
		if err := rows.Scan(&c.ID, &c.BatchID, &c.CostType, &c.Amount, &c.RecordedDate, &c.Description, &by); err != nil {
			return nil, fmt.Errorf("scan manufacturing cost: %w", err)
		}
		c.RecordedBy = deref(by)
		list = append(list, &c)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var (
	_ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)
	_ repository.PurchaseRepository    = (*PurchaseRepo)(nil)
)

// RawMaterialRepo materias primas sobre PostgreSQL (pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador de materias primas.
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const materialColumns = `id, name, unit, stock_quantity, min_stock_level, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &m.StockQuantity, &m.MinStockLevel, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una materia prima.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (id, name, unit, stock_quantity, min_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Unit, m.StockQuantity, m.MinStockLevel, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima; (nil, nil) si no existe.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM raw_materials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM raw_materials WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material for update: %w", err)
	}
	return m, nil
}

// Update actualiza nombre, unidad y nivel mínimo. El stock solo cambia con UpdateStock.
func (r *RawMaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE raw_materials SET name = $2, unit = $3, min_stock_level = $4, updated_at = $5 WHERE id = $1`,
		m.ID, m.Name, m.Unit, m.MinStockLevel, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// UpdateStock fija el stock de la materia prima.
func (r *RawMaterialRepo) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE raw_materials SET stock_quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update raw material stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// List lista materias primas por nombre.
func (r *RawMaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.RawMaterial, error) {
	lim, off := pageArgs(limit, offset)
	return r.list(ctx, `SELECT `+materialColumns+` FROM raw_materials ORDER BY name LIMIT $1 OFFSET $2`, lim, off)
}

// ListBelowMinimum materias primas con stock por debajo del mínimo.
func (r *RawMaterialRepo) ListBelowMinimum(ctx context.Context) ([]*entity.RawMaterial, error) {
	return r.list(ctx, `
		SELECT `+materialColumns+` FROM raw_materials
		WHERE stock_quantity < min_stock_level
		ORDER BY name`)
}

func (r *RawMaterialRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RawMaterial, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.RawMaterial, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// PurchaseRepo compras de materia prima sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, material_id, quantity, unit_price, total_amount, supplier, purchase_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.MaterialID, p.Quantity, p.UnitPrice, p.TotalAmount, p.Supplier, p.PurchaseDate,
		nullIfEmpty(p.CreatedBy), p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrMaterialNotFound
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// List compras más recientes primero; filtra por materia prima si materialID no es vacío.
func (r *PurchaseRepo) List(ctx context.Context, materialID string, limit, offset int) ([]*entity.Purchase, error) {
	lim, off := pageArgs(limit, offset)
	query := `
		SELECT id, material_id, quantity, unit_price, total_amount, supplier, purchase_date, created_by, created_at
		FROM purchases
		WHERE ($1 = '' OR material_id::text = $1)
		ORDER BY purchase_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, materialID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Purchase, 0)
	for rows.Next() {
		var p entity.Purchase
		var createdBy *string
		if err := rows.Scan(&p.ID, &p.MaterialID, &p.Quantity, &p.UnitPrice, &p.TotalAmount,
			&p.Supplier, &p.PurchaseDate, &createdBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.CreatedBy = deref(createdBy)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// RecentUnitPrices precios de las n compras más recientes del material.
func (r *PurchaseRepo) RecentUnitPrices(ctx context.Context, materialID string, n int) ([]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT unit_price FROM purchases
		WHERE material_id = $1
		ORDER BY purchase_date DESC, created_at DESC
		LIMIT $2`, materialID, n)
	if err != nil {
		return nil, fmt.Errorf("recent unit prices: %w", err)
	}
	defer rows.Close()

	prices := make([]decimal.Decimal, 0, n)
	for rows.Next() {
		var d decimal.Decimal
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan unit price: %w", err)
		}
		prices = append(prices, d)
	}
	return prices, rows.Err()
}

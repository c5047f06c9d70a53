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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y sus líneas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y todas las líneas. Las líneas van en un batch de pgx.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, sale_number, customer_name, total_amount, payment_method, sale_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sale.ID, sale.SaleNumber, sale.CustomerName, sale.TotalAmount, sale.PaymentMethod, sale.SaleDate,
		nullIfEmpty(sale.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	if len(sale.Items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, it := range sale.Items {
		batch.Queue(`
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, sale.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal)
	}
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sale items: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert sale items: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit sale items: %w", err)
	}
	return nil
}

// GetByID devuelve la venta con sus líneas, o (nil, nil).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	var by *string
	err := r.q.QueryRow(ctx, `
		SELECT id, sale_number, customer_name, total_amount, payment_method, sale_date, created_by
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.SaleNumber, &s.CustomerName, &s.TotalAmount, &s.PaymentMethod, &s.SaleDate, &by)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.CreatedBy = deref(by)

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// List ventas más recientes primero, sin líneas.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_number, customer_name, total_amount, payment_method, sale_date, created_by
		FROM sales
		ORDER BY sale_date DESC
		LIMIT $1 OFFSET $2`, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		var by *string
		if err := rows.Scan(&s.ID, &s.SaleNumber, &s.CustomerName, &s.TotalAmount, &s.PaymentMethod,
			&s.SaleDate, &by); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.CreatedBy = deref(by)
		list = append(list, &s)
	}
	return list, rows.Err()
}

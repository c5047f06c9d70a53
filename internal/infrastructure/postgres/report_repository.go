package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard y el libro de reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// BatchesByStatus cantidad de lotes agrupada por estado. Los estados sin lotes no aparecen.
func (r *ReportRepo) BatchesByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM manufacturing_batches
	GROUP BY status
	ORDER BY status`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.BatchesByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var row repository.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.BatchesByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// StockByLocation suma de cantidades y número de referencias por ubicación.
func (r *ReportRepo) StockByLocation(ctx context.Context) ([]repository.LocationStock, error) {
	const query = `
	SELECT location,
	       COALESCE(SUM(quantity), 0) AS quantity,
	       COUNT(*)                   AS products
	FROM inventory
	GROUP BY location
	ORDER BY location`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.StockByLocation: %w", err)
	}
	defer rows.Close()

	var results []repository.LocationStock
	for rows.Next() {
		var row repository.LocationStock
		if err := rows.Scan(&row.Location, &row.Quantity, &row.Products); err != nil {
			return nil, fmt.Errorf("reports.StockByLocation scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountPendingTransfers traslados esperando confirmación.
func (r *ReportRepo) CountPendingTransfers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_transfers WHERE status = 'pending'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("reports.CountPendingTransfers: %w", err)
	}
	return n, nil
}

// CountLowStockMaterials materias primas por debajo de su nivel mínimo.
func (r *ReportRepo) CountLowStockMaterials(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM raw_materials WHERE stock_quantity < min_stock_level`).Scan(&n); err != nil {
		return 0, fmt.Errorf("reports.CountLowStockMaterials: %w", err)
	}
	return n, nil
}

// InventoryRows inventario plano con SKU y nombre, ordenado por SKU y ubicación.
func (r *ReportRepo) InventoryRows(ctx context.Context) ([]repository.InventoryRow, error) {
	const query = `
	SELECT p.id, p.sku, p.name, i.location, i.quantity
	FROM inventory i
	JOIN products  p ON p.id = i.product_id
	ORDER BY p.sku, i.location`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.InventoryRows: %w", err)
	}
	defer rows.Close()

	results := make([]repository.InventoryRow, 0)
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.Location, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.InventoryRows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

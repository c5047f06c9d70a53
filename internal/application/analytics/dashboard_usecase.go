// Package analytics contiene el resumen operativo del dashboard y el reporte XLSX.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen operativo.
//
// Fuente de datos: ReportRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary construye el resumen.
//
// Cuatro llamadas en paralelo:
//  1. BatchesByStatus        → lotes por estado y activos
//  2. StockByLocation        → stock por ubicación
//  3. CountPendingTransfers  → traslados en tránsito
//  4. CountLowStockMaterials → materias primas bajo mínimo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	type statusResult struct {
		rows []repository.StatusCount
		err  error
	}
	type stockResult struct {
		rows []repository.LocationStock
		err  error
	}
	type countResult struct {
		n   int
		err error
	}

	statusCh := make(chan statusResult, 1)
	stockCh := make(chan stockResult, 1)
	pendingCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)

	go func() {
		rows, err := uc.reportRepo.BatchesByStatus(ctx)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.StockByLocation(ctx)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountPendingTransfers(ctx)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStockMaterials(ctx)
		lowCh <- countResult{n, err}
	}()

	statuses := <-statusCh
	stock := <-stockCh
	pending := <-pendingCh
	low := <-lowCh

	if statuses.err != nil {
		return nil, fmt.Errorf("dashboard: lotes por estado: %w", statuses.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock por ubicación: %w", stock.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: traslados pendientes: %w", pending.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: materias primas bajo mínimo: %w", low.err)
	}

	// ── Lotes: todos los estados presentes, aunque estén en cero ───────────────
	byStatus := make(map[string]int, len(manufacturing.Statuses()))
	for _, s := range manufacturing.Statuses() {
		byStatus[s] = 0
	}
	active := 0
	for _, row := range statuses.rows {
		byStatus[row.Status] = row.Count
		if row.Status != entity.BatchStatusCompleted {
			active += row.Count
		}
	}

	// ── Stock en orden fijo de ubicaciones ─────────────────────────────────────
	byLocation := make(map[string]repository.LocationStock, len(stock.rows))
	for _, row := range stock.rows {
		byLocation[row.Location] = row
	}
	locations := []string{entity.LocationManufacturing, entity.LocationTransit, entity.LocationWholesale}
	stockDTO := make([]dto.LocationStockDTO, 0, len(locations))
	for _, loc := range locations {
		row, ok := byLocation[loc]
		if !ok {
			row = repository.LocationStock{Location: loc, Quantity: decimal.Zero}
		}
		stockDTO = append(stockDTO, dto.LocationStockDTO{Location: loc, Quantity: row.Quantity, Products: row.Products})
	}

	return &dto.DashboardSummaryResponse{
		BatchesByStatus:   byStatus,
		ActiveBatches:     active,
		StockByLocation:   stockDTO,
		PendingTransfers:  pending.n,
		LowStockMaterials: low.n,
		GeneratedAt:       time.Now(),
	}, nil
}

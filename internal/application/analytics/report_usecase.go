package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// reportBatchLimit máximo de lotes incluidos en el libro.
const reportBatchLimit = 1000

// BreakdownCalculator calcula el desglose de costos de un lote ya cargado.
type BreakdownCalculator interface {
	BreakdownFor(ctx context.Context, b *entity.ManufacturingBatch) (manufacturing.Breakdown, error)
}

// ReportUseCase arma el libro XLSX de inventario y lotes.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
	costs       BreakdownCalculator
	writer      ports.ReportWriter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	costs BreakdownCalculator,
	writer ports.ReportWriter,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		batchRepo:   batchRepo,
		productRepo: productRepo,
		costs:       costs,
		writer:      writer,
	}
}

// Workbook genera el archivo y su nombre (reporte-YYYYMMDD.xlsx).
func (uc *ReportUseCase) Workbook(ctx context.Context) (content []byte, filename string, err error) {
	if uc.writer == nil {
		return nil, "", fmt.Errorf("reporte: writer XLSX no configurado")
	}
	rows, err := uc.reportRepo.InventoryRows(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: inventario: %w", err)
	}
	batches, err := uc.batchRepo.List(ctx, repository.BatchFilter{Limit: reportBatchLimit})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: lotes: %w", err)
	}

	names := make(map[string]string)
	data := ports.ReportData{Inventory: rows, Batches: make([]ports.BatchReportRow, 0, len(batches))}
	for _, b := range batches {
		name, ok := names[b.ProductID]
		if !ok {
			p, err := uc.productRepo.GetByID(ctx, b.ProductID)
			if err != nil {
				return nil, "", fmt.Errorf("reporte: producto %s: %w", b.ProductID, err)
			}
			if p != nil {
				name = p.Name
			}
			names[b.ProductID] = name
		}
		bd, err := uc.costs.BreakdownFor(ctx, b)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: costos de %s: %w", b.BatchNumber, err)
		}
		data.Batches = append(data.Batches, ports.BatchReportRow{
			BatchNumber:      b.BatchNumber,
			ProductName:      name,
			Status:           b.Status,
			QuantityProduced: b.QuantityProduced,
			TotalCost:        bd.TotalCost,
			CostPerUnit:      bd.CostPerUnit,
		})
	}

	content, err = uc.writer.Write(data)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: escribir XLSX: %w", err)
	}
	return content, fmt.Sprintf("reporte-%s.xlsx", time.Now().Format("20060102")), nil
}

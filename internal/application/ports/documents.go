package ports

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// CostSheetData datos de la hoja de costos de un lote.
type CostSheetData struct {
	Batch       *entity.ManufacturingBatch
	Product     *entity.Product
	Breakdown   manufacturing.Breakdown
	Costs       []*entity.ManufacturingCost
	GeneratedBy string
}

// CostSheetPDFGenerator renderiza la hoja de costos de un lote a PDF.
type CostSheetPDFGenerator interface {
	Generate(data CostSheetData) ([]byte, error)
}

// BatchReportRow fila de la hoja Lotes del reporte.
type BatchReportRow struct {
	BatchNumber      string
	ProductName      string
	Status           string
	QuantityProduced decimal.Decimal
	TotalCost        decimal.Decimal
	CostPerUnit      decimal.Decimal
}

// ReportData contenido del libro de reporte.
type ReportData struct {
	Inventory []repository.InventoryRow
	Batches   []BatchReportRow
}

// ReportWriter genera el libro XLSX de inventario y lotes.
type ReportWriter interface {
	Write(data ReportData) ([]byte, error)
}

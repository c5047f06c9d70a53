// Package xlsx genera el libro de reporte de inventario y lotes con excelize.
package xlsx

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
)

// Nombres de hoja.
const (
	SheetInventory = "Inventario"
	SheetBatches   = "Lotes"
)

var (
	inventoryHeaders = []string{"SKU", "Producto", "Ubicación", "Cantidad"}
	batchHeaders     = []string{"Lote", "Producto", "Estado", "Cantidad", "Costo total", "Costo unitario"}
)

// ReportWriter implementa ports.ReportWriter.
type ReportWriter struct{}

var _ ports.ReportWriter = (*ReportWriter)(nil)

// NewReportWriter construye el writer.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// Write arma el libro con las hojas Inventario y Lotes y devuelve sus bytes.
func (w *ReportWriter) Write(data ports.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetInventory); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetBatches); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeHeaders(f, SheetInventory, inventoryHeaders, headerStyle); err != nil {
		return nil, err
	}
	for i, r := range data.Inventory {
		row := i + 2
		values := []any{r.SKU, r.ProductName, r.Location, toFloat(r.Quantity)}
		if err := writeRow(f, SheetInventory, row, values); err != nil {
			return nil, err
		}
	}

	if err := writeHeaders(f, SheetBatches, batchHeaders, headerStyle); err != nil {
		return nil, err
	}
	for i, b := range data.Batches {
		row := i + 2
		values := []any{b.BatchNumber, b.ProductName, b.Status, toFloat(b.QuantityProduced), toFloat(b.TotalCost), toFloat(b.CostPerUnit)}
		if err := writeRow(f, SheetBatches, row, values); err != nil {
			return nil, err
		}
	}

	widths := map[string][]float64{
		SheetInventory: {16, 32, 16, 12},
		SheetBatches:   {22, 32, 14, 12, 16, 16},
	}
	for sheet, ws := range widths {
		for i, width := range ws {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, col, col, width); err != nil {
				return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("xlsx: estilo cabecera %s: %w", sheet, err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d de %s: %w", row, sheet, err)
	}
	return nil
}

// toFloat las celdas numéricas se guardan como número para que Excel pueda sumarlas.
func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

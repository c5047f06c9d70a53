package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/xlsx"
)

func TestReportWriter_Write(t *testing.T) {
	data := ports.ReportData{
		Inventory: []repository.InventoryRow{
			{SKU: "CAM-1", ProductName: "Camisa", Location: "wholesale", Quantity: decimal.NewFromInt(12)},
		},
		Batches: []ports.BatchReportRow{
			{BatchNumber: "BATCH-20260307-0001", ProductName: "Camisa", Status: "completed",
				QuantityProduced: decimal.NewFromInt(20), TotalCost: decimal.NewFromInt(100), CostPerUnit: decimal.NewFromInt(5)},
		},
	}

	out, err := xlsx.NewReportWriter().Write(data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetInventory, xlsx.SheetBatches}, f.GetSheetList())

	sku, err := f.GetCellValue(xlsx.SheetInventory, "A2")
	require.NoError(t, err)
	assert.Equal(t, "CAM-1", sku)
	qty, err := f.GetCellValue(xlsx.SheetInventory, "D2")
	require.NoError(t, err)
	assert.Equal(t, "12", qty)

	header, err := f.GetCellValue(xlsx.SheetBatches, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Costo total", header)
	unit, err := f.GetCellValue(xlsx.SheetBatches, "F2")
	require.NoError(t, err)
	assert.Equal(t, "5", unit)
}

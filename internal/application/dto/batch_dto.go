package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
)

// BatchMaterialRequest línea de materia prima al crear un lote.
type BatchMaterialRequest struct {
	MaterialID string          `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	ProductID              string                 `json:"product_id" validate:"required"`
	Quantity               decimal.Decimal        `json:"quantity" validate:"gt=0"`
	StartDate              *time.Time             `json:"start_date"`
	ExpectedCompletionDate *time.Time             `json:"expected_completion_date"`
	Notes                  string                 `json:"notes"`
	Materials              []BatchMaterialRequest `json:"materials" validate:"dive"`
}

// AdvanceBatchRequest body para PATCH /api/batches/:id/status.
type AdvanceBatchRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID                     string          `json:"id"`
	BatchNumber            string          `json:"batch_number"`
	ProductID              string          `json:"product_id"`
	QuantityProduced       decimal.Decimal `json:"quantity_produced"`
	Status                 string          `json:"status"`
	StartDate              time.Time       `json:"start_date"`
	ExpectedCompletionDate *time.Time      `json:"expected_completion_date,omitempty"`
	CompletionDate         *time.Time      `json:"completion_date,omitempty"`
	Notes                  string          `json:"notes,omitempty"`
	CreatedBy              string          `json:"created_by"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// NewBatchResponse mapea la entidad.
func NewBatchResponse(b *entity.ManufacturingBatch) BatchResponse {
	return BatchResponse{
		ID: b.ID, BatchNumber: b.BatchNumber, ProductID: b.ProductID, QuantityProduced: b.QuantityProduced,
		Status: b.Status, StartDate: b.StartDate, ExpectedCompletionDate: b.ExpectedCompletionDate,
		CompletionDate: b.CompletionDate, Notes: b.Notes, CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

// BatchMaterialResponse consumo planificado de un material.
type BatchMaterialResponse struct {
	MaterialID       string          `json:"material_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

// StatusEntryResponse entrada del historial de estados.
type StatusEntryResponse struct {
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	Message       string    `json:"message,omitempty"`
	ChangedBy     string    `json:"changed_by"`
	ChangedByName string    `json:"changed_by_name,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}

// NewStatusEntryResponse mapea la entidad.
func NewStatusEntryResponse(e *entity.BatchStatusEntry) StatusEntryResponse {
	return StatusEntryResponse{
		FromStatus: e.FromStatus, ToStatus: e.ToStatus, Message: e.Message,
		ChangedBy: e.ChangedBy, ChangedByName: e.ChangedByName, ChangedAt: e.ChangedAt,
	}
}

// BatchDetailResponse lote con materiales e historial.
type BatchDetailResponse struct {
	BatchResponse
	Materials []BatchMaterialResponse `json:"materials"`
	History   []StatusEntryResponse   `json:"history"`
}

// AddCostRequest body para POST /api/batches/:id/costs.
type AddCostRequest struct {
	CostType    string          `json:"cost_type" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
}

// CostResponse costo registrado.
type CostResponse struct {
	ID           string          `json:"id"`
	BatchID      string          `json:"batch_id"`
	CostType     string          `json:"cost_type"`
	Amount       decimal.Decimal `json:"amount"`
	RecordedDate time.Time       `json:"recorded_date"`
	Description  string          `json:"description,omitempty"`
	RecordedBy   string          `json:"recorded_by"`
}

// NewCostResponse mapea la entidad.
func NewCostResponse(c *entity.ManufacturingCost) CostResponse {
	return CostResponse{
		ID: c.ID, BatchID: c.BatchID, CostType: c.CostType, Amount: c.Amount,
		RecordedDate: c.RecordedDate, Description: c.Description, RecordedBy: c.RecordedBy,
	}
}

// MaterialCostDTO línea de costo de material.
type MaterialCostDTO struct {
	MaterialID       string          `json:"material_id"`
	MaterialName     string          `json:"material_name"`
	Unit             string          `json:"unit"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
	Cost             decimal.Decimal `json:"cost"`
}

// PercentagesDTO reparto porcentual; suma 100 cuando hay costo.
type PercentagesDTO struct {
	Materials decimal.Decimal `json:"materials"`
	Labor     decimal.Decimal `json:"labor"`
	Other     decimal.Decimal `json:"other"`
}

// CostBreakdownResponse desglose de costo de un lote.
type CostBreakdownResponse struct {
	BatchID          string                     `json:"batch_id"`
	BatchNumber      string                     `json:"batch_number"`
	QuantityProduced decimal.Decimal            `json:"quantity_produced"`
	Materials        []MaterialCostDTO          `json:"materials"`
	MaterialCost     decimal.Decimal            `json:"material_cost"`
	Categories       map[string]decimal.Decimal `json:"categories"`
	TotalCost        decimal.Decimal            `json:"total_cost"`
	CostPerUnit      decimal.Decimal            `json:"cost_per_unit"`
	Percentages      PercentagesDTO             `json:"percentages"`
}

// NewCostBreakdownResponse mapea el desglose calculado.
func NewCostBreakdownResponse(b *entity.ManufacturingBatch, bd manufacturing.Breakdown) CostBreakdownResponse {
	mats := make([]MaterialCostDTO, 0, len(bd.Materials))
	for _, m := range bd.Materials {
		mats = append(mats, MaterialCostDTO{
			MaterialID: m.MaterialID, MaterialName: m.MaterialName, Unit: m.Unit,
			QuantityRequired: m.QuantityRequired, AverageUnitPrice: m.AverageUnitPrice, Cost: m.Cost,
		})
	}
	return CostBreakdownResponse{
		BatchID:          b.ID,
		BatchNumber:      b.BatchNumber,
		QuantityProduced: b.QuantityProduced,
		Materials:        mats,
		MaterialCost:     bd.MaterialCost,
		Categories:       bd.Categories,
		TotalCost:        bd.TotalCost,
		CostPerUnit:      bd.CostPerUnit,
		Percentages: PercentagesDTO{
			Materials: bd.Percentages.Materials,
			Labor:     bd.Percentages.Labor,
			Other:     bd.Percentages.Other,
		},
	}
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del lote, en orden de producción.
const (
	BatchStatusPending   = "pending"
	BatchStatusCutting   = "cutting"
	BatchStatusStitching = "stitching"
	BatchStatusIroning   = "ironing"
	BatchStatusPackaging = "packaging"
	BatchStatusCompleted = "completed"
)

// ManufacturingBatch una corrida de producción de un producto.
type ManufacturingBatch struct {
	ID                     string
	BatchNumber            string
	ProductID              string
	QuantityProduced       decimal.Decimal
	Status                 string
	StartDate              time.Time
	ExpectedCompletionDate *time.Time
	CompletionDate         *time.Time // solo al entrar en completed
	Notes                  string     // nota de creación; los cambios de estado van a BatchStatusEntry
	CreatedBy              string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsCompleted indica si el lote está en su estado terminal.
func (b *ManufacturingBatch) IsCompleted() bool {
	return b.Status == BatchStatusCompleted
}

// BatchMaterial consumo planificado de materia prima, fotografiado al crear el lote.
type BatchMaterial struct {
	ID               string
	BatchID          string
	MaterialID       string
	QuantityRequired decimal.Decimal
}

// BatchStatusEntry registro ordenado y de solo-anexo de los cambios de estado de un lote.
type BatchStatusEntry struct {
	ID            string
	BatchID       string
	FromStatus    string
	ToStatus      string
	Message       string
	ChangedBy     string
	ChangedByName string
	ChangedAt     time.Time
}

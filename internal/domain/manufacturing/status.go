// Package manufacturing contiene las reglas puras del ciclo de vida de lotes y de su costeo.
package manufacturing

import (
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

var statusOrder = []string{
	entity.BatchStatusPending,
	entity.BatchStatusCutting,
	entity.BatchStatusStitching,
	entity.BatchStatusIroning,
	entity.BatchStatusPackaging,
	entity.BatchStatusCompleted,
}

// Statuses devuelve los estados en orden de producción.
func Statuses() []string {
	out := make([]string, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// StatusIndex posición del estado en la secuencia, -1 si no existe.
func StatusIndex(status string) int {
	for i, s := range statusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// IsValidStatus indica si status pertenece a la secuencia.
func IsValidStatus(status string) bool {
	return StatusIndex(status) >= 0
}

// ValidateTransition verifica que un lote pueda pasar de from a to.
// Avanzar es libre (se puede saltar etapas); retroceder solo una etapa; completed es terminal.
func ValidateTransition(from, to string) error {
	toIdx := StatusIndex(to)
	if toIdx < 0 {
		return domain.ErrInvalidStatus
	}
	if from == entity.BatchStatusCompleted {
		return domain.ErrBatchAlreadyCompleted
	}
	if from == to {
		return domain.ErrIdenticalStatus
	}
	if toIdx < StatusIndex(from)-1 {
		return domain.ErrInvalidTransition
	}
	return nil
}

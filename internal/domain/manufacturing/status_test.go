package manufacturing_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
)

func TestStatuses_OrdenDeProduccion(t *testing.T) {
	assert.Equal(t, []string{"pending", "cutting", "stitching", "ironing", "packaging", "completed"}, manufacturing.Statuses())
	assert.Equal(t, -1, manufacturing.StatusIndex("painting"))
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, manufacturing.ValidateTransition(entity.BatchStatusPending, entity.BatchStatusCutting))
	// avanzar saltando etapas es válido
	assert.NoError(t, manufacturing.ValidateTransition(entity.BatchStatusPending, entity.BatchStatusCompleted))
	// retroceder una etapa es válido
	assert.NoError(t, manufacturing.ValidateTransition(entity.BatchStatusIroning, entity.BatchStatusStitching))

	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusIroning, entity.BatchStatusPending), domain.ErrInvalidTransition)
	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusCutting, entity.BatchStatusCutting), domain.ErrIdenticalStatus)
	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusCompleted, entity.BatchStatusPackaging), domain.ErrBatchAlreadyCompleted)
	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusCompleted, entity.BatchStatusCompleted), domain.ErrBatchAlreadyCompleted)
	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusPending, "painting"), domain.ErrInvalidStatus)

	// las clases de error se preservan
	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusCompleted, entity.BatchStatusCutting), domain.ErrConflict)
	assert.ErrorIs(t, manufacturing.ValidateTransition(entity.BatchStatusPending, "x"), domain.ErrInvalidInput)
}

func TestBatchNumber_Formato(t *testing.T) {
	now := time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "BATCH-20260307-0042", manufacturing.FormatBatchNumber(now, 42))

	re := regexp.MustCompile(`^BATCH-20260307-[1-9][0-9]{3}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, manufacturing.NewBatchNumber(now))
	}
}

// Package activity registra y consulta el log de actividad de los usuarios.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
	"github.com/jhoicas/Manufactura-api/pkg/logger"
)

// Acciones y módulos registrados.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionStatusChange = "status_change"
	ActionTransfer     = "transfer"
	ActionConfirm      = "confirm"
	ActionAdjust       = "adjust"
	ActionSale         = "sale"
	ActionPurchase     = "purchase"

	ModuleBatches   = "batches"
	ModuleCosts     = "costs"
	ModuleInventory = "inventory"
	ModuleTransfers = "transfers"
	ModuleSales     = "sales"
	ModulePurchases = "purchases"
	ModuleCatalog   = "catalog"
	ModuleUsers     = "users"
)

// Entry datos de una entrada del log.
type Entry struct {
	UserID      string
	Action      string
	Module      string
	Description string
	EntityID    string
}

// Logger escribe el log de actividad. Los fallos se registran en warn y nunca se propagan.
type Logger struct {
	log *logger.Logger
}

// NewLogger construye el logger de actividad.
func NewLogger(log *logger.Logger) *Logger {
	if log == nil {
		log = logger.Nop()
	}
	return &Logger{log: log}
}

// Log persiste la entrada con el repo recibido (normalmente el de la tx en curso).
func (l *Logger) Log(ctx context.Context, repo repository.ActivityLogRepository, e Entry) {
	if l == nil || repo == nil {
		return
	}
	entry := &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      e.UserID,
		ActionType:  e.Action,
		Module:      e.Module,
		Description: e.Description,
		EntityID:    e.EntityID,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, entry); err != nil {
		l.log.Warn().Err(err).
			Str("module", e.Module).
			Str("action", e.Action).
			Str("entity_id", e.EntityID).
			Msg("no se pudo registrar la actividad")
	}
}

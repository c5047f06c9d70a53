package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// ActivityLogRepository define el puerto del registro de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *entity.ActivityLog) error
	List(ctx context.Context, module string, limit, offset int) ([]*entity.ActivityLog, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo registro de actividad sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador del registro de actividad.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create escribe la entrada dentro de un savepoint (Begin sobre una tx de pgx).
// Si el insert falla solo se deshace el savepoint y la transacción externa sigue utilizable.
func (r *ActivityLogRepo) Create(ctx context.Context, e *entity.ActivityLog) error {
	sp, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin activity savepoint: %w", err)
	}
	defer func() { _ = sp.Rollback(ctx) }()

	_, err = sp.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, action_type, module, description, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, nullIfEmpty(e.UserID), e.ActionType, e.Module, e.Description, e.EntityID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release activity savepoint: %w", err)
	}
	return nil
}

// List entradas más recientes primero; filtra por módulo si no es vacío.
func (r *ActivityLogRepo) List(ctx context.Context, module string, limit, offset int) ([]*entity.ActivityLog, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, action_type, module, description, entity_id, created_at
		FROM activity_logs
		WHERE ($1 = '' OR module = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, module, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ActivityLog, 0)
	for rows.Next() {
		var a entity.ActivityLog
		var userID *string
		if err := rows.Scan(&a.ID, &userID, &a.ActionType, &a.Module, &a.Description, &a.EntityID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		a.UserID = deref(userID)
		list = append(list, &a)
	}
	return list, rows.Err()
}

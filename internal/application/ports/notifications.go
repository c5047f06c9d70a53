package ports

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// NotificationStore almacena avisos por rol (Redis en producción).
type NotificationStore interface {
	// Publish asigna ID y fecha a n y lo guarda.
	Publish(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, audience string, unreadOnly bool) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// ErrNotificationsDown error simulado del almacén de notificaciones.
var ErrNotificationsDown = errors.New("notificaciones no disponibles")

// Notifications almacén de notificaciones en memoria.
type Notifications struct {
	mu    sync.Mutex
	items map[string]entity.Notification
	Fail  bool
}

var _ ports.NotificationStore = (*Notifications)(nil)

// NewNotifications crea el almacén vacío.
func NewNotifications() *Notifications {
	return &Notifications{items: map[string]entity.Notification{}}
}

func (n *Notifications) Publish(_ context.Context, notif *entity.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return ErrNotificationsDown
	}
	notif.ID = uuid.New().String()
	notif.CreatedAt = time.Now()
	n.items[notif.ID] = *notif
	return nil
}

func (n *Notifications) List(_ context.Context, audience string, unreadOnly bool) ([]*entity.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return nil, ErrNotificationsDown
	}
	out := make([]*entity.Notification, 0)
	for _, x := range n.items {
		if x.Audience != audience || (unreadOnly && x.Read) {
			continue
		}
		x := x
		out = append(out, &x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (n *Notifications) MarkRead(_ context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return ErrNotificationsDown
	}
	x, ok := n.items[id]
	if !ok {
		return nil
	}
	x.Read = true
	n.items[id] = x
	return nil
}

// Get devuelve la notificación o nil.
func (n *Notifications) Get(id string) *entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if x, ok := n.items[id]; ok {
		return &x
	}
	return nil
}

// Package redis guarda las notificaciones de traslados en Redis.
//
// Claves:
//
//	notification:{id}             JSON de la notificación (TTL)
//	notifications:{audience}      sorted set de IDs por fecha de creación
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

const (
	notificationPrefix = "notification:"
	audiencePrefix     = "notifications:"
	// DefaultTTL vida de una notificación.
	DefaultTTL = 30 * 24 * time.Hour
	// maxListed máximo de avisos devueltos por List.
	maxListed = 100
)

// NewClient crea el cliente a partir de REDIS_URL y valida la conexión.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

type notificationRecord struct {
	ID         string    `json:"id"`
	Audience   string    `json:"audience"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	TransferID string    `json:"transfer_id,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func toRecord(n *entity.Notification) notificationRecord {
	return notificationRecord{
		ID: n.ID, Audience: n.Audience, Title: n.Title, Message: n.Message,
		TransferID: n.TransferID, Read: n.Read, CreatedAt: n.CreatedAt,
	}
}

func (r notificationRecord) toEntity() *entity.Notification {
	return &entity.Notification{
		ID: r.ID, Audience: r.Audience, Title: r.Title, Message: r.Message,
		TransferID: r.TransferID, Read: r.Read, CreatedAt: r.CreatedAt,
	}
}

// NotificationStore implementa ports.NotificationStore.
type NotificationStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

var _ ports.NotificationStore = (*NotificationStore)(nil)

// NewNotificationStore construye el store. ttl <= 0 usa DefaultTTL.
func NewNotificationStore(rdb *goredis.Client, ttl time.Duration) *NotificationStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &NotificationStore{rdb: rdb, ttl: ttl}
}

// Publish guarda la notificación y la indexa por audiencia en un pipeline transaccional.
func (s *NotificationStore) Publish(ctx context.Context, n *entity.Notification) error {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(toRecord(n))
	if err != nil {
		return fmt.Errorf("redis: serializar notificación: %w", err)
	}
	indexKey := audiencePrefix + n.Audience
	_, err = s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, notificationPrefix+n.ID, payload, s.ttl)
		p.ZAdd(ctx, indexKey, goredis.Z{Score: float64(n.CreatedAt.UnixNano()), Member: n.ID})
		p.Expire(ctx, indexKey, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: publicar notificación: %w", err)
	}
	return nil
}

// List avisos de la audiencia, más recientes primero. Los IDs vencidos se limpian del índice.
func (s *NotificationStore) List(ctx context.Context, audience string, unreadOnly bool) ([]*entity.Notification, error) {
	indexKey := audiencePrefix + audience
	ids, err := s.rdb.ZRevRange(ctx, indexKey, 0, maxListed-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: listar notificaciones: %w", err)
	}
	out := make([]*entity.Notification, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = notificationPrefix + id
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: leer notificaciones: %w", err)
	}
	var expired []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var rec notificationRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("redis: notificación %s corrupta: %w", ids[i], err)
		}
		if unreadOnly && rec.Read {
			continue
		}
		out = append(out, rec.toEntity())
	}
	if len(expired) > 0 {
		s.rdb.ZRem(ctx, indexKey, expired...)
	}
	return out, nil
}

// MarkRead marca el aviso como leído conservando su TTL. Un ID inexistente no es error.
func (s *NotificationStore) MarkRead(ctx context.Context, id string) error {
	key := notificationPrefix + id
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis: leer notificación: %w", err)
	}
	var rec notificationRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return fmt.Errorf("redis: notificación %s corrupta: %w", id, err)
	}
	if rec.Read {
		return nil
	}
	rec.Read = true
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: serializar notificación: %w", err)
	}
	if err := s.rdb.SetArgs(ctx, key, payload, goredis.SetArgs{KeepTTL: true, Mode: "XX"}).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis: marcar notificación: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados entre ubicaciones sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, product_id, from_location, to_location, quantity, status, transfer_date,
	notes, created_by, confirmed_by, confirmation_date, notification_id`

func scanTransfer(row pgx.Row) (*entity.InventoryTransfer, error) {
	var t entity.InventoryTransfer
	var createdBy, confirmedBy, notificationID *string
	err := row.Scan(&t.ID, &t.ProductID, &t.FromLocation, &t.ToLocation, &t.Quantity, &t.Status, &t.TransferDate,
		&t.Notes, &createdBy, &confirmedBy, &t.ConfirmationDate, &notificationID)
	if err != nil {
		return nil, err
	}
	t.CreatedBy = deref(createdBy)
	t.ConfirmedBy = deref(confirmedBy)
	t.NotificationID = deref(notificationID)
	return &t, nil
}

// Create persiste un traslado.
func (r *TransferRepo) Create(ctx context.Context, t *entity.InventoryTransfer) error {
	query := `
		INSERT INTO inventory_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.FromLocation, t.ToLocation, t.Quantity, t.Status, t.TransferDate,
		t.Notes, nullIfEmpty(t.CreatedBy), nullIfEmpty(t.ConfirmedBy), t.ConfirmationDate, nullIfEmpty(t.NotificationID),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado; (nil, nil) si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM inventory_transfers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// GetPendingForUpdate bloquea el traslado si sigue pending. Dos confirmaciones concurrentes
// se serializan aquí: la segunda ve el estado ya cambiado y recibe (nil, nil).
func (r *TransferRepo) GetPendingForUpdate(ctx context.Context, id string) (*entity.InventoryTransfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `
		SELECT `+transferColumns+` FROM inventory_transfers
		WHERE id = $1 AND status = 'pending'
		FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending transfer for update: %w", err)
	}
	return t, nil
}

// Update persiste estado, confirmación y notificación.
func (r *TransferRepo) Update(ctx context.Context, t *entity.InventoryTransfer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_transfers
		SET status = $2, confirmed_by = $3, confirmation_date = $4, notification_id = $5, notes = $6
		WHERE id = $1`,
		t.ID, t.Status, nullIfEmpty(t.ConfirmedBy), t.ConfirmationDate, nullIfEmpty(t.NotificationID), t.Notes)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFoundOrProcessed
	}
	return nil
}

// List traslados más recientes primero; filtra por estado si status no es vacío.
func (r *TransferRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryTransfer, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+transferColumns+` FROM inventory_transfers
		WHERE ($1 = '' OR status = $1)
		ORDER BY transfer_date DESC
		LIMIT $2 OFFSET $3`, status, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryTransfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

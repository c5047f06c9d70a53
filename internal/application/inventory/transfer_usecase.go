package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
	"github.com/jhoicas/Manufactura-api/pkg/logger"
)

// TransferUseCase coordina traslados entre ubicaciones: directos (completed) y
// confirmables (pending hacia transit, luego confirmados por un vendedor).
type TransferUseCase struct {
	txRunner      ports.TxRunner
	transferRepo  repository.TransferRepository
	productRepo   repository.ProductRepository
	notifications ports.NotificationStore // nil = notificaciones deshabilitadas
	activity      *activity.Logger
	log           *logger.Logger
}

// NewTransferUseCase construye el coordinador de traslados.
func NewTransferUseCase(
	txRunner ports.TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	notifications ports.NotificationStore,
	act *activity.Logger,
	log *logger.Logger,
) *TransferUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		notifications: notifications,
		activity:      act,
		log:           log,
	}
}

// TransferInput entrada de un traslado directo.
type TransferInput struct {
	ProductID string
	From      string
	To        string
	Quantity  decimal.Decimal
	Notes     string
	UserID    string
}

// Transfer mueve stock de From a To en una sola tx e inserta un traslado completed.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.InventoryTransfer, error) {
	if in.From == in.To {
		return nil, domain.ErrSameLocation
	}
	if !entity.IsValidLocation(in.From) || !entity.IsValidLocation(in.To) {
		return nil, domain.ErrInvalidLocation
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if err := uc.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	var t *entity.InventoryTransfer
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		ledger := NewLedger(r.Inventory)
		if err := moveOut(ctx, r.Inventory, ledger, in.ProductID, in.From, in.Quantity); err != nil {
			return err
		}
		if _, _, err := ledger.Increment(ctx, in.ProductID, in.To, in.Quantity, ""); err != nil {
			return err
		}
		t = &entity.InventoryTransfer{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			FromLocation: in.From,
			ToLocation:   in.To,
			Quantity:     in.Quantity,
			Status:       entity.TransferStatusCompleted,
			TransferDate: time.Now(),
			Notes:        in.Notes,
			CreatedBy:    in.UserID,
		}
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionTransfer,
			Module:      activity.ModuleTransfers,
			Description: fmt.Sprintf("Traslado de %s unidades de %s a %s", in.Quantity, in.From, in.To),
			EntityID:    t.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// PendingInput entrada de la primera fase de un traslado confirmable.
type PendingInput struct {
	ProductID string
	From      string // vacío = manufacturing
	Quantity  decimal.Decimal
	Notes     string
	UserID    string
}

// CreatePending pasa el stock de From a transit, registra un traslado pending y
// avisa a los vendedores. Un fallo al notificar no revierte el traslado.
func (uc *TransferUseCase) CreatePending(ctx context.Context, in PendingInput) (*entity.InventoryTransfer, error) {
	if in.From == "" {
		in.From = entity.LocationManufacturing
	}
	if in.From == entity.LocationTransit {
		return nil, domain.ErrSameLocation
	}
	if !entity.IsValidLocation(in.From) {
		return nil, domain.ErrInvalidLocation
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if err := uc.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	var t *entity.InventoryTransfer
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		ledger := NewLedger(r.Inventory)
		if err := moveOut(ctx, r.Inventory, ledger, in.ProductID, in.From, in.Quantity); err != nil {
			return err
		}
		if _, _, err := ledger.Increment(ctx, in.ProductID, entity.LocationTransit, in.Quantity, ""); err != nil {
			return err
		}
		t = &entity.InventoryTransfer{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			FromLocation: in.From,
			ToLocation:   entity.LocationTransit,
			Quantity:     in.Quantity,
			Status:       entity.TransferStatusPending,
			TransferDate: time.Now(),
			Notes:        in.Notes,
			CreatedBy:    in.UserID,
		}
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionTransfer,
			Module:      activity.ModuleTransfers,
			Description: fmt.Sprintf("Traslado pendiente de %s unidades desde %s", in.Quantity, in.From),
			EntityID:    t.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyPending(ctx, t)
	return t, nil
}

func (uc *TransferUseCase) notifyPending(ctx context.Context, t *entity.InventoryTransfer) {
	if uc.notifications == nil {
		return
	}
	n := &entity.Notification{
		Audience:   entity.RoleShopkeeper,
		Title:      "Traslado pendiente de confirmación",
		Message:    fmt.Sprintf("Llegan %s unidades a tránsito; confirme la recepción en mayorista.", t.Quantity),
		TransferID: t.ID,
	}
	if err := uc.notifications.Publish(ctx, n); err != nil {
		uc.log.Warn().Err(err).Str("transfer_id", t.ID).Msg("no se pudo publicar la notificación del traslado")
		return
	}
	t.NotificationID = n.ID
	if err := uc.transferRepo.Update(ctx, t); err != nil {
		uc.log.Warn().Err(err).Str("transfer_id", t.ID).Msg("no se pudo enlazar la notificación al traslado")
	}
}

// ConfirmInput entrada de la confirmación de recepción.
type ConfirmInput struct {
	TransferID     string
	NotificationID string // opcional; por defecto la enlazada al traslado
	UserID         string
}

// ConfirmReceipt convierte el stock en transit en stock wholesale atribuido al vendedor y marca
// el traslado confirmed. Falla con ErrTransferNotFoundOrProcessed si no hay un pending con ese ID.
func (uc *TransferUseCase) ConfirmReceipt(ctx context.Context, in ConfirmInput) (*entity.InventoryTransfer, error) {
	var t *entity.InventoryTransfer
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		t, err = r.Transfers.GetPendingForUpdate(ctx, in.TransferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTransferNotFoundOrProcessed
		}
		ledger := NewLedger(r.Inventory)
		transit, err := r.Inventory.GetForUpdate(ctx, t.ProductID, entity.LocationTransit)
		if err != nil {
			return err
		}
		// Se acredita lo que sale de transit. Sin fila en transit (datos inconsistentes) se
		// acredita la cantidad completa del traslado.
		credit := t.Quantity
		if transit != nil {
			credit = decimal.Min(transit.Quantity, t.Quantity)
			if credit.LessThan(t.Quantity) {
				uc.log.Warn().
					Str("transfer_id", t.ID).
					Str("transit", transit.Quantity.String()).
					Str("quantity", t.Quantity.String()).
					Msg("transit con menos stock que el traslado; se acredita solo lo disponible")
			}
			if credit.GreaterThan(decimal.Zero) {
				if _, err := ledger.Decrement(ctx, t.ProductID, entity.LocationTransit, credit); err != nil {
					return err
				}
			}
		}
		if _, _, err := ledger.Increment(ctx, t.ProductID, entity.LocationWholesale, credit, in.UserID); err != nil {
			return err
		}
		now := time.Now()
		t.Status = entity.TransferStatusConfirmed
		t.ConfirmedBy = in.UserID
		t.ConfirmationDate = &now
		if err := r.Transfers.Update(ctx, t); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionConfirm,
			Module:      activity.ModuleTransfers,
			Description: fmt.Sprintf("Recepción confirmada de %s unidades en mayorista", credit),
			EntityID:    t.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificationID := in.NotificationID
	if notificationID == "" {
		notificationID = t.NotificationID
	}
	if uc.notifications != nil && notificationID != "" {
		if err := uc.notifications.MarkRead(ctx, notificationID); err != nil {
			uc.log.Warn().Err(err).Str("notification_id", notificationID).Msg("no se pudo marcar la notificación como leída")
		}
	}
	return t, nil
}

// Get un traslado por ID.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*entity.InventoryTransfer, error) {
	t, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	return t, nil
}

// List traslados, filtrando por estado si no es vacío.
func (uc *TransferUseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.InventoryTransfer, error) {
	switch status {
	case "", entity.TransferStatusPending, entity.TransferStatusCompleted, entity.TransferStatusConfirmed:
	default:
		return nil, fmt.Errorf("%w: estado de traslado %q", domain.ErrInvalidInput, status)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.transferRepo.List(ctx, status, limit, offset)
}

// Notifications avisos del rol vendedor. Vacío si las notificaciones están deshabilitadas.
func (uc *TransferUseCase) Notifications(ctx context.Context, unreadOnly bool) ([]*entity.Notification, error) {
	if uc.notifications == nil {
		return []*entity.Notification{}, nil
	}
	return uc.notifications.List(ctx, entity.RoleShopkeeper, unreadOnly)
}

// MarkNotificationRead marca un aviso como leído.
func (uc *TransferUseCase) MarkNotificationRead(ctx context.Context, id string) error {
	if uc.notifications == nil {
		return nil
	}
	return uc.notifications.MarkRead(ctx, id)
}

func (uc *TransferUseCase) ensureProduct(ctx context.Context, productID string) error {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return nil
}

// moveOut descuenta qty de la ubicación origen distinguiendo fila inexistente de cantidad insuficiente.
func moveOut(ctx context.Context, repo repository.InventoryRepository, ledger *Ledger, productID, from string, qty decimal.Decimal) error {
	src, err := repo.GetForUpdate(ctx, productID, from)
	if err != nil {
		return err
	}
	if src == nil {
		return domain.ErrSourceNotFound
	}
	if src.Quantity.LessThan(qty) {
		return domain.ErrInsufficientQuantity
	}
	_, err = ledger.Decrement(ctx, productID, from, qty)
	return err
}

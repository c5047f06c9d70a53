package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/inventory"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// UseCase consultas del ledger y ajustes manuales auditados.
type UseCase struct {
	txRunner ports.TxRunner
	invRepo  repository.InventoryRepository
	adjRepo  repository.AdjustmentRepository
	activity *activity.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	invRepo repository.InventoryRepository,
	adjRepo repository.AdjustmentRepository,
	act *activity.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, invRepo: invRepo, adjRepo: adjRepo, activity: act}
}

// List registros del ledger, filtrando por producto y/o ubicación.
func (uc *UseCase) List(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	if filter.Location != "" && !entity.IsValidLocation(filter.Location) {
		return nil, domain.ErrInvalidLocation
	}
	return uc.invRepo.List(ctx, filter)
}

// Get un registro del ledger por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	rec, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrInventoryNotFound
	}
	return rec, nil
}

// Quantity cantidad de un producto en una ubicación; cero si no hay fila.
func (uc *UseCase) Quantity(ctx context.Context, productID, location string) (decimal.Decimal, error) {
	if strings.TrimSpace(productID) == "" {
		return decimal.Zero, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.IsValidLocation(location) {
		return decimal.Zero, domain.ErrInvalidLocation
	}
	rec, err := uc.invRepo.Get(ctx, productID, location)
	if err != nil {
		return decimal.Zero, err
	}
	if rec == nil {
		return decimal.Zero, nil
	}
	return rec.Quantity, nil
}

// Adjustments historial de ajustes de un registro.
func (uc *UseCase) Adjustments(ctx context.Context, inventoryID string) ([]*entity.InventoryAdjustment, error) {
	if _, err := uc.Get(ctx, inventoryID); err != nil {
		return nil, err
	}
	return uc.adjRepo.ListByInventory(ctx, inventoryID)
}

// AdjustInput entrada para un ajuste manual.
type AdjustInput struct {
	InventoryID string
	Type        string // add, remove, set
	Quantity    decimal.Decimal
	Reason      string
	Notes       string
	UserID      string
}

// Adjust corrige la cantidad de un registro con las primitivas del Ledger (add → Increment,
// remove → Decrement, set → Set) y escribe la fila de auditoría en la misma tx: o se aplican
// ambas o ninguna. NewQuantity de la auditoría es la cantidad final de la fila.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.InventoryAdjustment, error) {
	if err := inventory.ValidateAdjustment(in.Type, in.Quantity); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: el motivo del ajuste es obligatorio", domain.ErrInvalidInput)
	}

	var adj *entity.InventoryAdjustment
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// Bloquea la fila (SELECT FOR UPDATE) antes de leer la cantidad actual
		rec, err := r.Inventory.GetByIDForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrInventoryNotFound
		}
		previous := rec.Quantity
		ledger := NewLedger(r.Inventory)
		switch in.Type {
		case entity.AdjustmentAdd:
			rec, _, err = ledger.Increment(ctx, rec.ProductID, rec.Location, in.Quantity, "")
		case entity.AdjustmentRemove:
			rec, err = ledger.Decrement(ctx, rec.ProductID, rec.Location, in.Quantity)
		case entity.AdjustmentSet:
			rec, err = ledger.Set(ctx, rec.ProductID, rec.Location, in.Quantity)
		}
		if err != nil {
			return err
		}
		adj = &entity.InventoryAdjustment{
			ID:               uuid.New().String(),
			InventoryID:      rec.ID,
			PreviousQuantity: previous,
			NewQuantity:      rec.Quantity,
			AdjustmentType:   in.Type,
			Reason:           strings.TrimSpace(in.Reason),
			Notes:            in.Notes,
			AdjustedBy:       in.UserID,
			CreatedAt:        time.Now(),
		}
		if err := r.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionAdjust,
			Module:      activity.ModuleInventory,
			Description: fmt.Sprintf("Ajuste %s de %s (%s → %s): %s", in.Type, rec.Location, adj.PreviousQuantity, adj.NewQuantity, adj.Reason),
			EntityID:    rec.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

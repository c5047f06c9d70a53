package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// Ledger primitivas de mutación del inventario (producto+ubicación).
// Se construye con el repo de la tx en curso: Decrement lee con SELECT FOR UPDATE y
// Increment/Set escriben con un único INSERT ... ON CONFLICT.
type Ledger struct {
	repo repository.InventoryRepository
	now  func() time.Time
}

// NewLedger construye el ledger sobre repo.
func NewLedger(repo repository.InventoryRepository) *Ledger {
	return &Ledger{repo: repo, now: time.Now}
}

// Increment suma qty en (producto, ubicación). Crea la fila si no existe y lo informa en created.
// attributedTo, si no es vacío, queda como último receptor del stock.
func (l *Ledger) Increment(ctx context.Context, productID, location string, qty decimal.Decimal, attributedTo string) (rec *entity.InventoryRecord, created bool, err error) {
	if qty.LessThan(decimal.Zero) {
		return nil, false, domain.ErrInvalidAmount
	}
	return l.upsert(ctx, productID, location, qty, attributedTo, repository.UpsertAdd)
}

// Decrement resta qty en (producto, ubicación). Falla con ErrInsufficientStock si la fila
// no existe o la cantidad no alcanza; la cantidad nunca queda negativa.
func (l *Ledger) Decrement(ctx context.Context, productID, location string, qty decimal.Decimal) (*entity.InventoryRecord, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	rec, err := l.repo.GetForUpdate(ctx, productID, location)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Quantity.LessThan(qty) {
		return nil, domain.ErrInsufficientStock
	}
	rec.Quantity = rec.Quantity.Sub(qty)
	rec.UpdatedAt = l.now()
	if err := l.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Set fija la cantidad exacta (corrección administrativa). Crea la fila si no existe.
func (l *Ledger) Set(ctx context.Context, productID, location string, qty decimal.Decimal) (*entity.InventoryRecord, error) {
	if qty.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	rec, _, err := l.upsert(ctx, productID, location, qty, "", repository.UpsertReplace)
	return rec, err
}

func (l *Ledger) upsert(ctx context.Context, productID, location string, qty decimal.Decimal, attributedTo string, mode repository.UpsertMode) (*entity.InventoryRecord, bool, error) {
	if !entity.IsValidLocation(location) {
		return nil, false, domain.ErrInvalidLocation
	}
	now := l.now()
	rec := &entity.InventoryRecord{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Location:     location,
		Quantity:     qty,
		AttributedTo: attributedTo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := l.repo.Upsert(ctx, rec, mode)
	if err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

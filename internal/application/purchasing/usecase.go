// Package purchasing registra compras de materia prima.
package purchasing

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
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// UseCase compras de materia prima.
type UseCase struct {
	txRunner     ports.TxRunner
	purchaseRepo repository.PurchaseRepository
	activity     *activity.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, purchaseRepo repository.PurchaseRepository, act *activity.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, purchaseRepo: purchaseRepo, activity: act}
}

// RecordInput entrada para registrar una compra.
type RecordInput struct {
	MaterialID   string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Supplier     string
	PurchaseDate *time.Time // nil = ahora
	UserID       string
}

// RecordPurchase inserta la compra y suma la cantidad al stock de la materia prima en una tx.
func (uc *UseCase) RecordPurchase(ctx context.Context, in RecordInput) (*entity.Purchase, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	date := now
	if in.PurchaseDate != nil {
		date = *in.PurchaseDate
	}

	var purchase *entity.Purchase
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		mat, err := r.Materials.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if mat == nil {
			return domain.ErrMaterialNotFound
		}
		purchase = &entity.Purchase{
			ID:           uuid.New().String(),
			MaterialID:   mat.ID,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			TotalAmount:  in.Quantity.Mul(in.UnitPrice),
			Supplier:     strings.TrimSpace(in.Supplier),
			PurchaseDate: date,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
		}
		if err := r.Purchases.Create(ctx, purchase); err != nil {
			return err
		}
		if err := r.Materials.UpdateStock(ctx, mat.ID, mat.StockQuantity.Add(in.Quantity)); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionPurchase,
			Module:      activity.ModulePurchases,
			Description: fmt.Sprintf("Compra de %s %s de %s a %s", in.Quantity, mat.Unit, mat.Name, in.UnitPrice),
			EntityID:    purchase.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchases compras más recientes primero, opcionalmente de un solo material.
func (uc *UseCase) ListPurchases(ctx context.Context, materialID string, limit, offset int) ([]*entity.Purchase, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.purchaseRepo.List(ctx, materialID, limit, offset)
}

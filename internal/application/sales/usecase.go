// Package sales registra ventas de producto terminado desde wholesale.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// UseCase ventas.
type UseCase struct {
	txRunner    ports.TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	activity    *activity.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner ports.TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	act *activity.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		activity:    act,
		now:         time.Now,
	}
}

// ItemInput línea solicitada. UnitPrice cero toma el precio del producto.
type ItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateInput entrada para registrar una venta.
type CreateInput struct {
	CustomerName  string
	PaymentMethod string
	Items         []ItemInput
	UserID        string
}

// SaleNumber formato SALE-YYYYMMDD-<unix>-<6 primeros caracteres del ID de la venta>.
// El sufijo separa ventas registradas en el mismo segundo.
func SaleNumber(t time.Time, saleID string) string {
	suffix := strings.ReplaceAll(saleID, "-", "")
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("SALE-%s-%d-%s", t.Format("20060102"), t.Unix(), strings.ToUpper(suffix))
}

func isValidPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer, entity.PaymentCredit:
		return true
	}
	return false
}

// CreateSale descuenta cada línea de wholesale y guarda cabecera y detalle.
// Si alguna línea no tiene stock suficiente no se escribe nada.
func (uc *UseCase) CreateSale(ctx context.Context, in CreateInput) (*entity.Sale, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta requiere al menos un ítem", domain.ErrInvalidInput)
	}
	if !isValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: medio de pago %q no soportado", domain.ErrInvalidInput, in.PaymentMethod)
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	now := uc.now()
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:            saleID,
		SaleNumber:    SaleNumber(now, saleID),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		PaymentMethod: in.PaymentMethod,
		SaleDate:      now,
		CreatedBy:     in.UserID,
		TotalAmount:   decimal.Zero,
		Items:         make([]entity.SaleItem, 0, len(in.Items)),
	}
	for _, item := range in.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		price := item.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		subtotal := item.Quantity.Mul(price)
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
		sale.TotalAmount = sale.TotalAmount.Add(subtotal)
	}

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		ledger := inventory.NewLedger(r.Inventory)
		for _, item := range sale.Items {
			if _, err := ledger.Decrement(ctx, item.ProductID, entity.LocationWholesale, item.Quantity); err != nil {
				return err
			}
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionSale,
			Module:      activity.ModuleSales,
			Description: fmt.Sprintf("Venta %s por %s (%d ítems)", sale.SaleNumber, sale.TotalAmount, len(sale.Items)),
			EntityID:    sale.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale venta con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

// ListSales ventas más recientes primero (sin líneas).
func (uc *UseCase) ListSales(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.List(ctx, limit, offset)
}

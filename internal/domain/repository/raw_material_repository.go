package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para materias primas.
type RawMaterialRepository interface {
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error)
	Update(ctx context.Context, material *entity.RawMaterial) error
	UpdateStock(ctx context.Context, id string, quantity decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.RawMaterial, error)
	// ListBelowMinimum materias primas con stock_quantity < min_stock_level.
	ListBelowMinimum(ctx context.Context) ([]*entity.RawMaterial, error)
}

// PurchaseRepository define el puerto de persistencia para compras de materia prima.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	// List filtra por materia prima cuando materialID no es vacío. Más recientes primero.
	List(ctx context.Context, materialID string, limit, offset int) ([]*entity.Purchase, error)
	// RecentUnitPrices precios unitarios de las n compras más recientes del material.
	RecentUnitPrices(ctx context.Context, materialID string, n int) ([]decimal.Decimal, error)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU   string          `json:"sku" validate:"required,min=1,max=100"`
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar nombre y/o precio.
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewProductResponse mapea la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, SKU: p.SKU, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateMaterialRequest entrada para crear una materia prima.
type CreateMaterialRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Unit          string          `json:"unit" validate:"required,max=30"`
	StockQuantity decimal.Decimal `json:"stock_quantity" validate:"min=0"`
	MinStockLevel decimal.Decimal `json:"min_stock_level" validate:"min=0"`
}

// UpdateMaterialRequest entrada para actualizar una materia prima (el stock solo cambia por compras y lotes).
type UpdateMaterialRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit          *string          `json:"unit" validate:"omitempty,max=30"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// MaterialResponse salida de una materia prima.
type MaterialResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	BelowMinimum  bool            `json:"below_minimum"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewMaterialResponse mapea la entidad.
func NewMaterialResponse(m *entity.RawMaterial) MaterialResponse {
	return MaterialResponse{
		ID: m.ID, Name: m.Name, Unit: m.Unit,
		StockQuantity: m.StockQuantity, MinStockLevel: m.MinStockLevel,
		BelowMinimum: m.BelowMinimum(), UpdatedAt: m.UpdatedAt,
	}
}

// MaterialListResponse listado paginado de materias primas.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LowStockMaterialDTO materia prima bajo su nivel mínimo con sugerencia de compra.
type LowStockMaterialDTO struct {
	MaterialID         string          `json:"material_id"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStockLevel      decimal.Decimal `json:"min_stock_level"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // min * 1.5 - stock
	AverageUnitPrice   decimal.Decimal `json:"average_unit_price"`   // últimas 5 compras
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * AverageUnitPrice
	ShortfallPct       decimal.Decimal `json:"shortfall_pct"`
}

// RecordPurchaseRequest body para POST /api/purchases.
type RecordPurchaseRequest struct {
	MaterialID   string          `json:"material_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"min=0"`
	Supplier     string          `json:"supplier" validate:"max=200"`
	PurchaseDate *time.Time      `json:"purchase_date"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Supplier     string          `json:"supplier"`
	PurchaseDate time.Time       `json:"purchase_date"`
	CreatedBy    string          `json:"created_by"`
}

// NewPurchaseResponse mapea la entidad.
func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID: p.ID, MaterialID: p.MaterialID, Quantity: p.Quantity, UnitPrice: p.UnitPrice,
		TotalAmount: p.TotalAmount, Supplier: p.Supplier, PurchaseDate: p.PurchaseDate, CreatedBy: p.CreatedBy,
	}
}

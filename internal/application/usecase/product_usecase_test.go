package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/testutil"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestProductUseCase_CRUD(t *testing.T) {
	store := testutil.NewStore()
	r := store.Repos()
	uc := usecase.NewProductUseCase(r.Products, r.Activity, activity.NewLogger(nil))
	ctx := context.Background()

	p, err := uc.Create(ctx, "u-1", dto.CreateProductRequest{SKU: " CAM-1 ", Name: "Camisa", Price: d(20)})
	require.NoError(t, err)
	assert.Equal(t, "CAM-1", p.SKU)

	_, err = uc.Create(ctx, "u-1", dto.CreateProductRequest{SKU: "CAM-1", Name: "Otra", Price: d(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "u-1", dto.CreateProductRequest{SKU: "X", Name: "X", Price: d(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	price := d(25)
	name := "Camisa lino"
	up, err := uc.Update(ctx, "u-1", p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Camisa lino", up.Name)
	assert.True(t, d(25).Equal(up.Price))

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	list, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, dto.PageResponse{Limit: 10, Offset: 0}, list.Page)

	store.SeedInventory(p.ID, entity.LocationWholesale, d(0))
	err = uc.Delete(ctx, "u-1", p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	free, err := uc.Create(ctx, "u-1", dto.CreateProductRequest{SKU: "PAN-1", Name: "Pantalón", Price: d(30)})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, "u-1", free.ID))
	assert.Equal(t, 4, store.ActivityCount())
}

func TestRawMaterialUseCase(t *testing.T) {
	store := testutil.NewStore()
	r := store.Repos()
	uc := usecase.NewRawMaterialUseCase(r.Materials, r.Activity, activity.NewLogger(nil))
	ctx := context.Background()

	m, err := uc.Create(ctx, "u-1", dto.CreateMaterialRequest{Name: "Tela", Unit: "metro", StockQuantity: d(3), MinStockLevel: d(10)})
	require.NoError(t, err)
	assert.True(t, m.BelowMinimum)

	minLevel := d(2)
	up, err := uc.Update(ctx, "u-1", m.ID, dto.UpdateMaterialRequest{MinStockLevel: &minLevel})
	require.NoError(t, err)
	assert.False(t, up.BelowMinimum)
	assert.True(t, d(3).Equal(up.StockQuantity), "update no toca el stock")

	empty := " "
	_, err = uc.Update(ctx, "u-1", m.ID, dto.UpdateMaterialRequest{Unit: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	list, err := uc.List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, dto.PageResponse{Limit: 5, Offset: 2}, list.Page)

	list, err = uc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

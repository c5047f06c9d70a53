package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/sales"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/testutil"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUC(store *testutil.Store) *sales.UseCase {
	r := store.Repos()
	return sales.NewUseCase(store, r.Sales, r.Products, activity.NewLogger(nil))
}

func TestSaleNumber(t *testing.T) {
	ts := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "SALE-20260307-1772877600-3F2A9C", sales.SaleNumber(ts, "3f2a9c1e-8b7d-4c6a-9e5f-0a1b2c3d4e5f"))
	assert.NotEqual(t,
		sales.SaleNumber(ts, "3f2a9c1e-8b7d-4c6a-9e5f-0a1b2c3d4e5f"),
		sales.SaleNumber(ts.Add(800*time.Millisecond), "a41d07b2-1c3e-4f5a-8b6c-7d8e9f0a1b2c"))
}

func TestCreateSale_FalloAlGuardarRevierteDescuentos(t *testing.T) {
	store := testutil.NewStore()
	camisa := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(camisa.ID, entity.LocationWholesale, d(10))
	store.FailOn(testutil.OpSaleCreate, nil)

	_, err := newUC(store).CreateSale(context.Background(), sales.CreateInput{
		PaymentMethod: entity.PaymentCard,
		Items:         []sales.ItemInput{{ProductID: camisa.ID, Quantity: d(3)}},
	})
	assert.ErrorIs(t, err, testutil.ErrWriteFailed)
	assert.True(t, d(10).Equal(store.Quantity(camisa.ID, entity.LocationWholesale)))
	assert.Equal(t, 0, store.SaleCount())
}

func TestCreateSale_DosVentasEnElMismoSegundo(t *testing.T) {
	store := testutil.NewStore()
	camisa := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(camisa.ID, entity.LocationWholesale, d(10))
	uc := newUC(store)
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	uc.SetClock(func() time.Time { return fixed })

	in := sales.CreateInput{
		PaymentMethod: entity.PaymentCash,
		Items:         []sales.ItemInput{{ProductID: camisa.ID, Quantity: d(1)}},
		UserID:        "u-1",
	}
	first, err := uc.CreateSale(context.Background(), in)
	require.NoError(t, err)
	second, err := uc.CreateSale(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, first.SaleNumber, second.SaleNumber)
	assert.Equal(t, 2, store.SaleCount())
	assert.True(t, d(8).Equal(store.Quantity(camisa.ID, entity.LocationWholesale)))
}

func TestCreateSale_DescuentaWholesale(t *testing.T) {
	store := testutil.NewStore()
	camisa := store.SeedProduct("Camisa", "CAM-1", d(20))
	pantalon := store.SeedProduct("Pantalón", "PAN-1", d(35))
	store.SeedInventory(camisa.ID, entity.LocationWholesale, d(10))
	store.SeedInventory(pantalon.ID, entity.LocationWholesale, d(4))
	store.SeedInventory(camisa.ID, entity.LocationManufacturing, d(50))
	uc := newUC(store)

	sale, err := uc.CreateSale(context.Background(), sales.CreateInput{
		CustomerName:  "Almacén Centro",
		PaymentMethod: entity.PaymentCash,
		Items: []sales.ItemInput{
			{ProductID: camisa.ID, Quantity: d(3)},
			{ProductID: pantalon.ID, Quantity: d(2), UnitPrice: d(30)},
		},
		UserID: "u-1",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^SALE-\d{8}-\d+-[0-9A-F]{6}$`, sale.SaleNumber)
	require.Len(t, sale.Items, 2)
	assert.True(t, d(20).Equal(sale.Items[0].UnitPrice), "precio 0 toma el del producto")
	assert.True(t, d(120).Equal(sale.TotalAmount))

	assert.True(t, d(7).Equal(store.Quantity(camisa.ID, entity.LocationWholesale)))
	assert.True(t, d(2).Equal(store.Quantity(pantalon.ID, entity.LocationWholesale)))
	assert.True(t, d(50).Equal(store.Quantity(camisa.ID, entity.LocationManufacturing)))

	got, err := uc.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestCreateSale_TodoONada(t *testing.T) {
	store := testutil.NewStore()
	camisa := store.SeedProduct("Camisa", "CAM-1", d(20))
	pantalon := store.SeedProduct("Pantalón", "PAN-1", d(35))
	store.SeedInventory(camisa.ID, entity.LocationWholesale, d(10))
	store.SeedInventory(pantalon.ID, entity.LocationWholesale, d(1))
	uc := newUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateInput{
		PaymentMethod: entity.PaymentCard,
		Items: []sales.ItemInput{
			{ProductID: camisa.ID, Quantity: d(3)},
			{ProductID: pantalon.ID, Quantity: d(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, d(10).Equal(store.Quantity(camisa.ID, entity.LocationWholesale)))
	assert.Equal(t, 0, store.SaleCount())
}

func TestCreateSale_Validaciones(t *testing.T) {
	store := testutil.NewStore()
	camisa := store.SeedProduct("Camisa", "CAM-1", d(20))
	uc := newUC(store)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, sales.CreateInput{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(ctx, sales.CreateInput{PaymentMethod: "bitcoin", Items: []sales.ItemInput{{ProductID: camisa.ID, Quantity: d(1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(ctx, sales.CreateInput{PaymentMethod: entity.PaymentCash, Items: []sales.ItemInput{{ProductID: camisa.ID, Quantity: d(0)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.CreateSale(ctx, sales.CreateInput{PaymentMethod: entity.PaymentCash, Items: []sales.ItemInput{{ProductID: camisa.ID, Quantity: d(1), UnitPrice: d(-1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(ctx, sales.CreateInput{PaymentMethod: entity.PaymentCash, Items: []sales.ItemInput{{ProductID: "no-existe", Quantity: d(1)}}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.CreateSale(ctx, sales.CreateInput{PaymentMethod: entity.PaymentCash, Items: []sales.ItemInput{{ProductID: camisa.ID, Quantity: d(1)}}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "sin fila en wholesale")

	_, err = uc.GetSale(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/testutil"
)

func newTransferUC(store *testutil.Store, notif *testutil.Notifications) *inventory.TransferUseCase {
	r := store.Repos()
	// un *Notifications nil no debe llegar como interfaz no-nil
	if notif == nil {
		return inventory.NewTransferUseCase(store, r.Transfers, r.Products, nil, activity.NewLogger(nil), nil)
	}
	return inventory.NewTransferUseCase(store, r.Transfers, r.Products, notif, activity.NewLogger(nil), nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslado directo
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_WholesaleATransit(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationWholesale, d(200))
	uc := newTransferUC(store, nil)

	tr, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID: p.ID, From: entity.LocationWholesale, To: entity.LocationTransit, Quantity: d(50), UserID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, tr.Status)
	assert.True(t, d(150).Equal(store.Quantity(p.ID, entity.LocationWholesale)))
	assert.True(t, d(50).Equal(store.Quantity(p.ID, entity.LocationTransit)))
	assert.Equal(t, 1, store.TransferCount())
}

func TestTransfer_IdaYVueltaRestauraCantidades(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(80))
	store.SeedInventory(p.ID, entity.LocationWholesale, d(5))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	_, err := uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationManufacturing, To: entity.LocationWholesale, Quantity: d(30)})
	require.NoError(t, err)
	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationWholesale, To: entity.LocationManufacturing, Quantity: d(30)})
	require.NoError(t, err)

	assert.True(t, d(80).Equal(store.Quantity(p.ID, entity.LocationManufacturing)))
	assert.True(t, d(5).Equal(store.Quantity(p.ID, entity.LocationWholesale)))
}

func TestTransfer_Errores(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationWholesale, d(10))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	_, err := uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationWholesale, To: entity.LocationWholesale, Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationWholesale, To: "tienda", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)

	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationWholesale, To: entity.LocationTransit, Quantity: d(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationManufacturing, To: entity.LocationTransit, Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)

	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationWholesale, To: entity.LocationTransit, Quantity: d(11)})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: "no-existe", From: entity.LocationWholesale, To: entity.LocationTransit, Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.True(t, d(10).Equal(store.Quantity(p.ID, entity.LocationWholesale)))
	assert.False(t, store.HasInventory(p.ID, entity.LocationTransit))
	assert.Equal(t, 0, store.TransferCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslado confirmable
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePending_PasaATransitYNotifica(t *testing.T) {
	store := testutil.NewStore()
	notif := testutil.NewNotifications()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(100))
	uc := newTransferUC(store, notif)

	tr, err := uc.CreatePending(context.Background(), inventory.PendingInput{ProductID: p.ID, Quantity: d(40), UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, tr.Status)
	assert.Equal(t, entity.LocationManufacturing, tr.FromLocation)
	assert.Equal(t, entity.LocationTransit, tr.ToLocation)
	assert.True(t, d(60).Equal(store.Quantity(p.ID, entity.LocationManufacturing)))
	assert.True(t, d(40).Equal(store.Quantity(p.ID, entity.LocationTransit)))

	require.NotEmpty(t, tr.NotificationID)
	n := notif.Get(tr.NotificationID)
	require.NotNil(t, n)
	assert.Equal(t, entity.RoleShopkeeper, n.Audience)
	assert.Equal(t, tr.ID, n.TransferID)
}

func TestCreatePending_FalloDeNotificacionNoRevierte(t *testing.T) {
	store := testutil.NewStore()
	notif := testutil.NewNotifications()
	notif.Fail = true
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(10))

	tr, err := newTransferUC(store, notif).CreatePending(context.Background(), inventory.PendingInput{ProductID: p.ID, Quantity: d(10)})
	require.NoError(t, err)
	assert.Empty(t, tr.NotificationID)
	assert.True(t, d(10).Equal(store.Quantity(p.ID, entity.LocationTransit)))
}

func TestCreatePending_DesdeTransitNoPermitido(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	_, err := newTransferUC(store, nil).CreatePending(context.Background(), inventory.PendingInput{ProductID: p.ID, From: entity.LocationTransit, Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

func TestConfirmReceipt_ConvierteTransitEnWholesale(t *testing.T) {
	store := testutil.NewStore()
	notif := testutil.NewNotifications()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(100))
	uc := newTransferUC(store, notif)
	ctx := context.Background()

	tr, err := uc.CreatePending(ctx, inventory.PendingInput{ProductID: p.ID, Quantity: d(40), UserID: "encargado"})
	require.NoError(t, err)

	confirmed, err := uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusConfirmed, confirmed.Status)
	assert.Equal(t, "vendedor", confirmed.ConfirmedBy)
	require.NotNil(t, confirmed.ConfirmationDate)

	assert.True(t, store.Quantity(p.ID, entity.LocationTransit).IsZero())
	wholesale := store.Inventory(p.ID, entity.LocationWholesale)
	require.NotNil(t, wholesale)
	assert.True(t, d(40).Equal(wholesale.Quantity))
	assert.Equal(t, "vendedor", wholesale.AttributedTo)
	assert.True(t, notif.Get(tr.NotificationID).Read)
}

func TestConfirmReceipt_YaConfirmadoFallaSinMutar(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(100))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	tr, err := uc.CreatePending(ctx, inventory.PendingInput{ProductID: p.ID, Quantity: d(40)})
	require.NoError(t, err)
	_, err = uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
	require.NoError(t, err)
	commits := store.Commits

	_, err = uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrTransferNotFoundOrProcessed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, commits, store.Commits)
	assert.True(t, d(40).Equal(store.Quantity(p.ID, entity.LocationWholesale)))

	_, err = uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrTransferNotFoundOrProcessed)
}

func TestConfirmReceipt_SinFilaEnTransitCreaWholesale(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(10))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	tr, err := uc.CreatePending(ctx, inventory.PendingInput{ProductID: p.ID, Quantity: d(10)})
	require.NoError(t, err)
	// Inconsistencia: la fila de transit desapareció por fuera del flujo
	store.DropInventory(p.ID, entity.LocationTransit)

	_, err = uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
	require.NoError(t, err)
	assert.True(t, d(10).Equal(store.Quantity(p.ID, entity.LocationWholesale)))
	assert.False(t, store.HasInventory(p.ID, entity.LocationTransit))
}

func TestConfirmReceipt_TransitParcialAcreditaSoloLoDisponible(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(10))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	tr, err := uc.CreatePending(ctx, inventory.PendingInput{ProductID: p.ID, Quantity: d(10)})
	require.NoError(t, err)
	// Conteo físico: en tránsito solo quedan 4
	rec := store.Inventory(p.ID, entity.LocationTransit)
	_, err = newInventoryUC(store).Adjust(ctx, inventory.AdjustInput{InventoryID: rec.ID, Type: entity.AdjustmentSet, Quantity: d(4), Reason: "conteo"})
	require.NoError(t, err)

	confirmed, err := uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusConfirmed, confirmed.Status)
	assert.True(t, d(4).Equal(store.Quantity(p.ID, entity.LocationWholesale)), "no se crea stock de la nada")
	assert.True(t, store.Quantity(p.ID, entity.LocationTransit).IsZero())
}

func TestTransfer_FalloAlRegistrarRevierteStock(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationWholesale, d(200))
	uc := newTransferUC(store, nil)
	store.FailOn(testutil.OpTransferCreate, nil)

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID: p.ID, From: entity.LocationWholesale, To: entity.LocationTransit, Quantity: d(50),
	})
	assert.ErrorIs(t, err, testutil.ErrWriteFailed)
	assert.True(t, d(200).Equal(store.Quantity(p.ID, entity.LocationWholesale)))
	assert.False(t, store.HasInventory(p.ID, entity.LocationTransit))
	assert.Equal(t, 0, store.TransferCount())
}

func TestConfirmReceipt_FalloAMitadRevierteTodo(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(100))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	tr, err := uc.CreatePending(ctx, inventory.PendingInput{ProductID: p.ID, Quantity: d(40)})
	require.NoError(t, err)

	for _, op := range []string{testutil.OpInventoryUpsert, testutil.OpTransferUpdate} {
		store.FailOn(op, nil)
		_, err = uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
		assert.ErrorIs(t, err, testutil.ErrWriteFailed, op)
		store.Recover()

		assert.True(t, d(40).Equal(store.Quantity(p.ID, entity.LocationTransit)), op)
		assert.False(t, store.HasInventory(p.ID, entity.LocationWholesale), op)
		got, err := uc.Get(ctx, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.TransferStatusPending, got.Status, op)
	}

	_, err = uc.ConfirmReceipt(ctx, inventory.ConfirmInput{TransferID: tr.ID, UserID: "vendedor"})
	require.NoError(t, err)
	assert.True(t, d(40).Equal(store.Quantity(p.ID, entity.LocationWholesale)))
}

func TestTransferList_FiltraPorEstado(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(100))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	_, err := uc.CreatePending(ctx, inventory.PendingInput{ProductID: p.ID, Quantity: d(1)})
	require.NoError(t, err)
	_, err = uc.Transfer(ctx, inventory.TransferInput{ProductID: p.ID, From: entity.LocationManufacturing, To: entity.LocationWholesale, Quantity: d(1)})
	require.NoError(t, err)

	pending, err := uc.List(ctx, entity.TransferStatusPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	all, err := uc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_, err = uc.List(ctx, "lost", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

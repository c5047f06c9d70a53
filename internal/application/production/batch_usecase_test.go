package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
	"github.com/jhoicas/Manufactura-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newBatchUC(store *testutil.Store, opts production.Options) *production.BatchUseCase {
	r := store.Repos()
	return production.NewBatchUseCase(store, r.Batches, r.Products, activity.NewLogger(nil), opts)
}

func createBatch(t *testing.T, uc *production.BatchUseCase, productID string, qty int64, materials ...production.MaterialLine) *entity.ManufacturingBatch {
	t.Helper()
	b, err := uc.Create(context.Background(), production.CreateBatchInput{
		ProductID: productID, Quantity: d(qty), Materials: materials, UserID: "u-1", Username: "encargado",
	})
	require.NoError(t, err)
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PendingConNumeroYMateriales(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	tela := store.SeedMaterial("Tela", "metro", d(100), d(10))
	uc := newBatchUC(store, production.Options{})

	b := createBatch(t, uc, p.ID, 50, production.MaterialLine{MaterialID: tela.ID, Quantity: d(30)})
	assert.Equal(t, entity.BatchStatusPending, b.Status)
	assert.Regexp(t, `^BATCH-\d{8}-\d{4}$`, b.BatchNumber)
	assert.Nil(t, b.CompletionDate)
	assert.True(t, d(70).Equal(store.Material(tela.ID).StockQuantity))

	mats, err := uc.Materials(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, mats, 1)
	assert.True(t, d(30).Equal(mats[0].QuantityRequired))

	history, err := uc.History(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "", history[0].FromStatus)
	assert.Equal(t, entity.BatchStatusPending, history[0].ToStatus)
	assert.Equal(t, "encargado", history[0].ChangedByName)
}

func TestCreate_DescuentoPermisivoDeMateriaPrima(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	tela := store.SeedMaterial("Tela", "metro", d(5), d(10))

	createBatch(t, newBatchUC(store, production.Options{}), p.ID, 10, production.MaterialLine{MaterialID: tela.ID, Quantity: d(8)})
	assert.True(t, d(-3).Equal(store.Material(tela.ID).StockQuantity), "sin verificación de stock el saldo puede quedar negativo")
}

func TestCreate_ModoEstrictoRechazaFaltante(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	tela := store.SeedMaterial("Tela", "metro", d(5), d(10))
	uc := newBatchUC(store, production.Options{StrictMaterialStock: true})

	_, err := uc.Create(context.Background(), production.CreateBatchInput{
		ProductID: p.ID, Quantity: d(10),
		Materials: []production.MaterialLine{{MaterialID: tela.ID, Quantity: d(8)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, d(5).Equal(store.Material(tela.ID).StockQuantity))
	list, _ := uc.List(context.Background(), repository.BatchFilter{})
	assert.Empty(t, list, "la tx se revierte completa")
}

func TestCreate_Validaciones(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	tela := store.SeedMaterial("Tela", "metro", d(5), d(10))
	uc := newBatchUC(store, production.Options{})
	ctx := context.Background()
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)

	_, err := uc.Create(ctx, production.CreateBatchInput{ProductID: p.ID, Quantity: d(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Create(ctx, production.CreateBatchInput{ProductID: p.ID, Quantity: d(1), StartDate: &start, ExpectedCompletionDate: &before})
	assert.ErrorIs(t, err, domain.ErrInvalidDates)

	_, err = uc.Create(ctx, production.CreateBatchInput{ProductID: "no-existe", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.Create(ctx, production.CreateBatchInput{ProductID: p.ID, Quantity: d(1), Materials: []production.MaterialLine{
		{MaterialID: tela.ID, Quantity: d(1)}, {MaterialID: tela.ID, Quantity: d(2)},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, production.CreateBatchInput{ProductID: p.ID, Quantity: d(1), Materials: []production.MaterialLine{
		{MaterialID: "no-existe", Quantity: d(1)},
	}})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Advance
// ──────────────────────────────────────────────────────────────────────────────

func TestAdvance_CicloCompletoSumaInventarioUnaVez(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	store.SeedInventory(p.ID, entity.LocationManufacturing, d(7))
	uc := newBatchUC(store, production.Options{})
	ctx := context.Background()

	b := createBatch(t, uc, p.ID, 100)
	statuses := manufacturing.Statuses()
	for _, s := range statuses[1:] {
		var err error
		b, err = uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: s, UserID: "u-1"})
		require.NoError(t, err, s)
	}
	assert.Equal(t, entity.BatchStatusCompleted, b.Status)
	assert.True(t, d(107).Equal(store.Quantity(p.ID, entity.LocationManufacturing)))
	require.NotNil(t, b.CompletionDate)
	y1, m1, d1 := time.Now().Date()
	y2, m2, d2 := b.CompletionDate.Date()
	assert.Equal(t, []int{y1, int(m1), d1}, []int{y2, int(m2), d2})

	_, err := uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCompleted})
	assert.ErrorIs(t, err, domain.ErrBatchAlreadyCompleted)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, d(107).Equal(store.Quantity(p.ID, entity.LocationManufacturing)), "el inventario se suma una sola vez")

	history, err := uc.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, history, len(statuses))
}

func TestAdvance_CompletedCreaFilaSiNoExiste(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	uc := newBatchUC(store, production.Options{})
	b := createBatch(t, uc, p.ID, 25)

	_, err := uc.Advance(context.Background(), production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCompleted})
	require.NoError(t, err)
	assert.True(t, d(25).Equal(store.Quantity(p.ID, entity.LocationManufacturing)))
}

func TestAdvance_Errores(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	uc := newBatchUC(store, production.Options{})
	ctx := context.Background()
	b := createBatch(t, uc, p.ID, 10)

	_, err := uc.Advance(ctx, production.AdvanceInput{BatchID: "no-existe", Status: entity.BatchStatusCutting})
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)

	_, err = uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusPending})
	assert.ErrorIs(t, err, domain.ErrIdenticalStatus)

	_, err = uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: "dyeing"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusIroning})
	require.NoError(t, err)
	_, err = uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCutting})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	back, err := uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusStitching, Notes: "repaso de costuras"})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusStitching, back.Status)

	history, err := uc.History(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "repaso de costuras", history[2].Message)
	assert.Equal(t, entity.BatchStatusIroning, history[2].FromStatus)
}

func TestAdvance_FalloDelLogNoRevierte(t *testing.T) {
	store := testutil.NewStore()
	p := store.SeedProduct("Camisa", "CAM-1", d(20))
	uc := newBatchUC(store, production.Options{})
	b := createBatch(t, uc, p.ID, 10)
	store.FailActivity = true

	got, err := uc.Advance(context.Background(), production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusCompleted, got.Status)
	assert.True(t, d(10).Equal(store.Quantity(p.ID, entity.LocationManufacturing)))
}

func TestAdvance_FalloAMitadRevierteTodo(t *testing.T) {
	for _, op := range []string{testutil.OpInventoryUpsert, testutil.OpBatchUpdate, testutil.OpBatchStatusEntry} {
		t.Run(op, func(t *testing.T) {
			store := testutil.NewStore()
			p := store.SeedProduct("Camisa", "CAM-1", d(20))
			uc := newBatchUC(store, production.Options{})
			ctx := context.Background()
			b := createBatch(t, uc, p.ID, 10)

			store.FailOn(op, nil)
			_, err := uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCompleted, UserID: "u-1"})
			require.ErrorIs(t, err, testutil.ErrWriteFailed)

			got, err := uc.Get(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.BatchStatusPending, got.Status)
			assert.Nil(t, got.CompletionDate)
			assert.False(t, store.HasInventory(p.ID, entity.LocationManufacturing))
			history, err := uc.History(ctx, b.ID)
			require.NoError(t, err)
			assert.Len(t, history, 1)

			store.Recover()
			_, err = uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCompleted, UserID: "u-1"})
			require.NoError(t, err)
			assert.True(t, d(10).Equal(store.Quantity(p.ID, entity.LocationManufacturing)))
		})
	}
}

func TestList_Filtros(t *testing.T) {
	store := testutil.NewStore()
	p1 := store.SeedProduct("Camisa", "CAM-1", d(20))
	p2 := store.SeedProduct("Pantalón", "PAN-1", d(30))
	uc := newBatchUC(store, production.Options{})
	ctx := context.Background()
	b := createBatch(t, uc, p1.ID, 10)
	createBatch(t, uc, p2.ID, 10)
	_, err := uc.Advance(ctx, production.AdvanceInput{BatchID: b.ID, Status: entity.BatchStatusCutting})
	require.NoError(t, err)

	cutting, err := uc.List(ctx, repository.BatchFilter{Status: entity.BatchStatusCutting})
	require.NoError(t, err)
	require.Len(t, cutting, 1)
	assert.Equal(t, b.ID, cutting[0].ID)

	byProduct, err := uc.List(ctx, repository.BatchFilter{ProductID: p2.ID})
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)

	_, err = uc.List(ctx, repository.BatchFilter{Status: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Get(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

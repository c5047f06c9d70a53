package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/testutil"
)

func TestLowStockMaterials(t *testing.T) {
	store := testutil.NewStore()
	tela := store.SeedMaterial("Tela", "metro", d(10), d(100)) // 90% de déficit
	hilo := store.SeedMaterial("Hilo", "cono", d(40), d(50))   // 20% de déficit
	store.SeedMaterial("Botón", "unidad", d(500), d(100))      // sobre el mínimo
	now := time.Now()
	store.SeedPurchase(tela.ID, d(10), d(4), now.Add(-2*time.Hour))
	store.SeedPurchase(tela.ID, d(10), d(6), now.Add(-time.Hour))

	r := store.Repos()
	out, err := inventory.NewReplenishmentUseCase(r.Materials, r.Purchases).LowStockMaterials(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, tela.ID, out[0].MaterialID)
	assert.True(t, d(140).Equal(out[0].SuggestedOrderQty)) // 100*1.5 - 10
	assert.True(t, d(5).Equal(out[0].AverageUnitPrice))
	assert.True(t, d(700).Equal(out[0].EstimatedOrderCost))
	assert.True(t, d(90).Equal(out[0].ShortfallPct))

	assert.Equal(t, hilo.ID, out[1].MaterialID)
	assert.True(t, out[1].EstimatedOrderCost.IsZero(), "sin compras no hay costo estimado")
}

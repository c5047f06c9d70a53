package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	appanalytics "github.com/jhoicas/Manufactura-api/internal/application/analytics"
	"github.com/jhoicas/Manufactura-api/internal/application/auth"
	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/application/purchasing"
	"github.com/jhoicas/Manufactura-api/internal/application/sales"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Manufactura-api/internal/interfaces/http"
	"github.com/jhoicas/Manufactura-api/internal/testutil"
)

type apiFixture struct {
	app   *fiber.App
	store *testutil.Store
	notif *testutil.Notifications
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := testutil.NewStore()
	notif := testutil.NewNotifications()
	r := store.Repos()
	act := activity.NewLogger(nil)

	costs := production.NewCostUseCase(store, r.Batches, r.Costs, r.Materials, r.Purchases, r.Products, nil, act)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), r.Activity, act, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		UserUC:        usecase.NewUserUseCase(store.Users()),
		ProductUC:     usecase.NewProductUseCase(r.Products, r.Activity, act),
		MaterialUC:    usecase.NewRawMaterialUseCase(r.Materials, r.Activity, act),
		InventoryUC:   inventory.NewUseCase(store, r.Inventory, r.Adjustments, act),
		Replenishment: inventory.NewReplenishmentUseCase(r.Materials, r.Purchases),
		TransferUC:    inventory.NewTransferUseCase(store, r.Transfers, r.Products, notif, act, nil),
		PurchaseUC:    purchasing.NewUseCase(store, r.Purchases, act),
		BatchUC:       production.NewBatchUseCase(store, r.Batches, r.Products, act, production.Options{}),
		CostUC:        costs,
		SaleUC:        sales.NewUseCase(store, r.Sales, r.Products, act),
		DashboardUC:   appanalytics.NewDashboardUseCase(store.Reports()),
		ReportUC:      appanalytics.NewReportUseCase(store.Reports(), r.Batches, r.Products, costs, nil),
		ActivityUC:    activity.NewUseCase(r.Activity),
		JWTSecret:     testJWTSecret,
	})
	return &apiFixture{app: app, store: store, notif: notif}
}

func (f *apiFixture) call(t *testing.T, method, path, role string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestAPI_CicloDeLoteCompleto(t *testing.T) {
	f := newAPI(t)
	p := f.store.SeedProduct("Camisa", "CAM-1", decimal.NewFromInt(20))
	m := f.store.SeedMaterial("Tela", "m", decimal.NewFromInt(10), decimal.NewFromInt(2))

	resp, body := f.call(t, http.MethodPost, "/api/batches", entity.RoleIncharge, map[string]interface{}{
		"product_id": p.ID,
		"quantity":   "100",
		"materials":  []map[string]interface{}{{"material_id": m.ID, "quantity": "4"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var batch dto.BatchResponse
	require.NoError(t, json.Unmarshal(body, &batch))
	assert.Equal(t, entity.BatchStatusPending, batch.Status)
	assert.Regexp(t, `^BATCH-\d{8}-\d{4}$`, batch.BatchNumber)
	assert.True(t, decimal.NewFromInt(6).Equal(f.store.Material(m.ID).StockQuantity))

	for _, st := range []string{
		entity.BatchStatusCutting, entity.BatchStatusStitching, entity.BatchStatusIroning,
		entity.BatchStatusPackaging, entity.BatchStatusCompleted,
	} {
		resp, body = f.call(t, http.MethodPatch, "/api/batches/"+batch.ID+"/status", entity.RoleIncharge, map[string]string{"status": st})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}
	assert.True(t, decimal.NewFromInt(100).Equal(f.store.Quantity(p.ID, entity.LocationManufacturing)))

	resp, body = f.call(t, http.MethodGet, "/api/batches/"+batch.ID, entity.RoleShopkeeper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.BatchDetailResponse
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, entity.BatchStatusCompleted, detail.Status)
	assert.Len(t, detail.Materials, 1)
	require.Len(t, detail.History, 6)
	assert.Equal(t, entity.BatchStatusCompleted, detail.History[5].ToStatus)

	// completado no admite más cambios
	resp, body = f.call(t, http.MethodPatch, "/api/batches/"+batch.ID+"/status", entity.RoleIncharge, map[string]string{"status": entity.BatchStatusPackaging})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "BATCH_ALREADY_COMPLETED")
}

func TestAPI_VendedorNoCreaLotes(t *testing.T) {
	f := newAPI(t)
	p := f.store.SeedProduct("Camisa", "CAM-1", decimal.NewFromInt(20))

	resp, body := f.call(t, http.MethodPost, "/api/batches", entity.RoleShopkeeper, map[string]interface{}{
		"product_id": p.ID, "quantity": "10",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestAPI_LoteInexistente404(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, http.MethodGet, "/api/batches/no-existe", entity.RoleOwner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "BATCH_NOT_FOUND")
}

func TestAPI_ValidacionDevuelve422ConCampos(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, http.MethodPost, "/api/sales", entity.RoleShopkeeper, map[string]interface{}{
		"payment_method": "bitcoin",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "VALIDATION", er.Code)
	assert.Contains(t, er.Fields, "payment_method")
	assert.Contains(t, er.Fields, "items")
}

func TestAPI_VentaSinStockNoRegistraNada(t *testing.T) {
	f := newAPI(t)
	a := f.store.SeedProduct("Camisa", "CAM-1", decimal.NewFromInt(20))
	b := f.store.SeedProduct("Pantalón", "PAN-1", decimal.NewFromInt(30))
	f.store.SeedInventory(a.ID, entity.LocationWholesale, decimal.NewFromInt(10))
	f.store.SeedInventory(b.ID, entity.LocationWholesale, decimal.NewFromInt(1))

	resp, _ := f.call(t, http.MethodPost, "/api/sales", entity.RoleShopkeeper, map[string]interface{}{
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"product_id": a.ID, "quantity": "5"},
			{"product_id": b.ID, "quantity": "2"},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 0, f.store.SaleCount())
	assert.True(t, decimal.NewFromInt(10).Equal(f.store.Quantity(a.ID, entity.LocationWholesale)))
}

func TestAPI_TrasladoPendienteYConfirmacion(t *testing.T) {
	f := newAPI(t)
	p := f.store.SeedProduct("Camisa", "CAM-1", decimal.NewFromInt(20))
	f.store.SeedInventory(p.ID, entity.LocationManufacturing, decimal.NewFromInt(40))

	resp, body := f.call(t, http.MethodPost, "/api/transfers/pending", entity.RoleIncharge, map[string]interface{}{
		"product_id": p.ID, "quantity": "15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var tr dto.TransferResponse
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.Equal(t, entity.TransferStatusPending, tr.Status)
	assert.True(t, decimal.NewFromInt(15).Equal(f.store.Quantity(p.ID, entity.LocationTransit)))

	// el encargado no confirma recepciones
	resp, _ = f.call(t, http.MethodPost, "/api/transfers/"+tr.ID+"/confirm", entity.RoleIncharge, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = f.call(t, http.MethodGet, "/api/notifications?unread=true", entity.RoleShopkeeper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes []dto.NotificationResponse
	require.NoError(t, json.Unmarshal(body, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, tr.ID, notes[0].TransferID)

	resp, body = f.call(t, http.MethodPost, "/api/transfers/"+tr.ID+"/confirm", entity.RoleShopkeeper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, decimal.NewFromInt(15).Equal(f.store.Quantity(p.ID, entity.LocationWholesale)))
	assert.True(t, decimal.Zero.Equal(f.store.Quantity(p.ID, entity.LocationTransit)))
	assert.True(t, f.notif.Get(notes[0].ID).Read)

	// segunda confirmación: ya no está pendiente
	resp, _ = f.call(t, http.MethodPost, "/api/transfers/"+tr.ID+"/confirm", entity.RoleShopkeeper, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CantidadPorUbicacion(t *testing.T) {
	f := newAPI(t)
	p := f.store.SeedProduct("Camisa", "CAM-1", decimal.NewFromInt(20))
	f.store.SeedInventory(p.ID, entity.LocationWholesale, decimal.NewFromInt(12))

	resp, body := f.call(t, http.MethodGet, "/api/inventory/quantity?product_id="+p.ID+"&location=wholesale", entity.RoleShopkeeper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.QuantityResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, p.ID, out.ProductID)
	assert.True(t, decimal.NewFromInt(12).Equal(out.Quantity))

	resp, body = f.call(t, http.MethodGet, "/api/inventory/quantity?product_id="+p.ID+"&location=transit", entity.RoleShopkeeper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Quantity.IsZero())

	resp, body = f.call(t, http.MethodGet, "/api/inventory/quantity?product_id="+p.ID+"&location=bodega", entity.RoleShopkeeper, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_LOCATION")
}

func TestAPI_LoginYMe(t *testing.T) {
	f := newAPI(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	u := f.store.SeedUser(entity.User{
		Username: "duena", Name: "Dueña", PasswordHash: string(hash),
		Role: entity.RoleOwner, Status: entity.UserStatusActive,
	})

	resp, body := f.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "duena", "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "duena", "password": "clave-segura"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, u.ID, login.User.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestAPI_DashboardSoloPropietario(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.call(t, http.MethodGet, "/api/dashboard/summary", entity.RoleIncharge, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := f.call(t, http.MethodGet, "/api/dashboard/summary", entity.RoleOwner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var sum dto.DashboardSummaryResponse
	require.NoError(t, json.Unmarshal(body, &sum))
	assert.Equal(t, 0, sum.PendingTransfers)
}

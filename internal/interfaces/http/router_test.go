package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-hardware/internal/application/builds"
	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
	"github.com/jhoicas/inventario-hardware/internal/application/trade"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-hardware/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-hardware/pkg/jwt"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var created = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func stockPart(id, name, sub string, buy int64, specs entity.Specs) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: id, Name: name, Category: "Components", SubCategory: sub,
		BuyPrice: decimal.NewFromInt(buy), BuyDate: created,
		Status: entity.StatusInStock, Specs: specs, CreatedAt: created, UpdatedAt: created,
	}
}

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	store := memory.NewStore(
		stockPart("cpu", "AMD Ryzen 5 5600X", "Processor", 120, entity.Specs{"Socket": "AM4"}),
		stockPart("mb4", "MSI B550 Tomahawk", "Motherboard", 110, entity.Specs{"Socket": "AM4", "Memory Type": "DDR4"}),
		stockPart("mb5", "ASUS B650 Prime", "Motherboard", 150, entity.Specs{"Socket": "AM5", "Memory Type": "DDR5"}),
		stockPart("gpu", "MSI RTX 3060 Ventus", "Graphics Card", 250, nil),
	)
	log := logger.Nop()
	m := metrics.New("test")
	repo := store.Repo()
	app := apphttp.NewApp(apphttp.RouterDeps{
		AppName:   "inventario-hardware-test",
		ItemUC:    inventory.NewItemUseCase(repo, store, log, m),
		BuildUC:   builds.NewBuildUseCase(repo, store, memory.NewDraftStore(), builds.Config{}, log, m),
		TradeUC:   trade.NewTradeUseCase(repo, store, log, m),
		JWTSecret: testJWTSecret,
		Log:       log,
		Metrics:   m,
	})
	return apiFixture{app: app, store: store}
}

func call(t *testing.T, f apiFixture, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
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
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYMetrics(t *testing.T) {
	f := newAPI(t)

	resp, raw := call(t, f, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"status":"ok"`)

	call(t, f, http.MethodGet, "/api/items", pkgjwt.RoleReadOnly, nil)

	resp, raw = call(t, f, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "test_http_requests_total")
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CreateGetList(t *testing.T) {
	f := newAPI(t)

	resp, raw := call(t, f, http.MethodPost, "/api/items", pkgjwt.RoleBuilder, map[string]any{
		"name": "Corsair Vengeance 16GB DDR4", "category": "Components", "sub_category": "RAM",
		"buy_price": "40.00", "specs": map[string]any{"Memory Type": "DDR4 3200"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	item := decode[dto.ItemResponse](t, raw)
	assert.Equal(t, "IN_STOCK", item.Status)
	assert.True(t, item.BuyPrice.Equal(decimal.NewFromInt(40)))

	resp, raw = call(t, f, http.MethodGet, "/api/items/"+item.ID, pkgjwt.RoleReadOnly, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, item.Name, decode[dto.ItemResponse](t, raw).Name)

	resp, raw = call(t, f, http.MethodGet, "/api/items?sub_category=RAM&limit=10", pkgjwt.RoleReadOnly, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ItemListResponse](t, raw)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 10, list.Page.Limit)
}

func TestItems_ValidacionDevuelveCampos(t *testing.T) {
	f := newAPI(t)

	resp, raw := call(t, f, http.MethodPost, "/api/items", pkgjwt.RoleAdmin, map[string]any{"buy_price": "10"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "category")
}

func TestItems_CuerpoInvalido(t *testing.T) {
	f := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleAdmin))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)
}

func TestItems_NoEncontrado(t *testing.T) {
	f := newAPI(t)
	resp, raw := call(t, f, http.MethodGet, "/api/items/nope", pkgjwt.RoleReadOnly, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

func TestItems_LecturaNoPuedeCrear(t *testing.T) {
	f := newAPI(t)
	resp, _ := call(t, f, http.MethodPost, "/api/items", pkgjwt.RoleReadOnly, map[string]any{"name": "x", "category": "y"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestItems_VentaSinPrecioEsValidacion(t *testing.T) {
	f := newAPI(t)
	resp, raw := call(t, f, http.MethodPost, "/api/items/gpu/sell", pkgjwt.RoleSeller, map[string]any{"payment_type": "Cash"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "sell_price")
	assert.Equal(t, entity.StatusInStock, f.store.Get("gpu").Status)
	assert.Nil(t, f.store.Get("gpu").SellPrice)
}

// ──────────────────────────────────────────────────────────────────────────────
// Builds, venta y desarme
// ──────────────────────────────────────────────────────────────────────────────

func TestBuilds_AssembleSellConflictDismantle(t *testing.T) {
	f := newAPI(t)

	resp, raw := call(t, f, http.MethodPost, "/api/builds", pkgjwt.RoleBuilder, dto.AssembleRequest{
		Name: "Gaming AM4", ComponentIDs: []string{"cpu", "mb4", "gpu"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	op := decode[dto.OperationResponse](t, raw)
	require.NotNil(t, op.Item)
	pcID := op.Item.ID
	assert.True(t, op.Item.BuyPrice.Equal(decimal.NewFromInt(480)))
	assert.Equal(t, entity.StatusInComposition, f.store.Get("gpu").Status)

	// Una pieza ya ensamblada no se puede vender suelta.
	resp, raw = call(t, f, http.MethodPost, "/api/items/gpu/sell", pkgjwt.RoleSeller, map[string]any{"sell_price": "300"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ITEM_UNAVAILABLE", decode[dto.ErrorResponse](t, raw).Code)

	// Ni incluirla en otra build.
	resp, _ = call(t, f, http.MethodPost, "/api/builds", pkgjwt.RoleBuilder, dto.AssembleRequest{
		Name: "Otra", ComponentIDs: []string{"gpu"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = call(t, f, http.MethodPost, "/api/builds/"+pcID+"/dismantle", pkgjwt.RoleBuilder, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	op = decode[dto.OperationResponse](t, raw)
	assert.Equal(t, []string{pcID}, op.DeletedIDs)
	assert.Nil(t, f.store.Get(pcID))
	assert.Equal(t, entity.StatusInStock, f.store.Get("gpu").Status)
}

func TestBuilds_SellPropagaAComponentes(t *testing.T) {
	f := newAPI(t)

	_, raw := call(t, f, http.MethodPost, "/api/builds", pkgjwt.RoleAdmin, dto.AssembleRequest{
		Name: "Gaming AM4", ComponentIDs: []string{"cpu", "mb4"},
	})
	pcID := decode[dto.OperationResponse](t, raw).Item.ID

	resp, raw := call(t, f, http.MethodPost, "/api/items/"+pcID+"/sell", pkgjwt.RoleSeller, map[string]any{
		"sell_price": "400", "fee_amount": "20", "payment_type": "Cash",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	op := decode[dto.OperationResponse](t, raw)
	require.NotNil(t, op.Item.Profit)
	assert.True(t, op.Item.Profit.Equal(decimal.NewFromInt(150)), op.Item.Profit.String())
	assert.Equal(t, entity.StatusSold, f.store.Get("cpu").Status)
	assert.Equal(t, entity.StatusSold, f.store.Get("mb4").Status)
}

func TestBuilds_SelectionVaciaEsValidacion(t *testing.T) {
	f := newAPI(t)
	resp, raw := call(t, f, http.MethodPost, "/api/builds", pkgjwt.RoleBuilder, dto.AssembleRequest{Name: "Vacía"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "component_ids")
}

func TestBundles_RetroConUnSoloItemEsValidacion(t *testing.T) {
	f := newAPI(t)
	resp, raw := call(t, f, http.MethodPost, "/api/bundles/retro", pkgjwt.RoleSeller, dto.RetroBundleRequest{ItemIDs: []string{"gpu"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "item_ids")
}

func TestBuilds_VendedorNoPuedeEnsamblar(t *testing.T) {
	f := newAPI(t)
	resp, _ := call(t, f, http.MethodPost, "/api/builds", pkgjwt.RoleSeller, dto.AssembleRequest{
		Name: "x", ComponentIDs: []string{"cpu"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Editor de slots
// ──────────────────────────────────────────────────────────────────────────────

func TestDrafts_ToggleIncompatibleYGuardar(t *testing.T) {
	f := newAPI(t)

	resp, raw := call(t, f, http.MethodPost, "/api/drafts", pkgjwt.RoleBuilder, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	draftID := decode[dto.DraftResponse](t, raw).ID

	resp, raw = call(t, f, http.MethodPost, "/api/drafts/"+draftID+"/slots/cpu/toggle", pkgjwt.RoleBuilder,
		dto.ToggleSlotRequest{ItemID: "cpu"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = call(t, f, http.MethodPost, "/api/drafts/"+draftID+"/slots/motherboard/toggle", pkgjwt.RoleBuilder,
		dto.ToggleSlotRequest{ItemID: "mb5"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INCOMPATIBLE", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = call(t, f, http.MethodGet, "/api/drafts/"+draftID+"/slots/motherboard/candidates", pkgjwt.RoleBuilder, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cands := decode[dto.CandidatesResponse](t, raw)
	require.Len(t, cands.Items, 1)
	assert.Equal(t, "mb4", cands.Items[0].ID)
	assert.Equal(t, 1, cands.HiddenIncompatible)

	resp, _ = call(t, f, http.MethodPost, "/api/drafts/"+draftID+"/slots/motherboard/toggle", pkgjwt.RoleBuilder,
		dto.ToggleSlotRequest{ItemID: "mb4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, f, http.MethodPost, "/api/drafts/"+draftID+"/save", pkgjwt.RoleBuilder, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	op := decode[dto.OperationResponse](t, raw)
	require.NotNil(t, op.Item)
	assert.True(t, op.Item.IsPC)
	assert.ElementsMatch(t, []string{"cpu", "mb4"}, op.Item.ComponentIDs)

	resp, _ = call(t, f, http.MethodGet, "/api/drafts/"+draftID, pkgjwt.RoleBuilder, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDrafts_SlotDesconocido(t *testing.T) {
	f := newAPI(t)
	_, raw := call(t, f, http.MethodPost, "/api/drafts", pkgjwt.RoleAdmin, nil)
	draftID := decode[dto.DraftResponse](t, raw).ID

	resp, raw := call(t, f, http.MethodPost, "/api/drafts/"+draftID+"/slots/monitor/toggle", pkgjwt.RoleAdmin,
		dto.ToggleSlotRequest{ItemID: "gpu"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_SLOT", decode[dto.ErrorResponse](t, raw).Code)
}

func TestDrafts_Delete(t *testing.T) {
	f := newAPI(t)
	_, raw := call(t, f, http.MethodPost, "/api/drafts", pkgjwt.RoleAdmin, nil)
	draftID := decode[dto.DraftResponse](t, raw).ID

	resp, _ := call(t, f, http.MethodDelete, "/api/drafts/"+draftID, pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, f, http.MethodGet, "/api/drafts/"+draftID, pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Trades
// ──────────────────────────────────────────────────────────────────────────────

func TestTrades_PreviewYExecute(t *testing.T) {
	f := newAPI(t)
	req := map[string]any{
		"outgoing_id": "gpu",
		"incoming": []map[string]any{
			{"name": "RX 6600", "category": "Components", "sub_category": "Graphics Card", "value": "180"},
		},
		"cash_on_top": "50",
	}

	resp, raw := call(t, f, http.MethodPost, "/api/trades/preview", pkgjwt.RoleSeller, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	sum := decode[dto.TradeSummaryResponse](t, raw)
	assert.True(t, sum.TotalTradeValue.Equal(decimal.NewFromInt(230)))
	assert.True(t, sum.ProjectedProfit.Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, entity.StatusInStock, f.store.Get("gpu").Status)

	resp, raw = call(t, f, http.MethodPost, "/api/trades", pkgjwt.RoleSeller, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	out := decode[dto.TradeResponse](t, raw)
	assert.Equal(t, "TRADED", out.Outgoing.Status)
	require.Len(t, out.Received, 1)
	assert.Equal(t, "gpu", out.Received[0].TradedFromID)

	resp, raw = call(t, f, http.MethodPost, "/api/trades", pkgjwt.RoleSeller, req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_DISPOSED", decode[dto.ErrorResponse](t, raw).Code)
}

func TestTrades_VacioEsError(t *testing.T) {
	f := newAPI(t)
	resp, raw := call(t, f, http.MethodPost, "/api/trades", pkgjwt.RoleAdmin, map[string]any{"outgoing_id": "gpu"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_TRADE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestRutaInexistente(t *testing.T) {
	f := newAPI(t)
	resp, raw := call(t, f, http.MethodGet, "/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-ledger/internal/application/auth"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/application/report"
	"github.com/jhoicas/bodega-ledger/internal/application/usecase"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bodega-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacenamiento en memoria (sin PDF, hub ni métricas).
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	reads := store.Repos()
	settings := usecase.NewSettingsUseCase(store.Settings(), "Bodega Central", "PEN")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:        inventory.NewLedgerUseCase(store),
		Batches:       inventory.NewBatchService(reads.Batches),
		Replenishment: inventory.NewReplenishmentUseCase(reads),
		ProductUC:     usecase.NewProductUseCase(store, reads),
		SettingsUC:    settings,
		SessionUC:     auth.NewSessionUseCase(settings, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}),
		Reports:       report.NewReportUseCase(reads, settings, 15),
		Location:      time.UTC,
	})
	return app
}

// call lanza la petición y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, []byte, http.Header) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out, resp.Header
}

func decode(t *testing.T, b []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m), string(b))
	return m
}

// connect configura el operador y devuelve el token del escáner.
func connect(t *testing.T, app *fiber.App, operator string) string {
	t.Helper()
	status, body, _ := call(t, app, http.MethodPost, "/api/session", "", map[string]string{"operator": operator, "device_id": "scanner-1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	tok, _ := decode(t, body)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión del dispositivo
// ──────────────────────────────────────────────────────────────────────────────

func TestEvents_SinSesionRetorna401(t *testing.T) {
	app := buildTestApp(t)

	status, body, _ := call(t, app, http.MethodPost, "/api/events", "", map[string]interface{}{
		"event": "ingreso", "sku": "A", "name": "Arroz", "quantity": 3,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "NOT_CONNECTED", decode(t, body)["code"])

	status, _, _ = call(t, app, http.MethodPost, "/api/events", "token.invalido.aqui", map[string]interface{}{
		"event": "ingreso", "sku": "A", "name": "Arroz", "quantity": 3,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSession_OperadorNoConfiguradoRetorna403(t *testing.T) {
	app := buildTestApp(t)
	status, body, _ := call(t, app, http.MethodPut, "/api/settings", "", map[string]interface{}{
		"bodega": "Don Pepe", "currency": "PEN", "operators": []string{"ana"},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body, _ = call(t, app, http.MethodPost, "/api/session", "", map[string]string{"operator": "pedro", "device_id": "d"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decode(t, body)["code"])

	tok := connect(t, app, "ana")
	status, body, _ = call(t, app, http.MethodGet, "/api/session", tok, nil)
	require.Equal(t, http.StatusOK, status)
	s := decode(t, body)
	assert.Equal(t, true, s["connected"])
	assert.Equal(t, "ana", s["operator"])
	assert.Equal(t, "Don Pepe", s["bodega"])
}

func TestSettings_InvalidaRetornaDetalles(t *testing.T) {
	app := buildTestApp(t)

	status, body, _ := call(t, app, http.MethodPut, "/api/settings", "", map[string]interface{}{"bodega": "", "currency": "PEN"})
	assert.Equal(t, http.StatusBadRequest, status)
	m := decode(t, body)
	assert.Equal(t, "VALIDATION", m["code"])
	assert.NotEmpty(t, m["details"])

	status, _, _ = call(t, app, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestEvents_IngresoVentaYAnulacion(t *testing.T) {
	app := buildTestApp(t)
	tok := connect(t, app, "ana")

	status, body, _ := call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{
		"event": "ingreso", "sku": "A", "name": "Arroz", "quantity": 5, "purchase_price": "2", "sale_price": "3",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, true, decode(t, body)["product_created"])

	status, body, _ = call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{"event": "venta", "sku": "A", "quantity": 9})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, body)["code"])

	status, body, _ = call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{"event": "venta", "sku": "A", "quantity": 2})
	require.Equal(t, http.StatusCreated, status, string(body))
	sale, ok := decode(t, body)["sale"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), sale["id"])

	status, body, _ = call(t, app, http.MethodGet, "/api/products/A", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), decode(t, body)["stock"])

	status, _, _ = call(t, app, http.MethodPost, "/api/sales/1/cancel", tok, nil)
	assert.Equal(t, http.StatusCreated, status)
	status, body, _ = call(t, app, http.MethodPost, "/api/sales/1/cancel", tok, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CANCELLED", decode(t, body)["code"])

	status, _, _ = call(t, app, http.MethodPost, "/api/sales/abc/cancel", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _, _ = call(t, app, http.MethodPost, "/api/batches/99/return", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body, _ = call(t, app, http.MethodGet, "/api/products/A", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), decode(t, body)["stock"])
}

func TestEvents_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)
	tok := connect(t, app, "ana")

	status, body, _ := call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{"event": "regalo", "sku": "A"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode(t, body)["code"])

	status, body, _ = call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{"event": "venta", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode(t, body)["code"], "sin sku ni código de barras")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_PaginacionYRango(t *testing.T) {
	app := buildTestApp(t)
	tok := connect(t, app, "ana")
	for _, sku := range []string{"A", "B", "C"} {
		status, body, _ := call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{
			"event": "ingreso", "sku": sku, "name": "Producto " + sku, "quantity": 1, "purchase_price": "1",
		})
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body, _ := call(t, app, http.MethodGet, "/api/movements?limit=2&offset=1", "", nil)
	require.Equal(t, http.StatusOK, status)
	m := decode(t, body)
	assert.Len(t, m["items"], 2)
	assert.Equal(t, float64(3), m["page"].(map[string]interface{})["total"])

	status, body, _ = call(t, app, http.MethodGet, "/api/movements?sku=B", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode(t, body)["items"], 1)

	status, _, _ = call(t, app, http.MethodGet, "/api/movements?from=ayer", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/sales?to=2024-13-01", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = call(t, app, http.MethodGet, "/api/batches?section=otra", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, body, _ = call(t, app, http.MethodGet, "/api/batches?section=inventory", "", nil)
	require.Equal(t, http.StatusOK, status)
	var batches []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &batches))
	assert.Len(t, batches, 3)
}

func TestReports_ExportacionesYReposicion(t *testing.T) {
	app := buildTestApp(t)
	tok := connect(t, app, "ana")
	status, body, _ := call(t, app, http.MethodPost, "/api/events", tok, map[string]interface{}{
		"event": "ingreso", "sku": "A", "name": "Arroz", "quantity": 2, "purchase_price": "2", "sale_price": "3",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body, header := call(t, app, http.MethodGet, "/api/reports/inventory.csv", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, header.Get("Content-Type"), "text/csv")
	assert.Regexp(t, `attachment; filename="inventario-bodega-central-\d{4}-\d{2}-\d{2}\.csv"`, header.Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(string(body), "\uFEFFsku,name"))

	status, _, header = call(t, app, http.MethodGet, "/api/reports/daily.csv?date=2024-05-11", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, header.Get("Content-Disposition"), "historial-bodega-central-2024-05-11.csv")

	status, _, _ = call(t, app, http.MethodGet, "/api/reports/daily?date=11-05-2024", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = call(t, app, http.MethodGet, "/api/reports/inventory.pdf", "", nil)
	assert.Equal(t, http.StatusNotImplemented, status, "sin generador de PDF")

	status, body, _ = call(t, app, http.MethodGet, "/api/reports/summary", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), decode(t, body)["products"])

	status, body, _ = call(t, app, http.MethodGet, "/api/reports/replenishment?threshold=5", "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0]["sku"])

	status, _, _ = call(t, app, http.MethodGet, "/api/reports/replenishment?threshold=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

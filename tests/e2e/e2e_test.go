//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/config"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/infra"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/router"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("ventas_test"),
		tcPostgres.WithUsername("ventas"),
		tcPostgres.WithPassword("ventas"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		StoreName:          "Tienda E2E",
		LowStockThreshold:  10,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin staff with PIN 1234
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO staff (name, role, pin_hash, active)
		VALUES ('Admin E2E', 'admin', ?, true)
		ON CONFLICT (name) DO NOTHING`, string(hash)).Error)

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"pin": "1234"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full register cycle: product → sale → open-period summary → cut → history.
func TestE2E_SaleAndCashCutCycle(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name":    "Gaseosa 500ml",
			"price":   "25.50",
			"stock":   20,
			"barcode": "7890001000001",
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"product_id": prod.ID, "quantity": 3}},
		}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		Total decimal.Decimal `json:"total"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("76.50")))

	// Stock went 20 → 17
	getResp := do(t, env.server, "GET", "/v1/products/"+prod.ID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var got struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, getResp, &got)
	assert.Equal(t, 17, got.Stock)

	// Open period covers the sale
	sumResp := do(t, env.server, "GET", "/v1/cuts/summary", nil, env.token)
	require.Equal(t, http.StatusOK, sumResp.StatusCode)
	var summary struct {
		PeriodStart string          `json:"period_start"`
		SalesCount  int             `json:"sales_count"`
		SalesTotal  decimal.Decimal `json:"sales_total"`
	}
	decodeJSON(t, sumResp, &summary)
	assert.Equal(t, 1, summary.SalesCount)
	assert.True(t, summary.SalesTotal.Equal(decimal.RequireFromString("76.50")))

	// Close the period declaring 76.00 counted — difference -0.50
	closeResp := do(t, env.server, "POST", "/v1/cuts",
		jsonBody(t, map[string]any{
			"cut_type":     "shift",
			"period_start": summary.PeriodStart,
			"sales_count":  summary.SalesCount,
			"sales_total":  summary.SalesTotal,
			"actual_cash":  "76.00",
		}), env.token)
	require.Equal(t, http.StatusCreated, closeResp.StatusCode)
	var cut struct {
		Difference *decimal.Decimal `json:"difference"`
	}
	decodeJSON(t, closeResp, &cut)
	require.NotNil(t, cut.Difference)
	assert.True(t, cut.Difference.Equal(decimal.RequireFromString("-0.50")))

	// Replaying the same close must conflict: the window is gone
	replayResp := do(t, env.server, "POST", "/v1/cuts",
		jsonBody(t, map[string]any{
			"cut_type":     "shift",
			"period_start": summary.PeriodStart,
		}), env.token)
	replayResp.Body.Close()
	assert.Equal(t, http.StatusConflict, replayResp.StatusCode)

	histResp := do(t, env.server, "GET", "/v1/cuts/history", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
}

// Public price check requires no token and caches through Redis.
func TestE2E_PublicPriceCheck(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name":    "Agua Mineral 1L",
			"price":   "14.00",
			"stock":   50,
			"barcode": "7890001000002",
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	prodResp.Body.Close()

	for i := 0; i < 2; i++ { // second hit comes from cache
		resp := do(t, env.server, "GET", "/v1/price/7890001000002", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var price struct {
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		}
		decodeJSON(t, resp, &price)
		assert.Equal(t, "Agua Mineral 1L", price.Name)
		assert.True(t, price.Price.Equal(decimal.RequireFromString("14.00")))
	}

	missResp := do(t, env.server, "GET", "/v1/price/0000000000000", nil, "")
	missResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, missResp.StatusCode)
}

// Insufficient stock aborts the whole sale and leaves stock untouched.
func TestE2E_InsufficientStockConflict(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name":  "Ultimo en stock",
			"price": "9.99",
			"stock": 1,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"product_id": prod.ID, "quantity": 2}},
		}), env.token)
	saleResp.Body.Close()
	assert.Equal(t, http.StatusConflict, saleResp.StatusCode)

	getResp := do(t, env.server, "GET", "/v1/products/"+prod.ID, nil, env.token)
	var got struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, getResp, &got)
	assert.Equal(t, 1, got.Stock)
}

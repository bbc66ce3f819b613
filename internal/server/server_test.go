package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/permission"
	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gen := mockdata.New(1)
	app, err := New(Config{JWTSecret: "test-secret"},
		NewMemRepository(gen, 50), gen, permission.New(storage.NewMemStore()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return app
}

func decodeEnvelope[T any](t *testing.T, resp *http.Response) *response.Envelope[T] {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env response.Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, body)
	}
	return &env
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(types.LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	env := decodeEnvelope[types.LoginData](t, resp)
	if env.Data.Token == "" {
		t.Fatal("login returned no token")
	}
	return env.Data.Token
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp := get(t, app, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	body, _ := json.Marshal(types.LoginRequest{Username: "admin", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{
		"/api/assets", "/api/dashboard/metrics", "/api/risk/metrics",
	} {
		resp := get(t, app, path, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s without token: status = %d, want 401", path, resp.StatusCode)
		}
	}

	resp := get(t, app, "/api/assets", "not-a-jwt")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestListAssets_PagingAndFilter(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/assets?page=2&size=10", token)
	env := decodeEnvelope[types.AssetPage](t, resp)
	if !env.Success {
		t.Fatal("envelope not successful")
	}
	if len(env.Data.Data) != 10 || env.Data.Data[0].ID != 11 {
		t.Errorf("page 2 rows = %d starting id %d", len(env.Data.Data), env.Data.Data[0].ID)
	}
	if env.Data.Pagination.Total != 50 || env.Data.Pagination.TotalPages != 5 {
		t.Errorf("pagination = %+v", env.Data.Pagination)
	}
	if env.Data.Stats.Count != 10 {
		t.Errorf("stats.count = %d", env.Data.Stats.Count)
	}

	resp = get(t, app, "/api/assets?page=1&size=50&category=Stock", token)
	env = decodeEnvelope[types.AssetPage](t, resp)
	for _, a := range env.Data.Data {
		if a.AssetCategory != types.CategoryStock {
			t.Errorf("category filter leaked %s", a.AssetCategory)
		}
	}
}

func TestListAssets_Export(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/assets?export=true", token)
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("content type = %s", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "assets_export_") || !strings.Contains(cd, ".csv") {
		t.Errorf("content disposition = %s", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 51 {
		t.Errorf("csv lines = %d, want header + 50", len(lines))
	}
}

func TestGetAsset(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/assets/7", token)
	env := decodeEnvelope[types.Asset](t, resp)
	if env.Data.ID != 7 {
		t.Errorf("asset id = %d", env.Data.ID)
	}

	resp = get(t, app, "/api/assets/9999", token)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", resp.StatusCode)
	}
	fail := decodeEnvelope[any](t, resp)
	if fail.Success {
		t.Error("404 envelope marked success")
	}
}

func TestGetAssetHistory(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/assets/3/history?days=15", token)
	env := decodeEnvelope[[]types.HistoricalPrice](t, resp)
	if len(env.Data) != 15 {
		t.Errorf("history points = %d, want 15", len(env.Data))
	}
}

func TestDashboardMetrics_DerivedFromHoldings(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	assetsResp := get(t, app, "/api/assets?page=1&size=50", token)
	assetsEnv := decodeEnvelope[types.AssetPage](t, assetsResp)
	var wantTotal float64
	for _, a := range assetsEnv.Data.Data {
		wantTotal += a.MarketValue
	}

	resp := get(t, app, "/api/dashboard/metrics", token)
	env := decodeEnvelope[types.PortfolioMetrics](t, resp)
	if math.Abs(env.Data.TotalAssets-wantTotal) > 0.01*wantTotal {
		t.Errorf("totalAssets = %f, want ~%f", env.Data.TotalAssets, wantTotal)
	}
}

func TestDashboardAllocation_SumsToHundred(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/dashboard/allocation", token)
	env := decodeEnvelope[[]types.AssetAllocation](t, resp)
	if len(env.Data) == 0 {
		t.Fatal("no allocation rows")
	}
	var sum float64
	for _, row := range env.Data {
		sum += row.Value
		if row.Color == "" {
			t.Errorf("category %s has no color", row.Category)
		}
	}
	if math.Abs(sum-100) > 0.5 {
		t.Errorf("allocation sums to %f, want ~100", sum)
	}
}

func TestTrendAndRiskEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/trend/monthly-returns?months=6", token)
	monthly := decodeEnvelope[[]types.MonthlyReturn](t, resp)
	if len(monthly.Data) != 6 {
		t.Errorf("monthly rows = %d", len(monthly.Data))
	}

	resp = get(t, app, "/api/risk/drawdown?days=365", token)
	drawdown := decodeEnvelope[[]types.DrawdownDataPoint](t, resp)
	for i, p := range drawdown.Data {
		if p.Drawdown > 0 {
			t.Errorf("point %d drawdown = %f > 0", i, p.Drawdown)
		}
	}

	resp = get(t, app, "/api/risk/metrics", token)
	risk := decodeEnvelope[types.RiskMetrics](t, resp)
	if risk.Data.VaR95 <= 0 {
		t.Errorf("var95 = %f", risk.Data.VaR95)
	}
}

func TestPermissions_AdminOnly(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin", "admin123")
	userToken := login(t, app, "user1", "user123")

	resp := get(t, app, "/api/permissions", userToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin list status = %d, want 403", resp.StatusCode)
	}

	resp = get(t, app, "/api/permissions/users", adminToken)
	env := decodeEnvelope[[]types.UserPermission](t, resp)
	if len(env.Data) != 1 || env.Data[0].Role == types.RoleAdmin {
		t.Errorf("regular users = %+v", env.Data)
	}

	// Grant user1 the restricted page.
	body, _ := json.Marshal(fiber.Map{"allowedPages": []string{"/dashboard", "/risk-management"}})
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/permissions/%d", env.Data[0].UserID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	putResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	updated := decodeEnvelope[types.UserPermission](t, putResp)
	if len(updated.Data.AllowedPages) != 2 {
		t.Errorf("updated pages = %v", updated.Data.AllowedPages)
	}
}

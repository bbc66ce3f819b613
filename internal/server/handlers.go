package server

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Shaoyanting/HT-financial-system/internal/dataaccess"
	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/permission"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/crypto"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// categoryColors is the fixed palette for allocation slices, keyed by
// category so colors stay stable across queries.
var categoryColors = map[types.AssetCategory]string{
	types.CategoryCash:       "#5470c6",
	types.CategoryBond:       "#91cc75",
	types.CategoryStock:      "#fac858",
	types.CategoryFund:       "#ee6666",
	types.CategoryCommodity:  "#73c0de",
	types.CategoryRealEstate: "#3ba272",
	types.CategoryOther:      "#fc8452",
}

type account struct {
	user         types.User
	passwordHash string
}

// Handler serves the portfolio API.
type Handler struct {
	repo     AssetRepository
	gen      *mockdata.Generator
	perms    *permission.Service
	jwtSecr  []byte
	tokenTTL time.Duration
	accounts []account
}

// NewHandler builds the handler and seeds the demo accounts with hashed
// passwords.
func NewHandler(repo AssetRepository, gen *mockdata.Generator, perms *permission.Service, jwtSecret string, tokenTTL time.Duration) (*Handler, error) {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	h := &Handler{
		repo:     repo,
		gen:      gen,
		perms:    perms,
		jwtSecr:  []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
	for _, u := range mockdata.MockUsers {
		hash, err := crypto.HashPassword(u.Password)
		if err != nil {
			return nil, err
		}
		h.accounts = append(h.accounts, account{user: u.User, passwordHash: hash})
	}
	return h, nil
}

// Login issues a signed token for valid credentials.
// POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(response.Fail[any](fiber.StatusBadRequest, "invalid request body"))
	}

	for _, acct := range h.accounts {
		if acct.user.Username != req.Username {
			continue
		}
		if !crypto.CheckPassword(req.Password, acct.passwordHash) {
			break
		}

		token, err := h.signToken(acct.user)
		if err != nil {
			logger.Error().Err(err).Msg("failed to sign token")
			return c.Status(fiber.StatusInternalServerError).
				JSON(response.Fail[any](fiber.StatusInternalServerError, "failed to issue token"))
		}
		loginAttempts.WithLabelValues("success").Inc()
		return c.JSON(response.OK(types.LoginData{Token: token, User: acct.user}))
	}

	loginAttempts.WithLabelValues("rejected").Inc()
	return unauthorized(c, "invalid username or password")
}

func (h *Handler) signToken(user types.User) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "htfs",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecr)
}

// ListAssets answers the grid query: filter, sort, page and stats. With
// export=true the filtered set is served as a CSV attachment instead.
// GET /api/assets
func (h *Handler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}

	params := dataaccess.ListParams{
		Page:      c.QueryInt("page", 1),
		Size:      c.QueryInt("size", 10),
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		DateFrom:  c.Query("dateFrom"),
		DateTo:    c.Query("dateTo"),
	}

	if c.Query("export") == "true" {
		params.Page = 1
		params.Size = len(assets)
		if params.Size == 0 {
			params.Size = 1
		}
		page := dataaccess.QueryAssets(assets, params)

		assetExports.Inc()
		filename := "assets_export_" + time.Now().Format("20060102") + ".csv"
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(dataaccess.AssetsCSV(page.Data))
	}

	return c.JSON(response.OK(dataaccess.QueryAssets(assets, params)))
}

// GetAsset returns one holding.
// GET /api/assets/:id
func (h *Handler) GetAsset(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(response.Fail[any](fiber.StatusBadRequest, "invalid asset id"))
	}
	asset, err := h.repo.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if asset == nil {
		return c.Status(fiber.StatusNotFound).
			JSON(response.Fail[any](fiber.StatusNotFound, "asset not found"))
	}
	return c.JSON(response.OK(asset))
}

// GetAssetHistory returns the daily price series for one holding.
// GET /api/assets/:id/history
func (h *Handler) GetAssetHistory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(response.Fail[any](fiber.StatusBadRequest, "invalid asset id"))
	}
	asset, err := h.repo.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if asset == nil {
		return c.Status(fiber.StatusNotFound).
			JSON(response.Fail[any](fiber.StatusNotFound, "asset not found"))
	}
	days := c.QueryInt("days", 30)
	return c.JSON(response.OK(h.gen.HistoricalPrices(asset.Code, days)))
}

// GetDashboardMetrics returns the portfolio snapshot. The position totals
// come from the repository; derived ratios come from the analytics source.
// GET /api/dashboard/metrics
func (h *Handler) GetDashboardMetrics(c *fiber.Ctx) error {
	assets, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}

	metrics := h.gen.PortfolioMetrics()
	var totalValue, dailyPnL, totalPnL float64
	for _, a := range assets {
		totalValue += a.MarketValue
		dailyPnL += a.DailyGain
		totalPnL += a.TotalGain
	}
	metrics.TotalAssets = round2(totalValue)
	metrics.DailyPnL = round2(dailyPnL)
	metrics.TotalPnL = round2(totalPnL)

	return c.JSON(response.OK(metrics))
}

// GetDashboardAllocation returns each category's share of market value.
// GET /api/dashboard/allocation
func (h *Handler) GetDashboardAllocation(c *fiber.Ctx) error {
	assets, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}

	var total float64
	byCategory := map[types.AssetCategory]float64{}
	for _, a := range assets {
		byCategory[a.AssetCategory] += a.MarketValue
		total += a.MarketValue
	}

	rows := make([]types.AssetAllocation, 0, len(byCategory))
	for _, cat := range types.AllCategories {
		value, ok := byCategory[cat]
		if !ok {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = round2(value / total * 100)
		}
		rows = append(rows, types.AssetAllocation{
			Category: string(cat),
			Value:    pct,
			Color:    categoryColors[cat],
		})
	}
	return c.JSON(response.OK(rows))
}

// GetDashboardPerformance returns the dashboard trend series.
// GET /api/dashboard/performance
func (h *Handler) GetDashboardPerformance(c *fiber.Ctx) error {
	days := c.QueryInt("days", 180)
	return c.JSON(response.OK(h.gen.PerformanceData(days)))
}

// GetIndustryDistribution returns the industry breakdown.
// GET /api/dashboard/industry
func (h *Handler) GetIndustryDistribution(c *fiber.Ctx) error {
	return c.JSON(response.OK(h.gen.IndustryDistribution()))
}

// GetPortfolioTrend returns the trend page series.
// GET /api/trend/portfolio
func (h *Handler) GetPortfolioTrend(c *fiber.Ctx) error {
	days := c.QueryInt("days", 365)
	return c.JSON(response.OK(h.gen.PerformanceData(days)))
}

// GetBenchmarkData returns the benchmark series alone.
// GET /api/trend/benchmark
func (h *Handler) GetBenchmarkData(c *fiber.Ctx) error {
	days := c.QueryInt("days", 365)
	return c.JSON(response.OK(h.gen.BenchmarkData(days)))
}

// GetMonthlyReturns returns monthly portfolio vs benchmark returns.
// GET /api/trend/monthly-returns
func (h *Handler) GetMonthlyReturns(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	return c.JSON(response.OK(h.gen.MonthlyReturns(months)))
}

// GetTrendStats returns the trend summary.
// GET /api/trend/stats
func (h *Handler) GetTrendStats(c *fiber.Ctx) error {
	return c.JSON(response.OK(h.gen.TrendStats()))
}

// GetRiskMetrics returns the risk figures.
// GET /api/risk/metrics
func (h *Handler) GetRiskMetrics(c *fiber.Ctx) error {
	return c.JSON(response.OK(h.gen.RiskMetrics()))
}

// GetDrawdownData returns the drawdown series.
// GET /api/risk/drawdown
func (h *Handler) GetDrawdownData(c *fiber.Ctx) error {
	days := c.QueryInt("days", 365)
	return c.JSON(response.OK(h.gen.DrawdownData(days)))
}

// ListPermissions returns all permission rules. Admin only.
// GET /api/permissions
func (h *Handler) ListPermissions(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	return c.JSON(response.OK(h.perms.GetUserPermissions()))
}

// ListRegularUsers returns the rules for non-admin users. Admin only.
// GET /api/permissions/users
func (h *Handler) ListRegularUsers(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	return c.JSON(response.OK(h.perms.GetRegularUsers()))
}

// UpdatePermission replaces one user's allowed pages. Admin only.
// PUT /api/permissions/:userId
func (h *Handler) UpdatePermission(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(response.Fail[any](fiber.StatusBadRequest, "invalid user id"))
	}
	var body struct {
		AllowedPages []string `json:"allowedPages"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(response.Fail[any](fiber.StatusBadRequest, "invalid request body"))
	}
	if err := h.perms.UpdateUserPermission(userID, body.AllowedPages); err != nil {
		return err
	}
	return c.JSON(response.OK(h.perms.GetUserPermission(userID)))
}

// ResetPermissions restores default rules. Admin only.
// POST /api/permissions/reset
func (h *Handler) ResetPermissions(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	if err := h.perms.ResetPermissions(); err != nil {
		return err
	}
	return c.JSON(response.OK(h.perms.GetUserPermissions()))
}

func (h *Handler) requireAdmin(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil || user.Role != types.RoleAdmin {
		return c.Status(fiber.StatusForbidden).
			JSON(response.Fail[any](fiber.StatusForbidden, "admin role required"))
	}
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Package server is the reference portfolio API: the backend the client
// layer talks to, serving the same envelope and payload shapes the client
// decodes.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/permission"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// Config holds server wiring options.
type Config struct {
	AppName   string
	JWTSecret string
	TokenTTL  time.Duration
}

// New builds the fiber app with all routes mounted. The caller owns
// listening and shutdown.
func New(cfg Config, repo AssetRepository, gen *mockdata.Generator, perms *permission.Service) (*fiber.App, error) {
	if cfg.AppName == "" {
		cfg.AppName = "HT Financial System API"
	}

	h, err := NewHandler(repo, gen, perms, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestID())
	app.Use(requestLogger())
	app.Use(metricsMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "service": cfg.AppName})
	})
	app.Get("/metrics", metricsHandler())

	api := app.Group("/api")
	api.Post("/auth/login", h.Login)

	protected := api.Use(requireAuth(cfg.JWTSecret))

	protected.Get("/assets", h.ListAssets)
	protected.Get("/assets/:id", h.GetAsset)
	protected.Get("/assets/:id/history", h.GetAssetHistory)

	protected.Get("/dashboard/metrics", h.GetDashboardMetrics)
	protected.Get("/dashboard/allocation", h.GetDashboardAllocation)
	protected.Get("/dashboard/performance", h.GetDashboardPerformance)
	protected.Get("/dashboard/industry", h.GetIndustryDistribution)

	protected.Get("/trend/portfolio", h.GetPortfolioTrend)
	protected.Get("/trend/benchmark", h.GetBenchmarkData)
	protected.Get("/trend/monthly-returns", h.GetMonthlyReturns)
	protected.Get("/trend/stats", h.GetTrendStats)

	protected.Get("/risk/metrics", h.GetRiskMetrics)
	protected.Get("/risk/drawdown", h.GetDrawdownData)

	protected.Get("/permissions", h.ListPermissions)
	protected.Get("/permissions/users", h.ListRegularUsers)
	protected.Put("/permissions/:userId", h.UpdatePermission)
	protected.Post("/permissions/reset", h.ResetPermissions)

	return app, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	logger.Error().Err(err).Int("status", code).Str("path", c.Path()).Msg("request error")
	return c.Status(code).JSON(response.Fail[any](code, message))
}

package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/permission"
	"github.com/Shaoyanting/HT-financial-system/internal/server"
	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/pkg/config"
	"github.com/Shaoyanting/HT-financial-system/pkg/database"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
)

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		cfg = config.Default()
	}

	logger.Init("apiserver", cfg.Log.Level, cfg.Log.Pretty)
	logger.Info().Msg("Starting portfolio API server")
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load config, using defaults")
	}

	ctx := context.Background()
	gen := mockdata.NewRandom()

	// Real holdings when a database is configured, seeded demo data
	// otherwise.
	var repo server.AssetRepository
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := database.NewPoolFromDSN(ctx, dsn, 10)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("Connected to database")
		repo = server.NewPGRepository(pool)
	} else {
		logger.Warn().Msg("No DATABASE_URL, serving seeded demo holdings")
		repo = server.NewMemRepository(gen, 50)
	}

	// Permission rules live in redis when configured, in memory otherwise.
	var permStore storage.Store = storage.NewMemStore()
	if cfg.Storage.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to redis")
		permStore = storage.NewRedisStore(rdb, "htfs")
	}
	perms := permission.New(permStore)

	jwtSecret := cfg.Server.JWTSecret
	if jwtSecret == "" {
		logger.Warn().Msg("No JWT secret configured, using development default")
		jwtSecret = "dev-secret-change-me"
	}

	app, err := server.New(server.Config{JWTSecret: jwtSecret}, repo, gen, perms)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build server")
	}

	port := cfg.Server.Port
	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	if port == 0 {
		port = 8080
	}

	go func() {
		addr := cfg.Server.Host + ":" + strconv.Itoa(port)
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := app.Listen(addr); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}
}

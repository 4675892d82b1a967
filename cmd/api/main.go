package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/erp-records-backend/api/routes"
	"github.com/angelmondragon/erp-records-backend/internal/records"
	"github.com/angelmondragon/erp-records-backend/internal/workspace"
	"github.com/angelmondragon/erp-records-backend/pkg/config"
	"github.com/angelmondragon/erp-records-backend/pkg/db"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
	"github.com/angelmondragon/erp-records-backend/pkg/metrics"
	"github.com/angelmondragon/erp-records-backend/pkg/migrate"
	"github.com/angelmondragon/erp-records-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(runCtx, cfg.DB, logg)
	if err != nil {
		logg.Error(runCtx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(runCtx, cfg, logg, dbClient); err != nil {
		logg.Error(runCtx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	redisClient, err := redis.New(runCtx, cfg.Redis, logg)
	if err != nil {
		logg.Error(runCtx, "failed to bootstrap redis", err)
		_ = dbClient.Close()
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing connections", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recordsService, err := records.NewService(records.ServiceParams{
		Store:     records.NewRepository(dbClient.DB()),
		Logger:    logg,
		Metrics:   metrics.NewStoreMetrics(registry),
		SheetName: cfg.Records.ExportSheetName,
	})
	if err != nil {
		logg.Error(runCtx, "failed to create records service", err)
		os.Exit(1)
	}

	workspaceStore, err := workspace.NewRedisStore(redisClient, cfg.Workspace.TTL)
	if err != nil {
		logg.Error(runCtx, "failed to create workspace store", err)
		os.Exit(1)
	}

	workspaceService, err := workspace.NewService(workspace.ServiceParams{
		Store:           workspaceStore,
		Records:         recordsService,
		Logger:          logg,
		DefaultPageSize: cfg.Records.DefaultPageSize,
		MaxPageSize:     cfg.Records.MaxPageSize,
	})
	if err != nil {
		logg.Error(runCtx, "failed to create workspace service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"db_driver": cfg.DB.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			DB:               dbClient,
			Redis:            redisClient,
			IdempotencyStore: redisClient,
			Records:          recordsService,
			Workspaces:       workspaceService,
			HTTPMetrics:      metrics.NewHTTPMetrics(registry),
			Gatherer:         registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			stop()
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

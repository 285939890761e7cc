package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adnanyousaf/landtrack-backend/internal/dashboard"
	"github.com/adnanyousaf/landtrack-backend/internal/store"
	"github.com/adnanyousaf/landtrack-backend/pkg/config"
	"github.com/adnanyousaf/landtrack-backend/pkg/db"
	"github.com/adnanyousaf/landtrack-backend/pkg/logger"
	"github.com/adnanyousaf/landtrack-backend/pkg/metrics"
	"github.com/adnanyousaf/landtrack-backend/pkg/migrate"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "landtrack"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "landtrack",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755); err != nil {
		logg.Error(ctx, "failed to create data dir", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to open database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	if err := dbClient.Ping(ctx); err != nil {
		logg.Error(ctx, "database not reachable", err)
		os.Exit(1)
	}

	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)
	recordStore, err := store.NewService(store.ServiceParams{
		Repo:    store.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Logger:  logg,
		Metrics: storeMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to wire record store", err)
		os.Exit(1)
	}

	dash, err := dashboard.NewService(recordStore)
	if err != nil {
		logg.Error(ctx, "failed to wire dashboard", err)
		os.Exit(1)
	}

	stats, err := dash.Stats(ctx)
	if err != nil {
		logg.Error(ctx, "failed to read store", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"lands":          stats.TotalLands,
		"farmers":        stats.TotalFarmers,
		"total_expenses": stats.TotalExpenses,
		"total_income":   stats.TotalIncome,
	})
	logg.Info(ctx, "landtrack store ready")
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wattline/wattline/internal/aggregation"
	coreagg "github.com/wattline/wattline/internal/core/aggregation"
	corecfg "github.com/wattline/wattline/internal/core/config"
	"github.com/wattline/wattline/internal/core/storage"
	"github.com/wattline/wattline/internal/core/storage/memory"
	"github.com/wattline/wattline/internal/core/storage/postgres"
	"github.com/wattline/wattline/internal/ingestion"
	"github.com/wattline/wattline/internal/migrations"
	"github.com/wattline/wattline/internal/projection"
	"github.com/wattline/wattline/internal/server"
	"github.com/wattline/wattline/internal/tariff"
)

// backend is the storage surface the binary needs from either store.
type backend interface {
	storage.SampleStore
	storage.ResourceRepository
	storage.TariffRepository
}

func main() {
	configPath := flag.String("config", "wattline.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"address", cfg.Server.Addr(),
		"timezone", cfg.Aggregation.Timezone,
	)
	loc := cfg.Aggregation.Location()

	// 2. Initialize Storage
	var (
		store backend
		db    *sql.DB
	)
	switch cfg.Database.Type {
	case "memory":
		slog.Warn("Using in-memory storage; data is lost on restart")
		store = memory.New()
	default:
		// Migrations run before the adapter prepares its statements.
		db, err = postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			slog.Error("Failed to open database", "error", err)
			os.Exit(1)
		}
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		adapter, err := postgres.NewAdapterFromDB(db)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()
		store = adapter
	}

	// 3. Initialize Aggregation Registry
	recipes, err := coreagg.LoadRecipeFiles(cfg.Aggregation.RecipeDir)
	if err != nil {
		slog.Error("Failed to load recipe files", "dir", cfg.Aggregation.RecipeDir, "error", err)
		os.Exit(1)
	}
	registry, err := coreagg.NewRegistry(append(coreagg.Builtin(), recipes...)...)
	if err != nil {
		slog.Error("Failed to build aggregation registry", "error", err)
		os.Exit(1)
	}
	slog.Info("Aggregation registry initialized",
		"builtin", len(coreagg.Builtin()),
		"from_files", len(recipes),
	)

	tariffs := tariff.NewCachedLister(store, tariff.NewCache(cfg.Aggregation.TariffCacheCapacity, cfg.Aggregation.TariffCacheTTL))

	// 4. Initialize Ingestion
	resourceStore := ingestion.NewResourceStore(store, store, ingestion.Options{
		MaxPeriodsForInterpolation:       cfg.Ingestion.MaxPeriodsForInterpolation,
		MaxMissedPeriodsForInterpolation: cfg.Ingestion.MaxMissedPeriodsForInterpolation,
		MaxInterpolationRange:            cfg.Ingestion.MaxInterpolationRange,
		Location:                         loc,
	})
	ingestionSvc := ingestion.NewService(resourceStore, store, cfg.Server.MaxBodySizeMB)

	// 5. Initialize Projection (query API)
	engine := projection.NewEngine(registry, store, tariffs)
	projectionSvc := projection.NewService(engine, store, loc)

	// 6. Initialize Rollup Scheduler
	scheduler := aggregation.NewScheduler(resourceStore, store, aggregation.Options{
		Interval:         cfg.Rollup.Interval,
		WorkerCount:      cfg.Rollup.WorkerCount,
		DefaultRetention: cfg.Rollup.DefaultRetention,
	})

	// 7. Initialize Server
	srv := server.New(cfg.Server.Addr(), db, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)
	if cfg.Rollup.Enabled {
		srv.AddCheck("rollup", scheduler.Health)
	}

	// 8. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	schedulerDone := make(chan struct{})
	if cfg.Rollup.Enabled {
		go func() {
			defer close(schedulerDone)
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		close(schedulerDone)
		slog.Info("Rollup scheduler disabled by config")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		cancel()
	}

	<-schedulerDone
	slog.Info("Shutdown complete")
}

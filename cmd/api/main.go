package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/samirrijal/listingmap/internal/adapters/dataset"
	"github.com/samirrijal/listingmap/internal/adapters/filestore"
	"github.com/samirrijal/listingmap/internal/adapters/http"
	"github.com/samirrijal/listingmap/internal/adapters/memory"
	natsadapter "github.com/samirrijal/listingmap/internal/adapters/nats"
	"github.com/samirrijal/listingmap/internal/adapters/postgres"
	"github.com/samirrijal/listingmap/internal/adapters/valkey"
	"github.com/samirrijal/listingmap/internal/core/ports"
	"github.com/samirrijal/listingmap/internal/core/usecases"
	"github.com/samirrijal/listingmap/internal/pkg/config"
	"github.com/samirrijal/listingmap/internal/pkg/logging"
	"github.com/samirrijal/listingmap/internal/pkg/metrics"
	"github.com/samirrijal/listingmap/internal/pkg/telemetry"
)

// polygonStore is what the API needs from a polygon backend.
type polygonStore interface {
	ports.PolygonRepository
	http.Pinger
}

func main() {
	cfg, err := config.Load("listingmap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Listing dataset, loaded once and shared read-only
	listingRepo, err := dataset.Load(cfg.Storage.ListingsFile)
	if err != nil {
		log.Fatalf("listings: %v", err)
	}
	slog.Info("listing dataset loaded", "path", cfg.Storage.ListingsFile, "count", listingRepo.Count())

	// Polygon + saved-search stores
	var (
		polygons polygonStore
		searches ports.SavedSearchRepository
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		go reportPoolStats(ctx, db)

		polygons = postgres.NewPolygonRepo(db)
		searches = filestore.NewSavedSearchRepo(cfg.Storage.SavedSearchFile)
	case config.BackendMemory:
		polygons = memory.NewPolygonRepo()
		searches = memory.NewSavedSearchRepo()
	default:
		polygons = filestore.NewPolygonRepo(cfg.Storage.PolygonFile)
		searches = filestore.NewSavedSearchRepo(cfg.Storage.SavedSearchFile)
	}
	slog.Info("storage ready", "backend", cfg.Storage.Backend)

	deps := &http.Dependencies{
		Store:       polygons,
		RateLimit:   cfg.Server.RateLimit,
		OpenAPIPath: http.DefaultOpenAPIPath,
	}

	// Cache (optional). Interface fields stay nil unless the adapter is up.
	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		c, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer c.Close()
			cache = c
			deps.Cache = c
		}
	}

	// NATS (optional)
	var publisher ports.EventPublisher
	if cfg.NATS.Enabled {
		p, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer p.Close()
			publisher = p
		}

		// Raw connection for the WebSocket relay
		conn, err := natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		} else {
			events := natsadapter.NewSubscriber(conn)
			defer events.Close()
			deps.Events = events
		}
	}

	// Use cases
	polygonSvc := usecases.NewPolygonService(polygons, cache, publisher)
	deps.Polygons = polygonSvc
	deps.Listings = usecases.NewListingService(listingRepo, polygonSvc)
	deps.SavedSearches = usecases.NewSavedSearchService(searches, publisher)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Listing Map API",
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// reportPoolStats publishes connection pool gauges until ctx is done.
func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		}
	}
}

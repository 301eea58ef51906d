package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	corecfg "github.com/corsa-lab/project-corsa/internal/core/config"
	"github.com/corsa-lab/project-corsa/internal/core/region"
	"github.com/corsa-lab/project-corsa/internal/core/storage/memory"
	"github.com/corsa-lab/project-corsa/internal/ingestion"
	"github.com/corsa-lab/project-corsa/internal/metrics"
	"github.com/corsa-lab/project-corsa/internal/middleware"
	"github.com/corsa-lab/project-corsa/internal/search"
	"github.com/corsa-lab/project-corsa/internal/server"
)

func main() {
	configPath := flag.String("config", "corsa.yaml", "Path to configuration file")
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
	slog.Info("Loaded config", "config", cfg)

	// 2. Load Region Hierarchy
	regions, err := region.Load(cfg.Regions.Path)
	if err != nil {
		slog.Warn("Region hierarchy unavailable, searches degrade to exact region match",
			"path", cfg.Regions.Path, "error", err)
		regions = region.New()
	} else {
		slog.Info("Region hierarchy loaded", "path", cfg.Regions.Path, "regions", regions.Size())
	}

	// 3. Initialize Storage (in-memory offer store)
	store := memory.New()

	// 4. Initialize Ingestion
	ingestionSvc := ingestion.NewService(store, cfg.Server.MaxBodySizeMB)

	// 5. Initialize Search (query API)
	searchSvc := search.NewService(store, regions)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, regions, cfg.Server.Mode)

	// The scrape endpoint is registered before the middleware chain so
	// scrapes do not count themselves.
	if cfg.Metrics.Enabled {
		srv.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	srv.Engine.Use(metrics.Middleware())
	if cfg.RateLimit.Enabled {
		srv.Engine.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst))
		slog.Info("Rate limiting enabled",
			"requests_per_minute", cfg.RateLimit.RequestsPerMinute,
			"burst", cfg.RateLimit.Burst)
	}

	ingestionSvc.RegisterRoutes(srv.Engine)
	searchSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
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
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

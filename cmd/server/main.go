package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roadscope/api/internal/analytics"
	"github.com/roadscope/api/internal/config"
	"github.com/roadscope/api/internal/dataset"
	apierrors "github.com/roadscope/api/internal/errors"
	"github.com/roadscope/api/internal/handlers"
	"github.com/roadscope/api/internal/logger"
	"github.com/roadscope/api/internal/middleware"
)

const (
	shutdownTimeout = 30 * time.Second
	// initialLoadTimeout bounds the background load at startup; millions of
	// rows fit comfortably within it.
	initialLoadTimeout = 10 * time.Minute
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Roadscope API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Dataset store with a logging progress observer
	store := dataset.NewStore(
		dataset.Sources{
			AccidentsPath: cfg.Data.AccidentsPath,
			VehiclesPath:  cfg.Data.VehiclesPath,
		},
		cfg.Data.BatchSize,
		log,
		func(stage string, processed, total int) {
			log.Debug("Loading source file", map[string]interface{}{
				"stage":     stage,
				"processed": processed,
				"total":     total,
			})
		},
	)

	// Build the unified table in the background so startup is not blocked.
	// If the source files are absent the service starts anyway and waits
	// for an upload.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
		defer cancel()

		if _, err := store.Load(ctx); err != nil {
			if errors.Is(err, dataset.ErrSourceUnavailable) {
				log.Warn("Source files not found; waiting for upload", map[string]interface{}{
					"accidents": cfg.Data.AccidentsPath,
					"vehicles":  cfg.Data.VehiclesPath,
				})
				return
			}
			log.Error("Initial dataset load failed", err, nil)
		}
	}()

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Unmatched routes get the standard error envelope
	router.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(store, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Precomputed chart and map artifacts from the offline batch job
	router.Static("/maps", cfg.Data.MapsDir)

	// Initialize service layer
	analyticsService := analytics.NewService(store, log)

	// Initialize handlers
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	datasetHandler := handlers.NewDatasetHandler(store, cfg.Data)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/summary", analyticsHandler.Summary)
		v1.POST("/datasets", datasetHandler.Upload)

		stats := v1.Group("/analytics")
		{
			stats.GET("/hours", analyticsHandler.Hours)
			stats.GET("/demographics", analyticsHandler.Demographics)
			stats.GET("/geography", analyticsHandler.Geography)
			stats.GET("/junctions", analyticsHandler.Junctions)
			stats.GET("/risk", analyticsHandler.Risk)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

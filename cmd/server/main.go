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

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/handlers"
	"weather-dashboard/internal/loader"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repository"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("dashboard-api", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting weather dashboard API server", logging.Fields{
		"version":        "1.0.0",
		"server_host":    cfg.Server.Host,
		"server_port":    cfg.Server.Port,
		"dataset_source": cfg.Dataset.Source,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("weather_dashboard")

	// Load the dataset once; it is read-only for the life of the process.
	datasetService := services.NewDatasetService(logger, metricsCollector)

	var data *models.Dataset
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		db, err := database.NewPostgresDB(&database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		}, logger, metricsCollector)
		if err != nil {
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to connect to database", logging.Fields{}, err)
		}
		defer db.Close()

		datasetRepo := repository.NewDatasetRepository(db, logger, metricsCollector)
		data, err = datasetService.LoadFromArchive(ctx, datasetRepo)
		if err != nil {
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to load dataset from archive", logging.Fields{}, err)
		}
	default:
		data, err = datasetService.LoadFromFile(ctx, cfg.Dataset.Path)
		if err != nil {
			// No partial dashboard: a missing or broken file halts startup
			// with a user-facing message.
			if errors.Is(err, loader.ErrFileNotFound) {
				fmt.Fprintf(os.Stderr, "CSV file not found! Please place %q next to the server or set DATASET_PATH.\n", cfg.Dataset.Path)
			}
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to load dataset", logging.Fields{
				"path": cfg.Dataset.Path,
			}, err)
		}
	}

	// Initialize services
	dashboardService := services.NewDashboardService(data, logger, metricsCollector)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger, metricsCollector)

	// Setup router
	router := mux.NewRouter()

	// Register routes
	dashboardHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{})

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}

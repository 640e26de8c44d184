package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/dataset"
	"weather-dashboard/internal/insights"
	"weather-dashboard/internal/repository"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

func main() {
	// Parse command-line flags
	filePath := flag.String("file", "weather_trends.csv", "CSV file to archive")
	batchSize := flag.Int("batch-size", 1000, "Number of records to insert in each batch")
	dryRun := flag.Bool("dry-run", false, "Load and summarize without writing to the database")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("dashboard-archiver", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[ARCHIVER_START] Starting dataset archiving", logging.Fields{
		"version":    "1.0.0",
		"file":       *filePath,
		"batch_size": *batchSize,
		"dry_run":    *dryRun,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("dashboard_archiver")

	// Load and normalize the dataset
	datasetService := services.NewDatasetService(logger, metricsCollector)
	data, err := datasetService.LoadFromFile(ctx, *filePath)
	if err != nil {
		logger.Fatal(ctx, "[ARCHIVER_ERROR] Failed to load dataset", logging.Fields{
			"file": *filePath,
		}, err)
	}

	if !*dryRun {
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
			logger.Fatal(ctx, "[ARCHIVER_ERROR] Failed to connect to database", logging.Fields{}, err)
		}
		defer db.Close()

		datasetRepo := repository.NewDatasetRepository(db, logger, metricsCollector)
		if err := datasetRepo.ReplaceDataset(ctx, data.Records, *batchSize); err != nil {
			logger.Fatal(ctx, "[ARCHIVER_ERROR] Failed to archive dataset", logging.Fields{}, err)
		}
	}

	// Print results
	years := dataset.Years(data)
	regions := dataset.Regions(data)
	summary := dataset.Summarize(data)

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("ARCHIVING COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("File:            %s\n", *filePath)
	fmt.Printf("Records:         %d\n", data.Len())
	fmt.Printf("Years:           %v\n", years)
	fmt.Printf("Regions:         %v\n", regions)
	if len(data.ExtraColumns) > 0 {
		fmt.Printf("Extra Columns:   %v\n", data.ExtraColumns)
	}
	fmt.Println()
	fmt.Println("Dataset-wide means:")
	printMean("Temperature", summary.Temperature)
	printMean("Rainfall", summary.Rainfall)
	printMean("Humidity", summary.Humidity)

	fmt.Println()
	fmt.Println("Insights:")
	for _, finding := range insights.FromSummary(summary) {
		fmt.Printf("  - %s\n", finding.Message)
	}

	logger.Info(ctx, "[ARCHIVER_COMPLETE] Archiving completed successfully", logging.Fields{
		"records": data.Len(),
		"years":   len(years),
		"regions": len(regions),
		"dry_run": *dryRun,
	})
}

func printMean(name string, mean *float64) {
	if mean == nil {
		fmt.Printf("  %-12s n/a\n", name+":")
		return
	}
	fmt.Printf("  %-12s %.2f\n", name+":", *mean)
}

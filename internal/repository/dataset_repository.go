package repository

import (
	"context"
	"fmt"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// DatasetRepository provides access to the Postgres dataset archive. The
// archive stores one normalized snapshot; an ordinal column preserves the
// source file's insertion order. Extra (unrecognized) columns are not
// archived, the CSV remains the primary source.
type DatasetRepository interface {
	// ReplaceDataset overwrites the archive with the given records.
	ReplaceDataset(ctx context.Context, records []models.Record, batchSize int) error

	// LoadDataset returns the archived records in insertion order.
	LoadDataset(ctx context.Context) (*models.Dataset, error)

	// CountRecords returns the number of archived records.
	CountRecords(ctx context.Context) (int, error)

	HealthCheck(ctx context.Context) error
}

// archiveRow maps one dashboard_records row. Nullable columns mirror the
// Record null semantics.
type archiveRow struct {
	Ordinal     int      `db:"ordinal"`
	Year        *int     `db:"year"`
	Month       *int     `db:"month"`
	Region      string   `db:"region"`
	Temperature *float64 `db:"temperature"`
	Rainfall    *float64 `db:"rainfall"`
	Humidity    *float64 `db:"humidity"`
}

// datasetRepository implements DatasetRepository
type datasetRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) DatasetRepository {
	return &datasetRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ReplaceDataset truncates the archive and batch-inserts the records inside
// a single transaction.
func (r *datasetRepository) ReplaceDataset(ctx context.Context, records []models.Record, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 1000
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE dashboard_records`); err != nil {
		r.metrics.RecordDBError("truncate_error")
		return fmt.Errorf("failed to truncate archive: %w", err)
	}

	query := `
		INSERT INTO dashboard_records (
			ordinal, year, month, region, temperature, rainfall, humidity
		)
		VALUES (:ordinal, :year, :month, :region, :temperature, :rainfall, :humidity)
	`

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		rows := make([]archiveRow, 0, end-start)
		for i, rec := range records[start:end] {
			rows = append(rows, archiveRow{
				Ordinal:     start + i,
				Year:        rec.Year,
				Month:       rec.Month,
				Region:      rec.Region,
				Temperature: rec.Temperature,
				Rainfall:    rec.Rainfall,
				Humidity:    rec.Humidity,
			})
		}

		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			r.metrics.RecordDBError("batch_insert_error")
			return fmt.Errorf("failed to insert archive batch: %w", err)
		}

		r.metrics.ArchiveBatchSize.Observe(float64(len(rows)))
		r.metrics.ArchivedRecordsTotal.Add(float64(len(rows)))
	}

	if err := tx.Commit(); err != nil {
		r.metrics.RecordDBError("commit_error")
		return fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	r.logger.Info(ctx, "[REPO_ARCHIVE] Dataset archived", logging.Fields{
		"records":    len(records),
		"batch_size": batchSize,
	})

	return nil
}

// LoadDataset retrieves the archived snapshot in insertion order.
func (r *datasetRepository) LoadDataset(ctx context.Context) (*models.Dataset, error) {
	query := `
		SELECT ordinal, year, month, region, temperature, rainfall, humidity
		FROM dashboard_records
		ORDER BY ordinal
	`

	var rows []archiveRow
	if err := r.db.SelectContext(ctx, "load_dataset", &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load archived dataset: %w", err)
	}

	ds := &models.Dataset{}
	for _, row := range rows {
		ds.Records = append(ds.Records, models.Record{
			Year:        row.Year,
			Month:       row.Month,
			Region:      row.Region,
			Temperature: row.Temperature,
			Rainfall:    row.Rainfall,
			Humidity:    row.Humidity,
		})
	}

	r.logger.Debug(ctx, "[REPO_LOAD] Archived dataset loaded", logging.Fields{
		"records": len(ds.Records),
	})

	return ds, nil
}

// CountRecords returns the number of archived records.
func (r *datasetRepository) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, "count_records", &count, `SELECT COUNT(*) FROM dashboard_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to count archived records: %w", err)
	}
	return count, nil
}

// HealthCheck verifies database connectivity.
func (r *datasetRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

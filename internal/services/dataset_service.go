package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weather-dashboard/internal/dataset"
	"weather-dashboard/internal/loader"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repository"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// DatasetService builds the in-memory dataset at startup. The dataset is the
// single write of the process; everything downstream reads it.
type DatasetService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewDatasetService creates a new dataset service
func NewDatasetService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *DatasetService {
	return &DatasetService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// LoadFromFile loads and normalizes a CSV dataset. A missing file or a
// structurally broken table is fatal to the caller; malformed cells are not,
// they degrade to null during normalization.
func (s *DatasetService) LoadFromFile(ctx context.Context, path string) (*models.Dataset, error) {
	startTime := time.Now()

	s.logger.Info(ctx, "[LOAD_START] Loading dataset from file", logging.Fields{
		"path":  path,
		"stage": "INITIALIZATION",
	})

	raw, err := loader.Load(path)
	if err != nil {
		var parseErr *loader.ParseError
		switch {
		case errors.Is(err, loader.ErrFileNotFound):
			s.metrics.RecordLoadError("file_not_found")
		case errors.As(err, &parseErr):
			s.metrics.RecordLoadError("parse_error")
		default:
			s.metrics.RecordLoadError("io_error")
		}
		s.logger.Error(ctx, "[LOAD_ERROR] Dataset load failed", logging.Fields{
			"path": path,
		}, err)
		return nil, err
	}

	ds := dataset.Normalize(raw)

	duration := time.Since(startTime)
	s.metrics.DatasetLoadDuration.Observe(duration.Seconds())
	s.metrics.RecordDatasetLoaded(ds.Len(), raw.DroppedRows)

	if raw.DroppedRows > 0 {
		s.logger.Warn(ctx, "[LOAD_DROPPED_ROWS] Ragged rows dropped", logging.Fields{
			"path":         path,
			"dropped_rows": raw.DroppedRows,
		})
	}

	s.logger.Info(ctx, "[LOAD_COMPLETE] Dataset loaded", logging.Fields{
		"path":             path,
		"records":          ds.Len(),
		"dropped_rows":     raw.DroppedRows,
		"encoding":         raw.Encoding,
		"extra_columns":    ds.ExtraColumns,
		"duration_seconds": duration.Seconds(),
		"stage":            "COMPLETE",
	})

	return ds, nil
}

// LoadFromArchive loads the normalized dataset snapshot from the Postgres
// archive, preserving the original insertion order.
func (s *DatasetService) LoadFromArchive(ctx context.Context, repo repository.DatasetRepository) (*models.Dataset, error) {
	startTime := time.Now()

	s.logger.Info(ctx, "[LOAD_START] Loading dataset from archive", logging.Fields{
		"stage": "INITIALIZATION",
	})

	ds, err := repo.LoadDataset(ctx)
	if err != nil {
		s.metrics.RecordLoadError("archive_error")
		s.logger.Error(ctx, "[LOAD_ERROR] Archive load failed", logging.Fields{}, err)
		return nil, fmt.Errorf("failed to load dataset from archive: %w", err)
	}

	duration := time.Since(startTime)
	s.metrics.DatasetLoadDuration.Observe(duration.Seconds())
	s.metrics.RecordDatasetLoaded(ds.Len(), 0)

	s.logger.Info(ctx, "[LOAD_COMPLETE] Dataset loaded", logging.Fields{
		"records":          ds.Len(),
		"duration_seconds": duration.Seconds(),
		"stage":            "COMPLETE",
	})

	return ds, nil
}

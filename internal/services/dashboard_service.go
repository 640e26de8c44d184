package services

import (
	"context"
	"fmt"

	"weather-dashboard/internal/dataset"
	"weather-dashboard/internal/insights"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// DashboardService computes dashboard views over the loaded dataset. The
// dataset is read-only here; each view is recomputed per request and
// discarded.
type DashboardService struct {
	data    *models.Dataset
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(data *models.Dataset, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *DashboardService {
	return &DashboardService{
		data:    data,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Options lists the valid selection inputs derived from the dataset.
type Options struct {
	Years      []int              `json:"years"`
	Regions    []string           `json:"regions"`
	Metrics    []models.Metric    `json:"metrics"`
	ChartTypes []models.ChartType `json:"chart_types"`
}

// SeriesPoint is one month-ordered observation for time-series charts.
type SeriesPoint struct {
	Month  *int     `json:"month"`
	Region string   `json:"region"`
	Value  *float64 `json:"value"`
}

// MetricSeries carries the chart data for one selected metric: month-ordered
// points for time-series charts, per-region group means for categorical
// charts.
type MetricSeries struct {
	Metric models.Metric       `json:"metric"`
	Points []SeriesPoint       `json:"points,omitempty"`
	Groups []dataset.GroupMean `json:"groups,omitempty"`
}

// DashboardView is everything the presentation layer needs for one
// selection.
type DashboardView struct {
	Selection    models.Selection           `json:"selection"`
	Records      []models.Record            `json:"records"`
	Summary      models.Summary             `json:"summary"`
	Series       []MetricSeries             `json:"series,omitempty"`
	Correlations *dataset.CorrelationMatrix `json:"correlations,omitempty"`
	Findings     []insights.Finding         `json:"findings"`
}

// Dataset returns the full normalized dataset for the complete-dataset view.
func (s *DashboardService) Dataset() *models.Dataset {
	return s.data
}

// Options returns the valid selection inputs. The region list leads with the
// "All" sentinel.
func (s *DashboardService) Options() Options {
	regions := append([]string{models.RegionAll}, dataset.Regions(s.data)...)
	return Options{
		Years:      dataset.Years(s.data),
		Regions:    regions,
		Metrics:    models.Metrics(),
		ChartTypes: models.ChartTypes(),
	}
}

// ValidateSelection rejects selections whose year or region is not present
// in the dataset, or with an empty metric set.
func (s *DashboardService) ValidateSelection(sel models.Selection) error {
	yearOK := false
	for _, y := range dataset.Years(s.data) {
		if y == sel.Year {
			yearOK = true
			break
		}
	}
	if !yearOK {
		return &models.ValidationError{
			Field:   "year",
			Value:   fmt.Sprintf("%d", sel.Year),
			Message: fmt.Sprintf("year %d is not present in the dataset", sel.Year),
		}
	}

	if sel.Region != models.RegionAll {
		regionOK := false
		for _, r := range dataset.Regions(s.data) {
			if r == sel.Region {
				regionOK = true
				break
			}
		}
		if !regionOK {
			return &models.ValidationError{
				Field:   "region",
				Value:   sel.Region,
				Message: fmt.Sprintf("region %q is not present in the dataset", sel.Region),
			}
		}
	}

	if len(sel.Metrics) == 0 {
		return &models.ValidationError{
			Field:   "metrics",
			Message: "at least one metric must be selected",
		}
	}

	return nil
}

// BuildView computes the filtered subset, summary, chart series, and insight
// findings for one selection. A selection matching zero records is valid:
// means come back null and the findings report no data.
func (s *DashboardService) BuildView(ctx context.Context, sel models.Selection) (*DashboardView, error) {
	if err := s.ValidateSelection(sel); err != nil {
		return nil, err
	}

	timer := s.metrics.NewTimer(s.metrics.ViewBuildDuration.WithLabelValues(string(sel.Chart)))
	defer timer.ObserveDuration()

	filtered := dataset.Filter(s.data, sel.Year, sel.Region)
	summary := dataset.Summarize(filtered)

	view := &DashboardView{
		Selection: sel,
		Records:   filtered.Records,
		Summary:   summary,
		Findings:  insights.FromSummary(summary),
	}

	switch {
	case sel.Chart.IsTimeSeries():
		sorted := dataset.SortByMonth(filtered)
		for _, m := range sel.Metrics {
			series := MetricSeries{Metric: m}
			for i := range sorted.Records {
				rec := &sorted.Records[i]
				series.Points = append(series.Points, SeriesPoint{
					Month:  rec.Month,
					Region: rec.Region,
					Value:  rec.MetricValue(m),
				})
			}
			view.Series = append(view.Series, series)
		}
	case sel.Chart.IsCategorical():
		for _, m := range sel.Metrics {
			view.Series = append(view.Series, MetricSeries{
				Metric: m,
				Groups: dataset.GroupMeans(filtered, m),
			})
		}
	case sel.Chart == models.ChartHeatmap:
		matrix := dataset.Correlations(filtered)
		view.Correlations = &matrix
	}

	s.logger.Debug(ctx, "[VIEW_BUILT] Dashboard view computed", logging.Fields{
		"year":    sel.Year,
		"region":  sel.Region,
		"chart":   sel.Chart,
		"metrics": sel.Metrics,
		"matched": len(view.Records),
	})

	return view, nil
}

package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"weather-dashboard/internal/models"
)

// Summarize computes the arithmetic mean of each metric over the non-null
// values in the given subset. A metric with no numeric data (including the
// empty dataset) yields a nil mean, not zero and not an error.
func Summarize(ds *models.Dataset) models.Summary {
	return models.Summary{
		Temperature: metricMean(ds, models.MetricTemperature),
		Rainfall:    metricMean(ds, models.MetricRainfall),
		Humidity:    metricMean(ds, models.MetricHumidity),
	}
}

func metricMean(ds *models.Dataset, m models.Metric) *float64 {
	var vals []float64
	for _, rec := range ds.Records {
		if v := rec.MetricValue(m); v != nil {
			vals = append(vals, *v)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	mean := stat.Mean(vals, nil)
	return &mean
}

// GroupMean is one region's mean for a metric.
type GroupMean struct {
	Region string  `json:"region"`
	Mean   float64 `json:"mean"`
}

// GroupMeans computes the per-region mean of a metric, regions sorted
// ascending by name. Regions with no numeric data for the metric are
// omitted rather than emitted as null entries.
func GroupMeans(ds *models.Dataset, m models.Metric) []GroupMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range ds.Records {
		if v := rec.MetricValue(m); v != nil {
			sums[rec.Region] += *v
			counts[rec.Region]++
		}
	}

	regions := make([]string, 0, len(counts))
	for region := range counts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	means := make([]GroupMean, 0, len(regions))
	for _, region := range regions {
		means = append(means, GroupMean{
			Region: region,
			Mean:   sums[region] / float64(counts[region]),
		})
	}
	return means
}

// CorrelationMatrix holds pairwise Pearson correlations over the numeric
// metrics. Cells[i][j] corresponds to (Metrics[i], Metrics[j]); a nil cell
// marks a degenerate pair (fewer than two complete observations or zero
// variance), including the diagonal of a constant metric.
type CorrelationMatrix struct {
	Metrics []models.Metric `json:"metrics"`
	Cells   [][]*float64    `json:"cells"`
}

// Correlations computes the pairwise-complete Pearson correlation matrix:
// each pair uses only the rows where both metrics are non-null, independent
// of other pairs' null patterns.
func Correlations(ds *models.Dataset) CorrelationMatrix {
	metrics := models.Metrics()
	cells := make([][]*float64, len(metrics))
	for i := range cells {
		cells[i] = make([]*float64, len(metrics))
	}

	for i := range metrics {
		for j := i; j < len(metrics); j++ {
			r := pairwiseCorrelation(ds, metrics[i], metrics[j])
			cells[i][j] = r
			cells[j][i] = r
		}
	}

	return CorrelationMatrix{Metrics: metrics, Cells: cells}
}

func pairwiseCorrelation(ds *models.Dataset, a, b models.Metric) *float64 {
	var xs, ys []float64
	for _, rec := range ds.Records {
		va := rec.MetricValue(a)
		vb := rec.MetricValue(b)
		if va != nil && vb != nil {
			xs = append(xs, *va)
			ys = append(ys, *vb)
		}
	}
	if len(xs) < 2 {
		return nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return nil
	}
	return &r
}

// SortByMonth returns a copy of the dataset stably sorted ascending by
// Month, for time-series chart rendering. Records with a null Month order
// after every non-null month, keeping their relative order.
func SortByMonth(ds *models.Dataset) *models.Dataset {
	records := append([]models.Record(nil), ds.Records...)
	sort.SliceStable(records, func(i, j int) bool {
		mi, mj := records[i].Month, records[j].Month
		if mi == nil {
			return false
		}
		if mj == nil {
			return true
		}
		return *mi < *mj
	})
	return &models.Dataset{Records: records, ExtraColumns: ds.ExtraColumns}
}

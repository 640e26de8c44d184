package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canonical column names recognized by the dashboard. Downstream logic
// depends on these by name; anything else rides along as an extra column.
const (
	ColumnYear        = "Year"
	ColumnMonth       = "Month"
	ColumnRegion      = "Region"
	ColumnTemperature = "Temperature"
	ColumnRainfall    = "Rainfall"
	ColumnHumidity    = "Humidity"
)

// RegionAll is the sentinel region meaning "no region predicate".
const RegionAll = "All"

// UnknownRegion is the placeholder stored when a source row has no region.
// Region is never null after normalization.
const UnknownRegion = "unknown"

// Metric identifies one of the numeric measurement columns.
type Metric string

const (
	MetricTemperature Metric = ColumnTemperature
	MetricRainfall    Metric = ColumnRainfall
	MetricHumidity    Metric = ColumnHumidity
)

// Metrics returns all measurement metrics in canonical order.
func Metrics() []Metric {
	return []Metric{MetricTemperature, MetricRainfall, MetricHumidity}
}

// ParseMetric maps user input to a Metric, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics() {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", &ValidationError{
		Field:   "metric",
		Value:   s,
		Message: fmt.Sprintf("unknown metric %q, expected one of Temperature, Rainfall, Humidity", s),
	}
}

// ChartType tags the visualization requested by the caller.
type ChartType string

const (
	ChartLine    ChartType = "Line"
	ChartBar     ChartType = "Bar"
	ChartArea    ChartType = "Area"
	ChartScatter ChartType = "Scatter"
	ChartPie     ChartType = "Pie"
	ChartHeatmap ChartType = "Heatmap"
)

// ChartTypes returns the supported chart types in display order.
func ChartTypes() []ChartType {
	return []ChartType{ChartLine, ChartBar, ChartArea, ChartScatter, ChartPie, ChartHeatmap}
}

// ParseChartType maps user input to a ChartType, case-insensitively.
func ParseChartType(s string) (ChartType, error) {
	for _, c := range ChartTypes() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", &ValidationError{
		Field:   "chart",
		Value:   s,
		Message: fmt.Sprintf("unknown chart type %q", s),
	}
}

// IsTimeSeries reports whether the chart plots month-ordered points.
func (c ChartType) IsTimeSeries() bool {
	return c == ChartLine || c == ChartArea || c == ChartScatter
}

// IsCategorical reports whether the chart plots per-region group means.
func (c ChartType) IsCategorical() bool {
	return c == ChartBar || c == ChartPie
}

// Record is a single weather observation. Year, Month and the measurement
// columns are nullable: malformed source cells degrade to nil rather than
// failing the load.
type Record struct {
	Year        *int              `json:"year"`
	Month       *int              `json:"month"`
	Region      string            `json:"region"`
	Temperature *float64          `json:"temperature"`
	Rainfall    *float64          `json:"rainfall"`
	Humidity    *float64          `json:"humidity"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// MetricValue returns the record's value for the given metric.
func (r *Record) MetricValue(m Metric) *float64 {
	switch m {
	case MetricTemperature:
		return r.Temperature
	case MetricRainfall:
		return r.Rainfall
	case MetricHumidity:
		return r.Humidity
	}
	return nil
}

// Dataset is an ordered sequence of records, insertion order preserved from
// the source file. Built once per load and read-only thereafter. Duplicate
// (Year, Month, Region) rows are permitted and never merged.
type Dataset struct {
	Records      []Record `json:"records"`
	ExtraColumns []string `json:"extra_columns,omitempty"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Selection parameterizes one dashboard interaction. It is recomputed per
// request and never persisted.
type Selection struct {
	Year    int       `json:"year"`
	Region  string    `json:"region"`
	Metrics []Metric  `json:"metrics"`
	Chart   ChartType `json:"chart"`
}

// Summary holds the per-selection metric means. A nil mean signals an empty
// or all-null subset for that metric, which is a valid result.
type Summary struct {
	Temperature *float64 `json:"temperature"`
	Rainfall    *float64 `json:"rainfall"`
	Humidity    *float64 `json:"humidity"`
}

// MetricMean returns the summary mean for the given metric.
func (s Summary) MetricMean(m Metric) *float64 {
	switch m {
	case MetricTemperature:
		return s.Temperature
	case MetricRainfall:
		return s.Rainfall
	case MetricHumidity:
		return s.Humidity
	}
	return nil
}

// NullableInt coerces a source cell to an integer. Values that do not parse
// as an integer (including float text with a fractional part) become nil,
// never an error.
func NullableInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	// Integral float text such as "2020.0" still counts as an integer.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

// NullableFloat coerces a source cell to a real number. Non-numeric values,
// NaN and infinities become nil, never an error.
func NullableFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// ValidationError represents a rejected caller input (unknown year, region,
// metric or chart type).
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent.
func (e *ValidationError) IsTransient() bool {
	return false
}

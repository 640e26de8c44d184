package models

import (
	"testing"
)

// TestNullableInt covers the integer coercion used for Year and Month.
func TestNullableInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "plain integer", input: "2020", want: IntPtr(2020)},
		{name: "surrounding whitespace", input: "  2021 ", want: IntPtr(2021)},
		{name: "negative integer", input: "-5", want: IntPtr(-5)},
		{name: "integral float text", input: "2020.0", want: IntPtr(2020)},
		{name: "fractional float text", input: "2020.5", want: nil},
		{name: "empty cell", input: "", want: nil},
		{name: "whitespace only", input: "   ", want: nil},
		{name: "non-numeric", input: "abc", want: nil},
		{name: "not-a-number token", input: "N/A", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NullableInt(tt.input)

			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NullableInt(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("NullableInt(%q) = %d, want %d", tt.input, *got, *tt.want)
			}
		})
	}
}

// TestNullableFloat covers the numeric coercion used for the metric columns.
func TestNullableFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "plain float", input: "31.5", want: FloatPtr(31.5)},
		{name: "integer text", input: "28", want: FloatPtr(28)},
		{name: "surrounding whitespace", input: " 99.9 ", want: FloatPtr(99.9)},
		{name: "negative value", input: "-3.2", want: FloatPtr(-3.2)},
		{name: "empty cell", input: "", want: nil},
		{name: "non-numeric", input: "N/A", want: nil},
		{name: "nan token stays null", input: "nan", want: nil},
		{name: "infinity stays null", input: "Inf", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NullableFloat(tt.input)

			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NullableFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("NullableFloat(%q) = %v, want %v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{input: "Temperature", want: MetricTemperature},
		{input: "rainfall", want: MetricRainfall},
		{input: "HUMIDITY", want: MetricHumidity},
		{input: "pressure", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetric(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMetric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChartType(t *testing.T) {
	tests := []struct {
		input   string
		want    ChartType
		wantErr bool
	}{
		{input: "Line", want: ChartLine},
		{input: "heatmap", want: ChartHeatmap},
		{input: "PIE", want: ChartPie},
		{input: "Sparkline", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChartType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChartType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseChartType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChartTypeKinds(t *testing.T) {
	timeSeries := []ChartType{ChartLine, ChartArea, ChartScatter}
	for _, c := range timeSeries {
		if !c.IsTimeSeries() {
			t.Errorf("%v should be a time-series chart", c)
		}
		if c.IsCategorical() {
			t.Errorf("%v should not be categorical", c)
		}
	}

	categorical := []ChartType{ChartBar, ChartPie}
	for _, c := range categorical {
		if !c.IsCategorical() {
			t.Errorf("%v should be categorical", c)
		}
	}

	if ChartHeatmap.IsTimeSeries() || ChartHeatmap.IsCategorical() {
		t.Error("Heatmap should be neither time-series nor categorical")
	}
}

func TestMetricValue(t *testing.T) {
	rec := Record{
		Temperature: FloatPtr(32),
		Rainfall:    nil,
		Humidity:    FloatPtr(55),
	}

	if v := rec.MetricValue(MetricTemperature); v == nil || *v != 32 {
		t.Errorf("MetricValue(Temperature) = %v, want 32", v)
	}
	if v := rec.MetricValue(MetricRainfall); v != nil {
		t.Errorf("MetricValue(Rainfall) = %v, want nil", v)
	}
	if v := rec.MetricValue(MetricHumidity); v == nil || *v != 55 {
		t.Errorf("MetricValue(Humidity) = %v, want 55", v)
	}
}

// TestValidationError tests error handling
func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "year",
		Value:   "1800",
		Message: "year 1800 is not present in the dataset",
	}

	if err.Error() != "year 1800 is not present in the dataset" {
		t.Errorf("Error() = %v", err.Error())
	}

	if err.IsTransient() {
		t.Error("ValidationError should not be transient")
	}
}

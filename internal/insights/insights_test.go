package insights

import (
	"strings"
	"testing"

	"weather-dashboard/internal/models"
)

func TestFromSummaryShape(t *testing.T) {
	findings := FromSummary(models.Summary{})

	if len(findings) != 3 {
		t.Fatalf("FromSummary returned %d findings, want 3", len(findings))
	}

	want := []models.Metric{models.MetricTemperature, models.MetricRainfall, models.MetricHumidity}
	for i, f := range findings {
		if f.Metric != want[i] {
			t.Errorf("findings[%d].Metric = %v, want %v", i, f.Metric, want[i])
		}
		if f.Message == "" {
			t.Errorf("findings[%d] has empty message", i)
		}
	}
}

func TestFromSummaryThresholds(t *testing.T) {
	tests := []struct {
		name    string
		summary models.Summary
		metric  models.Metric
		wantSub string
	}{
		{
			name:    "temperature above threshold",
			summary: models.Summary{Temperature: models.FloatPtr(30.01)},
			metric:  models.MetricTemperature,
			wantSub: "heatwave",
		},
		{
			name:    "temperature exactly at threshold reads as normal",
			summary: models.Summary{Temperature: models.FloatPtr(30)},
			metric:  models.MetricTemperature,
			wantSub: "normal seasonal range",
		},
		{
			name:    "temperature missing",
			summary: models.Summary{},
			metric:  models.MetricTemperature,
			wantSub: "No temperature data",
		},
		{
			name:    "rainfall above threshold",
			summary: models.Summary{Rainfall: models.FloatPtr(150)},
			metric:  models.MetricRainfall,
			wantSub: "Heavy rainfall",
		},
		{
			name:    "rainfall exactly at threshold reads as moderate",
			summary: models.Summary{Rainfall: models.FloatPtr(100)},
			metric:  models.MetricRainfall,
			wantSub: "Low/moderate",
		},
		{
			name:    "humidity above threshold",
			summary: models.Summary{Humidity: models.FloatPtr(60.5)},
			metric:  models.MetricHumidity,
			wantSub: "High humidity",
		},
		{
			name:    "humidity exactly at threshold reads as comfortable",
			summary: models.Summary{Humidity: models.FloatPtr(60)},
			metric:  models.MetricHumidity,
			wantSub: "comfortable",
		},
		{
			name:    "humidity missing",
			summary: models.Summary{},
			metric:  models.MetricHumidity,
			wantSub: "No humidity data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := FromSummary(tt.summary)

			var msg string
			for _, f := range findings {
				if f.Metric == tt.metric {
					msg = f.Message
				}
			}

			if !strings.Contains(msg, tt.wantSub) {
				t.Errorf("finding for %v = %q, want substring %q", tt.metric, msg, tt.wantSub)
			}
		})
	}
}

func TestFromSummaryDeterministic(t *testing.T) {
	s := models.Summary{
		Temperature: models.FloatPtr(32),
		Rainfall:    models.FloatPtr(80),
		Humidity:    models.FloatPtr(65),
	}

	first := FromSummary(s)
	second := FromSummary(s)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("findings[%d] differ between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// Package insights derives qualitative text findings from summary
// statistics via a fixed, ordered rule table.
package insights

import (
	"weather-dashboard/internal/models"
)

// Rule maps one metric's mean to a finding. Comparisons are strict: a mean
// exactly at the threshold takes the below text. A nil mean takes the
// no-data text.
type Rule struct {
	Metric    models.Metric
	Threshold float64
	Above     string
	Below     string
	NoData    string
}

// rules is evaluated in order; the output always holds exactly one finding
// per rule.
var rules = []Rule{
	{
		Metric:    models.MetricTemperature,
		Threshold: 30,
		Above:     "High temperature this year, possible heatwave effects.",
		Below:     "Temperatures are within normal seasonal range.",
		NoData:    "No temperature data available for this selection.",
	},
	{
		Metric:    models.MetricRainfall,
		Threshold: 100,
		Above:     "Heavy rainfall patterns observed.",
		Below:     "Low/moderate rainfall this year.",
		NoData:    "No rainfall data available for this selection.",
	},
	{
		Metric:    models.MetricHumidity,
		Threshold: 60,
		Above:     "High humidity levels detected across regions.",
		Below:     "Humidity levels remain comfortable.",
		NoData:    "No humidity data available for this selection.",
	},
}

// Finding is one qualitative statement about a metric.
type Finding struct {
	Metric  models.Metric `json:"metric"`
	Message string        `json:"message"`
}

// FromSummary evaluates the rule table against the summary. Deterministic
// and pure: three findings, one per metric, in fixed order.
func FromSummary(s models.Summary) []Finding {
	findings := make([]Finding, 0, len(rules))
	for _, rule := range rules {
		mean := s.MetricMean(rule.Metric)

		var msg string
		switch {
		case mean == nil:
			msg = rule.NoData
		case *mean > rule.Threshold:
			msg = rule.Above
		default:
			msg = rule.Below
		}

		findings = append(findings, Finding{Metric: rule.Metric, Message: msg})
	}
	return findings
}

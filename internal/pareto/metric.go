package pareto

import (
	"fmt"

	"github.com/catbench/leaderboard/internal/models"
)

// Metric names one of the five populated record fields for use as a frontier
// axis.
type Metric string

const (
	MetricMAETotal    Metric = "mae_total"
	MetricMAENormal   Metric = "mae_normal"
	MetricNormalRate  Metric = "normal_rate"
	MetricADwT        Metric = "adwt"
	MetricTimePerStep Metric = "time_per_step"
)

// ParseMetric resolves a metric name as used in config files and the CLI.
func ParseMetric(name string) (Metric, error) {
	switch Metric(name) {
	case MetricMAETotal, MetricMAENormal, MetricNormalRate, MetricADwT, MetricTimePerStep:
		return Metric(name), nil
	}
	return "", fmt.Errorf("unknown metric %q (want one of mae_total, mae_normal, normal_rate, adwt, time_per_step)", name)
}

// Select returns the record field this metric addresses, nil when the record
// carries no value for it.
func (m Metric) Select(rec models.ModelRecord) *float64 {
	switch m {
	case MetricMAETotal:
		return rec.MAETotal
	case MetricMAENormal:
		return rec.MAENormal
	case MetricNormalRate:
		return rec.NormalRate
	case MetricADwT:
		return rec.ADwT
	case MetricTimePerStep:
		return rec.TimePerStep
	}
	return nil
}

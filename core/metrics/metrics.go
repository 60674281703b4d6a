// Package metrics defines the observability boundary. Sinks receive
// assessment events; implementations live under infra/metrics.
package metrics

import (
	"time"

	"github.com/greenloop/biolca/core/lca"
)

// AssessmentEvent is emitted for every completed calculation.
type AssessmentEvent struct {
	RunID     string             `json:"run_id"`
	Source    string             `json:"source"`
	Time      time.Time          `json:"time"`
	Emissions lca.StageEmissions `json:"emissions"`
	Diesel    lca.Comparison     `json:"diesel_comparison"`
}

// Sink records assessment events for observability purposes.
type Sink interface {
	RecordAssessment(ev AssessmentEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssessment(AssessmentEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

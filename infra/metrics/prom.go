package metrics

import (
	coremetrics "github.com/greenloop/biolca/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink exposes the latest assessment as Prometheus metrics.
type PromSink struct {
	assessments *prometheus.CounterVec
	stage       *prometheus.GaugeVec
	total       prometheus.Gauge
	dieselRatio prometheus.Gauge
}

// NewPromSink registers assessment metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assessments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lca_assessments_total",
		Help: "Total number of completed assessments",
	}, []string{"source"})
	stage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lca_stage_emissions_kg",
		Help: "Latest per-stage emissions in kg CO2-eq per functional unit",
	}, []string{"stage"})
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lca_total_emissions_kg",
		Help: "Latest total emissions in kg CO2-eq per functional unit",
	})
	dieselRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lca_diesel_ratio",
		Help: "Latest biodiesel to diesel emission ratio",
	})

	if err := reg.Register(assessments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assessments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stage); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stage = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(total); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			total = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dieselRatio); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dieselRatio = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{assessments: assessments, stage: stage, total: total, dieselRatio: dieselRatio}, nil
}

// RecordAssessment updates the gauges with the latest result.
func (s *PromSink) RecordAssessment(ev coremetrics.AssessmentEvent) error {
	s.assessments.WithLabelValues(ev.Source).Inc()
	s.stage.WithLabelValues("acquisition").Set(ev.Emissions.Acquisition)
	s.stage.WithLabelValues("production").Set(ev.Emissions.Production)
	s.stage.WithLabelValues("distribution").Set(ev.Emissions.Distribution)
	s.stage.WithLabelValues("end_of_life").Set(ev.Emissions.EndOfLife)
	s.total.Set(ev.Emissions.Total)
	s.dieselRatio.Set(ev.Diesel.Ratio)
	return nil
}

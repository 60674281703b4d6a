// Package app wires configuration, providers, sinks and the HTTP API
// into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/greenloop/biolca/api/assess"
	"github.com/greenloop/biolca/api/runs"
	"github.com/greenloop/biolca/config"
	"github.com/greenloop/biolca/connectors/factorsource"
	"github.com/greenloop/biolca/core/factors"
	"github.com/greenloop/biolca/core/history"
	"github.com/greenloop/biolca/core/lca"
	coremetrics "github.com/greenloop/biolca/core/metrics"
	"github.com/greenloop/biolca/infra/logger"
	"github.com/greenloop/biolca/infra/metrics"
	"github.com/greenloop/biolca/infra/mqtt"
	"github.com/greenloop/biolca/internal/eventbus"
)

// Service orchestrates assessments: it resolves factors, runs the
// calculator, persists the run and fans the result out to the sinks.
type Service struct {
	cfg       *config.Config
	provider  factors.Provider
	fallback  lca.FactorSet
	store     history.Store
	sink      coremetrics.Sink
	bus       *eventbus.Bus
	announcer *mqtt.Announcer
	log       logger.Logger
	drained   chan struct{}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var provider factors.Provider
	if cfg.FactorSource.Enabled {
		client, err := factorsource.New(cfg.FactorSource.URL, factorsource.WithAPIKey(cfg.FactorSource.APIKey))
		if err != nil {
			return nil, fmt.Errorf("factor source: %w", err)
		}
		provider = client
	} else {
		static, err := factors.NewStatic(cfg.Factors)
		if err != nil {
			return nil, fmt.Errorf("static factors: %w", err)
		}
		provider = static
	}

	store, err := cfg.History.NewStore()
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var announcer *mqtt.Announcer
	if cfg.MQTT.Enabled {
		announcer, err = mqtt.NewAnnouncer(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt announcer: %w", err)
		}
		sinks = append(sinks, announcer)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	s := &Service{
		cfg:       cfg,
		provider:  provider,
		fallback:  cfg.Factors,
		store:     store,
		sink:      sink,
		bus:       eventbus.New(),
		announcer: announcer,
		log:       logg,
		drained:   make(chan struct{}),
	}

	// Every caller path publishes through the bus, so the forwarder
	// runs for the lifetime of the service, not just while serving.
	events := s.bus.Subscribe()
	go func() {
		defer close(s.drained)
		for ev := range events {
			if err := s.sink.RecordAssessment(ev); err != nil {
				s.log.Errorf("record assessment: %v", err)
			}
		}
	}()
	return s, nil
}

// Assess runs one calculation for the given inventory. The run is
// appended to history and published to the sinks; failures on those
// side paths are logged, never surfaced, so the caller always gets a
// complete result or a validation error.
func (s *Service) Assess(ctx context.Context, inv lca.Inventory, source string) (assess.Result, error) {
	set, err := s.provider.Factors(ctx)
	if err != nil {
		s.log.Warnf("factor provider failed, using configured factors: %v", err)
		set = s.fallback
	}

	emissions, err := lca.Compute(inv, set)
	if err != nil {
		return assess.Result{}, err
	}
	sens, err := lca.Sensitivity(inv, set)
	if err != nil {
		return assess.Result{}, err
	}

	res := assess.Result{
		RunID:         uuid.NewString(),
		Emissions:     emissions,
		Contributions: lca.Contributions(emissions),
		Sensitivity:   sens,
		Diesel:        lca.CompareDiesel(emissions, s.cfg.DieselEFKgPerMJ),
	}

	now := time.Now().UTC()
	rec := history.RunRecord{
		ID:        res.RunID,
		Timestamp: now,
		Source:    source,
		Inventory: inv,
		Factors:   set,
		Emissions: emissions,
	}
	if err := s.store.Append(ctx, rec); err != nil {
		s.log.Errorf("history append: %v", err)
	}

	s.bus.Publish(coremetrics.AssessmentEvent{
		RunID:     res.RunID,
		Source:    source,
		Time:      now,
		Emissions: emissions,
		Diesel:    res.Diesel,
	})
	return res, nil
}

// Run serves the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/assess", assess.NewHandler(s))
	mux.Handle("/api/report.csv", assess.NewReportHandler(s, s.store))
	mux.Handle("/api/runs", runs.NewHandler(s.store, s.cfg.API.Token))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()

	s.log.Infof("api listening on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service. It waits for the
// sink forwarder to drain pending events before shutting down the
// sinks, so one-shot callers do not lose their assessment.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.drained
	if s.announcer != nil {
		s.announcer.Close()
	}
	return s.store.Close()
}

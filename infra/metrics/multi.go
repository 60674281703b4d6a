package metrics

import coremetrics "github.com/greenloop/biolca/core/metrics"

// MultiSink fans assessment events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssessment forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAssessment(ev coremetrics.AssessmentEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssessment(ev); err != nil {
			return err
		}
	}
	return nil
}

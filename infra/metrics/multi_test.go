package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/greenloop/biolca/core/metrics"
)

type recordSink struct {
	count int
	err   error
}

func (r *recordSink) RecordAssessment(coremetrics.AssessmentEvent) error {
	r.count++
	return r.err
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordAssessment(coremetrics.AssessmentEvent{}); err != nil {
		t.Fatalf("record assessment: %v", err)
	}
	if s1.count != 1 || s2.count != 1 {
		t.Fatalf("events not forwarded")
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordAssessment(coremetrics.AssessmentEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
	if s2.count != 0 {
		t.Fatalf("second sink should not run after error")
	}
}

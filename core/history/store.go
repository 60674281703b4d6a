// Package history persists assessment runs so past results can be
// queried, re-exported and audited after factor updates.
package history

import (
	"context"
	"time"

	"github.com/greenloop/biolca/core/lca"
)

// RunRecord captures one assessment: the inputs, the factors in force
// and the resulting stage emissions.
type RunRecord struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Source    string             `json:"source"`
	Inventory lca.Inventory      `json:"inventory"`
	Factors   lca.FactorSet      `json:"factors"`
	Emissions lca.StageEmissions `json:"emissions"`
}

// RunQuery defines filters for retrieving records. Zero times match
// everything; Source filters on the component that triggered the run.
type RunQuery struct {
	Start  time.Time
	End    time.Time
	Source string
}

// Store persists RunRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q RunQuery) ([]RunRecord, error)
	Close() error
}

func matches(r RunRecord, q RunQuery) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Source != "" && r.Source != q.Source {
		return false
	}
	return true
}

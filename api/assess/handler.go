// Package assess exposes the calculator over HTTP.
package assess

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/greenloop/biolca/core/history"
	"github.com/greenloop/biolca/core/lca"
	"github.com/greenloop/biolca/core/report"
)

// Result is the full payload returned for one assessment.
type Result struct {
	RunID         string                  `json:"run_id"`
	Emissions     lca.StageEmissions      `json:"emissions"`
	Contributions []lca.StageShare        `json:"contributions"`
	Sensitivity   []lca.FactorSensitivity `json:"sensitivity"`
	Diesel        lca.Comparison          `json:"diesel_comparison"`
}

// Assessor runs one assessment for the given inventory. Source tags
// where the request came from in history and metrics.
type Assessor interface {
	Assess(ctx context.Context, inv lca.Inventory, source string) (Result, error)
}

// NewHandler returns an HTTP handler computing assessments via
// POST /api/assess.
func NewHandler(a Assessor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var inv lca.Inventory
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		res, err := a.Assess(r.Context(), inv, "api")
		if err != nil {
			var iie *lca.InvalidInputError
			if errors.As(err, &iie) {
				http.Error(w, iie.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewReportHandler returns an HTTP handler for /api/report.csv. POST
// assesses the submitted inventory and returns its CSV report; GET
// returns the CSV report of the most recent recorded run.
func NewReportHandler(a Assessor, store history.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var em lca.StageEmissions
		switch r.Method {
		case http.MethodPost:
			var inv lca.Inventory
			if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
				http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
				return
			}
			res, err := a.Assess(r.Context(), inv, "report")
			if err != nil {
				var iie *lca.InvalidInputError
				if errors.As(err, &iie) {
					http.Error(w, iie.Error(), http.StatusBadRequest)
					return
				}
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			em = res.Emissions
		case http.MethodGet:
			records, err := store.Query(r.Context(), history.RunQuery{})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if len(records) == 0 {
				http.Error(w, "no runs recorded", http.StatusNotFound)
				return
			}
			latest := records[0]
			for _, rec := range records[1:] {
				if rec.Timestamp.After(latest.Timestamp) {
					latest = rec
				}
			}
			em = latest.Emissions
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="lca_report.csv"`)
		if err := report.WriteCSV(w, report.Build(em)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

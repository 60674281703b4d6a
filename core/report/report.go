// Package report renders assessment results as a two-column
// metric/value table for the CLI and for CSV download.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/greenloop/biolca/core/lca"
)

// Header is the fixed CSV header row.
var Header = []string{"Metric", "Value (kg CO2)"}

// Row is one metric of the report.
type Row struct {
	Metric string
	Value  float64
}

// Build lists the stage emissions in lifecycle order followed by the
// total, using the same labels as the interactive tool.
func Build(e lca.StageEmissions) []Row {
	return []Row{
		{"Stage 1 - Raw Material Acquisition (kg CO2)", e.Acquisition},
		{"Stage 2 - Production & Purification (kg CO2)", e.Production},
		{"Stage 3 - Distribution (kg CO2)", e.Distribution},
		{"Stage 5 - End-of-Life (kg CO2)", e.EndOfLife},
		{"Total (kg CO2 per 1 MJ)", e.Total},
	}
}

// WriteCSV serializes the rows with values fixed to four decimals.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Metric, fmt.Sprintf("%.4f", r.Value)}); err != nil {
			return fmt.Errorf("write row %s: %w", r.Metric, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Table renders an aligned plain-text table for terminal output.
func Table(rows []Row) string {
	width := 0
	for _, r := range rows {
		if len(r.Metric) > width {
			width = len(r.Metric)
		}
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s  %10.4f\n", width, r.Metric, r.Value)
	}
	return b.String()
}

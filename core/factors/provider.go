// Package factors supplies emission factor sets to the calculator.
// Providers abstract where factors come from so a remote dataset can
// replace the built-in defaults without touching the calculation.
package factors

import (
	"context"
	"fmt"
	"math"

	"github.com/greenloop/biolca/core/lca"
)

// Provider returns the factor set to use for an assessment.
type Provider interface {
	Factors(ctx context.Context) (lca.FactorSet, error)
}

// Static serves a fixed factor set.
type Static struct {
	set lca.FactorSet
}

// NewStatic validates the set once and returns a Static provider.
func NewStatic(set lca.FactorSet) (*Static, error) {
	if err := Validate(set); err != nil {
		return nil, err
	}
	return &Static{set: set}, nil
}

// Factors returns the configured set.
func (s *Static) Factors(context.Context) (lca.FactorSet, error) {
	return s.set, nil
}

// Defaults are the built-in placeholder factors: road collection in
// kg CO2/km, methanol in kg/L, KOH in kg/kg, grid energy in kg/kWh,
// wastewater treatment in kg/L and glycerol disposal in kg/kg.
func Defaults() lca.FactorSet {
	return lca.FactorSet{
		CollectionKgPerKm: 0.3,
		MethanolKgPerL:    1.5,
		KOHKgPerKg:        2.0,
		EnergyKgPerKWh:    0.5,
		WastewaterKgPerL:  0.2,
		GlycerolKgPerKg:   0.1,
	}
}

// Validate rejects factor sets containing negative or non-finite
// values.
func Validate(set lca.FactorSet) error {
	values := map[string]float64{
		"wco_collection_ef":    set.CollectionKgPerKm,
		"methanol_ef":          set.MethanolKgPerL,
		"koh_ef":               set.KOHKgPerKg,
		"energy_ef":            set.EnergyKgPerKWh,
		"wastewater_treat_ef":  set.WastewaterKgPerL,
		"glycerol_disposal_ef": set.GlycerolKgPerKg,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("factor %s: %v is not a non-negative finite number", name, v)
		}
	}
	return nil
}

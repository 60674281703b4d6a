package lca

import "gonum.org/v1/gonum/floats"

// StageShare is one slice of the contribution breakdown.
type StageShare struct {
	Stage   string  `json:"stage"`
	KgCO2   float64 `json:"kg_co2"`
	Percent float64 `json:"percent"`
}

// Contributions returns the per-stage share of the total, in lifecycle
// order. A zero total yields zero shares rather than NaN.
func Contributions(e StageEmissions) []StageShare {
	values := e.Stages()
	shares := make([]float64, len(values))
	if total := floats.Sum(values); total > 0 {
		copy(shares, values)
		floats.Scale(100/total, shares)
	}
	out := make([]StageShare, len(values))
	for i := range values {
		out[i] = StageShare{Stage: StageNames[i], KgCO2: values[i], Percent: shares[i]}
	}
	return out
}

// FactorSensitivity is the relative sensitivity of the total to one
// emission factor: (d total / d factor) * factor / total. Because the
// model is linear in every factor this equals the share of the total
// attributable to that factor.
type FactorSensitivity struct {
	Factor      string  `json:"factor"`
	Sensitivity float64 `json:"sensitivity"`
}

// Sensitivity computes the one-at-a-time relative sensitivities of the
// total to each emission factor. The inventory must pass the same
// validation as Compute.
func Sensitivity(inv Inventory, f FactorSet) ([]FactorSensitivity, error) {
	e, err := Compute(inv, f)
	if err != nil {
		return nil, err
	}

	reactionKWh := inv.ReactionEnergy
	dryingKWh := inv.DryingEnergy
	if inv.EnergyUnit == UnitMJ {
		reactionKWh /= MJPerKWh
		dryingKWh /= MJPerKWh
	}

	// Analytic partial derivatives of the total w.r.t. each factor.
	partials := []struct {
		name    string
		partial float64
		factor  float64
	}{
		{"wco_collection_ef", inv.WCOVolumeL/inv.LoadCapacityL*inv.CollectionKm + inv.DistributionKm/inv.LoadCapacityL, f.CollectionKgPerKm},
		{"methanol_ef", inv.MethanolL, f.MethanolKgPerL},
		{"koh_ef", inv.KOHKg, f.KOHKgPerKg},
		{"energy_ef", reactionKWh + dryingKWh, f.EnergyKgPerKWh},
		{"wastewater_treat_ef", inv.PurificationWaterL + inv.WastewaterL, f.WastewaterKgPerL},
		{"glycerol_disposal_ef", inv.GlycerolKg, f.GlycerolKgPerKg},
	}

	out := make([]FactorSensitivity, 0, len(partials))
	for _, p := range partials {
		s := 0.0
		if e.Total > 0 {
			s = p.partial * p.factor / e.Total
		}
		out = append(out, FactorSensitivity{Factor: p.name, Sensitivity: s})
	}
	return out, nil
}

// Comparison relates the biodiesel result to a fossil diesel baseline
// over the same functional unit.
type Comparison struct {
	BiodieselKgCO2 float64 `json:"biodiesel_kg_co2"`
	DieselKgCO2    float64 `json:"diesel_kg_co2"`
	DeltaKgCO2     float64 `json:"delta_kg_co2"`
	Ratio          float64 `json:"ratio"`
}

// CompareDiesel sets the computed total against a diesel emission
// factor expressed in kg CO2 per MJ. Ratio is zero when the baseline
// is zero.
func CompareDiesel(e StageEmissions, dieselKgPerMJ float64) Comparison {
	c := Comparison{
		BiodieselKgCO2: e.Total,
		DieselKgCO2:    dieselKgPerMJ,
		DeltaKgCO2:     e.Total - dieselKgPerMJ,
	}
	if dieselKgPerMJ != 0 {
		c.Ratio = e.Total / dieselKgPerMJ
	}
	return c
}

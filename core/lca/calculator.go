package lca

import "math"

// Compute derives the per-stage emissions for the given inventory and
// factor set. It is pure: identical inputs always yield identical
// output and nothing is mutated. Validation happens once at this
// boundary; on failure an *InvalidInputError is returned and no
// partial StageEmissions is produced.
//
// The canonical energy unit is kWh. Inventories tagged with UnitMJ
// have their energy fields converted on entry; the EnergyKgPerKWh
// factor is always interpreted per kWh. Both transport terms are
// normalized by the tanker load capacity.
func Compute(inv Inventory, f FactorSet) (StageEmissions, error) {
	if err := validate(inv, f); err != nil {
		return StageEmissions{}, err
	}

	reactionKWh := inv.ReactionEnergy
	dryingKWh := inv.DryingEnergy
	if inv.EnergyUnit == UnitMJ {
		reactionKWh /= MJPerKWh
		dryingKWh /= MJPerKWh
	}

	acquisition := inv.WCOVolumeL/inv.LoadCapacityL*inv.CollectionKm*f.CollectionKgPerKm +
		inv.MethanolL*f.MethanolKgPerL +
		inv.KOHKg*f.KOHKgPerKg

	production := reactionKWh*f.EnergyKgPerKWh +
		inv.PurificationWaterL*f.WastewaterKgPerL +
		dryingKWh*f.EnergyKgPerKWh

	distribution := inv.DistributionKm * f.CollectionKgPerKm / inv.LoadCapacityL

	endOfLife := inv.GlycerolKg*f.GlycerolKgPerKg +
		inv.WastewaterL*f.WastewaterKgPerL

	return StageEmissions{
		Acquisition:  acquisition,
		Production:   production,
		Distribution: distribution,
		EndOfLife:    endOfLife,
		Total:        acquisition + production + distribution + endOfLife,
	}, nil
}

func validate(inv Inventory, f FactorSet) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"wco_volume_l", inv.WCOVolumeL},
		{"collection_distance_km", inv.CollectionKm},
		{"methanol_l", inv.MethanolL},
		{"koh_kg", inv.KOHKg},
		{"reaction_energy", inv.ReactionEnergy},
		{"purification_water_l", inv.PurificationWaterL},
		{"drying_energy", inv.DryingEnergy},
		{"distribution_distance_km", inv.DistributionKm},
		{"glycerol_kg", inv.GlycerolKg},
		{"wastewater_l", inv.WastewaterL},
		{"wco_collection_ef", f.CollectionKgPerKm},
		{"methanol_ef", f.MethanolKgPerL},
		{"koh_ef", f.KOHKgPerKg},
		{"energy_ef", f.EnergyKgPerKWh},
		{"wastewater_treat_ef", f.WastewaterKgPerL},
		{"glycerol_disposal_ef", f.GlycerolKgPerKg},
	}
	for _, fl := range fields {
		if math.IsNaN(fl.value) || math.IsInf(fl.value, 0) {
			return &InvalidInputError{Field: fl.name, Value: fl.value, Reason: "must be a finite number"}
		}
		if fl.value < 0 {
			return &InvalidInputError{Field: fl.name, Value: fl.value, Reason: "must not be negative"}
		}
	}
	lc := inv.LoadCapacityL
	if math.IsNaN(lc) || math.IsInf(lc, 0) {
		return &InvalidInputError{Field: "load_capacity_l", Value: lc, Reason: "must be a finite number"}
	}
	if lc <= 0 {
		return &InvalidInputError{Field: "load_capacity_l", Value: lc, Reason: "must be strictly positive"}
	}
	switch inv.EnergyUnit {
	case "", UnitKWh, UnitMJ:
	default:
		return &InvalidInputError{Field: "energy_unit", Value: string(inv.EnergyUnit), Reason: "must be kwh or mj"}
	}
	return nil
}

package lca

// EnergyUnit identifies the unit of the energy fields in an Inventory.
type EnergyUnit string

const (
	// UnitKWh is the canonical energy unit. Emission factors are
	// expressed in kg CO2 per kWh.
	UnitKWh EnergyUnit = "kwh"
	// UnitMJ marks energy fields expressed in megajoules. Values are
	// converted to kWh at the calculation boundary.
	UnitMJ EnergyUnit = "mj"
)

// MJPerKWh is the conversion constant between the two accepted units.
const MJPerKWh = 3.6

// Inventory holds the life-cycle inventory for one functional unit
// (1 MJ) of waste-cooking-oil biodiesel. All fields are quantities per
// functional unit and must be non-negative; LoadCapacityL must be
// strictly positive because it divides the transport terms.
type Inventory struct {
	// Stage 1: raw material acquisition.
	WCOVolumeL   float64 `json:"wco_volume_l"`
	CollectionKm float64 `json:"collection_distance_km"`
	MethanolL    float64 `json:"methanol_l"`
	KOHKg        float64 `json:"koh_kg"`

	// Stage 2: production and purification.
	ReactionEnergy     float64 `json:"reaction_energy"`
	PurificationWaterL float64 `json:"purification_water_l"`
	DryingEnergy       float64 `json:"drying_energy"`

	// Stage 3: distribution.
	DistributionKm float64 `json:"distribution_distance_km"`
	LoadCapacityL  float64 `json:"load_capacity_l"`

	// End of life.
	GlycerolKg  float64 `json:"glycerol_kg"`
	WastewaterL float64 `json:"wastewater_l"`

	// EnergyUnit applies to ReactionEnergy and DryingEnergy. Empty
	// defaults to kWh.
	EnergyUnit EnergyUnit `json:"energy_unit"`
}

// FactorSet maps physical quantities to kg CO2-equivalent.
type FactorSet struct {
	CollectionKgPerKm float64 `json:"wco_collection_ef"`
	MethanolKgPerL    float64 `json:"methanol_ef"`
	KOHKgPerKg        float64 `json:"koh_ef"`
	EnergyKgPerKWh    float64 `json:"energy_ef"`
	WastewaterKgPerL  float64 `json:"wastewater_treat_ef"`
	GlycerolKgPerKg   float64 `json:"glycerol_disposal_ef"`
}

// StageEmissions is the result of one calculation, in kg CO2-eq per
// functional unit. It is always rebuilt from the current Inventory and
// never mutated in place.
type StageEmissions struct {
	Acquisition  float64 `json:"acquisition"`
	Production   float64 `json:"production"`
	Distribution float64 `json:"distribution"`
	EndOfLife    float64 `json:"end_of_life"`
	Total        float64 `json:"total"`
}

// Stages returns the per-stage values in lifecycle order, excluding
// the total.
func (e StageEmissions) Stages() []float64 {
	return []float64{e.Acquisition, e.Production, e.Distribution, e.EndOfLife}
}

// StageNames lists the lifecycle stages in the same order as Stages.
var StageNames = []string{
	"Raw Material Acquisition",
	"Production & Purification",
	"Distribution",
	"End-of-Life",
}

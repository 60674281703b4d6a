package lca

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInventory() Inventory {
	return Inventory{
		WCOVolumeL:         30,
		CollectionKm:       24.6,
		MethanolL:          8.54,
		KOHKg:              0.45,
		ReactionEnergy:     0.06,
		PurificationWaterL: 27,
		DryingEnergy:       1.0,
		DistributionKm:     223,
		LoadCapacityL:      200,
		GlycerolKg:         5,
		WastewaterL:        54,
	}
}

func sampleFactors() FactorSet {
	return FactorSet{
		CollectionKgPerKm: 0.3,
		MethanolKgPerL:    1.5,
		KOHKgPerKg:        2.0,
		EnergyKgPerKWh:    0.5,
		WastewaterKgPerL:  0.2,
		GlycerolKgPerKg:   0.1,
	}
}

func TestComputeReferenceScenario(t *testing.T) {
	e, err := Compute(sampleInventory(), sampleFactors())
	require.NoError(t, err)
	assert.InDelta(t, 14.817, e.Acquisition, 1e-9)
	assert.InDelta(t, 5.93, e.Production, 1e-9)
	assert.InDelta(t, 0.3345, e.Distribution, 1e-9)
	assert.InDelta(t, 11.3, e.EndOfLife, 1e-9)
	assert.InDelta(t, 32.3815, e.Total, 1e-9)
}

func TestComputeTotalIsSumOfStages(t *testing.T) {
	e, err := Compute(sampleInventory(), sampleFactors())
	require.NoError(t, err)
	sum := e.Acquisition + e.Production + e.Distribution + e.EndOfLife
	assert.InDelta(t, sum, e.Total, 1e-9)
}

func TestComputeIdempotent(t *testing.T) {
	inv, f := sampleInventory(), sampleFactors()
	a, err := Compute(inv, f)
	require.NoError(t, err)
	b, err := Compute(inv, f)
	require.NoError(t, err)
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestComputeZeroInventory(t *testing.T) {
	e, err := Compute(Inventory{LoadCapacityL: 1}, FactorSet{})
	require.NoError(t, err)
	assert.Zero(t, e.Total)
}

func TestComputeFactorMonotonicity(t *testing.T) {
	inv := sampleInventory()
	base, err := Compute(inv, sampleFactors())
	require.NoError(t, err)

	bump := func(mutate func(*FactorSet)) StageEmissions {
		f := sampleFactors()
		mutate(&f)
		e, err := Compute(inv, f)
		require.NoError(t, err)
		return e
	}

	assert.GreaterOrEqual(t, bump(func(f *FactorSet) { f.CollectionKgPerKm += 1 }).Acquisition, base.Acquisition)
	assert.GreaterOrEqual(t, bump(func(f *FactorSet) { f.MethanolKgPerL += 1 }).Acquisition, base.Acquisition)
	assert.GreaterOrEqual(t, bump(func(f *FactorSet) { f.EnergyKgPerKWh += 1 }).Production, base.Production)
	assert.GreaterOrEqual(t, bump(func(f *FactorSet) { f.WastewaterKgPerL += 1 }).EndOfLife, base.EndOfLife)
	assert.GreaterOrEqual(t, bump(func(f *FactorSet) { f.GlycerolKgPerKg += 1 }).Total, base.Total)
}

func TestComputeZeroLoadCapacity(t *testing.T) {
	inv := sampleInventory()
	inv.LoadCapacityL = 0
	_, err := Compute(inv, sampleFactors())
	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "load_capacity_l", iie.Field)
}

func TestComputeNegativeField(t *testing.T) {
	inv := sampleInventory()
	inv.MethanolL = -1
	_, err := Compute(inv, sampleFactors())
	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "methanol_l", iie.Field)

	f := sampleFactors()
	f.KOHKgPerKg = -0.1
	_, err = Compute(sampleInventory(), f)
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "koh_ef", iie.Field)
}

func TestComputeNonFiniteField(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		inv := sampleInventory()
		inv.ReactionEnergy = v
		_, err := Compute(inv, sampleFactors())
		var iie *InvalidInputError
		if !errors.As(err, &iie) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
	}
}

func TestComputeNeverReturnsNaN(t *testing.T) {
	e, err := Compute(Inventory{LoadCapacityL: 1e-12}, FactorSet{})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(e.Total) || math.IsInf(e.Total, 0))
}

func TestComputeMJConversion(t *testing.T) {
	inv := sampleInventory()
	inv.EnergyUnit = UnitMJ
	inv.ReactionEnergy = 0.06 * MJPerKWh
	inv.DryingEnergy = 1.0 * MJPerKWh
	e, err := Compute(inv, sampleFactors())
	require.NoError(t, err)

	ref, err := Compute(sampleInventory(), sampleFactors())
	require.NoError(t, err)
	assert.InDelta(t, ref.Production, e.Production, 1e-9)
}

func TestComputeUnknownEnergyUnit(t *testing.T) {
	inv := sampleInventory()
	inv.EnergyUnit = "btu"
	_, err := Compute(inv, sampleFactors())
	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "energy_unit", iie.Field)
	assert.Equal(t, "invalid input energy_unit=btu: must be kwh or mj", iie.Error())
}

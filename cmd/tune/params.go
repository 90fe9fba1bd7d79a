package main

import (
	"github.com/pthm-cable/crewhealth/components"
	"github.com/pthm-cable/crewhealth/equipment"
	"github.com/pthm-cable/crewhealth/factors"
)

// ParamSpec defines a single tunable equipment parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	// Cost of the parameter at Max; cost scales linearly from the cheap end.
	Cost float64
	// Cheap is the bound that costs nothing.
	Cheap float64
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// Order of Specs; Module reads values by these indices.
const (
	paramHPChange = iota
	paramRecuperation
	paramShielding
	paramCrowdedMultiplier
)

// NewParamVector creates the standard set of tunable parameters: one habitat
// module fitted to the mission vessel.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "hp_change_per_day", Min: 0, Max: 5, Default: 1, Cost: 1, Cheap: 0},
			{Name: "recuperation", Min: 0, Max: 5, Default: 0.5, Cost: 1, Cheap: 0},
			{Name: "shielding", Min: 0, Max: 10, Default: 1, Cost: 1, Cheap: 0},
			{Name: "crowded_multiplier", Min: 0.5, Max: 1, Default: 1, Cost: 1, Cheap: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Cost sums each parameter's distance from its cheap bound, weighted by Cost.
func (pv *ParamVector) Cost(values []float64) float64 {
	clamped := pv.Clamp(values)
	var total float64
	for i, spec := range pv.Specs {
		span := spec.Max - spec.Min
		d := clamped[i] - spec.Cheap
		if d < 0 {
			d = -d
		}
		total += spec.Cost * d / span
	}
	return total
}

// Module builds the habitat module described by values.
func (pv *ParamVector) Module(values []float64) equipment.Module {
	v := pv.Clamp(values)
	return equipment.Module{
		Title:          "Tuned habitat",
		HPChangePerDay: v[paramHPChange],
		Recuperation:   v[paramRecuperation],
		Shielding:      v[paramShielding],
		MultiplyFactor: factors.Crowded,
		Multiplier:     v[paramCrowdedMultiplier],
	}
}

// Part wraps Module in a seatless part.
func (pv *ParamVector) Part(values []float64) components.PartSpec {
	return components.PartSpec{Name: "tuned-habitat", Modules: []equipment.Module{pv.Module(values)}}
}

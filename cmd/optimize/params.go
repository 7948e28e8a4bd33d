// Package main tunes species parameters with CMA-ES so that every species
// keeps a foothold in the arena.
package main

import (
	"github.com/pthm-cable/blobs/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // species.field, used in logs
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Value in the base config
	apply   func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// speciesField describes one tuned per-species field and its bounds
// relative to the base value.
type speciesField struct {
	name   string
	lo, hi float64 // multipliers of the base value
	get    func(sp *config.SpeciesConfig) float64
	set    func(sp *config.SpeciesConfig, v float64)
}

var speciesFields = []speciesField{
	{
		name: "metabolic_rate", lo: 0.25, hi: 2,
		get: func(sp *config.SpeciesConfig) float64 { return sp.MetabolicRate },
		set: func(sp *config.SpeciesConfig, v float64) { sp.MetabolicRate = v },
	},
	{
		name: "move_cost", lo: 0.25, hi: 2,
		get: func(sp *config.SpeciesConfig) float64 { return sp.MoveCost },
		set: func(sp *config.SpeciesConfig, v float64) { sp.MoveCost = v },
	},
	{
		name: "reproduction_cost", lo: 0.5, hi: 1.5,
		get: func(sp *config.SpeciesConfig) float64 { return sp.ReproductionCost },
		set: func(sp *config.SpeciesConfig, v float64) { sp.ReproductionCost = v },
	},
	{
		name: "reproduction_threshold", lo: 0.6, hi: 1.1,
		get: func(sp *config.SpeciesConfig) float64 { return sp.ReproductionThreshold },
		set: func(sp *config.SpeciesConfig, v float64) { sp.ReproductionThreshold = min(v, 1) },
	},
}

// NewParamVector builds the tuned parameters for the species in base,
// followed by the food spawn amount.
func NewParamVector(base *config.Config) *ParamVector {
	pv := &ParamVector{}

	for i := range base.Species {
		sp := &base.Species[i]
		for _, f := range speciesFields {
			v := f.get(sp)
			if v <= 0 {
				// Nothing to scale; a zero cost stays zero.
				continue
			}
			pv.Specs = append(pv.Specs, ParamSpec{
				Name:    sp.Name + "." + f.name,
				Min:     v * f.lo,
				Max:     v * f.hi,
				Default: v,
				apply: func(cfg *config.Config, v float64) {
					f.set(&cfg.Species[i], v)
				},
			})
		}
	}

	spawn := float64(base.Food.SpawnAmount)
	pv.Specs = append(pv.Specs, ParamSpec{
		Name:    "food.spawn_amount",
		Min:     max(spawn/2, 1),
		Max:     max(spawn*3, 2),
		Default: max(spawn, 1),
		apply: func(cfg *config.Config, v float64) {
			cfg.Food.SpawnAmount = int(v + 0.5)
		},
	})

	return pv
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

// ApplyToConfig writes clamped parameter values into cfg.
// cfg must have the same species list as the base config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].apply(cfg, v)
	}
}

package analysis

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopcr/internal/corrosion"
	"github.com/alexiusacademia/gopcr/internal/material"
	"github.com/alexiusacademia/gopcr/internal/sampler"
	"github.com/alexiusacademia/gopcr/internal/section"
)

// Config carries every input of a run. Nothing in the pipeline reads
// package-level state; two runs with equal configs give equal results.
type Config struct {
	// Pipe section (mm)
	OuterDiameter float64 `json:"outer_diameter"`
	WallThickness float64 `json:"wall_thickness"`

	// Uncertain inputs, sampled in order
	Parameters []sampler.Distribution `json:"parameters"`

	// Simulation size
	Trajectories int `json:"trajectories"`
	LastYear     int `json:"last_year"` // horizon is always 1..LastYear

	// Random seed for every draw of the run
	Seed uint64 `json:"seed"`

	// Capacity model
	YieldStrength    float64 `json:"yield_strength"`     // MPa
	SampledYield     bool    `json:"sampled_yield"`      // use per-trajectory yield strength
	UnitLateralForce float64 `json:"unit_lateral_force"` // kN
	FailureRatio     float64 `json:"failure_ratio"`      // of year-one mean bending capacity
}

// DefaultConfig returns the nominal 180 × 5 mm pipe, 1000 trajectories
// over years 1..50.
func DefaultConfig() Config {
	return Config{
		OuterDiameter:    material.OuterDiameter,
		WallThickness:    material.WallThickness,
		Parameters:       material.Parameters(),
		Trajectories:     material.Trajectories,
		LastYear:         material.HorizonYears,
		Seed:             1,
		YieldStrength:    material.YieldStrength,
		UnitLateralForce: material.UnitLateralForce,
		FailureRatio:     material.FailureRatio,
	}
}

// Years lists the simulated years 1..LastYear. The first entry is always
// year 1, the reference year of the failure threshold.
func (c Config) Years() []int {
	if c.LastYear < 1 {
		return nil
	}
	years := make([]int, 0, c.LastYear)
	for y := 1; y <= c.LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Validate fails fast on inputs the pipeline cannot run with.
func (c Config) Validate() error {
	if _, err := section.NewGeometry(c.OuterDiameter, c.WallThickness); err != nil {
		return err
	}
	if c.Trajectories <= 0 {
		return fmt.Errorf("%w: trajectory count must be positive, got %d", sampler.ErrDegenerateEnsemble, c.Trajectories)
	}
	if c.LastYear < 1 {
		return fmt.Errorf("%w: empty year horizon 1..%d", sampler.ErrDegenerateEnsemble, c.LastYear)
	}
	for _, p := range c.Parameters {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, name := range []string{material.SteelYieldStrength, material.CorrosionKPrime, material.CorrosionU} {
		if _, ok := material.FindParameter(c.Parameters, name); !ok {
			return fmt.Errorf("%w: %q is missing from the parameter list", sampler.ErrInvalidParameter, name)
		}
	}
	if !positive(c.YieldStrength) {
		return fmt.Errorf("%w: yield strength must be positive, got %g", sampler.ErrInvalidParameter, c.YieldStrength)
	}
	if !positive(c.UnitLateralForce) {
		return fmt.Errorf("%w: unit lateral force must be positive, got %g", sampler.ErrInvalidParameter, c.UnitLateralForce)
	}
	if !positive(c.FailureRatio) {
		return fmt.Errorf("%w: failure ratio must be positive, got %g", sampler.ErrInvalidParameter, c.FailureRatio)
	}
	return nil
}

func (c Config) corrosionOptions() corrosion.Options {
	return corrosion.Options{
		YieldStrength:    c.YieldStrength,
		SampledYield:     c.SampledYield,
		UnitLateralForce: c.UnitLateralForce,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

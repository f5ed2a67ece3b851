package corrosion

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gopcr/internal/material"
	"github.com/alexiusacademia/gopcr/internal/sampler"
	"github.com/alexiusacademia/gopcr/internal/section"
)

// Options controls how capacities are derived from the corroded section.
type Options struct {
	// Yield strength (MPa) applied to every trajectory unless SampledYield is set
	YieldStrength float64

	// Use each trajectory's sampled yield strength instead of YieldStrength
	SampledYield bool

	// Unit lateral force (kN) scaled by the net steel area
	UnitLateralForce float64
}

// DefaultOptions uses the nominal yield strength and a 1 kN unit force.
func DefaultOptions() Options {
	return Options{
		YieldStrength:    material.YieldStrength,
		UnitLateralForce: material.UnitLateralForce,
	}
}

// Series holds the simulated state of every trajectory (rows) for every
// year (columns). The matrices are not modified after Simulate returns.
type Series struct {
	Years        []int
	Trajectories []Trajectory

	Thickness *mat.Dense // remaining wall (mm)
	Bending   *mat.Dense // bending capacity (kN·m)
	Lateral   *mat.Dense // lateral capacity (kN)
}

// Dims returns the number of trajectories and years.
func (s *Series) Dims() (trajectories, years int) {
	return s.Thickness.Dims()
}

// Simulate evaluates every trajectory at every year of the horizon.
func Simulate(geom section.Geometry, trajectories []Trajectory, years []int, opts Options) (*Series, error) {
	if len(trajectories) == 0 {
		return nil, fmt.Errorf("%w: no trajectories to simulate", sampler.ErrDegenerateEnsemble)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: empty year horizon", sampler.ErrDegenerateEnsemble)
	}
	for _, y := range years {
		if y < 1 {
			return nil, fmt.Errorf("%w: year %d is before the first year of service", sampler.ErrDegenerateEnsemble, y)
		}
	}

	rows, cols := len(trajectories), len(years)
	s := &Series{
		Years:        append([]int(nil), years...),
		Trajectories: append([]Trajectory(nil), trajectories...),
		Thickness:    mat.NewDense(rows, cols, nil),
		Bending:      mat.NewDense(rows, cols, nil),
		Lateral:      mat.NewDense(rows, cols, nil),
	}

	for j, year := range years {
		for i, tr := range trajectories {
			remaining := RemainingThickness(geom.WallThickness, tr.KPrime, tr.U, year)
			modulus, area := geom.Corroded(remaining)

			fy := opts.YieldStrength
			if opts.SampledYield {
				fy = tr.YieldStrength
			}

			s.Thickness.Set(i, j, remaining)
			s.Bending.Set(i, j, material.BendingCapacity(fy, modulus))
			s.Lateral.Set(i, j, material.LateralCapacity(opts.UnitLateralForce, area))
		}
	}

	slog.Debug("corrosion horizon simulated",
		"trajectories", rows,
		"years", cols,
		"sampled_yield", opts.SampledYield)

	return s, nil
}

// Package corrosion steps a set of pipe trajectories through the corrosion
// horizon and records remaining wall, bending capacity and lateral
// capacity for every trajectory and year.
package corrosion

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopcr/internal/material"
	"github.com/alexiusacademia/gopcr/internal/sampler"
)

// ThicknessLoss is the power-law wall loss k'·t^u (mm) after year years.
// It depends only on elapsed time, not on earlier years.
func ThicknessLoss(kPrime, u float64, year int) float64 {
	return kPrime * math.Pow(float64(year), u)
}

// RemainingThickness is the wall left after year years, never below zero.
func RemainingThickness(wall, kPrime, u float64, year int) float64 {
	return math.Max(wall-ThicknessLoss(kPrime, u, year), 0)
}

// Trajectory is one simulated pipe with its own corrosion coefficients and
// yield strength. Values are fixed for every year of the horizon.
type Trajectory struct {
	Index         int     `json:"index"`
	KPrime        float64 `json:"k_prime"` // mm
	U             float64 `json:"u"`
	YieldStrength float64 `json:"yield_strength"` // MPa
}

// NewTrajectories pairs the i-th samples of the k', u and yield strength
// ensembles into trajectory i. Negative k' or u samples are floored at
// zero so the modelled wall never grows.
func NewTrajectories(set sampler.EnsembleSet) ([]Trajectory, error) {
	kPrime, err := lookup(set, material.CorrosionKPrime)
	if err != nil {
		return nil, err
	}
	u, err := lookup(set, material.CorrosionU)
	if err != nil {
		return nil, err
	}
	fy, err := lookup(set, material.SteelYieldStrength)
	if err != nil {
		return nil, err
	}

	n := kPrime.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: no trajectories", sampler.ErrDegenerateEnsemble)
	}
	if u.Len() != n || fy.Len() != n {
		return nil, fmt.Errorf("%w: ensemble sizes differ (k'=%d, u=%d, fy=%d)",
			sampler.ErrDegenerateEnsemble, n, u.Len(), fy.Len())
	}

	trajectories := make([]Trajectory, n)
	for i := range trajectories {
		trajectories[i] = Trajectory{
			Index:         i,
			KPrime:        math.Max(kPrime.At(i), 0),
			U:             math.Max(u.At(i), 0),
			YieldStrength: fy.At(i),
		}
	}
	return trajectories, nil
}

func lookup(set sampler.EnsembleSet, name string) (sampler.Ensemble, error) {
	e, ok := set.Get(name)
	if !ok {
		return sampler.Ensemble{}, fmt.Errorf("%w: %q was not sampled", sampler.ErrInvalidParameter, name)
	}
	return e, nil
}

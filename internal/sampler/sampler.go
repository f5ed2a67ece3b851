// Package sampler draws independent normally distributed ensembles for the
// uncertain inputs of the corrosion analysis.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInvalidParameter is returned for a non-positive mean or a negative
	// coefficient of variation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateEnsemble is returned when an ensemble would hold no
	// samples or a horizon holds no years.
	ErrDegenerateEnsemble = errors.New("degenerate ensemble")
)

// Distribution describes one uncertain quantity as Normal(Mean, Mean*COV).
type Distribution struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol,omitempty"`
	Unit   string  `json:"unit,omitempty"`
	Mean   float64 `json:"mean"`
	COV    float64 `json:"cov"` // coefficient of variation
}

// StdDev is Mean * COV.
func (d Distribution) StdDev() float64 {
	return d.Mean * d.COV
}

// Validate checks that the distribution can be sampled.
func (d Distribution) Validate() error {
	if math.IsNaN(d.Mean) || math.IsInf(d.Mean, 0) || d.Mean <= 0 {
		return fmt.Errorf("%w: %s mean must be positive, got %g", ErrInvalidParameter, d.Name, d.Mean)
	}
	if math.IsNaN(d.COV) || math.IsInf(d.COV, 0) || d.COV < 0 {
		return fmt.Errorf("%w: %s coefficient of variation must not be negative, got %g", ErrInvalidParameter, d.Name, d.COV)
	}
	return nil
}

// Ensemble is an immutable set of samples drawn for one distribution.
type Ensemble struct {
	Distribution Distribution
	samples      []float64
}

// Len returns the number of samples.
func (e Ensemble) Len() int { return len(e.samples) }

// At returns sample i.
func (e Ensemble) At(i int) float64 { return e.samples[i] }

// Samples returns a copy of the samples.
func (e Ensemble) Samples() []float64 {
	out := make([]float64, len(e.samples))
	copy(out, e.samples)
	return out
}

// Summary holds the empirical moments of an ensemble.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary computes the empirical mean, standard deviation and range.
func (e Ensemble) Summary() Summary {
	return Summarize(e.samples)
}

// Summarize computes the empirical mean, population standard deviation and
// range of values. An empty slice gives a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return Summary{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

// NewRand returns the PCG generator used for every draw of a run.
// Equal seeds give identical streams.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleNormal draws count independent samples from
// Normal(dist.Mean, dist.Mean*dist.COV) using src.
func SampleNormal(dist Distribution, count int, src rand.Source) (Ensemble, error) {
	if err := dist.Validate(); err != nil {
		return Ensemble{}, err
	}
	if count <= 0 {
		return Ensemble{}, fmt.Errorf("%w: %s needs at least one sample, got %d", ErrDegenerateEnsemble, dist.Name, count)
	}

	normal := distuv.Normal{Mu: dist.Mean, Sigma: dist.StdDev(), Src: src}
	samples := make([]float64, count)
	for i := range samples {
		samples[i] = normal.Rand()
	}

	return Ensemble{Distribution: dist, samples: samples}, nil
}

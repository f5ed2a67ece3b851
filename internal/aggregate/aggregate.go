// Package aggregate reduces trajectory × year matrices to per-year
// statistics: mean, percentile envelope and threshold-crossing counts.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/alexiusacademia/gopcr/internal/material"
	"github.com/alexiusacademia/gopcr/internal/sampler"
)

// Band is the per-year mean and percentile envelope of an ensemble.
type Band struct {
	Mean  []float64 `json:"mean"`
	Lower []float64 `json:"lower"` // 2.5th percentile
	Upper []float64 `json:"upper"` // 97.5th percentile
}

// Len returns the number of years in the band.
func (b Band) Len() int { return len(b.Mean) }

// Failures counts trajectories below a fixed capacity threshold per year.
type Failures struct {
	Threshold float64 `json:"threshold"`
	Counts    []int   `json:"counts"`
}

// Summarize computes, for every column of m, the mean and the 2.5th and
// 97.5th percentiles over the rows.
func Summarize(m mat.Matrix) (Band, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return Band{}, fmt.Errorf("%w: cannot summarize a %dx%d matrix", sampler.ErrDegenerateEnsemble, rows, cols)
	}

	b := Band{
		Mean:  make([]float64, cols),
		Lower: make([]float64, cols),
		Upper: make([]float64, cols),
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		b.Mean[j] = stat.Mean(col, nil)

		sort.Float64s(col)
		b.Lower[j] = percentileSorted(col, material.LowerPercentile)
		b.Upper[j] = percentileSorted(col, material.UpperPercentile)
	}
	return b, nil
}

// Percentile returns the p-th percentile (0..100) of values, interpolating
// linearly between the closest ranks. values is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	p = math.Max(0, math.Min(p, 100))
	h := float64(len(sorted)-1) * p / 100
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// FailureThreshold is ratio times the first-year mean of the band.
func FailureThreshold(b Band, ratio float64) (float64, error) {
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: empty band", sampler.ErrDegenerateEnsemble)
	}
	return ratio * b.Mean[0], nil
}

// CountBelow counts, per column of m, the rows strictly below threshold.
func CountBelow(m mat.Matrix, threshold float64) []int {
	rows, cols := m.Dims()
	counts := make([]int, cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			if m.At(i, j) < threshold {
				counts[j]++
			}
		}
	}
	return counts
}

// CountFailures derives the threshold from the band of m and counts the
// trajectories below it each year.
func CountFailures(m mat.Matrix, b Band, ratio float64) (Failures, error) {
	threshold, err := FailureThreshold(b, ratio)
	if err != nil {
		return Failures{}, err
	}
	return Failures{Threshold: threshold, Counts: CountBelow(m, threshold)}, nil
}

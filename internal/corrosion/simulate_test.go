package corrosion

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gopcr/internal/material"
	"github.com/alexiusacademia/gopcr/internal/sampler"
	"github.com/alexiusacademia/gopcr/internal/section"
)

func horizon(n int) []int {
	years := make([]int, n)
	for i := range years {
		years[i] = i + 1
	}
	return years
}

func nominalGeometry(t *testing.T) section.Geometry {
	t.Helper()
	g, err := section.NewGeometry(material.OuterDiameter, material.WallThickness)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func sampledTrajectories(t *testing.T, n int, seed uint64) []Trajectory {
	t.Helper()
	set, err := sampler.SampleAll(material.DefaultParameters, n, sampler.NewRand(seed))
	if err != nil {
		t.Fatal(err)
	}
	trs, err := NewTrajectories(set)
	if err != nil {
		t.Fatal(err)
	}
	return trs
}

func TestThicknessLoss_MeanCoefficients(t *testing.T) {
	if got := ThicknessLoss(3.3, 0.5, 1); math.Abs(got-3.3) > 1e-12 {
		t.Errorf("year 1: expected loss 3.3, got %f", got)
	}
	if got := RemainingThickness(5, 3.3, 0.5, 1); math.Abs(got-1.7) > 1e-12 {
		t.Errorf("year 1: expected remaining 1.7, got %f", got)
	}
	if got := ThicknessLoss(3.3, 0.5, 50); math.Abs(got-23.3345) > 1e-4 {
		t.Errorf("year 50: expected loss 23.3345, got %f", got)
	}
	if got := RemainingThickness(5, 3.3, 0.5, 50); got != 0 {
		t.Errorf("year 50: expected remaining clamped to 0, got %f", got)
	}
}

func TestSimulate_MeanTrajectory(t *testing.T) {
	g := nominalGeometry(t)
	trs := []Trajectory{{Index: 0, KPrime: 3.3, U: 0.5, YieldStrength: 250}}

	s, err := Simulate(g, trs, horizon(50), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if got := s.Thickness.At(0, 0); math.Abs(got-1.7) > 1e-12 {
		t.Errorf("expected 1.7 mm after year 1, got %f", got)
	}
	wantBending := 250 * section.ModulusFromDiameters(180, 180-2*1.7) * 1e-6
	if got := s.Bending.At(0, 0); math.Abs(got-wantBending) > 1e-9 {
		t.Errorf("expected bending %f kN·m, got %f", wantBending, got)
	}
	wantLateral := section.AnnulusArea(180, 180-2*1.7) * 1e-6
	if got := s.Lateral.At(0, 0); math.Abs(got-wantLateral) > 1e-12 {
		t.Errorf("expected lateral %g kN, got %g", wantLateral, got)
	}

	if got := s.Thickness.At(0, 49); got != 0 {
		t.Errorf("expected no wall left after 50 years, got %f", got)
	}
	if s.Bending.At(0, 49) != 0 || s.Lateral.At(0, 49) != 0 {
		t.Errorf("expected zero capacity with no wall, got %f / %f", s.Bending.At(0, 49), s.Lateral.At(0, 49))
	}
}

func TestSimulate_Invariants(t *testing.T) {
	g := nominalGeometry(t)
	trs := sampledTrajectories(t, 500, 11)

	s, err := Simulate(g, trs, horizon(50), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := s.Dims()
	if rows != 500 || cols != 50 {
		t.Fatalf("expected 500x50, got %dx%d", rows, cols)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			th := s.Thickness.At(i, j)
			if th < 0 || th > g.WallThickness {
				t.Fatalf("trajectory %d year %d: thickness %f out of [0, %f]", i, j+1, th, g.WallThickness)
			}
			if j > 0 {
				if th > s.Thickness.At(i, j-1) {
					t.Fatalf("trajectory %d: thickness grew from year %d to %d", i, j, j+1)
				}
				if s.Bending.At(i, j) > s.Bending.At(i, j-1) {
					t.Fatalf("trajectory %d: bending capacity grew from year %d to %d", i, j, j+1)
				}
			}
		}
	}
}

func TestSimulate_SampledYield(t *testing.T) {
	g := nominalGeometry(t)
	trs := []Trajectory{
		{Index: 0, KPrime: 1, U: 0.5, YieldStrength: 200},
		{Index: 1, KPrime: 1, U: 0.5, YieldStrength: 300},
	}

	nominal, err := Simulate(g, trs, horizon(3), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if nominal.Bending.At(0, 0) != nominal.Bending.At(1, 0) {
		t.Error("nominal yield should ignore per-trajectory strength")
	}

	opts := DefaultOptions()
	opts.SampledYield = true
	sampled, err := Simulate(g, trs, horizon(3), opts)
	if err != nil {
		t.Fatal(err)
	}
	ratio := sampled.Bending.At(1, 0) / sampled.Bending.At(0, 0)
	if math.Abs(ratio-1.5) > 1e-12 {
		t.Errorf("expected capacities in proportion to yield strength (1.5), got %f", ratio)
	}
}

func TestSimulate_Errors(t *testing.T) {
	g := nominalGeometry(t)
	trs := []Trajectory{{KPrime: 3.3, U: 0.5, YieldStrength: 250}}

	tests := []struct {
		name  string
		trs   []Trajectory
		years []int
	}{
		{"no trajectories", nil, horizon(50)},
		{"no years", trs, nil},
		{"year zero", trs, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(g, tt.trs, tt.years, DefaultOptions())
			if !errors.Is(err, sampler.ErrDegenerateEnsemble) {
				t.Errorf("expected ErrDegenerateEnsemble, got %v", err)
			}
		})
	}
}

func TestNewTrajectories(t *testing.T) {
	trs := sampledTrajectories(t, 100, 5)
	if len(trs) != 100 {
		t.Fatalf("expected 100 trajectories, got %d", len(trs))
	}
	for i, tr := range trs {
		if tr.Index != i {
			t.Errorf("expected index %d, got %d", i, tr.Index)
		}
		if tr.KPrime < 0 || tr.U < 0 {
			t.Errorf("trajectory %d has negative coefficients k'=%f u=%f", i, tr.KPrime, tr.U)
		}
	}
}

func TestNewTrajectories_FloorsNegativeCoefficients(t *testing.T) {
	// A wide k' distribution is certain to produce negative draws.
	params := material.Parameters()
	for i := range params {
		if params[i].Name == material.CorrosionKPrime {
			params[i].COV = 3
		}
	}
	set, err := sampler.SampleAll(params, 200, sampler.NewRand(9))
	if err != nil {
		t.Fatal(err)
	}
	trs, err := NewTrajectories(set)
	if err != nil {
		t.Fatal(err)
	}
	zeros := 0
	for _, tr := range trs {
		if tr.KPrime < 0 {
			t.Fatalf("trajectory %d kept negative k' %f", tr.Index, tr.KPrime)
		}
		if tr.KPrime == 0 {
			zeros++
		}
	}
	if zeros == 0 {
		t.Error("expected some k' samples to be floored at zero")
	}
}

func TestNewTrajectories_MissingParameter(t *testing.T) {
	set, err := sampler.SampleAll(material.DefaultParameters[:2], 10, sampler.NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTrajectories(set); !errors.Is(err, sampler.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

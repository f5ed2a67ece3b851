// Package analysis runs the corrosion reliability pipeline end to end:
// section geometry, parameter sampling, the corrosion horizon and the
// per-year aggregates.
package analysis

import (
	"fmt"
	"log/slog"

	"github.com/alexiusacademia/gopcr/internal/aggregate"
	"github.com/alexiusacademia/gopcr/internal/corrosion"
	"github.com/alexiusacademia/gopcr/internal/material"
	"github.com/alexiusacademia/gopcr/internal/sampler"
	"github.com/alexiusacademia/gopcr/internal/section"
)

// Result holds every array a presentation layer needs. It is built once
// by Run and not modified afterwards.
type Result struct {
	Config   Config
	Geometry section.Geometry

	// One ensemble per configured parameter
	Parameters sampler.EnsembleSet

	// Static bending capacity fy_j × S of the uncorroded section (kN·m),
	// one value per yield strength sample
	StaticBending        []float64
	StaticBendingSummary sampler.Summary

	Series      *corrosion.Series
	BendingBand aggregate.Band
	LateralBand aggregate.Band
	Failures    aggregate.Failures
}

// Run executes the pipeline for cfg.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	geom, err := section.NewGeometry(cfg.OuterDiameter, cfg.WallThickness)
	if err != nil {
		return nil, err
	}
	slog.Debug("section properties",
		"area_mm2", geom.Area,
		"inertia_mm4", geom.MomentOfInertia,
		"modulus_mm3", geom.SectionModulus)

	rng := sampler.NewRand(cfg.Seed)
	params, err := sampler.SampleAll(cfg.Parameters, cfg.Trajectories, rng)
	if err != nil {
		return nil, fmt.Errorf("sampling parameters: %w", err)
	}

	static, err := staticBending(params, geom)
	if err != nil {
		return nil, err
	}

	trajectories, err := corrosion.NewTrajectories(params)
	if err != nil {
		return nil, fmt.Errorf("building trajectories: %w", err)
	}

	series, err := corrosion.Simulate(geom, trajectories, cfg.Years(), cfg.corrosionOptions())
	if err != nil {
		return nil, fmt.Errorf("simulating corrosion: %w", err)
	}

	bending, err := aggregate.Summarize(series.Bending)
	if err != nil {
		return nil, fmt.Errorf("summarizing bending capacity: %w", err)
	}
	lateral, err := aggregate.Summarize(series.Lateral)
	if err != nil {
		return nil, fmt.Errorf("summarizing lateral capacity: %w", err)
	}
	failures, err := aggregate.CountFailures(series.Bending, bending, cfg.FailureRatio)
	if err != nil {
		return nil, fmt.Errorf("counting failures: %w", err)
	}

	slog.Info("analysis complete",
		"seed", cfg.Seed,
		"trajectories", cfg.Trajectories,
		"years", len(series.Years),
		"failure_threshold_knm", failures.Threshold,
		"final_failures", failures.Counts[len(failures.Counts)-1])

	return &Result{
		Config:               cfg,
		Geometry:             geom,
		Parameters:           params,
		StaticBending:        static,
		StaticBendingSummary: sampler.Summarize(static),
		Series:               series,
		BendingBand:          bending,
		LateralBand:          lateral,
		Failures:             failures,
	}, nil
}

func staticBending(params sampler.EnsembleSet, geom section.Geometry) ([]float64, error) {
	fy, ok := params.Get(material.SteelYieldStrength)
	if !ok {
		return nil, fmt.Errorf("%w: %q was not sampled", sampler.ErrInvalidParameter, material.SteelYieldStrength)
	}
	out := make([]float64, fy.Len())
	for i := range out {
		out[i] = material.BendingCapacity(fy.At(i), geom.SectionModulus)
	}
	return out, nil
}

// YearIndex returns the column of year in the series, or -1.
func (r *Result) YearIndex(year int) int {
	for j, y := range r.Series.Years {
		if y == year {
			return j
		}
	}
	return -1
}

// FirstFailureYear returns the first year with at least one trajectory
// below the threshold, and false when none fails within the horizon.
func (r *Result) FirstFailureYear() (int, bool) {
	for j, c := range r.Failures.Counts {
		if c > 0 {
			return r.Series.Years[j], true
		}
	}
	return 0, false
}

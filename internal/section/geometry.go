package section

import (
	"fmt"
	"math"
)

// NewGeometry computes the section properties of a pipe with the given
// outer diameter and wall thickness (mm).
func NewGeometry(outerDiameter, wallThickness float64) (Geometry, error) {
	if err := validate(outerDiameter, wallThickness); err != nil {
		return Geometry{}, err
	}

	g := Geometry{
		OuterDiameter: outerDiameter,
		WallThickness: wallThickness,
		InnerDiameter: outerDiameter - 2*wallThickness,
	}
	g.OuterRadius = g.OuterDiameter / 2
	g.InnerRadius = g.InnerDiameter / 2

	ro, ri := g.OuterRadius, g.InnerRadius
	g.Area = math.Pi * (ro*ro - ri*ri)
	g.MomentOfInertia = math.Pi * (math.Pow(ro, 4) - math.Pow(ri, 4)) / 4
	g.SectionModulus = g.MomentOfInertia / ro

	return g, nil
}

func validate(outerDiameter, wallThickness float64) error {
	if math.IsNaN(outerDiameter) || math.IsInf(outerDiameter, 0) || outerDiameter <= 0 {
		return &ValidationError{msg: fmt.Sprintf("outer diameter must be positive, got %g mm", outerDiameter)}
	}
	if math.IsNaN(wallThickness) || math.IsInf(wallThickness, 0) || wallThickness <= 0 {
		return &ValidationError{msg: fmt.Sprintf("wall thickness must be positive, got %g mm", wallThickness)}
	}
	if wallThickness >= outerDiameter/2 {
		return &ValidationError{msg: fmt.Sprintf("wall thickness %g mm leaves no bore in a %g mm pipe", wallThickness, outerDiameter)}
	}
	return nil
}

// Corroded returns the section modulus and net area of the pipe once the
// wall has been reduced to remaining (mm). The remaining thickness is
// clamped into [0, WallThickness]; a zero wall gives zero capacity.
func (g Geometry) Corroded(remaining float64) (modulus, area float64) {
	remaining = math.Max(0, math.Min(remaining, g.WallThickness))
	inner := g.OuterDiameter - 2*remaining
	return ModulusFromDiameters(g.OuterDiameter, inner), AnnulusArea(g.OuterDiameter, inner)
}

// ModulusFromDiameters is the elastic section modulus of a hollow circle,
// π(D⁴ - d⁴) / (32D). Equal to I/c for the same diameters.
func ModulusFromDiameters(outer, inner float64) float64 {
	if outer <= 0 {
		return 0
	}
	return math.Pi * (math.Pow(outer, 4) - math.Pow(inner, 4)) / (32 * outer)
}

// AnnulusArea is the ring area π(D² - d²) / 4.
func AnnulusArea(outer, inner float64) float64 {
	return math.Pi * (outer*outer - inner*inner) / 4
}

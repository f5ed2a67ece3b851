package material

// Nominal design constants for the pipe analysis

const (
	// Nominal pipe section (mm)
	OuterDiameter = 180.0
	WallThickness = 5.0

	// Steel
	YieldStrength = 250.0 // MPa, used by the time-stepped capacity

	// Lateral capacity proxy: unit force times net steel area
	UnitLateralForce = 1.0 // kN

	// Failure threshold as a fraction of the year-one mean bending capacity
	FailureRatio = 0.7

	// Simulation size
	Trajectories = 1000
	HorizonYears = 50

	// Percentile envelope
	LowerPercentile = 2.5
	UpperPercentile = 97.5
)

// Unit conversions
const (
	// N·mm to kN·m, so that MPa × mm³ gives kN·m
	NmmToKNm = 1e-6

	// mm² to m²
	Mm2ToM2 = 1e-6
)

// BendingCapacity converts a yield strength (MPa) and section modulus
// (mm³) into a moment capacity in kN·m.
func BendingCapacity(yieldStrength, modulus float64) float64 {
	return yieldStrength * modulus * NmmToKNm
}

// LateralCapacity scales the unit lateral force (kN) by the net area (mm²).
func LateralCapacity(unitForce, area float64) float64 {
	return unitForce * area * Mm2ToM2
}

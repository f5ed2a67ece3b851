package section

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when the wall does not fit inside the
// outer diameter or a dimension is not positive.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry holds the properties of a hollow circular (pipe) section.
// All lengths are in mm.
type Geometry struct {
	// Inputs
	OuterDiameter float64 `json:"outer_diameter"` // D
	WallThickness float64 `json:"wall_thickness"` // t

	// Derived dimensions
	InnerDiameter float64 `json:"inner_diameter"` // d = D - 2t
	OuterRadius   float64 `json:"outer_radius"`
	InnerRadius   float64 `json:"inner_radius"`

	// Section properties
	Area            float64 `json:"area"`              // mm²
	MomentOfInertia float64 `json:"moment_of_inertia"` // mm⁴
	SectionModulus  float64 `json:"section_modulus"`   // mm³
}

// ValidationError represents a geometry validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidGeometry, e.msg)
}

// Is lets errors.Is match ErrInvalidGeometry.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

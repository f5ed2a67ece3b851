package material

import "github.com/alexiusacademia/gopcr/internal/sampler"

// Parameter names used to pick ensembles out of a sampled set
const (
	SoilDensity        = "Soil Density"
	SoilFrictionAngle  = "Soil Friction Angle"
	SteelYieldStrength = "Steel Yield Strength"
	CorrosionKPrime    = "Corrosion k'"
	CorrosionU         = "Corrosion u"
)

// DefaultParameters lists the uncertain inputs with their mean and
// coefficient of variation. Order is the sampling order.
var DefaultParameters = []sampler.Distribution{
	{
		Name:   SoilDensity,
		Symbol: "γ",
		Unit:   "kN/m³",
		Mean:   19.5,
		COV:    0.10,
	},
	{
		Name:   SoilFrictionAngle,
		Symbol: "φ",
		Unit:   "deg",
		Mean:   25,
		COV:    0.10,
	},
	{
		Name:   SteelYieldStrength,
		Symbol: "fy",
		Unit:   "MPa",
		Mean:   YieldStrength,
		COV:    0.05,
	},
	{
		Name:   CorrosionKPrime,
		Symbol: "k'",
		Unit:   "mm",
		Mean:   3.3,
		COV:    0.07,
	},
	{
		Name:   CorrosionU,
		Symbol: "u",
		Unit:   "-",
		Mean:   0.5,
		COV:    0.14,
	},
}

// Parameters returns a copy of the default catalog that callers may edit.
func Parameters() []sampler.Distribution {
	out := make([]sampler.Distribution, len(DefaultParameters))
	copy(out, DefaultParameters)
	return out
}

// FindParameter returns the catalog entry with the given name.
func FindParameter(params []sampler.Distribution, name string) (sampler.Distribution, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return sampler.Distribution{}, false
}

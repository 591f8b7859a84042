package terrain

import "math"

// Height field constants. The surface is a closed-form combination of
// sinusoids: smooth, bounded, and biased above sea level so most of the map
// is land. Terrain meshing, collision, and placement all sample the same
// formula, so they always agree on the ground level at a point.
const (
	rollFreq  = 0.05
	rollAmp   = 5.0
	driftFreq = 0.01
	driftAmp  = 5.0
	baseLevel = 4.0
)

// HeightAt returns the surface elevation at a world coordinate. Pure: no
// state, no randomness; identical inputs always produce identical output.
func HeightAt(x, z float64) float64 {
	return math.Sin(x*rollFreq)*math.Cos(z*rollFreq)*rollAmp +
		math.Sin(x*driftFreq)*driftAmp +
		baseLevel
}

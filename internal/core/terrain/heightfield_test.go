package terrain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeightAtOrigin(t *testing.T) {
	// sin(0)*cos(0)*5 + sin(0)*5 + 4
	require.Equal(t, 4.0, HeightAt(0, 0))
}

func TestHeightAtIsPure(t *testing.T) {
	coords := [][2]float64{
		{0, 0}, {1, 1}, {-250.5, 733.25}, {99999, -99999}, {0.001, -0.001},
	}
	for _, c := range coords {
		first := HeightAt(c[0], c[1])
		for i := 0; i < 10; i++ {
			require.Equal(t, first, HeightAt(c[0], c[1]), "height must be identical for identical inputs")
		}
	}
}

func TestHeightAtBounded(t *testing.T) {
	// The formula's terms sum to at most 5+5+4 and at least -5-5+4.
	for x := -5000.0; x <= 5000; x += 37.5 {
		for z := -5000.0; z <= 5000; z += 37.5 {
			h := HeightAt(x, z)
			require.GreaterOrEqual(t, h, -6.0)
			require.LessOrEqual(t, h, 14.0)
		}
	}
}

func TestCoordAt(t *testing.T) {
	const size = 1000.0
	cases := []struct {
		x, z float64
		want ChunkCoord
	}{
		{0, 0, ChunkCoord{0, 0}},
		{499.9, 499.9, ChunkCoord{0, 0}},
		{500.1, 0, ChunkCoord{1, 0}},
		{-500.1, 0, ChunkCoord{-1, 0}},
		{1500, 0, ChunkCoord{2, 0}},
		{-1500.5, 2500, ChunkCoord{-2, 3}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, CoordAt(c.x, c.z, size), "CoordAt(%v, %v)", c.x, c.z)
	}
}

func TestChunkCenterRoundTrip(t *testing.T) {
	const size = 1000.0
	for _, coord := range []ChunkCoord{{0, 0}, {3, -2}, {-7, 11}} {
		x, z := coord.Center(size)
		require.Equal(t, coord, CoordAt(x, z, size))
	}
}

func TestDistXZIgnoresElevation(t *testing.T) {
	a := Vec3{X: 0, Y: 100, Z: 0}
	b := Vec3{X: 3, Y: -50, Z: 4}
	require.Equal(t, 5.0, a.DistXZ(b))
}

package terrain

import (
	"fmt"
	"math"
)

// ChunkCoord identifies one chunk of the unbounded world grid. Chunk (0,0) is
// centered on the world origin; boundaries sit at odd multiples of half the
// chunk size.
type ChunkCoord struct {
	X int
	Z int
}

// CoordAt maps a world position to the chunk containing it.
func CoordAt(x, z, chunkSize float64) ChunkCoord {
	half := chunkSize / 2
	return ChunkCoord{
		X: int(math.Floor((x + half) / chunkSize)),
		Z: int(math.Floor((z + half) / chunkSize)),
	}
}

// Center returns the world-space center of the chunk.
func (c ChunkCoord) Center(chunkSize float64) (x, z float64) {
	return float64(c.X) * chunkSize, float64(c.Z) * chunkSize
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Vec3 is a world-space position. Y is up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// DistXZ returns the horizontal distance between two positions, ignoring
// elevation. All separation constraints are planar.
func (v Vec3) DistXZ(o Vec3) float64 {
	return math.Hypot(o.X-v.X, o.Z-v.Z)
}

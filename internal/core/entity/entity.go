package entity

import (
	"github.com/google/uuid"

	"github.com/skyforge/skyforge/internal/core/terrain"
)

// Template is an opaque visual handle supplied by the asset-loading layer.
// The engine stores and hands it back; it never interprets it.
type Template any

// TreeTemplate pairs a visual variant with the collision footprint the engine
// needs at placement time.
type TreeTemplate struct {
	Handle    Template
	HitRadius float64
	Height    float64
}

// BuildingTemplate carries the bounding geometry of one building variant.
// The axis-aligned half extents describe the footprint before placement
// rotation (buildings are placed axis-aligned).
type BuildingTemplate struct {
	Handle Template
	HalfX  float64
	HalfZ  float64
	Height float64
}

// Runway is a landing strip. SafeRadius is the conservative envelope used by
// all separation checks against it.
type Runway struct {
	ID         uuid.UUID
	Pos        terrain.Vec3
	Heading    float64
	Length     float64
	Width      float64
	SafeRadius float64
	Surface    Template
	Owner      terrain.ChunkCoord
}

// Peak is one cone of a mountain, offset from the mountain's shared center.
// Flare widens the cone near the ground; SnowLine is the height above which
// the snow gradient starts.
type Peak struct {
	Offset   terrain.Vec3
	Radius   float64
	Height   float64
	Flare    float64
	SnowLine float64
}

// Mountain is a cluster of 3-5 flared cones. BaseRadius is the conservative
// registered radius: largest peak radius times the flare factor.
type Mountain struct {
	ID         uuid.UUID
	Pos        terrain.Vec3
	Peaks      []Peak
	BaseRadius float64
	Owner      terrain.ChunkCoord
}

// Tree is a regular scatter tree. Variant indexes the template set it was
// picked from; HitRadius and Height are already scaled.
type Tree struct {
	ID        uuid.UUID
	Pos       terrain.Vec3
	Variant   int
	Visual    Template
	Scale     float64
	HitRadius float64
	Height    float64
	Owner     terrain.ChunkCoord
}

// BossTree is the large destructible tree variant. It carries gameplay
// health; everything else about it is fixed at placement.
type BossTree struct {
	ID        uuid.UUID
	Pos       terrain.Vec3
	Visual    Template
	HitRadius float64
	Height    float64
	Health    int
	MaxHealth int
	Owner     terrain.ChunkCoord
}

// Damage applies amount and reports whether this exact call destroyed the
// tree. Once destroyed, further calls report false; the caller is expected to
// unregister the tree on the destroying call.
func (b *BossTree) Damage(amount int) bool {
	if b.Health <= 0 {
		return false
	}
	b.Health -= amount
	return b.Health <= 0
}

// Building is one settlement structure with an axis-aligned footprint.
type Building struct {
	ID     uuid.UUID
	Pos    terrain.Vec3
	Visual Template
	HalfX  float64
	HalfZ  float64
	Height float64
	Owner  terrain.ChunkCoord
}

// Overlaps reports axis-aligned footprint overlap with margin on every side.
func (b *Building) Overlaps(o *Building, margin float64) bool {
	dx := b.Pos.X - o.Pos.X
	if dx < 0 {
		dx = -dx
	}
	dz := b.Pos.Z - o.Pos.Z
	if dz < 0 {
		dz = -dz
	}
	return dx < b.HalfX+o.HalfX+margin && dz < b.HalfZ+o.HalfZ+margin
}

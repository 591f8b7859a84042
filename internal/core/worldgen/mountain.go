package worldgen

import (
	"math"

	"github.com/google/uuid"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
)

// placeMountain puts one mountain in the chunk. Candidates sit at a random
// angle and a radial 30-45% of the chunk size from the center; each candidate
// is tested against every already-registered mountain and runway, across all
// loaded chunks. When the retry budget runs out, the mountain lands
// diametrically opposite the nearest runway at a fixed chunk-relative
// distance. The fallback is a heuristic, not a proof of separation; the chunk
// flags it so callers can tell the two outcomes apart.
func (g *Generator) placeMountain(c *Chunk) {
	t := g.tun.Mountains
	// Conservative radius before the peaks exist: the largest possible peak
	// with its flared base.
	candRadius := t.PeakRadiusMax * t.FlareFactor

	var x, z float64
	placed := false
	for attempt := 0; attempt < t.PlaceRetries; attempt++ {
		x, z = g.radialCandidate(c.Coord, t.RadialMin, t.RadialMax)
		if g.mountainSeparated(x, z, candRadius) {
			placed = true
			break
		}
	}
	if !placed {
		x, z = g.mountainFallback(c.Coord)
		c.MountainFallback = true
		g.log.Debug("mountain fallback placement", log.String("coord", c.Coord.String()))
	}

	m := g.buildMountain(c.Coord, groundAt(x, z))
	c.Mountains = append(c.Mountains, m)
	g.reg.RegisterMountain(m)

	g.clearTreesAround(c, m.Pos, m.BaseRadius+t.ClearMargin)
	g.scatterMountainRing(c, m)
}

// mountainSeparated tests the candidate against every registered mountain and
// runway: center distance must reach candidate radius + the other feature's
// safe radius + the separation buffer.
func (g *Generator) mountainSeparated(x, z, candRadius float64) bool {
	buffer := g.tun.Mountains.Buffer
	for _, m := range g.reg.Mountains() {
		if math.Hypot(x-m.Pos.X, z-m.Pos.Z) < candRadius+m.BaseRadius+buffer {
			return false
		}
	}
	for _, r := range g.reg.Runways() {
		if math.Hypot(x-r.Pos.X, z-r.Pos.Z) < candRadius+r.SafeRadius+buffer {
			return false
		}
	}
	return true
}

// mountainFallback places opposite the nearest runway, seen from the chunk
// center. With no runways loaded it backs off to the nearest mountain, and
// with nothing loaded at all it uses a fixed direction.
func (g *Generator) mountainFallback(coord terrain.ChunkCoord) (x, z float64) {
	cx, cz := coord.Center(g.tun.ChunkSize)

	var nearest *terrain.Vec3
	nearestDist := math.MaxFloat64
	for _, r := range g.reg.Runways() {
		if d := math.Hypot(cx-r.Pos.X, cz-r.Pos.Z); d < nearestDist {
			nearestDist = d
			pos := r.Pos
			nearest = &pos
		}
	}
	if nearest == nil {
		for _, m := range g.reg.Mountains() {
			if d := math.Hypot(cx-m.Pos.X, cz-m.Pos.Z); d < nearestDist {
				nearestDist = d
				pos := m.Pos
				nearest = &pos
			}
		}
	}

	dirX, dirZ := 1.0, 0.0
	if nearest != nil {
		dx, dz := cx-nearest.X, cz-nearest.Z
		if l := math.Hypot(dx, dz); l > 1e-9 {
			dirX, dirZ = dx/l, dz/l
		}
	}
	dist := g.tun.Mountains.FallbackDist * g.tun.ChunkSize
	return cx + dirX*dist, cz + dirZ*dist
}

// buildMountain raises 3-5 randomly sized conical peaks around a shared
// center. The registered base radius is the largest peak radius times the
// flare factor, so separation checks stay conservative.
func (g *Generator) buildMountain(coord terrain.ChunkCoord, pos terrain.Vec3) *entity.Mountain {
	t := g.tun.Mountains
	count := t.PeaksMin + g.rng.Intn(t.PeaksMax-t.PeaksMin+1)
	offsetRange := t.PeakRadiusMax * 0.5

	peaks := make([]entity.Peak, 0, count)
	largest := 0.0
	for i := 0; i < count; i++ {
		radius := t.PeakRadiusMin + g.rng.Float64()*(t.PeakRadiusMax-t.PeakRadiusMin)
		height := t.PeakHeightMin + g.rng.Float64()*(t.PeakHeightMax-t.PeakHeightMin)
		peaks = append(peaks, entity.Peak{
			Offset: terrain.Vec3{
				X: (g.rng.Float64()*2 - 1) * offsetRange,
				Z: (g.rng.Float64()*2 - 1) * offsetRange,
			},
			Radius:   radius,
			Height:   height,
			Flare:    t.FlareFactor,
			SnowLine: height * t.SnowLine,
		})
		if radius > largest {
			largest = radius
		}
	}

	return &entity.Mountain{
		ID:         uuid.New(),
		Pos:        pos,
		Peaks:      peaks,
		BaseRadius: largest * t.FlareFactor,
		Owner:      coord,
	}
}

// scatterMountainRing re-plants a ring of regular trees just outside the
// cleared base, so the mountain does not sit in a bald disc.
func (g *Generator) scatterMountainRing(c *Chunk, m *entity.Mountain) {
	if len(g.tmpl.Trees) == 0 {
		return
	}
	t := g.tun.Mountains
	for i := 0; i < t.RingTrees; i++ {
		angle := g.rng.Float64() * 2 * math.Pi
		radial := m.BaseRadius + t.ClearMargin + g.rng.Float64()*t.RingWidth
		x := m.Pos.X + math.Cos(angle)*radial
		z := m.Pos.Z + math.Sin(angle)*radial
		if terrain.HeightAt(x, z) < g.tun.Trees.WaterLevel {
			continue
		}
		g.addTree(c, x, z)
	}
}

package worldgen

import (
	"math"

	"github.com/google/uuid"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
)

// placeRunway puts one runway in the chunk, after the mountain so the
// same-chunk mountain is visible to the separation check. Same retry shape as
// the mountain: radial candidates tested against every registered mountain,
// then a fallback opposite the nearest mountain. The origin chunk is special:
// its runway is the starting strip, pinned to the world origin inside the
// exclusion zone the tree scatter kept clear.
func (g *Generator) placeRunway(c *Chunk) {
	if g.tmpl.RunwaySurface == nil {
		g.log.Debug("no runway surface template, skipping runway", log.String("coord", c.Coord.String()))
		return
	}
	t := g.tun.Runways

	var x, z float64
	heading := g.rng.Float64() * 2 * math.Pi
	origin := c.Coord == terrain.ChunkCoord{}
	if origin {
		x, z = 0, 0
		heading = 0
	} else {
		placed := false
		for attempt := 0; attempt < t.PlaceRetries; attempt++ {
			x, z = g.radialCandidate(c.Coord, t.RadialMin, t.RadialMax)
			if g.runwaySeparated(x, z, t.SafeRadius) {
				placed = true
				break
			}
		}
		if !placed {
			x, z = g.runwayFallback(c.Coord)
			c.RunwayFallback = true
			g.log.Debug("runway fallback placement", log.String("coord", c.Coord.String()))
		}
	}

	// The deck sits just above the highest ground sampled under the oriented
	// footprint, so no terrain pokes through the surface.
	deckY := g.maxGroundUnder(x, z, heading, t.Length, t.Width) + t.DeckClearance

	rw := &entity.Runway{
		ID:         uuid.New(),
		Pos:        terrain.Vec3{X: x, Y: deckY, Z: z},
		Heading:    heading,
		Length:     t.Length,
		Width:      t.Width,
		SafeRadius: t.SafeRadius,
		Surface:    g.tmpl.RunwaySurface,
		Owner:      c.Coord,
	}
	c.Runways = append(c.Runways, rw)
	g.reg.RegisterRunway(rw)

	g.clearTreesAround(c, rw.Pos, t.TreeClearRadius)
}

func (g *Generator) runwaySeparated(x, z, safeRadius float64) bool {
	buffer := g.tun.Mountains.Buffer
	for _, m := range g.reg.Mountains() {
		if math.Hypot(x-m.Pos.X, z-m.Pos.Z) < safeRadius+m.BaseRadius+buffer {
			return false
		}
	}
	return true
}

// runwayFallback mirrors the mountain fallback: opposite the nearest
// mountain, seen from the chunk center.
func (g *Generator) runwayFallback(coord terrain.ChunkCoord) (x, z float64) {
	cx, cz := coord.Center(g.tun.ChunkSize)

	var nearest *terrain.Vec3
	nearestDist := math.MaxFloat64
	for _, m := range g.reg.Mountains() {
		if d := math.Hypot(cx-m.Pos.X, cz-m.Pos.Z); d < nearestDist {
			nearestDist = d
			pos := m.Pos
			nearest = &pos
		}
	}

	dirX, dirZ := 1.0, 0.0
	if nearest != nil {
		dx, dz := cx-nearest.X, cz-nearest.Z
		if l := math.Hypot(dx, dz); l > 1e-9 {
			dirX, dirZ = dx/l, dz/l
		}
	}
	dist := g.tun.Runways.FallbackDist * g.tun.ChunkSize
	return cx + dirX*dist, cz + dirZ*dist
}

// maxGroundUnder samples the height field on a grid across the oriented
// length-by-width box centered at (x, z) and returns the highest value.
func (g *Generator) maxGroundUnder(x, z, heading, length, width float64) float64 {
	const alongSamples, acrossSamples = 9, 3
	sinH, cosH := math.Sincos(heading)

	maxH := math.Inf(-1)
	for i := 0; i < alongSamples; i++ {
		u := (float64(i)/float64(alongSamples-1) - 0.5) * length
		for j := 0; j < acrossSamples; j++ {
			v := (float64(j)/float64(acrossSamples-1) - 0.5) * width
			sx := x + u*cosH - v*sinH
			sz := z + u*sinH + v*cosH
			if h := terrain.HeightAt(sx, sz); h > maxH {
				maxH = h
			}
		}
	}
	return maxH
}

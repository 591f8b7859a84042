package worldgen

import (
	"math"

	"github.com/google/uuid"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
)

// placeSettlement scatters building clusters. Each cluster center gets a few
// placement attempts at random offsets; candidates too close to a runway or
// the chunk's mountain, or overlapping an already-placed building, are
// skipped silently. If every attempt failed, exactly one building is forced
// so a chunk never ships without settlement content.
func (g *Generator) placeSettlement(c *Chunk) {
	if len(g.tmpl.Buildings) == 0 {
		g.log.Debug("no building templates, skipping settlement", log.String("coord", c.Coord.String()))
		return
	}
	t := g.tun.Settlements

	for cluster := 0; cluster < t.ClusterAttempts; cluster++ {
		ccx, ccz := g.randomInChunk(c.Coord)
		for i := 0; i < t.BuildingsPerCluster; i++ {
			x := ccx + (g.rng.Float64()*2-1)*t.ClusterSpread
			z := ccz + (g.rng.Float64()*2-1)*t.ClusterSpread
			g.tryBuilding(c, x, z)
		}
	}

	if len(c.Buildings) == 0 {
		g.forceBuilding(c)
	}
}

// tryBuilding validates one candidate and places it if clear.
func (g *Generator) tryBuilding(c *Chunk, x, z float64) {
	t := g.tun.Settlements

	for _, r := range g.reg.Runways() {
		if math.Hypot(x-r.Pos.X, z-r.Pos.Z) < r.SafeRadius+t.RunwayClearance {
			return
		}
	}
	for _, m := range c.Mountains {
		if math.Hypot(x-m.Pos.X, z-m.Pos.Z) < m.BaseRadius+t.MountainClearance {
			return
		}
	}

	b := g.newBuilding(c.Coord, x, z)
	for _, other := range c.Buildings {
		if b.Overlaps(other, t.OverlapMargin) {
			return
		}
	}

	c.Buildings = append(c.Buildings, b)
	g.reg.RegisterBuilding(b)
}

// forceBuilding guarantees per-chunk minimum content: one building at a fixed
// offset from the chunk center, placed without constraint checks.
func (g *Generator) forceBuilding(c *Chunk) {
	cx, cz := c.Coord.Center(g.tun.ChunkSize)
	offset := g.tun.ChunkSize * 0.25
	b := g.newBuilding(c.Coord, cx+offset, cz+offset)
	c.Buildings = append(c.Buildings, b)
	g.reg.RegisterBuilding(b)
	g.log.Debug("forced settlement fallback", log.String("coord", c.Coord.String()))
}

// newBuilding picks a random template and rests its base on the local ground.
func (g *Generator) newBuilding(coord terrain.ChunkCoord, x, z float64) *entity.Building {
	bt := g.tmpl.Buildings[g.rng.Intn(len(g.tmpl.Buildings))]
	return &entity.Building{
		ID:     uuid.New(),
		Pos:    groundAt(x, z),
		Visual: bt.Handle,
		HalfX:  bt.HalfX,
		HalfZ:  bt.HalfZ,
		Height: bt.Height,
		Owner:  coord,
	}
}

package worldgen

import (
	"math"

	"github.com/google/uuid"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
)

// scatterTrees throws a fixed number of candidates uniformly into the chunk.
// A candidate is dropped when it lands in the central exclusion zone (kept
// clear for the origin chunk's starting runway) or when the ground there is
// under water. Dropped candidates are not retried.
func (g *Generator) scatterTrees(c *Chunk) {
	if len(g.tmpl.Trees) == 0 {
		g.log.Debug("no tree templates, skipping tree scatter", log.String("coord", c.Coord.String()))
		return
	}
	t := g.tun.Trees
	cx, cz := c.Coord.Center(g.tun.ChunkSize)

	for i := 0; i < t.CountPerChunk; i++ {
		x, z := g.randomInChunk(c.Coord)
		if math.Hypot(x-cx, z-cz) < t.CenterExclusion {
			continue
		}
		if terrain.HeightAt(x, z) < t.WaterLevel {
			continue
		}
		g.addTree(c, x, z)
	}
}

// addTree places one regular tree: uniform variant pick, uniform scale within
// the tuning range, registered into both the chunk and the registry.
func (g *Generator) addTree(c *Chunk, x, z float64) {
	t := g.tun.Trees
	variant := g.rng.Intn(len(g.tmpl.Trees))
	tt := g.tmpl.Trees[variant]
	scale := t.ScaleMin + g.rng.Float64()*(t.ScaleMax-t.ScaleMin)

	hitRadius := tt.HitRadius
	if hitRadius == 0 {
		hitRadius = t.HitRadius
	}
	height := tt.Height
	if height == 0 {
		height = t.Height
	}

	tree := &entity.Tree{
		ID:        uuid.New(),
		Pos:       groundAt(x, z),
		Variant:   variant,
		Visual:    tt.Handle,
		Scale:     scale,
		HitRadius: hitRadius * scale,
		Height:    height * scale,
		Owner:     c.Coord,
	}
	c.Trees = append(c.Trees, tree)
	g.reg.RegisterTree(tree)
}

// scatterBossTrees follows the same pattern with a smaller count, a larger
// exclusion zone, no scale randomization, and a fixed health budget.
func (g *Generator) scatterBossTrees(c *Chunk) {
	if g.tmpl.Boss == nil {
		g.log.Debug("no boss tree template, skipping boss scatter", log.String("coord", c.Coord.String()))
		return
	}
	t := g.tun.Trees
	cx, cz := c.Coord.Center(g.tun.ChunkSize)

	for i := 0; i < t.BossCount; i++ {
		x, z := g.randomInChunk(c.Coord)
		if math.Hypot(x-cx, z-cz) < t.BossExclusion {
			continue
		}
		if terrain.HeightAt(x, z) < t.WaterLevel {
			continue
		}
		boss := &entity.BossTree{
			ID:        uuid.New(),
			Pos:       groundAt(x, z),
			Visual:    g.tmpl.Boss,
			HitRadius: t.BossHitRadius,
			Height:    t.BossHeight,
			Health:    t.BossMaxHealth,
			MaxHealth: t.BossMaxHealth,
			Owner:     c.Coord,
		}
		c.BossTrees = append(c.BossTrees, boss)
		g.reg.RegisterBossTree(boss)
	}
}

// clearTreesAround removes every tree the chunk owns within radius of center,
// from both the chunk list and the registry. The chunk is detached explicitly
// because it is not resolvable through the streamer map while it is still
// being generated. Walks back-to-front because detachment mutates the list
// being iterated.
func (g *Generator) clearTreesAround(c *Chunk, center terrain.Vec3, radius float64) {
	for i := len(c.Trees) - 1; i >= 0; i-- {
		if t := c.Trees[i]; t.Pos.DistXZ(center) < radius {
			c.DetachTree(t)
			g.reg.UnregisterTree(t)
		}
	}
	for i := len(c.BossTrees) - 1; i >= 0; i-- {
		if t := c.BossTrees[i]; t.Pos.DistXZ(center) < radius {
			c.DetachBossTree(t)
			g.reg.UnregisterBossTree(t)
		}
	}
}

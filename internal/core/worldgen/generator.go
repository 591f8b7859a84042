package worldgen

import (
	"math"
	"math/rand"
	"time"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/tuning"
)

// Templates are the opaque visual handles the asset layer supplies, plus the
// footprint metadata the placement steps need. A missing category skips that
// category's placement step; it is never an error.
type Templates struct {
	Trees         []entity.TreeTemplate
	Boss          entity.Template
	Buildings     []entity.BuildingTemplate
	RunwaySurface entity.Template
}

// Generator synthesizes the full content of one chunk: terrain surface first,
// then feature placement in a fixed order, because later steps consult the
// registrations earlier steps made. Generation is synchronous and cannot
// fail; placement that runs out of retries falls back or skips silently.
//
// Randomness is intentionally non-reproducible across generations of the same
// coordinate (tuning.Seed=0); a fixed seed makes runs repeatable for tests.
type Generator struct {
	tun  tuning.Tuning
	reg  *entity.Registry
	tmpl Templates
	rng  *rand.Rand
	log  log.Log
}

func New(tun tuning.Tuning, reg *entity.Registry, tmpl Templates, logger log.Log) *Generator {
	if logger == nil {
		logger = log.Nop()
	}
	seed := tun.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		tun:  tun,
		reg:  reg,
		tmpl: tmpl,
		rng:  rand.New(rand.NewSource(seed)),
		log:  logger,
	}
}

// Generate builds one chunk. Order matters: trees scatter first, the mountain
// may clear some of them, the runway is placed after the mountain so the
// same-chunk mountain is visible to its separation check, and settlements
// avoid both.
func (g *Generator) Generate(coord terrain.ChunkCoord) *Chunk {
	c := &Chunk{Coord: coord}

	c.Patch = terrain.BuildPatch(coord, terrain.PatchParams{
		Size:     g.tun.ChunkSize,
		Res:      g.tun.Terrain.GridRes,
		RockLine: g.tun.Terrain.RockLine,
		SandLine: g.tun.Terrain.SandLine,
		Jitter:   g.tun.Terrain.ColorJitter,
	})

	g.scatterTrees(c)
	g.scatterBossTrees(c)
	g.placeMountain(c)
	g.placeRunway(c)
	g.placeSettlement(c)

	g.log.Debug("chunk generated",
		log.String("coord", coord.String()),
		log.Int("trees", len(c.Trees)),
		log.Int("boss_trees", len(c.BossTrees)),
		log.Int("buildings", len(c.Buildings)),
		log.Bool("mountain_fallback", c.MountainFallback),
		log.Bool("runway_fallback", c.RunwayFallback),
	)
	return c
}

// randomInChunk picks a uniform position inside the chunk's footprint.
func (g *Generator) randomInChunk(coord terrain.ChunkCoord) (x, z float64) {
	cx, cz := coord.Center(g.tun.ChunkSize)
	half := g.tun.ChunkSize / 2
	return cx + (g.rng.Float64()*2-1)*half, cz + (g.rng.Float64()*2-1)*half
}

// radialCandidate picks a position at a random angle and a radial distance
// between minFrac and maxFrac of the chunk size from the chunk center.
func (g *Generator) radialCandidate(coord terrain.ChunkCoord, minFrac, maxFrac float64) (x, z float64) {
	cx, cz := coord.Center(g.tun.ChunkSize)
	angle := g.rng.Float64() * 2 * math.Pi
	radial := (minFrac + g.rng.Float64()*(maxFrac-minFrac)) * g.tun.ChunkSize
	return cx + math.Cos(angle)*radial, cz + math.Sin(angle)*radial
}

// groundAt places a feature's base on the surface.
func groundAt(x, z float64) terrain.Vec3 {
	return terrain.Vec3{X: x, Y: terrain.HeightAt(x, z), Z: z}
}

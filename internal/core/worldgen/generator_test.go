package worldgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/tuning"
)

func testTemplates() Templates {
	return Templates{
		Trees: []entity.TreeTemplate{
			{Handle: "tree/a", HitRadius: 4, Height: 14},
			{Handle: "tree/b", HitRadius: 3, Height: 18},
		},
		Boss: "tree/boss",
		Buildings: []entity.BuildingTemplate{
			{Handle: "building/a", HalfX: 9, HalfZ: 7, Height: 8},
			{Handle: "building/b", HalfX: 14, HalfZ: 10, Height: 12},
		},
		RunwaySurface: "runway/asphalt",
	}
}

func testGenerator(seed int64) (*Generator, *entity.Registry, tuning.Tuning) {
	tun := tuning.Default()
	tun.Seed = seed
	reg := entity.NewRegistry(nil)
	return New(tun, reg, testTemplates(), nil), reg, tun
}

func TestGenerateRegistryMatchesChunk(t *testing.T) {
	g, reg, _ := testGenerator(42)
	c := g.Generate(terrain.ChunkCoord{X: 5, Z: 5})

	// A single generated chunk: registry contents must equal its owned lists.
	require.ElementsMatch(t, c.Trees, reg.Trees())
	require.ElementsMatch(t, c.BossTrees, reg.BossTrees())
	require.ElementsMatch(t, c.Mountains, reg.Mountains())
	require.ElementsMatch(t, c.Runways, reg.Runways())
	require.ElementsMatch(t, c.Buildings, reg.Buildings())
}

func TestGenerateChunkContent(t *testing.T) {
	g, _, tun := testGenerator(7)
	coord := terrain.ChunkCoord{X: 5, Z: 5}
	c := g.Generate(coord)

	require.Equal(t, coord, c.Coord)
	require.NotNil(t, c.Patch)
	require.Len(t, c.Mountains, 1)
	require.Len(t, c.Runways, 1)
	require.NotEmpty(t, c.Trees)
	require.NotEmpty(t, c.Buildings, "settlement fallback guarantees at least one building")

	for _, tree := range c.Trees {
		require.GreaterOrEqual(t, terrain.HeightAt(tree.Pos.X, tree.Pos.Z), tun.Trees.WaterLevel,
			"trees never stand under water")
		require.GreaterOrEqual(t, tree.Scale, tun.Trees.ScaleMin)
		require.LessOrEqual(t, tree.Scale, tun.Trees.ScaleMax)
		require.Equal(t, coord, tree.Owner)
	}
	for _, boss := range c.BossTrees {
		require.Equal(t, tun.Trees.BossMaxHealth, boss.Health)
		require.Equal(t, tun.Trees.BossMaxHealth, boss.MaxHealth)
	}
}

func TestMountainGeometry(t *testing.T) {
	g, _, tun := testGenerator(11)
	c := g.Generate(terrain.ChunkCoord{X: 3, Z: -4})
	m := c.Mountains[0]

	mt := tun.Mountains
	require.GreaterOrEqual(t, len(m.Peaks), mt.PeaksMin)
	require.LessOrEqual(t, len(m.Peaks), mt.PeaksMax)

	largest := 0.0
	for _, p := range m.Peaks {
		require.GreaterOrEqual(t, p.Radius, mt.PeakRadiusMin)
		require.LessOrEqual(t, p.Radius, mt.PeakRadiusMax)
		require.InDelta(t, p.Height*mt.SnowLine, p.SnowLine, 1e-9)
		require.Equal(t, mt.FlareFactor, p.Flare)
		if p.Radius > largest {
			largest = p.Radius
		}
	}
	require.InDelta(t, largest*mt.FlareFactor, m.BaseRadius, 1e-9,
		"registered radius is the largest peak with its flare")
}

func TestMountainClearsTrees(t *testing.T) {
	g, _, tun := testGenerator(13)
	c := g.Generate(terrain.ChunkCoord{X: 8, Z: 8})
	m := c.Mountains[0]

	clear := m.BaseRadius + tun.Mountains.ClearMargin
	for _, tree := range c.Trees {
		require.GreaterOrEqual(t, tree.Pos.DistXZ(m.Pos), clear,
			"no tree may remain inside the mountain's cleared base")
	}
	for _, boss := range c.BossTrees {
		require.GreaterOrEqual(t, boss.Pos.DistXZ(m.Pos), clear)
	}
}

func TestRunwayClearsTrees(t *testing.T) {
	g, _, tun := testGenerator(17)
	c := g.Generate(terrain.ChunkCoord{X: -6, Z: 2})
	rw := c.Runways[0]

	for _, tree := range c.Trees {
		require.GreaterOrEqual(t, tree.Pos.DistXZ(rw.Pos), tun.Runways.TreeClearRadius)
	}
}

func TestRunwayDeckSitsAboveGround(t *testing.T) {
	g, _, tun := testGenerator(19)
	c := g.Generate(terrain.ChunkCoord{X: 4, Z: 4})
	rw := c.Runways[0]

	center := terrain.HeightAt(rw.Pos.X, rw.Pos.Z)
	require.GreaterOrEqual(t, rw.Pos.Y, center+tun.Runways.DeckClearance-1e-9,
		"deck surface must clear the highest sampled ground")
}

func TestOriginChunkStartingRunway(t *testing.T) {
	g, _, _ := testGenerator(23)
	c := g.Generate(terrain.ChunkCoord{})
	require.Len(t, c.Runways, 1)

	rw := c.Runways[0]
	require.Zero(t, rw.Pos.X)
	require.Zero(t, rw.Pos.Z)
	require.Zero(t, rw.Heading)
	require.False(t, c.RunwayFallback)
}

func TestSeparationOrFallbackAcrossNeighborhood(t *testing.T) {
	g, _, tun := testGenerator(29)

	var chunks []*Chunk
	for x := 20; x <= 22; x++ {
		for z := 20; z <= 22; z++ {
			chunks = append(chunks, g.Generate(terrain.ChunkCoord{X: x, Z: z}))
		}
	}

	buffer := tun.Mountains.Buffer
	for _, c := range chunks {
		if len(c.Mountains) == 0 || len(c.Runways) == 0 {
			continue
		}
		m, rw := c.Mountains[0], c.Runways[0]
		dist := math.Hypot(m.Pos.X-rw.Pos.X, m.Pos.Z-rw.Pos.Z)
		separated := dist >= m.BaseRadius+rw.SafeRadius+buffer
		require.True(t, separated || c.RunwayFallback || c.MountainFallback,
			"chunk %v: mountain/runway distance %.1f violates separation without a fallback flag",
			c.Coord, dist)
	}
}

func TestSettlementAvoidsRunwayAndMountain(t *testing.T) {
	g, _, tun := testGenerator(31)
	c := g.Generate(terrain.ChunkCoord{X: 15, Z: 15})

	if len(c.Buildings) == 1 {
		// A single building may be the unconstrained forced fallback.
		return
	}
	m, rw := c.Mountains[0], c.Runways[0]
	for _, b := range c.Buildings {
		require.GreaterOrEqual(t, b.Pos.DistXZ(rw.Pos), rw.SafeRadius+tun.Settlements.RunwayClearance)
		require.GreaterOrEqual(t, b.Pos.DistXZ(m.Pos), m.BaseRadius+tun.Settlements.MountainClearance)
	}
}

func TestSettlementBuildingsNeverOverlap(t *testing.T) {
	g, _, tun := testGenerator(37)
	c := g.Generate(terrain.ChunkCoord{X: 12, Z: -9})

	for i, a := range c.Buildings {
		for _, b := range c.Buildings[i+1:] {
			require.False(t, a.Overlaps(b, tun.Settlements.OverlapMargin))
		}
	}
}

func TestSettlementForcedFallback(t *testing.T) {
	tun := tuning.Default()
	tun.Seed = 41
	// No cluster attempts: the guaranteed-minimum path must fire.
	tun.Settlements.ClusterAttempts = 0
	reg := entity.NewRegistry(nil)
	g := New(tun, reg, testTemplates(), nil)

	c := g.Generate(terrain.ChunkCoord{X: 2, Z: 2})
	require.Len(t, c.Buildings, 1)
	require.Len(t, reg.Buildings(), 1)
}

func TestMissingTemplatesSkipCategories(t *testing.T) {
	tun := tuning.Default()
	tun.Seed = 43
	reg := entity.NewRegistry(nil)
	g := New(tun, reg, Templates{}, nil)

	c := g.Generate(terrain.ChunkCoord{X: 1, Z: 1})
	require.Empty(t, c.Trees)
	require.Empty(t, c.BossTrees)
	require.Empty(t, c.Runways)
	require.Empty(t, c.Buildings)
	// The mountain needs no external assets and is always built.
	require.Len(t, c.Mountains, 1)
}

func TestDisposeUnregistersEverything(t *testing.T) {
	g, reg, _ := testGenerator(47)
	c := g.Generate(terrain.ChunkCoord{X: 6, Z: 6})

	c.Dispose(reg)
	require.Empty(t, reg.Trees())
	require.Empty(t, reg.BossTrees())
	require.Empty(t, reg.Mountains())
	require.Empty(t, reg.Runways())
	require.Empty(t, reg.Buildings())
	require.Nil(t, c.Patch)

	// Disposal is exactly-once.
	c.Dispose(reg)
}

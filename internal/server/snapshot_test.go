package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/tuning"
	"github.com/skyforge/skyforge/internal/core/world"
	"github.com/skyforge/skyforge/internal/core/worldgen"
)

func testEngine(t *testing.T) *world.Engine {
	t.Helper()
	tun := tuning.Default()
	tun.Seed = 1
	tmpl := worldgen.Templates{
		Trees:         []entity.TreeTemplate{{Handle: "tree/a", HitRadius: 4, Height: 14}},
		Boss:          "tree/boss",
		Buildings:     []entity.BuildingTemplate{{Handle: "building/a", HalfX: 10, HalfZ: 8, Height: 9}},
		RunwaySurface: "runway/asphalt",
	}
	return world.NewEngine(tun, tmpl, nil)
}

func TestBuildSnapshotReflectsEngine(t *testing.T) {
	e := testEngine(t)
	observer := terrain.Vec3{X: 10, Y: 80, Z: -10}
	e.Update(observer)

	snap := BuildSnapshot(e, 7, observer)

	require.Equal(t, int64(7), snap.Frame)
	require.Equal(t, Position{X: 10, Y: 80, Z: -10}, snap.Observer)
	require.Len(t, snap.Chunks, 9)
	require.Len(t, snap.Runways, len(e.Runways()))
	require.Len(t, snap.Mountains, len(e.Mountains()))
	require.Len(t, snap.Trees, len(e.Trees()))
	require.Len(t, snap.BossTrees, len(e.BossTrees()))
	require.Len(t, snap.Buildings, len(e.Buildings()))

	first := e.Runways()[0]
	require.Equal(t, toPosition(first.Pos), snap.Runways[0].Pos)
	require.Equal(t, first.Heading, snap.Runways[0].Heading)
}

func TestBuildSnapshotTracksDestruction(t *testing.T) {
	e := testEngine(t)
	e.Update(terrain.Vec3{})

	before := BuildSnapshot(e, 0, terrain.Vec3{})
	require.NotEmpty(t, before.Trees)

	e.UnregisterTree(e.Trees()[0])
	after := BuildSnapshot(e, 1, terrain.Vec3{})
	require.Len(t, after.Trees, len(before.Trees)-1)
}

func TestSnapshotMarshalsToStableJSON(t *testing.T) {
	e := testEngine(t)
	e.Update(terrain.Vec3{})

	raw, err := json.Marshal(BuildSnapshot(e, 3, terrain.Vec3{Y: 50}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"frame", "observer", "chunks", "runways", "mountains", "trees", "boss_trees", "buildings"} {
		require.Contains(t, decoded, key)
	}
	require.EqualValues(t, 3, decoded["frame"])
}

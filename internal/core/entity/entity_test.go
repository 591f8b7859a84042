package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skyforge/skyforge/internal/core/terrain"
)

func TestBossTreeDamageReportsDestructionExactlyOnce(t *testing.T) {
	b := &BossTree{ID: uuid.New(), Health: 10, MaxHealth: 10}

	// Three hits of 3 leave one point; none of them destroys.
	require.False(t, b.Damage(3))
	require.False(t, b.Damage(3))
	require.False(t, b.Damage(3))
	require.Equal(t, 1, b.Health)

	// The final point destroys on this exact call.
	require.True(t, b.Damage(1))
	require.Equal(t, 0, b.Health)

	// Further hits never report destruction again.
	require.False(t, b.Damage(1))
	require.False(t, b.Damage(100))
}

func TestBossTreeOverkill(t *testing.T) {
	b := &BossTree{Health: 10, MaxHealth: 10}
	require.True(t, b.Damage(25))
	require.False(t, b.Damage(1))
}

func TestBuildingOverlaps(t *testing.T) {
	at := func(x, z float64) *Building {
		return &Building{Pos: terrain.Vec3{X: x, Z: z}, HalfX: 5, HalfZ: 5}
	}

	base := at(0, 0)
	require.True(t, base.Overlaps(at(9, 0), 0))
	require.False(t, base.Overlaps(at(11, 0), 0))
	// Margin widens the footprint on every side.
	require.True(t, base.Overlaps(at(11, 0), 2))
	require.False(t, base.Overlaps(at(0, 30), 2))
}

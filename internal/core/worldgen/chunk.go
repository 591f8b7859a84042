package worldgen

import (
	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/terrain"
)

// Chunk owns one terrain patch and the feature entities it spawned. It is
// created fully populated in a single Generate call and disposed exactly once
// when it leaves the streaming window. Re-entering the coordinate later
// builds a brand-new chunk; nothing is cached across unload.
type Chunk struct {
	Coord terrain.ChunkCoord
	Patch *terrain.Patch

	Runways   []*entity.Runway
	Mountains []*entity.Mountain
	Trees     []*entity.Tree
	BossTrees []*entity.BossTree
	Buildings []*entity.Building

	// MountainFallback and RunwayFallback record that the retry budget was
	// exhausted and the deterministic opposite-direction fallback placed the
	// feature. The separation guarantee does not hold on these chunks.
	MountainFallback bool
	RunwayFallback   bool

	disposed bool
}

var _ entity.Owner = (*Chunk)(nil)

// Dispose unregisters every entity the chunk still owns and releases its
// terrain buffers. The chunk must still be resolvable through the registry's
// owner resolver while this runs, so that unregistration and list detachment
// stay a single operation.
func (c *Chunk) Dispose(reg *entity.Registry) {
	if c.disposed {
		return
	}
	c.disposed = true

	for i := len(c.Runways) - 1; i >= 0; i-- {
		reg.UnregisterRunway(c.Runways[i])
	}
	for i := len(c.Mountains) - 1; i >= 0; i-- {
		reg.UnregisterMountain(c.Mountains[i])
	}
	for i := len(c.Trees) - 1; i >= 0; i-- {
		reg.UnregisterTree(c.Trees[i])
	}
	for i := len(c.BossTrees) - 1; i >= 0; i-- {
		reg.UnregisterBossTree(c.BossTrees[i])
	}
	for i := len(c.Buildings) - 1; i >= 0; i-- {
		reg.UnregisterBuilding(c.Buildings[i])
	}

	if c.Patch != nil {
		c.Patch.Release()
		c.Patch = nil
	}
}

func (c *Chunk) DetachRunway(e *entity.Runway) {
	c.Runways, _ = removeFrom(c.Runways, e)
}

func (c *Chunk) DetachMountain(e *entity.Mountain) {
	c.Mountains, _ = removeFrom(c.Mountains, e)
}

func (c *Chunk) DetachTree(e *entity.Tree) {
	c.Trees, _ = removeFrom(c.Trees, e)
}

func (c *Chunk) DetachBossTree(e *entity.BossTree) {
	c.BossTrees, _ = removeFrom(c.BossTrees, e)
}

func (c *Chunk) DetachBuilding(e *entity.Building) {
	c.Buildings, _ = removeFrom(c.Buildings, e)
}

func removeFrom[T comparable](list []T, v T) ([]T, bool) {
	for i, cur := range list {
		if cur == v {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

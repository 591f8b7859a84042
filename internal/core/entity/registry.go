package entity

import (
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
)

// Owner is a loaded chunk's view from the registry's side: the lists an
// entity must be detached from when it is unregistered while its chunk is
// still loaded. Implemented by worldgen.Chunk.
type Owner interface {
	DetachRunway(*Runway)
	DetachMountain(*Mountain)
	DetachTree(*Tree)
	DetachBossTree(*BossTree)
	DetachBuilding(*Building)
}

// OwnerResolver maps a chunk coordinate to its loaded chunk, if any. The
// streamer installs one over its chunk map; entities hold only the
// coordinate, never a pointer into chunk internals.
type OwnerResolver func(terrain.ChunkCoord) (Owner, bool)

// Registry holds every currently active entity across all loaded chunks,
// one collection per category. It has no hidden package state: its lifetime
// is tied to the engine instance that constructed it.
//
// Accessors return the live slice, not a copy. Callers that remove entries
// while iterating must walk back-to-front.
//
// Invariant: registry contents equal the union of all loaded chunks' owned
// lists. Unregistering detaches the entity from its owning chunk (when still
// loaded) in the same call, so the two sides never disagree.
type Registry struct {
	runways   []*Runway
	mountains []*Mountain
	trees     []*Tree
	bossTrees []*BossTree
	buildings []*Building

	resolve OwnerResolver
	log     log.Log
}

func NewRegistry(logger log.Log) *Registry {
	if logger == nil {
		logger = log.Nop()
	}
	return &Registry{log: logger}
}

// SetOwnerResolver installs the chunk lookup used to detach entities from
// their owning chunk on independent destruction.
func (r *Registry) SetOwnerResolver(resolve OwnerResolver) {
	r.resolve = resolve
}

func (r *Registry) Runways() []*Runway     { return r.runways }
func (r *Registry) Mountains() []*Mountain { return r.mountains }
func (r *Registry) Trees() []*Tree         { return r.trees }
func (r *Registry) BossTrees() []*BossTree { return r.bossTrees }
func (r *Registry) Buildings() []*Building { return r.buildings }

func (r *Registry) RegisterRunway(e *Runway)     { r.runways = append(r.runways, e) }
func (r *Registry) RegisterMountain(e *Mountain) { r.mountains = append(r.mountains, e) }
func (r *Registry) RegisterTree(e *Tree)         { r.trees = append(r.trees, e) }
func (r *Registry) RegisterBossTree(e *BossTree) { r.bossTrees = append(r.bossTrees, e) }
func (r *Registry) RegisterBuilding(e *Building) { r.buildings = append(r.buildings, e) }

// UnregisterRunway removes the runway from the registry and from its owning
// chunk's list if that chunk is still loaded. No-op when already absent.
func (r *Registry) UnregisterRunway(e *Runway) {
	var ok bool
	if r.runways, ok = remove(r.runways, e); !ok {
		return
	}
	if owner, loaded := r.owner(e.Owner); loaded {
		owner.DetachRunway(e)
	}
}

func (r *Registry) UnregisterMountain(e *Mountain) {
	var ok bool
	if r.mountains, ok = remove(r.mountains, e); !ok {
		return
	}
	if owner, loaded := r.owner(e.Owner); loaded {
		owner.DetachMountain(e)
	}
}

func (r *Registry) UnregisterTree(e *Tree) {
	var ok bool
	if r.trees, ok = remove(r.trees, e); !ok {
		return
	}
	if owner, loaded := r.owner(e.Owner); loaded {
		owner.DetachTree(e)
	}
}

func (r *Registry) UnregisterBossTree(e *BossTree) {
	var ok bool
	if r.bossTrees, ok = remove(r.bossTrees, e); !ok {
		return
	}
	if owner, loaded := r.owner(e.Owner); loaded {
		owner.DetachBossTree(e)
	}
}

func (r *Registry) UnregisterBuilding(e *Building) {
	var ok bool
	if r.buildings, ok = remove(r.buildings, e); !ok {
		return
	}
	if owner, loaded := r.owner(e.Owner); loaded {
		owner.DetachBuilding(e)
	}
}

func (r *Registry) owner(coord terrain.ChunkCoord) (Owner, bool) {
	if r.resolve == nil {
		return nil, false
	}
	return r.resolve(coord)
}

// remove deletes the first occurrence of v, preserving order so that callers
// iterating back-to-front never skip an element.
func remove[T comparable](list []T, v T) ([]T, bool) {
	for i, cur := range list {
		if cur == v {
			list = append(list[:i], list[i+1:]...)
			return list, true
		}
	}
	return list, false
}

package server

import (
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/world"
)

// Snapshot is one frame of the spectator feed: the loaded window plus every
// active entity, flattened to plain JSON. It is built on the frame goroutine
// and only the encoded bytes cross into the feed's writers.
type Snapshot struct {
	Frame    int64    `json:"frame"`
	Observer Position `json:"observer"`

	Chunks    []ChunkInfo    `json:"chunks"`
	Runways   []RunwayInfo   `json:"runways"`
	Mountains []MountainInfo `json:"mountains"`
	Trees     []TreeInfo     `json:"trees"`
	BossTrees []BossTreeInfo `json:"boss_trees"`
	Buildings []BuildingInfo `json:"buildings"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type ChunkInfo struct {
	X int `json:"x"`
	Z int `json:"z"`
}

type RunwayInfo struct {
	Pos     Position `json:"pos"`
	Heading float64  `json:"heading"`
	Length  float64  `json:"length"`
	Width   float64  `json:"width"`
}

type MountainInfo struct {
	Pos        Position `json:"pos"`
	BaseRadius float64  `json:"base_radius"`
	Peaks      int      `json:"peaks"`
}

type TreeInfo struct {
	Pos     Position `json:"pos"`
	Variant int      `json:"variant"`
	Scale   float64  `json:"scale"`
}

type BossTreeInfo struct {
	Pos    Position `json:"pos"`
	Health int      `json:"health"`
}

type BuildingInfo struct {
	Pos    Position `json:"pos"`
	HalfX  float64  `json:"half_x"`
	HalfZ  float64  `json:"half_z"`
	Height float64  `json:"height"`
}

// BuildSnapshot flattens the engine's current aggregate views.
func BuildSnapshot(e *world.Engine, frame int64, observer terrain.Vec3) Snapshot {
	snap := Snapshot{
		Frame:    frame,
		Observer: toPosition(observer),
	}

	for _, c := range e.Streamer().LoadedCoords() {
		snap.Chunks = append(snap.Chunks, ChunkInfo{X: c.X, Z: c.Z})
	}
	for _, r := range e.Runways() {
		snap.Runways = append(snap.Runways, RunwayInfo{
			Pos:     toPosition(r.Pos),
			Heading: r.Heading,
			Length:  r.Length,
			Width:   r.Width,
		})
	}
	for _, m := range e.Mountains() {
		snap.Mountains = append(snap.Mountains, MountainInfo{
			Pos:        toPosition(m.Pos),
			BaseRadius: m.BaseRadius,
			Peaks:      len(m.Peaks),
		})
	}
	for _, t := range e.Trees() {
		snap.Trees = append(snap.Trees, TreeInfo{
			Pos:     toPosition(t.Pos),
			Variant: t.Variant,
			Scale:   t.Scale,
		})
	}
	for _, t := range e.BossTrees() {
		snap.BossTrees = append(snap.BossTrees, BossTreeInfo{
			Pos:    toPosition(t.Pos),
			Health: t.Health,
		})
	}
	for _, b := range e.Buildings() {
		snap.Buildings = append(snap.Buildings, BuildingInfo{
			Pos:    toPosition(b.Pos),
			HalfX:  b.HalfX,
			HalfZ:  b.HalfZ,
			Height: b.Height,
		})
	}
	return snap
}

func toPosition(v terrain.Vec3) Position {
	return Position{X: v.X, Y: v.Y, Z: v.Z}
}

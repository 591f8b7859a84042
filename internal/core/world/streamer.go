package world

import (
	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/events/bus"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/tuning"
	"github.com/skyforge/skyforge/internal/core/worldgen"
)

// Event types published on the engine bus.
const (
	EventChunkLoaded     = "chunk.loaded"
	EventChunkDisposed   = "chunk.disposed"
	EventEntityDestroyed = "entity.destroyed"
)

// Streamer keeps a square window of chunks loaded around the observer. It has
// two states: untracked (before the first update) and tracking. Updates that
// do not cross a chunk boundary are O(1) no-ops; boundary crossings generate
// and dispose chunks synchronously within the call, which is the accepted
// cost of having no background generation.
type Streamer struct {
	tun tuning.Tuning
	gen *worldgen.Generator
	reg *entity.Registry
	bus *bus.Bus
	log log.Log

	chunks   map[terrain.ChunkCoord]*worldgen.Chunk
	current  terrain.ChunkCoord
	tracking bool
}

func NewStreamer(tun tuning.Tuning, gen *worldgen.Generator, reg *entity.Registry, b *bus.Bus, logger log.Log) *Streamer {
	if logger == nil {
		logger = log.Nop()
	}
	s := &Streamer{
		tun:    tun,
		gen:    gen,
		reg:    reg,
		bus:    b,
		log:    logger,
		chunks: make(map[terrain.ChunkCoord]*worldgen.Chunk, 16),
	}
	// Entities carry only a chunk coordinate; the registry resolves it here
	// so independent destruction can detach from the owning chunk's list.
	reg.SetOwnerResolver(func(c terrain.ChunkCoord) (entity.Owner, bool) {
		ch, ok := s.chunks[c]
		if !ok {
			return nil, false
		}
		return ch, true
	})
	return s
}

// Update advances the streaming state for the observer position. Chunks
// entering the window are generated before chunks leaving it are disposed, so
// cross-chunk separation checks still see the departing entities.
func (s *Streamer) Update(pos terrain.Vec3) {
	cc := terrain.CoordAt(pos.X, pos.Z, s.tun.ChunkSize)
	if s.tracking && cc == s.current {
		return
	}

	r := s.tun.WindowRadius
	side := 2*r + 1
	keep := make(map[terrain.ChunkCoord]struct{}, side*side)

	created, disposed := 0, 0
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			k := terrain.ChunkCoord{X: cc.X + dx, Z: cc.Z + dz}
			keep[k] = struct{}{}
			if _, loaded := s.chunks[k]; loaded {
				continue
			}
			ch := s.gen.Generate(k)
			s.chunks[k] = ch
			created++
			if s.bus != nil {
				s.bus.Publish(bus.NewEvent(EventChunkLoaded, "streamer", k))
			}
		}
	}

	for coord, ch := range s.chunks {
		if _, ok := keep[coord]; ok {
			continue
		}
		// Dispose before removing from the map: unregistration resolves the
		// owner through the map and must still find the chunk.
		ch.Dispose(s.reg)
		delete(s.chunks, coord)
		disposed++
		if s.bus != nil {
			s.bus.Publish(bus.NewEvent(EventChunkDisposed, "streamer", coord))
		}
	}

	s.log.Info("chunk window moved",
		log.String("center", cc.String()),
		log.Int("created", created),
		log.Int("disposed", disposed),
		log.Int("loaded", len(s.chunks)),
	)
	s.current = cc
	s.tracking = true
}

// Current returns the observer's chunk coordinate; ok is false before the
// first update.
func (s *Streamer) Current() (coord terrain.ChunkCoord, ok bool) {
	return s.current, s.tracking
}

// ChunkAt returns the loaded chunk at coord, if any.
func (s *Streamer) ChunkAt(coord terrain.ChunkCoord) (*worldgen.Chunk, bool) {
	ch, ok := s.chunks[coord]
	return ch, ok
}

// LoadedCoords returns the coordinates of all loaded chunks.
func (s *Streamer) LoadedCoords() []terrain.ChunkCoord {
	coords := make([]terrain.ChunkCoord, 0, len(s.chunks))
	for c := range s.chunks {
		coords = append(coords, c)
	}
	return coords
}

// LoadedCount returns the number of loaded chunks.
func (s *Streamer) LoadedCount() int {
	return len(s.chunks)
}

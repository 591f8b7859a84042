package world

import (
	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/events/bus"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/tuning"
	"github.com/skyforge/skyforge/internal/core/worldgen"
)

// Engine is the public face of the streaming and placement subsystem. Game
// logic drives it once per frame with the observer position and reads the
// aggregate entity views for collision and presentation.
//
// The engine is single-threaded by contract: all calls happen on the frame
// goroutine. Registry and chunk-list mutation always happen together behind
// this facade.
type Engine struct {
	tun      tuning.Tuning
	reg      *entity.Registry
	streamer *Streamer
	bus      *bus.Bus
	log      log.Log
}

func NewEngine(tun tuning.Tuning, tmpl worldgen.Templates, logger log.Log) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	b := bus.New()
	reg := entity.NewRegistry(logger)
	gen := worldgen.New(tun, reg, tmpl, logger)
	return &Engine{
		tun:      tun,
		reg:      reg,
		streamer: NewStreamer(tun, gen, reg, b, logger),
		bus:      b,
		log:      logger,
	}
}

// Update advances streaming for the observer position.
func (e *Engine) Update(pos terrain.Vec3) {
	e.streamer.Update(pos)
}

// HeightAt exposes the ground elevation; terrain, collision, and placement
// all share this one function.
func (e *Engine) HeightAt(x, z float64) float64 {
	return terrain.HeightAt(x, z)
}

// Aggregate views. These are the registry's live lists; callers removing
// entries while iterating must walk back-to-front.

func (e *Engine) Runways() []*entity.Runway     { return e.reg.Runways() }
func (e *Engine) Mountains() []*entity.Mountain { return e.reg.Mountains() }
func (e *Engine) Trees() []*entity.Tree         { return e.reg.Trees() }
func (e *Engine) BossTrees() []*entity.BossTree { return e.reg.BossTrees() }
func (e *Engine) Buildings() []*entity.Building { return e.reg.Buildings() }

// UnregisterTree removes a tree destroyed by gameplay, independent of chunk
// disposal: registry and owning chunk list are updated together.
func (e *Engine) UnregisterTree(t *entity.Tree) {
	e.reg.UnregisterTree(t)
	e.bus.Publish(bus.NewEvent(EventEntityDestroyed, "engine", t))
}

func (e *Engine) UnregisterBossTree(t *entity.BossTree) {
	e.reg.UnregisterBossTree(t)
	e.bus.Publish(bus.NewEvent(EventEntityDestroyed, "engine", t))
}

func (e *Engine) UnregisterBuilding(b *entity.Building) {
	e.reg.UnregisterBuilding(b)
	e.bus.Publish(bus.NewEvent(EventEntityDestroyed, "engine", b))
}

// DamageBossTree applies weapon damage and, on the destroying hit,
// unregisters the tree. Returns whether this call destroyed it.
func (e *Engine) DamageBossTree(t *entity.BossTree, amount int) bool {
	if !t.Damage(amount) {
		return false
	}
	e.UnregisterBossTree(t)
	return true
}

// Events exposes the engine bus for chunk lifecycle and destruction
// notifications.
func (e *Engine) Events() *bus.Bus { return e.bus }

// Streamer exposes streaming state for diagnostics and the spectator feed.
func (e *Engine) Streamer() *Streamer { return e.streamer }

// Tuning returns the immutable tuning the engine was built with.
func (e *Engine) Tuning() tuning.Tuning { return e.tun }

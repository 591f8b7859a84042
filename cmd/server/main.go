package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyforge/skyforge/internal/core/entity"
	"github.com/skyforge/skyforge/internal/core/events/bus"
	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/terrain"
	"github.com/skyforge/skyforge/internal/core/tuning"
	"github.com/skyforge/skyforge/internal/core/world"
	"github.com/skyforge/skyforge/internal/core/worldgen"
	"github.com/skyforge/skyforge/internal/server"
)

func main() {
	var (
		addr       = flag.String("addr", ":8090", "spectator feed listen address")
		tuningPath = flag.String("tuning", "", "optional tuning yaml; defaults apply when empty")
		debug      = flag.Bool("debug", false, "enable debug logging")
		frameMs    = flag.Int("frame-ms", 50, "frame interval in milliseconds")
	)
	flag.Parse()

	level := log.LevelInfo
	if *debug {
		level = log.LevelDebug
	}
	logger := log.New(level)

	tun := tuning.Default()
	if *tuningPath != "" {
		var err error
		if tun, err = tuning.Load(*tuningPath); err != nil {
			fmt.Fprintln(os.Stderr, "error loading tuning:", err)
			os.Exit(1)
		}
	}

	engine := world.NewEngine(tun, demoTemplates(), logger)
	engine.Events().Subscribe(world.EventEntityDestroyed, func(ev bus.Event) {
		logger.Debug("entity destroyed", log.Any("entity", fmt.Sprintf("%T", ev.Data)))
	})

	feed, err := server.NewFeed(server.Config{Addr: *addr}, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error creating feed:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	if err := feed.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error starting feed:", err)
		os.Exit(1)
	}

	go fly(ctx, engine, feed, time.Duration(*frameMs)*time.Millisecond, logger)

	<-stopCh
	cancel()
	if err := feed.Stop(); err != nil && err != server.ErrFeedClosed {
		fmt.Fprintln(os.Stderr, "error stopping feed:", err)
	}
}

// fly drives the engine with a scripted observer: a wide outward spiral that
// keeps crossing chunk boundaries, with an occasional strafing run on the
// nearest boss tree to exercise independent destruction.
func fly(ctx context.Context, engine *world.Engine, feed *server.Feed, frame time.Duration, logger log.Log) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	const speed = 55.0 // units per second
	var (
		frameNo int64
		t       float64
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		t += frame.Seconds()
		radius := 200 + speed*t*0.5
		angle := t * 0.15
		pos := terrain.Vec3{
			X: math.Cos(angle) * radius,
			Y: engine.HeightAt(math.Cos(angle)*radius, math.Sin(angle)*radius) + 80,
			Z: math.Sin(angle) * radius,
		}

		engine.Update(pos)

		if frameNo%200 == 199 {
			strafe(engine, pos, logger)
		}

		feed.Broadcast(server.BuildSnapshot(engine, frameNo, pos))
		frameNo++
	}
}

// strafe damages the boss tree nearest to the observer.
func strafe(engine *world.Engine, pos terrain.Vec3, logger log.Log) {
	var nearest *entity.BossTree
	nearestDist := math.MaxFloat64
	for _, b := range engine.BossTrees() {
		if d := b.Pos.DistXZ(pos); d < nearestDist {
			nearestDist = d
			nearest = b
		}
	}
	if nearest == nil {
		return
	}
	if engine.DamageBossTree(nearest, 3) {
		logger.Info("boss tree destroyed",
			log.Float64("x", nearest.Pos.X),
			log.Float64("z", nearest.Pos.Z),
		)
	}
}

// demoTemplates supplies stand-in visual handles. The real game wires loaded
// assets here; the engine never looks inside them.
func demoTemplates() worldgen.Templates {
	return worldgen.Templates{
		Trees: []entity.TreeTemplate{
			{Handle: "tree/oak", HitRadius: 4, Height: 14},
			{Handle: "tree/pine", HitRadius: 3.5, Height: 18},
			{Handle: "tree/birch", HitRadius: 3, Height: 12},
		},
		Boss: "tree/boss",
		Buildings: []entity.BuildingTemplate{
			{Handle: "building/cabin", HalfX: 9, HalfZ: 7, Height: 8},
			{Handle: "building/barn", HalfX: 14, HalfZ: 10, Height: 12},
			{Handle: "building/tower", HalfX: 6, HalfZ: 6, Height: 22},
		},
		RunwaySurface: "runway/asphalt",
	}
}

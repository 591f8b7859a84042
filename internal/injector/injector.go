//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/skyforge/skyforge/internal/core/observability/log"
	"github.com/skyforge/skyforge/internal/core/tuning"
	"github.com/skyforge/skyforge/internal/core/world"
	"github.com/skyforge/skyforge/internal/core/worldgen"
)

func ProvideEngine(tmpl worldgen.Templates) *world.Engine {
	wire.Build(tuning.Default, provideLogger, world.NewEngine)
	return nil
}

func provideLogger() log.Log {
	return log.New(log.LevelInfo)
}

// Package app holds the host application: one ECS world, the systems that run
// against it each frame, and the plugins that configured it.
package app

import (
	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/ecs"
)

// Plugin configures an App. Build runs once, when the plugin is added.
type Plugin interface {
	Build(a *App)
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(a *App)

func (f PluginFunc) Build(a *App) {
	f(a)
}

type App struct {
	world     *ecs.World
	scheduler ecs.Scheduler
	logger    *zap.Logger
}

type Option func(*App)

// WithLogger replaces the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithWorld runs the app against an existing world.
func WithWorld(w *ecs.World) Option {
	return func(a *App) {
		if w != nil {
			a.world = w
		}
	}
}

func New(opts ...Option) *App {
	a := &App{
		world:  ecs.NewWorld(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	ecs.InsertResource(a.world, a.logger)
	return a
}

func (a *App) World() *ecs.World {
	return a.world
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Frames returns how many times Update has run.
func (a *App) Frames() int {
	return a.scheduler.Runs()
}

// AddSystems appends systems to the frame schedule in order.
func (a *App) AddSystems(systems ...ecs.System) *App {
	a.scheduler.Add(systems...)
	return a
}

// AddPlugins builds each plugin against the app in order.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		if p == nil {
			continue
		}
		p.Build(a)
	}
	return a
}

// InsertResource stores value as a world resource and returns the app.
func InsertResource[T any](a *App, value T) *App {
	ecs.InsertResource(a.world, value)
	return a
}

// Update runs every scheduled system once.
func (a *App) Update() {
	a.scheduler.Run(a.world)
}

func (a *App) Systems() []ecs.System {
	return a.scheduler.Systems()
}

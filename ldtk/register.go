package ldtk

import (
	"github.com/milk9111/ldtkloader/app"
	"github.com/milk9111/ldtkloader/ecs"
)

// RegisterEntity makes entities with the given identifier spawn with the
// bundle B builds. The registry is created on first use. Registering an
// identifier again replaces the earlier factory.
func RegisterEntity[B EntityFactory[B]](a *app.App, identifier string) *app.App {
	r := ecs.ResourceOrInsert(a.World(), NewEntityRegistry)
	r.Insert(identifier, entityFactory[B]{})
	return a
}

// RegisterIntCell makes IntGrid cells holding value spawn with the bundle B
// builds. Registering a value again replaces the earlier factory.
func RegisterIntCell[B IntCellFactory[B]](a *app.App, value int) *app.App {
	r := ecs.ResourceOrInsert(a.World(), NewIntCellRegistry)
	r.Insert(value, intCellFactory[B]{})
	return a
}

// Entity is RegisterEntity as a plugin, for chaining through AddPlugins.
func Entity[B EntityFactory[B]](identifier string) app.Plugin {
	return app.PluginFunc(func(a *app.App) {
		RegisterEntity[B](a, identifier)
	})
}

// IntCell is RegisterIntCell as a plugin.
func IntCell[B IntCellFactory[B]](value int) app.Plugin {
	return app.PluginFunc(func(a *app.App) {
		RegisterIntCell[B](a, value)
	})
}

package main

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/app"
	"github.com/milk9111/ldtkloader/config"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/ecs/system"
	"github.com/milk9111/ldtkloader/ldtk"
	"github.com/milk9111/ldtkloader/levels"
	"github.com/milk9111/ldtkloader/logging"
)

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideAssetFS(cfg config.Config) fs.FS {
	return os.DirFS(cfg.AssetRoot)
}

// provideWatcher watches the project directory when hot reload is on. The
// watcher is nil otherwise.
func provideWatcher(cfg config.Config, logger *zap.Logger) (*levels.Watcher, func(), error) {
	if !cfg.Watch {
		return nil, func() {}, nil
	}
	dir := filepath.Join(cfg.AssetRoot, filepath.Dir(cfg.Project))
	w, err := levels.NewWatcher(dir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("viewer: watching project", zap.String("dir", dir))
	return w, func() { _ = w.Close() }, nil
}

func provideApp(cfg config.Config, logger *zap.Logger, assetFS fs.FS, watcher *levels.Watcher) *app.App {
	a := app.New(app.WithLogger(logger))
	a.AddPlugins(
		ldtk.Plugin{Settings: ldtk.Settings{
			Assets:    assetFS,
			Project:   filepath.ToSlash(cfg.Project),
			Level:     cfg.Level,
			SkipTiles: cfg.SkipTiles,
			Watcher:   watcher,
		}},
		ldtk.Entity[PlayerBundle]("Player"),
		ldtk.Entity[ItemBundle]("Item"),
		ldtk.Entity[DoorBundle]("Door"),
		ldtk.IntCell[WallBundle](1),
	)
	a.AddSystems(system.NewCameraSystem(system.KeyboardCameraInput{}))
	if cfg.Physics.Enabled {
		a.AddSystems(CellColliderSystem{}, system.NewPhysicsSystem(cfg.Physics.Gravity))
	}
	a.AddSystems(system.NewTransformSystem())

	cam := a.World().Spawn()
	ecs.Insert(cam, component.CameraComponent, component.Camera{
		Zoom:      cfg.Camera.Zoom,
		PanSpeed:  cfg.Camera.PanSpeed,
		ZoomSpeed: cfg.Camera.ZoomSpeed,
	})
	ecs.Insert(cam, component.TransformComponent, component.NewTransform(0, 0))
	return a
}

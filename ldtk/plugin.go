package ldtk

import (
	"context"
	"io/fs"

	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/app"
	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/levels"
)

// Event types pushed on the world event queue by LevelSystem.
const (
	EventLevelSpawned   = "ldtk.level_spawned"
	EventLevelDespawned = "ldtk.level_despawned"
)

// LevelEvent is the Data of level events.
type LevelEvent struct {
	Root       ecs.Entity
	Identifier string
}

type Settings struct {
	// Assets is the file system the project and its tilesets are read from.
	Assets fs.FS
	// Project is the project file path within Assets. When empty, a
	// ProjectHandle resource must be inserted by the host.
	Project string
	// Level is the identifier selected initially. Empty selects the first level.
	Level string
	// KeepPrevious leaves the old level spawned when the selection changes.
	KeepPrevious bool
	SkipTiles    bool
	// Watcher, when set, triggers a project reload on every change it reports.
	Watcher *levels.Watcher
}

// Plugin installs the asset resources and the LevelSystem.
type Plugin struct {
	Settings Settings
}

func (p Plugin) Build(a *app.App) {
	w := a.World()
	ecs.ResourceOrInsert(w, func() *assets.Server { return assets.NewServer(p.Settings.Assets, a.Logger()) })
	ecs.ResourceOrInsert(w, assets.NewStore[assets.Material])
	ecs.ResourceOrInsert(w, assets.NewStore[assets.TextureAtlas])
	ecs.ResourceOrInsert(w, func() *LevelSelection {
		sel := &LevelSelection{}
		if p.Settings.Level != "" {
			sel.SelectIdentifier(p.Settings.Level)
		}
		return sel
	})
	a.AddSystems(NewLevelSystem(p.Settings, a.Logger()))
}

// LevelSystem keeps the selected level spawned. It respawns when the
// selection changes, when LevelSelection.Reload is called, and when the
// project is reloaded.
type LevelSystem struct {
	settings Settings
	logger   *zap.Logger

	root       ecs.Entity
	identifier string
	spawned    bool
	failed     bool
	key        selectionKey
	reloads    int
	version    int
	loadFailed bool
	preloaded  int
}

func NewLevelSystem(settings Settings, logger *zap.Logger) *LevelSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LevelSystem{settings: settings, logger: logger}
}

// Root returns the root of the level currently spawned.
func (s *LevelSystem) Root() (ecs.Entity, bool) {
	return s.root, s.spawned
}

func (s *LevelSystem) Update(w *ecs.World) {
	handle := s.projectHandle(w)
	if handle == nil {
		return
	}
	s.pollWatcher(handle)

	sel, ok := ecs.Resource[*LevelSelection](w)
	if !ok {
		return
	}
	attempted := s.spawned || s.failed
	if attempted && sel.key == s.key && sel.reloads == s.reloads && handle.version == s.version {
		return
	}
	s.key, s.reloads, s.version = sel.key, sel.reloads, handle.version

	level, err := sel.Resolve(handle.Project)
	if err != nil {
		s.failed = true
		s.logger.Warn("ldtk: select level", zap.Stringer("selection", sel), zap.Error(err))
		return
	}

	if s.spawned && !s.settings.KeepPrevious {
		ecs.DespawnRecursive(w, s.root)
		w.Events().Push(ecs.Event{Type: EventLevelDespawned, Data: LevelEvent{Root: s.root, Identifier: s.identifier}})
		s.spawned = false
	}

	s.preload(w, handle)
	root, err := SpawnLevel(w, handle.Project, level, SpawnOptions{
		BaseDir:   handle.Dir(),
		Logger:    s.logger,
		SkipTiles: s.settings.SkipTiles,
	})
	if err != nil {
		s.failed = true
		s.logger.Error("ldtk: spawn level", zap.String("level", level.Identifier), zap.Error(err))
		return
	}
	s.root, s.spawned, s.failed = root, true, false
	s.identifier = level.Identifier
	w.Events().Push(ecs.Event{Type: EventLevelSpawned, Data: LevelEvent{Root: root, Identifier: level.Identifier}})
	s.logger.Info("ldtk: level spawned", zap.String("level", level.Identifier), zap.Stringer("iid", level.Iid))
}

func (s *LevelSystem) projectHandle(w *ecs.World) *ProjectHandle {
	if h, ok := ecs.Resource[*ProjectHandle](w); ok && h != nil {
		return h
	}
	if s.settings.Project == "" || s.loadFailed {
		return nil
	}
	h, err := LoadProjectHandle(s.settings.Assets, s.settings.Project)
	if err != nil {
		s.loadFailed = true
		s.logger.Error("ldtk: load project", zap.String("path", s.settings.Project), zap.Error(err))
		return nil
	}
	ecs.InsertResource(w, h)
	return h
}

func (s *LevelSystem) pollWatcher(h *ProjectHandle) {
	wt := s.settings.Watcher
	if wt == nil {
		return
	}
	select {
	case err := <-wt.Errors:
		s.logger.Warn("ldtk: watch project", zap.Error(err))
	default:
	}
	changed := wt.Drain()
	if len(changed) == 0 {
		return
	}
	if err := h.Reload(); err != nil {
		s.logger.Warn("ldtk: reload project", zap.Strings("changed", changed), zap.Error(err))
		return
	}
	s.logger.Info("ldtk: project reloaded", zap.Strings("changed", changed))
}

// preload decodes the project's tilesets in parallel once per project
// version. On failure SpawnLevel falls back to loading them one by one.
func (s *LevelSystem) preload(w *ecs.World, h *ProjectHandle) {
	if s.preloaded == h.version+1 {
		return
	}
	server, ok := ecs.Resource[*assets.Server](w)
	if !ok || server == nil {
		return
	}
	s.preloaded = h.version + 1
	if err := server.Preload(context.Background(), TilesetPaths(h.Project, h.Dir())...); err != nil {
		s.logger.Warn("ldtk: preload tilesets", zap.Error(err))
	}
}

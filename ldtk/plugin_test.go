package ldtk

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/ldtkloader/app"
	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/levels"
)

func levelRoots(w *ecs.World) []LevelRoot {
	var out []LevelRoot
	ecs.ForEach(w, LevelRootComponent, func(_ ecs.Entity, lr LevelRoot) {
		out = append(out, lr)
	})
	return out
}

func newPluginApp(t *testing.T, settings Settings) (*app.App, *LevelSelection) {
	t.Helper()
	logger, _ := observedLogger()
	a := newTestApp(logger).AddPlugins(
		Plugin{Settings: settings},
		Entity[CrateBundle]("crate"),
		IntCell[WallBundle](2),
	)
	sel, ok := ecs.Resource[*LevelSelection](a.World())
	require.True(t, ok)
	return a, sel
}

func TestPluginInstallsResources(t *testing.T) {
	a, _ := newPluginApp(t, Settings{})
	w := a.World()

	assert.True(t, ecs.HasResource[*assets.Server](w))
	assert.True(t, ecs.HasResource[*assets.Store[assets.Material]](w))
	assert.True(t, ecs.HasResource[*assets.Store[assets.TextureAtlas]](w))
	assert.Len(t, a.Systems(), 1)

	// nothing to load without a project
	a.Update()
	assert.Empty(t, w.Entities())
}

func TestPluginSpawnsAndSwitchesLevels(t *testing.T) {
	a, sel := newPluginApp(t, Settings{Assets: testAssets(t), Project: "maps/world.ldtk"})
	w := a.World()

	a.Update()
	roots := levelRoots(w)
	require.Len(t, roots, 1)
	assert.Equal(t, "Level_0", roots[0].Identifier)
	assert.Len(t, withComponent(w, healthComponent), 1)
	assert.Len(t, withComponent(w, solidComponent), 2)
	server, _ := ecs.Resource[*assets.Server](w)
	assert.True(t, server.Loaded(assets.HandleFor[assets.Texture]("gfx/props.png")))

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventLevelSpawned, events[0].Type)

	// unchanged selection does not respawn
	count := len(w.Entities())
	a.Update()
	assert.Len(t, w.Entities(), count)
	assert.Zero(t, w.Events().Len())

	sel.SelectIdentifier("Level_1")
	a.Update()
	roots = levelRoots(w)
	require.Len(t, roots, 1)
	assert.Equal(t, "Level_1", roots[0].Identifier)
	assert.Empty(t, withComponent(w, solidComponent))
	events = w.Events().Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventLevelDespawned, events[0].Type)
	assert.Equal(t, "Level_0", events[0].Data.(LevelEvent).Identifier)
	assert.Equal(t, EventLevelSpawned, events[1].Type)
	assert.Equal(t, "Level_1", events[1].Data.(LevelEvent).Identifier)

	sel.Reload()
	a.Update()
	assert.Len(t, levelRoots(w), 1)
	assert.Equal(t, 2, w.Events().Len())
}

func TestPluginInitialLevelAndMissingSelection(t *testing.T) {
	a, sel := newPluginApp(t, Settings{Assets: testAssets(t), Project: "maps/world.ldtk", Level: "Level_1"})
	w := a.World()

	a.Update()
	roots := levelRoots(w)
	require.Len(t, roots, 1)
	assert.Equal(t, "Level_1", roots[0].Identifier)

	sel.SelectIdentifier("Nowhere")
	a.Update()
	roots = levelRoots(w)
	require.Len(t, roots, 1)
	assert.Equal(t, "Level_1", roots[0].Identifier)

	sel.SelectIndex(0)
	a.Update()
	roots = levelRoots(w)
	require.Len(t, roots, 1)
	assert.Equal(t, "Level_0", roots[0].Identifier)
}

func TestPluginProjectUnderAssetsDirectory(t *testing.T) {
	flat := testAssets(t)
	fsys := fstest.MapFS{
		"assets/maps/world.ldtk": flat["maps/world.ldtk"],
		"assets/gfx/props.png":   flat["gfx/props.png"],
	}
	a, _ := newPluginApp(t, Settings{Assets: fsys, Project: "assets/maps/world.ldtk"})
	w := a.World()

	a.Update()

	require.Len(t, levelRoots(w), 1)
	server, _ := ecs.Resource[*assets.Server](w)
	h := assets.HandleFor[assets.Texture]("assets/gfx/props.png")
	require.NoError(t, server.Err(h))
	assert.True(t, server.Loaded(h))
}

func writeProject(t *testing.T, dir string, project *levels.Project) {
	t.Helper()
	data, err := json.Marshal(project)
	require.NoError(t, err)
	// rename into place so a reload never sees a partial write
	tmp := filepath.Join(dir, "maps", "world.tmp")
	require.NoError(t, os.WriteFile(tmp, data, 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, "maps", "world.ldtk")))
}

func TestPluginReloadsOnWatchedChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "maps"), 0o755))
	project := testProject()
	writeProject(t, dir, project)

	watcher, err := levels.NewWatcher(filepath.Join(dir, "maps"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })
	// give the initial write time to leave the debounce window
	time.Sleep(150 * time.Millisecond)
	watcher.Drain()

	a, _ := newPluginApp(t, Settings{
		Assets:    os.DirFS(dir),
		Project:   "maps/world.ldtk",
		SkipTiles: true,
		Watcher:   watcher,
	})
	w := a.World()
	a.Update()
	handle, ok := ecs.Resource[*ProjectHandle](w)
	require.True(t, ok)
	version := handle.version
	sys := a.Systems()[0].(*LevelSystem)
	first, ok := sys.Root()
	require.True(t, ok)
	w.Events().Drain()

	project.Levels[0].PxWid = 999
	writeProject(t, dir, project)

	deadline := time.Now().Add(2 * time.Second)
	for handle.version == version && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		a.Update()
	}

	require.Greater(t, handle.version, version)
	second, ok := sys.Root()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.False(t, w.IsAlive(first))
	roots := levelRoots(w)
	require.Len(t, roots, 1)
	assert.Equal(t, 999, roots[0].Width)
	assert.Len(t, w.Events().Take(EventLevelSpawned), 1)
}

func TestPluginKeepPrevious(t *testing.T) {
	a, sel := newPluginApp(t, Settings{Assets: testAssets(t), Project: "maps/world.ldtk", KeepPrevious: true})

	a.Update()
	sel.SelectIndex(1)
	a.Update()

	assert.Len(t, levelRoots(a.World()), 2)
}

func TestPluginProjectLoadFailure(t *testing.T) {
	a, _ := newPluginApp(t, Settings{Assets: fstest.MapFS{}, Project: "maps/world.ldtk"})

	a.Update()
	a.Update()

	assert.Empty(t, a.World().Entities())
	assert.False(t, ecs.HasResource[*ProjectHandle](a.World()))
}

func TestProjectHandleReload(t *testing.T) {
	fsys := testAssets(t)
	h, err := LoadProjectHandle(fsys, "maps/world.ldtk")
	require.NoError(t, err)
	assert.Equal(t, "maps", h.Dir())

	w := ecs.NewWorld()
	ecs.InsertResource(w, h)
	ecs.InsertResource(w, &LevelSelection{})
	sys := NewLevelSystem(Settings{SkipTiles: true}, nil)

	sys.Update(w)
	first, ok := sys.Root()
	require.True(t, ok)

	require.NoError(t, h.Reload())
	sys.Update(w)
	second, ok := sys.Root()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.False(t, w.IsAlive(first))

	delete(fsys, "maps/world.ldtk")
	assert.Error(t, h.Reload())
	assert.NotNil(t, h.Project)
}

func TestLevelSelectionResolve(t *testing.T) {
	project := testProject()
	var sel LevelSelection

	lvl, err := sel.Resolve(project)
	require.NoError(t, err)
	assert.Equal(t, "Level_0", lvl.Identifier)
	assert.Equal(t, "#0", sel.String())

	sel.SelectIid(project.Levels[1].Iid)
	lvl, err = sel.Resolve(project)
	require.NoError(t, err)
	assert.Equal(t, "Level_1", lvl.Identifier)

	_, err = sel.Resolve(nil)
	assert.Error(t, err)
}

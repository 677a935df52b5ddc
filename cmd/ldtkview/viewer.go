package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/app"
	"github.com/milk9111/ldtkloader/config"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/ecs/system"
	"github.com/milk9111/ldtkloader/ldtk"
)

// Viewer runs the app each tick and draws the spawned level.
type Viewer struct {
	app    *app.App
	render *system.RenderSystem
	cfg    config.Config

	level  string
	status string
}

func NewViewer(cfg config.Config, a *app.App) *Viewer {
	return &Viewer{
		app:    a,
		render: system.NewRenderSystem(),
		cfg:    cfg,
	}
}

func (v *Viewer) Logger() *zap.Logger {
	return v.app.Logger()
}

func (v *Viewer) Update() error {
	v.handleKeys()
	v.app.Update()

	v.handleEvents()
	return nil
}

// handleEvents consumes the world's queued events. The viewer is the only
// consumer, so nothing is left queued between frames.
func (v *Viewer) handleEvents() {
	for _, evt := range v.app.World().Events().Drain() {
		data, ok := evt.Data.(ldtk.LevelEvent)
		if !ok {
			continue
		}
		switch evt.Type {
		case ldtk.EventLevelSpawned:
			v.level = data.Identifier
			v.status = ""
			v.focus(data.Root)
		case ldtk.EventLevelDespawned:
			v.Logger().Debug("viewer: level despawned", zap.String("level", data.Identifier))
		}
	}
}

func (v *Viewer) handleKeys() {
	sel, ok := ecs.Resource[*ldtk.LevelSelection](v.app.World())
	if !ok {
		return
	}
	handle, ok := ecs.Resource[*ldtk.ProjectHandle](v.app.World())
	if !ok {
		return
	}
	count := len(handle.Project.Levels)
	if count == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		sel.SelectIndex((v.levelIndex(handle) + 1) % count)
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		sel.SelectIndex((v.levelIndex(handle) + count - 1) % count)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := handle.Reload(); err != nil {
			v.status = err.Error()
			v.Logger().Warn("viewer: reload project", zap.Error(err))
		}
	}
}

func (v *Viewer) levelIndex(h *ldtk.ProjectHandle) int {
	for i := range h.Project.Levels {
		if h.Project.Levels[i].Identifier == v.level {
			return i
		}
	}
	return 0
}

// focus centers the camera on the spawned level.
func (v *Viewer) focus(root ecs.Entity) {
	w := v.app.World()
	lr, ok := ecs.Get(w, root, ldtk.LevelRootComponent)
	if !ok {
		return
	}
	g, _ := ecs.Get(w, root, component.GlobalTransformComponent)
	system.CenterOn(w, g.X+float64(lr.Width)/2, g.Y+float64(lr.Height)/2, float64(v.cfg.Window.Width), float64(v.cfg.Window.Height))
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x40, 0x46, 0x5b, 0xff})
	v.render.Draw(v.app.World(), screen)

	msg := fmt.Sprintf("%s  entities: %d  FPS: %.1f\nN/P: next/prev level  R: reload  arrows: pan  Q/E: zoom",
		v.level, len(v.app.World().Entities()), ebiten.ActualFPS())
	if v.status != "" {
		msg += "\n" + v.status
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.cfg.Window.Width, v.cfg.Window.Height
}

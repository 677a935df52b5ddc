package system

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
)

// CameraInput reports how the camera should move this frame.
type CameraInput interface {
	// Pan returns the pan direction, each axis in [-1, 1].
	Pan() (float64, float64)
	// Zoom returns -1, 0 or 1.
	Zoom() float64
}

// KeyboardCameraInput pans with the arrow keys or WASD and zooms with Q/E.
type KeyboardCameraInput struct{}

func (KeyboardCameraInput) Pan() (float64, float64) {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy++
	}
	return dx, dy
}

func (KeyboardCameraInput) Zoom() float64 {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyE):
		return 1
	case ebiten.IsKeyPressed(ebiten.KeyQ):
		return -1
	}
	return 0
}

const (
	minZoom = 0.25
	maxZoom = 8
)

// CameraSystem moves the camera entity from input.
type CameraSystem struct {
	input     CameraInput
	camEntity ecs.Entity
}

func NewCameraSystem(input CameraInput) *CameraSystem {
	return &CameraSystem{input: input}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs.input == nil {
		return
	}
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.ID())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, cs.camEntity, component.TransformComponent)
	if !ok {
		return
	}

	if z := cs.input.Zoom(); z != 0 {
		cam.Zoom = clamp(scaleOrOne(cam.Zoom)*(1+z*cam.ZoomSpeed), minZoom, maxZoom)
		if err := ecs.Add(w, cs.camEntity, component.CameraComponent, cam); err != nil {
			panic("camera system: update camera: " + err.Error())
		}
	}

	dx, dy := cs.input.Pan()
	if dx == 0 && dy == 0 {
		return
	}
	// pan speed is in screen pixels, so it shrinks in world space as we zoom in
	speed := cam.PanSpeed / scaleOrOne(cam.Zoom)
	t.X += dx * speed
	t.Y += dy * speed
	if err := ecs.Add(w, cs.camEntity, component.TransformComponent, t); err != nil {
		panic("camera system: update transform: " + err.Error())
	}
}

// CenterOn moves the camera so that (x, y) in world space is at the middle
// of a screen of the given size.
func CenterOn(w *ecs.World, x, y, screenW, screenH float64) {
	camEntity, ok := w.First(component.CameraComponent.ID())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	zoom := scaleOrOne(cam.Zoom)
	t, _ := ecs.Get(w, camEntity, component.TransformComponent)
	t.X = x - screenW/(2*zoom)
	t.Y = y - screenH/(2*zoom)
	_ = ecs.Add(w, camEntity, component.TransformComponent, t)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

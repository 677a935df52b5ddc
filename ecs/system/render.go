package system

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
)

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// drawItem is one resolved sprite, ready to draw.
type drawItem struct {
	entity  ecs.Entity
	layer   int
	texture *assets.Texture
	source  image.Rectangle
	crop    bool
	global  component.GlobalTransform
	originX float64
	originY float64
	flipX   bool
	flipY   bool
	tint    color.Color
}

// view returns the camera offset and zoom.
func (r *RenderSystem) view(w *ecs.World) (float64, float64, float64) {
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.ID()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY, zoom := 0.0, 0.0, 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent); ok {
		camX, camY = camTransform.X, camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	camX, camY, zoom := r.view(w)

	for _, item := range r.collect(w) {
		img := item.texture.Image()
		if img == nil {
			continue
		}
		if item.crop {
			if sub, ok := img.SubImage(item.source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM = item.localGeoM(float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
		op.GeoM.Rotate(item.global.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((item.global.X-camX)*zoom, (item.global.Y-camY)*zoom)
		if item.tint != nil {
			op.ColorScale.ScaleWithColor(item.tint)
		}

		screen.DrawImage(img, op)
	}
}

// localGeoM places a w×h image relative to the entity position. Flips mirror
// the image inside its own bounds, so a flipped sprite covers the same box
// around its origin as an unflipped one.
func (item drawItem) localGeoM(w, h float64) ebiten.GeoM {
	var g ebiten.GeoM
	if item.flipX {
		g.Scale(-1, 1)
		g.Translate(w, 0)
	}
	if item.flipY {
		g.Scale(1, -1)
		g.Translate(0, h)
	}
	g.Translate(-item.originX, -item.originY)
	g.Scale(scaleOrOne(item.global.ScaleX), scaleOrOne(item.global.ScaleY))
	return g
}

// collect resolves every drawable sprite through the asset resources and
// orders them by render layer, then by entity.
func (r *RenderSystem) collect(w *ecs.World) []drawItem {
	server, _ := ecs.Resource[*assets.Server](w)
	materials, _ := ecs.Resource[*assets.Store[assets.Material]](w)
	atlases, _ := ecs.Resource[*assets.Store[assets.TextureAtlas]](w)

	var items []drawItem
	ecs.ForEach2(w, component.SpriteComponent, component.GlobalTransformComponent, func(e ecs.Entity, s component.Sprite, g component.GlobalTransform) {
		mat, ok := materials.Get(s.Material)
		if !ok {
			return
		}
		tex, ok := server.Get(mat.Texture)
		if !ok {
			return
		}
		items = append(items, drawItem{
			entity:  e,
			layer:   renderLayer(w, e),
			texture: tex,
			source:  s.Source,
			crop:    s.UseSource,
			global:  g,
			originX: s.OriginX,
			originY: s.OriginY,
			flipX:   s.FlipX,
			flipY:   s.FlipY,
			tint:    mat.Tint,
		})
	})
	ecs.ForEach2(w, component.AtlasSpriteComponent, component.GlobalTransformComponent, func(e ecs.Entity, s component.AtlasSprite, g component.GlobalTransform) {
		atlas, ok := atlases.Get(s.Atlas)
		if !ok {
			return
		}
		rect, ok := atlas.Rect(s.Index)
		if !ok {
			return
		}
		tex, ok := server.Get(atlas.Texture)
		if !ok {
			return
		}
		items = append(items, drawItem{
			entity:  e,
			layer:   renderLayer(w, e),
			texture: tex,
			source:  rect,
			crop:    true,
			global:  g,
			originX: s.OriginX,
			originY: s.OriginY,
			flipX:   s.FlipX,
			flipY:   s.FlipY,
		})
	})

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].entity) < uint64(items[j].entity)
	})
	return items
}

// renderLayer returns the RenderLayer of e or of its nearest ancestor.
func renderLayer(w *ecs.World, e ecs.Entity) int {
	for cur := e; ; {
		if layer, ok := ecs.Get(w, cur, component.RenderLayerComponent); ok {
			return layer.Index
		}
		p, ok := ecs.Get(w, cur, ecs.ParentComponent)
		if !ok {
			return 0
		}
		cur = p.Entity
	}
}

func scaleOrOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

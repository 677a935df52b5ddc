package main

import (
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/ldtk"
	"github.com/milk9111/ldtkloader/levels"
)

// PlayerBundle is a dynamic body drawn with the editor visual.
type PlayerBundle struct {
	Name   component.Name
	Sprite ldtk.SpriteBundle
	Body   component.PhysicsBody
	Layer  component.RenderLayer
}

func (b PlayerBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.NameComponent, b.Name)
	c.InsertBundle(b.Sprite)
	ecs.Insert(c, component.PhysicsBodyComponent, b.Body)
	ecs.Insert(c, component.RenderLayerComponent, b.Layer)
}

func (PlayerBundle) BundleEntity(ctx *ldtk.EntityContext) PlayerBundle {
	return ldtk.BuildEntity(ctx,
		ldtk.With(func(b *PlayerBundle) { b.Layer.Index = 100 }),
		ldtk.FromInstance(func(b *PlayerBundle, n component.Name) { b.Name = n }, nameOf),
		ldtk.Nested(func(b *PlayerBundle, s ldtk.SpriteBundle) { b.Sprite = s }),
		ldtk.FromInstance(func(b *PlayerBundle, body component.PhysicsBody) { b.Body = body }, bodyOf(component.BodyDynamic)),
	)
}

// ItemBundle draws the editor visual and keeps the item kind from its fields.
type ItemBundle struct {
	Name   component.Name
	Sprite component.Sprite
}

func (b ItemBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.NameComponent, b.Name)
	ecs.Insert(c, component.SpriteComponent, b.Sprite)
}

func (ItemBundle) BundleEntity(ctx *ldtk.EntityContext) ItemBundle {
	return ldtk.BuildEntity(ctx,
		ldtk.FromInstance(func(b *ItemBundle, n component.Name) { b.Name = n }, nameOf),
		ldtk.FromScript(`
result = identifier
if is_string(fields.type) { result = identifier + ":" + fields.type }
`, func(b *ItemBundle, v any) {
			if s, ok := v.(string); ok {
				b.Name.Value = s
			}
		}),
		ldtk.SpriteFromEditorVisual(func(b *ItemBundle, s component.Sprite) { b.Sprite = s }),
	)
}

// DoorBundle is a static sensor.
type DoorBundle struct {
	Sprite ldtk.SpriteSheetBundle
	Body   component.PhysicsBody
}

func (b DoorBundle) InsertInto(c *ecs.EntityCommands) {
	c.InsertBundle(b.Sprite)
	ecs.Insert(c, component.PhysicsBodyComponent, b.Body)
}

func (DoorBundle) BundleEntity(ctx *ldtk.EntityContext) DoorBundle {
	return ldtk.BuildEntity(ctx,
		ldtk.Nested(func(b *DoorBundle, s ldtk.SpriteSheetBundle) { b.Sprite = s }),
		ldtk.FromInstance(func(b *DoorBundle, body component.PhysicsBody) {
			body.Sensor = true
			b.Body = body
		}, bodyOf(component.BodyStatic)),
	)
}

// WallBundle makes solid IntGrid cells static colliders. The factory only
// sees the cell value, so the collider starts at cellSize and
// CellColliderSystem fits it to the layer's grid.
type WallBundle struct {
	Body component.PhysicsBody
}

func (b WallBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.PhysicsBodyComponent, b.Body)
}

func (WallBundle) BundleIntCell(cell ldtk.IntGridCell) WallBundle {
	return ldtk.BuildIntCell(cell,
		ldtk.WithCell(func(b *WallBundle) {
			b.Body = component.PhysicsBody{Width: cellSize, Height: cellSize, Kind: component.BodyStatic, Anchor: component.AnchorTopLeft, Friction: 0.8}
		}),
	)
}

const cellSize = 16

// CellColliderSystem resizes IntGrid cell colliders to their layer's grid
// size. It must run before the physics system mirrors the bodies.
type CellColliderSystem struct{}

func (CellColliderSystem) Update(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.ID(), ldtk.GridCoordsComponent.ID()) {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if body.Body != nil {
			continue
		}
		parent, ok := ecs.Get(w, e, ecs.ParentComponent)
		if !ok {
			continue
		}
		layer, ok := ecs.Get(w, parent.Entity, ldtk.LayerMetadataComponent)
		if !ok || layer.GridSize <= 0 {
			continue
		}
		size := float64(layer.GridSize)
		if body.Width == size && body.Height == size {
			continue
		}
		body.Width, body.Height = size, size
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, body)
	}
}

func nameOf(inst *levels.EntityInstance) component.Name {
	return component.Name{Value: inst.Identifier}
}

// bodyOf sizes a collider from the instance, centered on its pivot.
func bodyOf(kind component.BodyKind) func(inst *levels.EntityInstance) component.PhysicsBody {
	return func(inst *levels.EntityInstance) component.PhysicsBody {
		w, h := float64(inst.Width), float64(inst.Height)
		return component.PhysicsBody{
			Width:   w,
			Height:  h,
			OffsetX: (0.5 - inst.Pivot[0]) * w,
			OffsetY: (0.5 - inst.Pivot[1]) * h,
			Mass:    1,
			Kind:    kind,
		}
	}
}

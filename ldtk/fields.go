package ldtk

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/levels"
)

// EntityField fills part of a bundle under construction. Bundles compose
// fields with BuildEntity inside their BundleEntity method:
//
//	func (Crate) BundleEntity(ctx *ldtk.EntityContext) Crate {
//		return ldtk.BuildEntity(ctx,
//			ldtk.SpriteFromEditorVisual(func(c *Crate, s component.Sprite) { c.Sprite = s }),
//			ldtk.FromField("hp", func(c *Crate, hp int) { c.Health.Value = hp }),
//		)
//	}
type EntityField[B any] func(b *B, ctx *EntityContext)

// BuildEntity starts from the zero B and applies fields in order.
func BuildEntity[B any](ctx *EntityContext, fields ...EntityField[B]) B {
	var b B
	for _, f := range fields {
		if f != nil {
			f(&b, ctx)
		}
	}
	return b
}

// With sets a value that does not depend on the instance.
func With[B any](fn func(b *B)) EntityField[B] {
	return func(b *B, _ *EntityContext) {
		fn(b)
	}
}

// FromInstance converts the instance record into a field value.
func FromInstance[B, T any](set func(b *B, v T), convert func(inst *levels.EntityInstance) T) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		if ctx == nil || ctx.Instance == nil {
			return
		}
		set(b, convert(ctx.Instance))
	}
}

// FromField decodes the custom field named identifier into T. Missing or
// null fields leave the value unset; undecodable ones are logged.
func FromField[B, T any](identifier string, set func(b *B, v T)) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		if ctx == nil {
			return
		}
		f, ok := ctx.Instance.Field(identifier)
		if !ok || f.IsNull() {
			return
		}
		var v T
		if err := json.Unmarshal(f.Value, &v); err != nil {
			ctx.logger().Warn("ldtk: decode entity field",
				append(ctx.instanceFields(), zap.String("field", identifier), zap.Error(err))...)
			return
		}
		set(b, v)
	}
}

// Nested builds a whole sub-bundle with its own factory.
func Nested[B any, N EntityFactory[N]](set func(b *B, n N)) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		var zero N
		set(b, zero.BundleEntity(ctx))
	}
}

// SpriteFromPath loads the image at path and draws it whole.
func SpriteFromPath[B any](set func(b *B, s component.Sprite), path string) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		mat, ok := materialForPath(ctx, path)
		if !ok {
			return
		}
		set(b, component.Sprite{Material: mat})
	}
}

// SpriteFromEditorVisual uses the instance's editor visual, as SpriteBundle does.
func SpriteFromEditorVisual[B any](set func(b *B, s component.Sprite)) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		set(b, SpriteBundle{}.BundleEntity(ctx).Sprite)
	}
}

// SpriteSheetFromPath cuts the image at path into a columns by rows grid of
// tileW by tileH cells and draws cell index.
func SpriteSheetFromPath[B any](set func(b *B, s component.AtlasSprite), path string, tileW, tileH, columns, rows, index int) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		if ctx == nil || ctx.Server == nil || ctx.Atlases == nil {
			ctx.logger().Warn("ldtk: no asset server for sprite sheet", zap.String("path", path))
			return
		}
		tex := ctx.Server.Load(path)
		atlas := assets.NewTextureAtlasFromGrid(tex, tileW, tileH, columns, rows)
		set(b, component.AtlasSprite{Atlas: ctx.Atlases.Add(atlas), Index: index})
	}
}

// SpriteSheetFromEditorVisual uses the instance's editor visual as an atlas
// cell, as SpriteSheetBundle does.
func SpriteSheetFromEditorVisual[B any](set func(b *B, s component.AtlasSprite)) EntityField[B] {
	return func(b *B, ctx *EntityContext) {
		set(b, SpriteSheetBundle{}.BundleEntity(ctx).Sprite)
	}
}

func materialForPath(ctx *EntityContext, path string) (assets.Handle[assets.Material], bool) {
	var none assets.Handle[assets.Material]
	if ctx == nil || ctx.Server == nil || ctx.Materials == nil {
		ctx.logger().Warn("ldtk: no asset server for sprite", zap.String("path", path))
		return none, false
	}
	tex := ctx.Server.Load(path)
	return ctx.Materials.Add(assets.Material{Texture: tex}), true
}

// IntCellField fills part of an IntGrid bundle under construction.
type IntCellField[B any] func(b *B, cell IntGridCell)

// BuildIntCell starts from the zero B and applies fields in order.
func BuildIntCell[B any](cell IntGridCell, fields ...IntCellField[B]) B {
	var b B
	for _, f := range fields {
		if f != nil {
			f(&b, cell)
		}
	}
	return b
}

func WithCell[B any](fn func(b *B)) IntCellField[B] {
	return func(b *B, _ IntGridCell) {
		fn(b)
	}
}

// FromIntGridCell converts the cell value into a field value.
func FromIntGridCell[B, T any](set func(b *B, v T), convert func(cell IntGridCell) T) IntCellField[B] {
	return func(b *B, cell IntGridCell) {
		set(b, convert(cell))
	}
}

func NestedIntCell[B any, N IntCellFactory[N]](set func(b *B, n N)) IntCellField[B] {
	return func(b *B, cell IntGridCell) {
		var zero N
		set(b, zero.BundleIntCell(cell))
	}
}

package ldtk

import (
	"image"

	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/levels"
)

// SpriteBundle draws an entity with its editor visual. Entities without a
// usable visual get the zero Sprite, which the renderer skips.
type SpriteBundle struct {
	Sprite component.Sprite
}

func (b SpriteBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.SpriteComponent, b.Sprite)
}

func (SpriteBundle) BundleEntity(ctx *EntityContext) SpriteBundle {
	tex, tile, ok := editorVisual(ctx)
	if !ok {
		return SpriteBundle{}
	}
	if ctx.Materials == nil {
		ctx.logger().Warn("ldtk: no material store for editor visual", ctx.instanceFields()...)
		return SpriteBundle{}
	}
	mat := ctx.Materials.Add(assets.Material{Texture: tex})
	return SpriteBundle{Sprite: component.Sprite{
		Material:  mat,
		Source:    image.Rect(tile.X, tile.Y, tile.X+tile.W, tile.Y+tile.H),
		UseSource: true,
		OriginX:   ctx.Instance.Pivot[0] * float64(tile.W),
		OriginY:   ctx.Instance.Pivot[1] * float64(tile.H),
	}}
}

// SpriteSheetBundle draws an entity with one cell of an atlas cut from the
// tileset of its editor visual, using the visual's size as the cell size.
type SpriteSheetBundle struct {
	Sprite component.AtlasSprite
}

func (b SpriteSheetBundle) InsertInto(c *ecs.EntityCommands) {
	ecs.Insert(c, component.AtlasSpriteComponent, b.Sprite)
}

func (SpriteSheetBundle) BundleEntity(ctx *EntityContext) SpriteSheetBundle {
	tex, tile, ok := editorVisual(ctx)
	if !ok {
		return SpriteSheetBundle{}
	}
	if ctx.Atlases == nil {
		ctx.logger().Warn("ldtk: no atlas store for editor visual", ctx.instanceFields()...)
		return SpriteSheetBundle{}
	}
	texture, loaded := ctx.Server.Get(tex)
	if !loaded {
		ctx.logger().Warn("ldtk: tileset texture not loaded", append(ctx.instanceFields(), zap.Int("tileset_uid", tile.TilesetUID))...)
		return SpriteSheetBundle{}
	}
	w, h := texture.Size()
	atlas := assets.NewTextureAtlasFromGrid(tex, tile.W, tile.H, w/tile.W, h/tile.H)
	index, ok := atlas.Index(tile.X, tile.Y)
	if !ok {
		ctx.logger().Warn("ldtk: editor visual outside tileset", append(ctx.instanceFields(), zap.Int("tileset_uid", tile.TilesetUID))...)
		return SpriteSheetBundle{}
	}
	return SpriteSheetBundle{Sprite: component.AtlasSprite{
		Atlas:   ctx.Atlases.Add(atlas),
		Index:   index,
		OriginX: ctx.Instance.Pivot[0] * float64(tile.W),
		OriginY: ctx.Instance.Pivot[1] * float64(tile.H),
	}}
}

// editorVisual resolves the tile reference of the instance in ctx. Missing
// references are logged, never returned as errors.
func editorVisual(ctx *EntityContext) (assets.Handle[assets.Texture], *levels.TilesetRect, bool) {
	var none assets.Handle[assets.Texture]
	if ctx == nil || ctx.Instance == nil || ctx.Instance.Tile == nil {
		ctx.logger().Warn("ldtk: entity has no editor visual", ctx.instanceFields()...)
		return none, nil, false
	}
	tile := ctx.Instance.Tile
	tex, ok := ctx.Tilesets[tile.TilesetUID]
	if !ok {
		ctx.logger().Warn("ldtk: editor visual references unknown tileset",
			append(ctx.instanceFields(), zap.Int("tileset_uid", tile.TilesetUID))...)
		return none, nil, false
	}
	if tile.W <= 0 || tile.H <= 0 {
		ctx.logger().Warn("ldtk: editor visual has empty size", ctx.instanceFields()...)
		return none, nil, false
	}
	return tex, tile, true
}

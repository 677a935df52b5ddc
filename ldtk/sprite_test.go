package ldtk

import (
	"image"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/levels"
)

func TestSpriteBundleFromEditorVisual(t *testing.T) {
	inst := crateInstance()
	ctx := newContext(&inst, nil)

	b := SpriteBundle{}.BundleEntity(ctx)

	require.True(t, b.Sprite.Material.Valid())
	assert.Equal(t, image.Rect(16, 0, 32, 16), b.Sprite.Source)
	assert.True(t, b.Sprite.UseSource)
	assert.Equal(t, 8.0, b.Sprite.OriginX)
	assert.Equal(t, 16.0, b.Sprite.OriginY)

	mat, ok := ctx.Materials.Get(b.Sprite.Material)
	require.True(t, ok)
	assert.Equal(t, ctx.Tilesets[propsTileset], mat.Texture)
	assert.Equal(t, 1, ctx.Materials.Len())
}

func TestSpriteBundleFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(inst *levels.EntityInstance, ctx *EntityContext)
		message string
	}{
		{
			name:    "no tile reference",
			mutate:  func(inst *levels.EntityInstance, _ *EntityContext) { inst.Tile = nil },
			message: "ldtk: entity has no editor visual",
		},
		{
			name: "unknown tileset",
			mutate: func(inst *levels.EntityInstance, _ *EntityContext) {
				inst.Tile = &levels.TilesetRect{TilesetUID: 404, W: 16, H: 16}
			},
			message: "ldtk: editor visual references unknown tileset",
		},
		{
			name:    "no tileset map",
			mutate:  func(_ *levels.EntityInstance, ctx *EntityContext) { ctx.Tilesets = nil },
			message: "ldtk: editor visual references unknown tileset",
		},
		{
			name:    "no material store",
			mutate:  func(_ *levels.EntityInstance, ctx *EntityContext) { ctx.Materials = nil },
			message: "ldtk: no material store for editor visual",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := observedLogger()
			inst := crateInstance()
			ctx := newContext(&inst, logger)
			tt.mutate(&inst, ctx)

			var b SpriteBundle
			require.NotPanics(t, func() { b = SpriteBundle{}.BundleEntity(ctx) })

			assert.Equal(t, SpriteBundle{}, b)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.message, entry.Message)
			assert.Equal(t, "crate", entry.ContextMap()["identifier"])
		})
	}
}

func TestSpriteBundleNilContext(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, SpriteBundle{}, SpriteBundle{}.BundleEntity(nil))
	})
}

func TestSpriteSheetBundle(t *testing.T) {
	server := assets.NewServer(fstest.MapFS{"gfx/props.png": {Data: pngBytes(t, 32, 32)}}, nil)
	inst := crateInstance()
	inst.Tile = &levels.TilesetRect{TilesetUID: propsTileset, X: 16, Y: 16, W: 16, H: 16}
	ctx := newContext(&inst, nil)
	ctx.Server = server
	ctx.Tilesets[propsTileset] = server.Load("gfx/props.png")

	b := SpriteSheetBundle{}.BundleEntity(ctx)

	require.True(t, b.Sprite.Atlas.Valid())
	assert.Equal(t, 3, b.Sprite.Index)
	atlas, ok := ctx.Atlases.Get(b.Sprite.Atlas)
	require.True(t, ok)
	assert.Equal(t, 2, atlas.Columns)
	assert.Equal(t, 2, atlas.Rows)
	rect, _ := atlas.Rect(b.Sprite.Index)
	assert.Equal(t, image.Rect(16, 16, 32, 32), rect)
}

func TestSpriteSheetBundleUnloadedTexture(t *testing.T) {
	logger, logs := observedLogger()
	inst := crateInstance()
	ctx := newContext(&inst, logger)

	b := SpriteSheetBundle{}.BundleEntity(ctx)

	assert.Equal(t, SpriteSheetBundle{}, b)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ldtk: tileset texture not loaded", logs.All()[0].Message)
}

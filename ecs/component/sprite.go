package component

import (
	"image"

	"github.com/milk9111/ldtkloader/assets"
)

// Sprite draws a material, optionally cropped to Source.
type Sprite struct {
	Material  assets.Handle[assets.Material]
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	FlipX     bool
	FlipY     bool
}

var SpriteComponent = NewComponent[Sprite]()

// AtlasSprite draws one cell of a texture atlas.
type AtlasSprite struct {
	Atlas   assets.Handle[assets.TextureAtlas]
	Index   int
	OriginX float64
	OriginY float64
	FlipX   bool
	FlipY   bool
}

var AtlasSpriteComponent = NewComponent[AtlasSprite]()

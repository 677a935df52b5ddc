package assets

import (
	"image"
	"image/color"
)

// Material pairs a texture with a tint.
type Material struct {
	Texture Handle[Texture]
	Tint    color.Color
}

// TextureAtlas slices a texture into a grid of equally sized cells.
type TextureAtlas struct {
	Texture Handle[Texture]
	TileW   int
	TileH   int
	Columns int
	Rows    int
	Spacing int
	Padding int
}

// NewTextureAtlasFromGrid builds an atlas with no spacing or padding.
func NewTextureAtlasFromGrid(texture Handle[Texture], tileW, tileH, columns, rows int) TextureAtlas {
	return TextureAtlas{
		Texture: texture,
		TileW:   tileW,
		TileH:   tileH,
		Columns: columns,
		Rows:    rows,
	}
}

// Len returns the number of cells in the atlas.
func (a TextureAtlas) Len() int {
	if a.Columns <= 0 || a.Rows <= 0 {
		return 0
	}
	return a.Columns * a.Rows
}

// Rect returns the source rectangle of cell index, row-major.
func (a TextureAtlas) Rect(index int) (image.Rectangle, bool) {
	if index < 0 || index >= a.Len() || a.TileW <= 0 || a.TileH <= 0 {
		return image.Rectangle{}, false
	}
	col := index % a.Columns
	row := index / a.Columns
	x := a.Padding + col*(a.TileW+a.Spacing)
	y := a.Padding + row*(a.TileH+a.Spacing)
	return image.Rect(x, y, x+a.TileW, y+a.TileH), true
}

// Index returns the cell index whose top-left corner is at (x, y).
func (a TextureAtlas) Index(x, y int) (int, bool) {
	stepX, stepY := a.TileW+a.Spacing, a.TileH+a.Spacing
	if stepX <= 0 || stepY <= 0 || a.Columns <= 0 {
		return 0, false
	}
	col := (x - a.Padding) / stepX
	row := (y - a.Padding) / stepY
	if col < 0 || row < 0 || col >= a.Columns || (a.Rows > 0 && row >= a.Rows) {
		return 0, false
	}
	return row*a.Columns + col, true
}

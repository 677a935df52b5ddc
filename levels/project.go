package levels

import (
	"github.com/google/uuid"
)

// Layer types as written by LDtk in LayerInstance.Type.
const (
	LayerIntGrid   = "IntGrid"
	LayerEntities  = "Entities"
	LayerTiles     = "Tiles"
	LayerAutoLayer = "AutoLayer"
)

// Project is the subset of an LDtk project file the loader consumes.
type Project struct {
	JSONVersion    string      `json:"jsonVersion"`
	Iid            uuid.UUID   `json:"iid"`
	Defs           Definitions `json:"defs"`
	Levels         []Level     `json:"levels"`
	ExternalLevels bool        `json:"externalLevels"`
	WorldLayout    string      `json:"worldLayout"`
	BgColor        string      `json:"bgColor"`
}

type Definitions struct {
	Tilesets []TilesetDefinition `json:"tilesets"`
	Layers   []LayerDefinition   `json:"layers"`
	Entities []EntityDefinition  `json:"entities"`
}

type TilesetDefinition struct {
	UID          int    `json:"uid"`
	Identifier   string `json:"identifier"`
	RelPath      string `json:"relPath"`
	PxWid        int    `json:"pxWid"`
	PxHei        int    `json:"pxHei"`
	TileGridSize int    `json:"tileGridSize"`
	Spacing      int    `json:"spacing"`
	Padding      int    `json:"padding"`
}

// Columns returns the number of tile columns in the tileset image.
func (t TilesetDefinition) Columns() int {
	return gridCount(t.PxWid, t.TileGridSize, t.Spacing, t.Padding)
}

// Rows returns the number of tile rows in the tileset image.
func (t TilesetDefinition) Rows() int {
	return gridCount(t.PxHei, t.TileGridSize, t.Spacing, t.Padding)
}

func gridCount(px, grid, spacing, padding int) int {
	if grid <= 0 {
		return 0
	}
	usable := px - 2*padding + spacing
	if usable <= 0 {
		return 0
	}
	return usable / (grid + spacing)
}

type LayerDefinition struct {
	UID           int               `json:"uid"`
	Identifier    string            `json:"identifier"`
	Type          string            `json:"type"`
	GridSize      int               `json:"gridSize"`
	IntGridValues []IntGridValueDef `json:"intGridValues"`
}

type IntGridValueDef struct {
	Value      int    `json:"value"`
	Identifier string `json:"identifier"`
	Color      string `json:"color"`
}

type EntityDefinition struct {
	UID        int    `json:"uid"`
	Identifier string `json:"identifier"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Color      string `json:"color"`
	TilesetID  *int   `json:"tilesetId"`
}

type Level struct {
	Identifier      string          `json:"identifier"`
	Iid             uuid.UUID       `json:"iid"`
	UID             int             `json:"uid"`
	WorldX          int             `json:"worldX"`
	WorldY          int             `json:"worldY"`
	PxWid           int             `json:"pxWid"`
	PxHei           int             `json:"pxHei"`
	BgColor         string          `json:"__bgColor"`
	ExternalRelPath *string         `json:"externalRelPath"`
	FieldInstances  []FieldInstance `json:"fieldInstances"`
	LayerInstances  []LayerInstance `json:"layerInstances"`
}

type LayerInstance struct {
	Identifier      string           `json:"__identifier"`
	Type            string           `json:"__type"`
	CWid            int              `json:"__cWid"`
	CHei            int              `json:"__cHei"`
	GridSize        int              `json:"__gridSize"`
	Opacity         float64          `json:"__opacity"`
	PxTotalOffsetX  int              `json:"__pxTotalOffsetX"`
	PxTotalOffsetY  int              `json:"__pxTotalOffsetY"`
	TilesetDefUID   *int             `json:"__tilesetDefUid"`
	TilesetRelPath  *string          `json:"__tilesetRelPath"`
	Iid             uuid.UUID        `json:"iid"`
	LayerDefUID     int              `json:"layerDefUid"`
	Visible         *bool            `json:"visible"`
	IntGridCsv      []int            `json:"intGridCsv"`
	GridTiles       []TileInstance   `json:"gridTiles"`
	AutoLayerTiles  []TileInstance   `json:"autoLayerTiles"`
	EntityInstances []EntityInstance `json:"entityInstances"`
}

// IsVisible reports the editor visibility flag; layers without one are visible.
func (l *LayerInstance) IsVisible() bool {
	return l.Visible == nil || *l.Visible
}

// IntGridValue returns the IntGrid value at cell (x, y), or 0 outside the grid.
func (l *LayerInstance) IntGridValue(x, y int) int {
	if x < 0 || y < 0 || x >= l.CWid || y >= l.CHei {
		return 0
	}
	idx := y*l.CWid + x
	if idx >= len(l.IntGridCsv) {
		return 0
	}
	return l.IntGridCsv[idx]
}

// Tiles returns the tiles of a Tiles layer, or the auto-layer tiles otherwise.
func (l *LayerInstance) Tiles() []TileInstance {
	if len(l.GridTiles) > 0 {
		return l.GridTiles
	}
	return l.AutoLayerTiles
}

// TileInstance is one rendered tile. Px is the layer-relative position and
// Src the top-left corner in the tileset image. F holds the flip bits.
type TileInstance struct {
	Px    [2]int  `json:"px"`
	Src   [2]int  `json:"src"`
	F     int     `json:"f"`
	T     int     `json:"t"`
	Alpha float64 `json:"a"`
}

func (t TileInstance) FlipX() bool { return t.F&1 != 0 }
func (t TileInstance) FlipY() bool { return t.F&2 != 0 }

// TilesetRect references a rectangle inside a tileset, used for editor visuals.
type TilesetRect struct {
	TilesetUID int `json:"tilesetUid"`
	X          int `json:"x"`
	Y          int `json:"y"`
	W          int `json:"w"`
	H          int `json:"h"`
}

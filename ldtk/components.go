package ldtk

import (
	"github.com/google/uuid"

	"github.com/milk9111/ldtkloader/ecs/component"
	"github.com/milk9111/ldtkloader/levels"
)

// EntityInstanceComponent carries the raw record of an entity whose
// identifier has no registered factory.
var EntityInstanceComponent = component.NewComponent[levels.EntityInstance]()

// IntGridCell is the value of one non-empty IntGrid cell. Cells with no
// registered factory carry it unchanged as IntGridCellComponent.
type IntGridCell struct {
	Value int
}

var IntGridCellComponent = component.NewComponent[IntGridCell]()

// GridCoords is the cell position of an IntGrid entity within its layer.
type GridCoords struct {
	X int
	Y int
}

var GridCoordsComponent = component.NewComponent[GridCoords]()

// LevelRoot marks the entity every layer of a spawned level hangs from.
type LevelRoot struct {
	Identifier string
	Iid        uuid.UUID
	UID        int
	Width      int
	Height     int
}

var LevelRootComponent = component.NewComponent[LevelRoot]()

// LayerMetadata describes the layer entity spawned for a layer instance.
// Order is the draw order: higher draws on top.
type LayerMetadata struct {
	Identifier string
	Type       string
	Iid        uuid.UUID
	GridSize   int
	CWid       int
	CHei       int
	Opacity    float64
	Visible    bool
	Order      int
}

var LayerMetadataComponent = component.NewComponent[LayerMetadata]()

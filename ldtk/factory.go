// Package ldtk spawns LDtk levels into an ecs.World. Hosts register, per
// entity identifier and per IntGrid value, the bundle type built for it;
// everything unregistered is spawned with its raw data instead.
package ldtk

import (
	"go.uber.org/zap"

	"github.com/milk9111/ldtkloader/assets"
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/levels"
)

// TilesetMap resolves a tileset uid to its loaded texture.
type TilesetMap map[int]assets.Handle[assets.Texture]

// EntityContext is everything an entity factory may read while building.
// Instance and Tilesets are read-only. Materials and Atlases may receive new
// assets during the call; factories must not keep references to any field
// after returning.
type EntityContext struct {
	Instance  *levels.EntityInstance
	Tilesets  TilesetMap
	Server    *assets.Server
	Materials *assets.Store[assets.Material]
	Atlases   *assets.Store[assets.TextureAtlas]
	Logger    *zap.Logger
}

func (c *EntityContext) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *EntityContext) identifier() string {
	if c == nil || c.Instance == nil {
		return ""
	}
	return c.Instance.Identifier
}

func (c *EntityContext) instanceFields() []zap.Field {
	if c == nil || c.Instance == nil {
		return nil
	}
	return []zap.Field{
		zap.String("identifier", c.Instance.Identifier),
		zap.Stringer("iid", c.Instance.Iid),
	}
}

// EntityFactory is implemented by bundles built from an entity instance.
// BundleEntity is called on the zero value of B and must only construct:
// attaching the result is done by the spawner.
type EntityFactory[B any] interface {
	ecs.Bundle
	BundleEntity(ctx *EntityContext) B
}

// IntCellFactory is implemented by bundles built from an IntGrid value.
// BundleIntCell is called on the zero value of B and depends only on cell.
type IntCellFactory[B any] interface {
	ecs.Bundle
	BundleIntCell(cell IntGridCell) B
}

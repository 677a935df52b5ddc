package ldtk

import "github.com/milk9111/ldtkloader/ecs"

// ErasedEntityFactory builds and attaches a bundle whose concrete type was
// fixed at registration.
type ErasedEntityFactory interface {
	Apply(c *ecs.EntityCommands, ctx *EntityContext) *ecs.EntityCommands
}

// ErasedIntCellFactory is the IntGrid counterpart of ErasedEntityFactory.
type ErasedIntCellFactory interface {
	Apply(c *ecs.EntityCommands, cell IntGridCell) *ecs.EntityCommands
}

type entityFactory[B EntityFactory[B]] struct{}

func (entityFactory[B]) Apply(c *ecs.EntityCommands, ctx *EntityContext) *ecs.EntityCommands {
	var zero B
	return c.InsertBundle(zero.BundleEntity(ctx))
}

type intCellFactory[B IntCellFactory[B]] struct{}

func (intCellFactory[B]) Apply(c *ecs.EntityCommands, cell IntGridCell) *ecs.EntityCommands {
	var zero B
	return c.InsertBundle(zero.BundleIntCell(cell))
}

// ErasedEntity returns the erased factory for B without registering it.
func ErasedEntity[B EntityFactory[B]]() ErasedEntityFactory {
	return entityFactory[B]{}
}

// ErasedIntCell returns the erased factory for B without registering it.
func ErasedIntCell[B IntCellFactory[B]]() ErasedIntCellFactory {
	return intCellFactory[B]{}
}

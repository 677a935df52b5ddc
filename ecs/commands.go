package ecs

import (
	"fmt"

	"github.com/milk9111/ldtkloader/ecs/component"
)

// Bundle is a set of components inserted onto one entity together.
type Bundle interface {
	InsertInto(c *EntityCommands)
}

// EntityCommands attaches components to a single entity. Insertions apply
// immediately; the first failure is kept and later insertions are skipped.
type EntityCommands struct {
	world  *World
	entity Entity
	err    error
}

// Spawn creates an entity and returns commands targeting it.
func (w *World) Spawn() *EntityCommands {
	return &EntityCommands{world: w, entity: w.CreateEntity()}
}

// Entity returns commands targeting an existing entity.
func (w *World) Entity(e Entity) *EntityCommands {
	c := &EntityCommands{world: w, entity: e}
	if !w.IsAlive(e) {
		c.err = fmt.Errorf("ecs: entity %s: %w", e, ErrEntityNotAlive)
	}
	return c
}

func (c *EntityCommands) ID() Entity {
	return c.entity
}

func (c *EntityCommands) World() *World {
	return c.world
}

// Err returns the first insertion error, if any.
func (c *EntityCommands) Err() error {
	return c.err
}

// InsertBundle inserts every component of b.
func (c *EntityCommands) InsertBundle(b Bundle) *EntityCommands {
	if c.err != nil || b == nil {
		return c
	}
	b.InsertInto(c)
	return c
}

// SetParent attaches the entity below parent in the hierarchy.
func (c *EntityCommands) SetParent(parent Entity) *EntityCommands {
	if c.err != nil {
		return c
	}
	c.err = SetParent(c.world, c.entity, parent)
	return c
}

// Insert adds or overwrites one component on the commands' entity.
func Insert[T any](c *EntityCommands, handle component.ComponentHandle[T], value T) *EntityCommands {
	if c.err != nil {
		return c
	}
	if err := Add(c.world, c.entity, handle, value); err != nil {
		c.err = fmt.Errorf("ecs: insert %T on %s: %w", value, c.entity, err)
	}
	return c
}

package component

import "sync/atomic"

// ComponentID identifies one component kind inside a World.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle is a typed key for a component kind. Handles are created
// once, usually as package-level vars next to the component type.
type ComponentHandle[T any] struct {
	id ComponentID
}

// NewComponent allocates a fresh component kind for T. Two calls with the
// same T yield two distinct kinds.
func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}

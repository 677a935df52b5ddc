package ldtk

import (
	"maps"
	"slices"

	"github.com/milk9111/ldtkloader/ecs"
)

// EntityRegistry maps entity identifiers to factories. A nil registry is
// empty.
type EntityRegistry struct {
	factories map[string]ErasedEntityFactory
}

func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{factories: make(map[string]ErasedEntityFactory)}
}

// Insert stores f under identifier, replacing any earlier factory.
func (r *EntityRegistry) Insert(identifier string, f ErasedEntityFactory) {
	if r.factories == nil {
		r.factories = make(map[string]ErasedEntityFactory)
	}
	r.factories[identifier] = f
}

func (r *EntityRegistry) Get(identifier string) (ErasedEntityFactory, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.factories[identifier]
	return f, ok
}

func (r *EntityRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.factories)
}

// Keys returns the registered identifiers in sorted order.
func (r *EntityRegistry) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.factories))
}

// IntCellRegistry maps IntGrid values to factories. A nil registry is empty.
type IntCellRegistry struct {
	factories map[int]ErasedIntCellFactory
}

func NewIntCellRegistry() *IntCellRegistry {
	return &IntCellRegistry{factories: make(map[int]ErasedIntCellFactory)}
}

// Insert stores f under value, replacing any earlier factory.
func (r *IntCellRegistry) Insert(value int, f ErasedIntCellFactory) {
	if r.factories == nil {
		r.factories = make(map[int]ErasedIntCellFactory)
	}
	r.factories[value] = f
}

func (r *IntCellRegistry) Get(value int) (ErasedIntCellFactory, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.factories[value]
	return f, ok
}

func (r *IntCellRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.factories)
}

func (r *IntCellRegistry) Keys() []int {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.factories))
}

// EntityRegistryOf returns the entity registry stored in w, or nil if
// nothing was registered.
func EntityRegistryOf(w *ecs.World) *EntityRegistry {
	r, _ := ecs.Resource[*EntityRegistry](w)
	return r
}

// IntCellRegistryOf returns the IntGrid registry stored in w, or nil.
func IntCellRegistryOf(w *ecs.World) *IntCellRegistry {
	r, _ := ecs.Resource[*IntCellRegistry](w)
	return r
}

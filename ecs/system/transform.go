package system

import (
	"github.com/milk9111/ldtkloader/ecs"
	"github.com/milk9111/ldtkloader/ecs/component"
)

// TransformSystem recomputes GlobalTransform for every entity from its
// Transform and the chain of parents above it.
type TransformSystem struct{}

func NewTransformSystem() *TransformSystem {
	return &TransformSystem{}
}

func (ts *TransformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.TransformComponent.ID()) {
		if ecs.Has(w, e, ecs.ParentComponent) {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		propagate(w, e, component.FromTransform(t))
	}
}

func propagate(w *ecs.World, e ecs.Entity, global component.GlobalTransform) {
	_ = ecs.Add(w, e, component.GlobalTransformComponent, global)
	children, ok := ecs.Get(w, e, ecs.ChildrenComponent)
	if !ok {
		return
	}
	for _, child := range children.Entities {
		t, ok := ecs.Get(w, child, component.TransformComponent)
		if !ok {
			t = component.NewTransform(0, 0)
		}
		propagate(w, child, global.Mul(t))
	}
}

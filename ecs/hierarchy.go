package ecs

import (
	"slices"

	"github.com/milk9111/ldtkloader/ecs/component"
)

// Parent points at the entity this one is attached below.
type Parent struct {
	Entity Entity
}

// Children lists the entities attached below this one, in attach order.
type Children struct {
	Entities []Entity
}

var (
	ParentComponent   = component.NewComponent[Parent]()
	ChildrenComponent = component.NewComponent[Children]()
)

// SetParent attaches child below parent, detaching it from any previous parent.
func SetParent(w *World, child, parent Entity) error {
	if !w.IsAlive(child) || !w.IsAlive(parent) {
		return ErrEntityNotAlive
	}
	for p := parent; ; {
		if p == child {
			return ErrHierarchyCycle
		}
		next, ok := Get(w, p, ParentComponent)
		if !ok {
			break
		}
		p = next.Entity
	}
	if prev, ok := Get(w, child, ParentComponent); ok {
		detach(w, prev.Entity, child)
	}
	if err := Add(w, child, ParentComponent, Parent{Entity: parent}); err != nil {
		return err
	}
	children, _ := Get(w, parent, ChildrenComponent)
	children.Entities = append(children.Entities, child)
	return Add(w, parent, ChildrenComponent, children)
}

func detach(w *World, parent, child Entity) {
	children, ok := Get(w, parent, ChildrenComponent)
	if !ok {
		return
	}
	children.Entities = slices.DeleteFunc(children.Entities, func(e Entity) bool { return e == child })
	_ = Add(w, parent, ChildrenComponent, children)
}

// DespawnRecursive destroys e and everything below it. Only e is detached
// from its parent; descendants go down with their parents.
func DespawnRecursive(w *World, e Entity) {
	if !w.IsAlive(e) {
		return
	}
	if p, ok := Get(w, e, ParentComponent); ok {
		detach(w, p.Entity, e)
	}
	despawnTree(w, e)
}

func despawnTree(w *World, e Entity) {
	if children, ok := Get(w, e, ChildrenComponent); ok {
		for _, child := range children.Entities {
			if w.IsAlive(child) {
				despawnTree(w, child)
			}
		}
	}
	w.DestroyEntity(e)
}

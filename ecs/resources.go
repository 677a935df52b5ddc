package ecs

import "reflect"

// Resources are world-scoped singletons keyed by their static type. A World
// owns each resource for its whole lifetime unless removed explicitly.

// InsertResource stores value as the resource of type T, replacing any
// previous one.
func InsertResource[T any](w *World, value T) {
	if w == nil {
		return
	}
	if w.resources == nil {
		w.resources = make(map[reflect.Type]any)
	}
	w.resources[reflect.TypeFor[T]()] = value
}

// Resource returns the resource of type T.
func Resource[T any](w *World) (T, bool) {
	var zero T
	if w == nil {
		return zero, false
	}
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// ResourceOrInsert returns the resource of type T, inserting the result of
// create first if it does not exist yet.
func ResourceOrInsert[T any](w *World, create func() T) T {
	if v, ok := Resource[T](w); ok {
		return v
	}
	v := create()
	InsertResource(w, v)
	return v
}

func HasResource[T any](w *World) bool {
	_, ok := Resource[T](w)
	return ok
}

func RemoveResource[T any](w *World) bool {
	if w == nil {
		return false
	}
	key := reflect.TypeFor[T]()
	if _, ok := w.resources[key]; !ok {
		return false
	}
	delete(w.resources, key)
	return true
}

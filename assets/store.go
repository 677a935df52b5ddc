package assets

// Store holds assets created at runtime, such as materials and texture
// atlases. Handles are allocated sequentially and never reused.
type Store[T any] struct {
	next  uint64
	items map[uint64]T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[uint64]T)}
}

// Add stores v and returns its new handle.
func (s *Store[T]) Add(v T) Handle[T] {
	if s.items == nil {
		s.items = make(map[uint64]T)
	}
	s.next++
	s.items[s.next] = v
	return Handle[T]{id: s.next}
}

// Set replaces the asset behind h. It is a no-op for handles this store did
// not allocate.
func (s *Store[T]) Set(h Handle[T], v T) bool {
	if _, ok := s.items[h.id]; !ok {
		return false
	}
	s.items[h.id] = v
	return true
}

func (s *Store[T]) Get(h Handle[T]) (T, bool) {
	if s == nil {
		var zero T
		return zero, false
	}
	v, ok := s.items[h.id]
	return v, ok
}

func (s *Store[T]) Remove(h Handle[T]) bool {
	if _, ok := s.items[h.id]; !ok {
		return false
	}
	delete(s.items, h.id)
	return true
}

func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

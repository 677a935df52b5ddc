package ecs

import "slices"

type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	f(w)
}

// Scheduler runs its systems in insertion order, once per Run. The zero
// value is ready to use.
type Scheduler struct {
	systems []System
	runs    int
}

// Add appends systems, skipping nil ones.
func (s *Scheduler) Add(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.systems = append(s.systems, sys)
		}
	}
}

func (s *Scheduler) Run(w *World) {
	s.runs++
	for _, sys := range s.systems {
		sys.Update(w)
	}
}

// Runs returns how many times Run has been called.
func (s *Scheduler) Runs() int {
	return s.runs
}

func (s *Scheduler) Systems() []System {
	return slices.Clone(s.systems)
}

package ecs

// Event is a typed notification queued on a World. Type names are
// namespaced by the package that pushes them, e.g. "ldtk.level_spawned".
type Event struct {
	Type string
	Data any
}

// EventQueue buffers events until a consumer takes them. Events stay queued
// across frames until taken.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain removes and returns every queued event in push order.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Take removes and returns the queued events of type typ, leaving the rest
// queued in order.
func (q *EventQueue) Take(typ string) []Event {
	if q == nil {
		return nil
	}
	var taken []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			taken = append(taken, evt)
			continue
		}
		kept = append(kept, evt)
	}
	clear(q.items[len(kept):])
	q.items = kept
	return taken
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

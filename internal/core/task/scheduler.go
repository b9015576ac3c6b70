package task

import (
	"github.com/nerissimo/game/internal/core/system"
)

// ID identifies a spawned task within one Scheduler.
type ID uint64

// Func is one resumable task. Each call runs the work between two
// suspension points and reports whether the task wants to be resumed on
// the next tick. Returning false ends the task.
type Func func(dt float64) bool

// Scheduler runs cooperative tasks. It is a system: every tick it resumes
// each live task exactly once, in spawn order. Tasks spawned during a tick
// are first resumed on the following tick.
type Scheduler struct {
	tasks   map[ID]Func
	order   []ID
	pending []ID
	nextID  ID
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks:  make(map[ID]Func, 16),
		order:  make([]ID, 0, 16),
		nextID: 1,
	}
}

// Spawn registers fn and returns its id.
func (s *Scheduler) Spawn(fn Func) ID {
	id := s.nextID
	s.nextID++
	s.tasks[id] = fn
	s.pending = append(s.pending, id)
	return id
}

// Kill removes a task before its next resume. Unknown ids are ignored.
func (s *Scheduler) Kill(id ID) {
	delete(s.tasks, id)
}

func (s *Scheduler) Alive(id ID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

func (s *Scheduler) Update(dt float64) system.Signal {
	s.order = append(s.order, s.pending...)
	s.pending = s.pending[:0]

	kept := s.order[:0]
	for _, id := range s.order {
		fn, ok := s.tasks[id]
		if !ok {
			continue // killed
		}
		if !fn(dt) {
			delete(s.tasks, id)
			continue
		}
		if _, ok := s.tasks[id]; ok {
			kept = append(kept, id)
		}
	}
	s.order = kept
	return system.SignalNone
}

package system

import "sort"

type entry struct {
	sys      System
	priority Priority
	seq      uint64
}

// Runner executes systems in priority order each tick.
type Runner struct {
	systems []entry
	nextSeq uint64
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]entry, 0, 16),
	}
}

func (r *Runner) Register(s System, priority Priority) {
	r.systems = append(r.systems, entry{sys: s, priority: priority, seq: r.nextSeq})
	r.nextSeq++
	r.sorted = false
}

// Remove unregisters s. s must be comparable (Func values are not).
// Removing during a tick takes effect next tick.
func (r *Runner) Remove(s System) bool {
	for i, e := range r.systems {
		if e.sys == s {
			next := make([]entry, 0, len(r.systems)-1)
			next = append(next, r.systems[:i]...)
			r.systems = append(next, r.systems[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Runner) Len() int { return len(r.systems) }

// Tick runs every system once. The first non-None signal stops the tick
// and is returned; systems already run keep their effects.
func (r *Runner) Tick(dt float64) Signal {
	r.ensureSorted()
	// Registration during a tick must not disturb this pass.
	systems := r.systems
	for _, e := range systems {
		if sig := e.sys.Update(dt); sig != SignalNone {
			return sig
		}
	}
	return SignalNone
}

// Systems returns the systems in execution order.
func (r *Runner) Systems() []System {
	r.ensureSorted()
	out := make([]System, len(r.systems))
	for i, e := range r.systems {
		out[i] = e.sys
	}
	return out
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			a, b := r.systems[i], r.systems[j]
			if a.priority != b.priority {
				return a.priority < b.priority
			}
			return a.seq < b.seq
		})
		r.sorted = true
	}
}

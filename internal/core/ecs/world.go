package ecs

import (
	"github.com/google/uuid"

	"github.com/nerissimo/game/internal/core/system"
)

// World is the top-level ECS container for one level instance. It owns the
// entity pool, the component registry, the ordered system runner and the
// event subscriptions.
type World struct {
	id       uuid.UUID
	pool     *EntityPool
	registry *Registry
	runner   *system.Runner
	subs     *subscriptions
	ticks    uint64
}

func NewWorld() *World {
	return &World{
		id:       uuid.New(),
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		runner:   system.NewRunner(),
		subs:     newSubscriptions(),
	}
}

// ID distinguishes realisations of the same level in logs.
func (w *World) ID() uuid.UUID          { return w.id }
func (w *World) Pool() *EntityPool      { return w.pool }
func (w *World) Registry() *Registry    { return w.registry }
func (w *World) Runner() *system.Runner { return w.runner }
func (w *World) Ticks() uint64          { return w.ticks }
func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }
func (w *World) EntityCount() int       { return w.pool.Len() }

// CreateEntity allocates a fresh id and attaches every given component.
// Components must be non-nil pointers.
func (w *World) CreateEntity(components ...any) EntityID {
	id := w.pool.Create()
	w.AddComponents(id, components...)
	return id
}

// AddComponents attaches components to a live entity. A component of a type
// the entity already holds replaces the old one.
func (w *World) AddComponents(id EntityID, components ...any) {
	if !w.pool.Alive(id) {
		return
	}
	for _, c := range components {
		store := w.registry.Store(componentType(c))
		if old, replaced := store.Set(id, c); replaced {
			w.subs.drop(id, old)
		}
		w.subs.add(id, c)
	}
	// Attach after every component is stored so hooks can see siblings.
	for _, c := range components {
		if a, ok := c.(Attacher); ok {
			a.Attach(w, id)
		}
	}
}

// DestroyEntity removes id and all of its components. Stale ids are ignored.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	for _, c := range w.registry.RemoveAll(id) {
		w.subs.drop(id, c)
	}
	w.pool.Destroy(id)
}

// Components returns every component attached to id.
func (w *World) Components(id EntityID) []any {
	return w.registry.Components(id)
}

// AddProcessor registers s to run every tick. Lower priorities run first;
// equal priorities keep registration order.
func (w *World) AddProcessor(s system.System, priority system.Priority) {
	w.runner.Register(s, priority)
}

// Tick runs every processor once in priority order. A signal raised by a
// processor stops the tick and is returned to the caller.
func (w *World) Tick(dt float64) system.Signal {
	w.ticks++
	return w.runner.Tick(dt)
}

// Dispatch calls every handler subscribed to name, in subscription order,
// over a snapshot taken at call time. Handlers unsubscribed by an earlier
// handler in the same dispatch are skipped. Signals raised by handlers are
// merged and returned once the dispatch has fully resolved.
func (w *World) Dispatch(name string, args ...any) system.Signal {
	sig := system.SignalNone
	for _, sub := range w.subs.snapshot(name) {
		if !sub.live {
			continue
		}
		sig = sig.Merge(sub.handler(w, sub.owner, args...))
	}
	return sig
}

// Subscribers returns how many handlers currently listen to name.
func (w *World) Subscribers(name string) int {
	return w.subs.count(name)
}

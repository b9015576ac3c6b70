package ecs

import (
	"iter"

	"github.com/nerissimo/game/internal/core/system"
)

// GetComponent returns id's component of type *T. A missing component
// yields (nil, false), never an error.
func GetComponent[T any](w *World, id EntityID) (*T, bool) {
	s, ok := w.registry.Lookup(typeOf[T]())
	if !ok {
		return nil, false
	}
	c, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// Has reports whether id holds a component of type *T.
func Has[T any](w *World, id EntityID) bool {
	s, ok := w.registry.Lookup(typeOf[T]())
	return ok && s.Has(id)
}

// RemoveComponent detaches id's *T component. Removing an absent component
// is a no-op.
func RemoveComponent[T any](w *World, id EntityID) {
	s, ok := w.registry.Lookup(typeOf[T]())
	if !ok {
		return
	}
	if c, ok := s.Remove(id); ok {
		w.subs.drop(id, c)
	}
}

// Get yields every (entity, *T) pair present when Get was called. The
// sequence walks that snapshot, so adding or removing components while
// ranging over it is safe; entities destroyed mid-iteration are skipped.
func Get[T any](w *World) iter.Seq2[EntityID, *T] {
	s, ok := w.registry.Lookup(typeOf[T]())
	if !ok {
		return func(func(EntityID, *T) bool) {}
	}
	ids, vals := s.snapshot()
	return func(yield func(EntityID, *T) bool) {
		for i, id := range ids {
			if !w.pool.Alive(id) {
				continue
			}
			if !yield(id, vals[i].(*T)) {
				return
			}
		}
	}
}

// Each2 iterates over entities that have both component A and B, walking a
// snapshot of A's store. B is looked up live so a B removed earlier in the
// same pass is not visited.
func Each2[A, B any](w *World, fn func(EntityID, *A, *B)) {
	for id, a := range Get[A](w) {
		if b, ok := GetComponent[B](w, id); ok {
			fn(id, a, b)
		}
	}
}

// First returns the first entity holding a *T, in insertion order.
func First[T any](w *World) (EntityID, *T, bool) {
	for id, c := range Get[T](w) {
		return id, c, true
	}
	return NoEntity, nil, false
}

// GetSystem returns the first registered processor of type T.
func GetSystem[T system.System](w *World) (T, bool) {
	for _, s := range w.runner.Systems() {
		if t, ok := s.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

package ecs

import (
	"fmt"
	"reflect"
)

// Registry tracks all component stores keyed by component type and supports
// bulk cleanup on entity destroy.
type Registry struct {
	stores map[reflect.Type]*ComponentStore
	order  []*ComponentStore
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[reflect.Type]*ComponentStore, 16),
		order:  make([]*ComponentStore, 0, 16),
	}
}

// Store returns the store for typ, creating it on first use.
func (r *Registry) Store(typ reflect.Type) *ComponentStore {
	if s, ok := r.stores[typ]; ok {
		return s
	}
	s := NewComponentStore(typ)
	r.stores[typ] = s
	r.order = append(r.order, s)
	return s
}

// Lookup returns the store for typ without creating it.
func (r *Registry) Lookup(typ reflect.Type) (*ComponentStore, bool) {
	s, ok := r.stores[typ]
	return s, ok
}

// RemoveAll clears the given entity from every registered component store
// and returns the removed components in store registration order.
func (r *Registry) RemoveAll(id EntityID) []any {
	var removed []any
	for _, s := range r.order {
		if c, ok := s.Remove(id); ok {
			removed = append(removed, c)
		}
	}
	return removed
}

// Components returns every component attached to id.
func (r *Registry) Components(id EntityID) []any {
	var out []any
	for _, s := range r.order {
		if c, ok := s.Get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t == nil || t.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("ecs: component must be a non-nil pointer, got %T", c))
	}
	return t
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil))
}

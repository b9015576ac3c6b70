package ecs

import "reflect"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID) (any, bool)
}

// ComponentStore holds every component of one concrete type. Iteration
// follows insertion order so snapshots are deterministic across runs.
type ComponentStore struct {
	typ   reflect.Type
	ids   []EntityID
	vals  []any
	index map[EntityID]int
}

func NewComponentStore(typ reflect.Type) *ComponentStore {
	return &ComponentStore{
		typ:   typ,
		ids:   make([]EntityID, 0, 16),
		vals:  make([]any, 0, 16),
		index: make(map[EntityID]int, 16),
	}
}

func (s *ComponentStore) Type() reflect.Type { return s.typ }

// Set stores c for id and returns the component it replaced, if any.
func (s *ComponentStore) Set(id EntityID, c any) (any, bool) {
	if i, ok := s.index[id]; ok {
		old := s.vals[i]
		s.vals[i] = c
		return old, true
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.vals = append(s.vals, c)
	return nil, false
}

func (s *ComponentStore) Get(id EntityID) (any, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.vals[i], true
}

// Remove deletes id's component keeping the order of the others. Removing
// an absent component is a no-op.
func (s *ComponentStore) Remove(id EntityID) (any, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	old := s.vals[i]
	// Fresh slices: snapshots handed out earlier keep their view.
	ids := make([]EntityID, 0, len(s.ids)-1)
	ids = append(ids, s.ids[:i]...)
	ids = append(ids, s.ids[i+1:]...)
	vals := make([]any, 0, len(s.vals)-1)
	vals = append(vals, s.vals[:i]...)
	vals = append(vals, s.vals[i+1:]...)
	s.ids, s.vals = ids, vals

	delete(s.index, id)
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
	return old, true
}

func (s *ComponentStore) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *ComponentStore) Len() int {
	return len(s.ids)
}

// snapshot returns the current ids and values. The returned slices are not
// touched by later Set/Remove calls that change membership.
func (s *ComponentStore) snapshot() ([]EntityID, []any) {
	return s.ids[:len(s.ids):len(s.ids)], s.vals[:len(s.vals):len(s.vals)]
}

package ecs

import "github.com/nerissimo/game/internal/core/system"

// Handler reacts to a named event on behalf of the entity owning the
// component that declared it.
type Handler func(w *World, id EntityID, args ...any) system.Signal

// Subscriber is implemented by components that react to named events.
// Handlers are registered when the component is attached and dropped when
// it is removed or its entity is destroyed.
type Subscriber interface {
	Handlers() map[string]Handler
}

// Attacher is implemented by components that need to observe their entity
// once they are stored, e.g. to capture a base position.
type Attacher interface {
	Attach(w *World, id EntityID)
}

type subscription struct {
	owner     EntityID
	component any
	handler   Handler
	live      bool
}

// subscriptions maps event name to subscribers in attach order.
type subscriptions struct {
	byEvent map[string][]*subscription
}

func newSubscriptions() *subscriptions {
	return &subscriptions{byEvent: make(map[string][]*subscription)}
}

func (s *subscriptions) add(id EntityID, c any) {
	sub, ok := c.(Subscriber)
	if !ok {
		return
	}
	for name, h := range sub.Handlers() {
		if h == nil {
			continue
		}
		s.byEvent[name] = append(s.byEvent[name], &subscription{
			owner:     id,
			component: c,
			handler:   h,
			live:      true,
		})
	}
}

// drop unregisters every handler c declared for id.
func (s *subscriptions) drop(id EntityID, c any) {
	if _, ok := c.(Subscriber); !ok {
		return
	}
	for name, subs := range s.byEvent {
		kept := make([]*subscription, 0, len(subs))
		for _, sub := range subs {
			if sub.owner == id && sub.component == c {
				sub.live = false
				continue
			}
			kept = append(kept, sub)
		}
		if len(kept) == 0 {
			delete(s.byEvent, name)
		} else {
			s.byEvent[name] = kept
		}
	}
}

func (s *subscriptions) snapshot(name string) []*subscription {
	subs := s.byEvent[name]
	out := make([]*subscription, len(subs))
	copy(out, subs)
	return out
}

func (s *subscriptions) count(name string) int {
	return len(s.byEvent[name])
}

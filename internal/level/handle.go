package level

import (
	"fmt"

	"github.com/nerissimo/game/internal/core/ecs"
)

// Transformer populates a freshly created World with entities and
// processors. Transformers run in registration order: base, content, then
// platform.
type Transformer func(h *Handle, w *ecs.World) error

// Handle is a lazily realised level. The World is built on first use by
// running every transformer exactly once and is cached until Clear.
type Handle struct {
	name         string
	transformers []Transformer
	world        *ecs.World
	realizations int
}

func NewHandle(name string, transformers ...Transformer) *Handle {
	return &Handle{name: name, transformers: transformers}
}

func (h *Handle) Name() string { return h.name }

// Realize returns the cached World or builds a new one. If any transformer
// fails the half-built World is discarded and nothing is cached.
func (h *Handle) Realize() (*ecs.World, error) {
	if h.world != nil {
		return h.world, nil
	}
	w := ecs.NewWorld()
	for i, t := range h.transformers {
		if t == nil {
			continue
		}
		if err := t(h, w); err != nil {
			return nil, fmt.Errorf("realize level %q (transformer %d): %w", h.name, i, err)
		}
	}
	h.world = w
	h.realizations++
	return w, nil
}

// World returns the cached World, or nil when not realised.
func (h *Handle) World() *ecs.World { return h.world }

func (h *Handle) Realized() bool { return h.world != nil }

// Realizations counts how many Worlds this handle has built.
func (h *Handle) Realizations() int { return h.realizations }

// Clear drops the cached World so the next Realize starts over.
func (h *Handle) Clear() { h.world = nil }

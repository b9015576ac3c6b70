package platform

import (
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/level"
)

// Headless presents nothing. It tracks frame changes for logging and tests.
type Headless struct {
	log     *zap.Logger
	frames  int
	changes int
	last    uint64
	lit     int
}

func NewHeadless(log *zap.Logger) *Headless {
	return &Headless{log: log}
}

func (h *Headless) Present(w *ecs.World) {
	h.frames++
	buf, ok := level.Screen(w)
	if !ok {
		return
	}
	sum := Digest(buf)
	if h.frames > 1 && sum == h.last {
		return
	}
	h.last = sum
	h.changes++
	h.lit = buf.CountNonZero()
	if _, info, ok := ecs.First[component.LevelInfo](w); ok {
		h.log.Debug("frame changed",
			zap.String("level", info.Name),
			zap.Int("frame", h.frames),
			zap.Int("lit", h.lit),
		)
	}
}

func (h *Headless) Frames() int  { return h.frames }
func (h *Headless) Changes() int { return h.changes }

// Lit is the number of lit pixels in the last changed frame.
func (h *Headless) Lit() int { return h.lit }

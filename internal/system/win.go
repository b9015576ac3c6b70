package system

import (
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// WinSystem dispatches event.OnWin the first tick the screen is entirely
// black. It is a one-shot latch: armed until it fires, then inert for the
// rest of this World's life.
type WinSystem struct {
	world  *ecs.World
	screen *component.PixelBuffer
	log    *zap.Logger
	fired  bool
}

func NewWinSystem(world *ecs.World, screen *component.PixelBuffer, log *zap.Logger) *WinSystem {
	return &WinSystem{world: world, screen: screen, log: log}
}

// Fired reports whether the latch has tripped.
func (s *WinSystem) Fired() bool { return s.fired }

func (s *WinSystem) Update(_ float64) coresys.Signal {
	if s.fired || !s.screen.AllZero() {
		return coresys.SignalNone
	}
	s.fired = true
	s.log.Info("win", zap.Stringer("world", s.world.ID()), zap.Uint64("tick", s.world.Ticks()))
	return s.world.Dispatch(event.OnWin)
}

package system

import (
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// TimeSystem keeps level time and dispatches event.OnUpdate with dt to
// controllers that animate themselves.
type TimeSystem struct {
	world   *ecs.World
	elapsed float64
	frames  uint64
}

func NewTimeSystem(world *ecs.World) *TimeSystem {
	return &TimeSystem{world: world}
}

// Elapsed returns the level time in seconds.
func (s *TimeSystem) Elapsed() float64 { return s.elapsed }
func (s *TimeSystem) Frames() uint64   { return s.frames }

func (s *TimeSystem) Update(dt float64) coresys.Signal {
	s.elapsed += dt
	s.frames++
	return s.world.Dispatch(event.OnUpdate, dt)
}

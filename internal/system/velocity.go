package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// VelocitySystem integrates Velocity into Transform2D: position += velocity * dt.
// With diagnostics on, it warns when an entity's rounded position jumps by
// more than one pixel on either axis in a single tick. Never fatal.
type VelocitySystem struct {
	world       *ecs.World
	log         *zap.Logger
	diagnostics bool
}

func NewVelocitySystem(world *ecs.World, log *zap.Logger, diagnostics bool) *VelocitySystem {
	return &VelocitySystem{world: world, log: log, diagnostics: diagnostics}
}

func (s *VelocitySystem) Update(dt float64) coresys.Signal {
	ecs.Each2(s.world, func(id ecs.EntityID, v *component.Velocity, t *component.Transform2D) {
		old := t.Position
		step := v.Value.Scale(dt)
		t.Position = t.Position.Add(step)

		if !s.diagnostics {
			return
		}
		diff := old.Round().Sub(t.Position.Round())
		if math.Abs(diff[0]) > 1 || math.Abs(diff[1]) > 1 {
			s.log.Warn("velocity surpassing 1 pixel per frame",
				zap.Uint64("entity", uint64(id)),
				zap.Float64s("step", step[:]),
			)
		}
	})
	return coresys.SignalNone
}

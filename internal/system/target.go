package system

import (
	"math"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/vmath"
)

const (
	// TargetGain is the proportional share of the remaining distance covered per tick.
	TargetGain = 0.2
	// TargetMinSpeed bounds the crawl near the target, in pixels per second
	// at the reference frame time.
	TargetMinSpeed = 0.5
	// TargetMinFrame keeps the minimum speed sane for tiny dt values.
	TargetMinFrame = 1.0 / 20
	// TargetSnapDistance: below this on both axes the entity snaps to the target.
	TargetSnapDistance = 1.0
)

// TargetSystem moves every entity holding a Target toward it with
// proportional control. Once within TargetSnapDistance on each axis the
// entity lands exactly on the target, its Velocity is zeroed and the
// Target is removed.
type TargetSystem struct {
	world *ecs.World
}

func NewTargetSystem(world *ecs.World) *TargetSystem {
	return &TargetSystem{world: world}
}

// MinStep returns the smallest per-axis movement applied in one tick.
func MinStep(dt float64) float64 {
	return dt * TargetMinSpeed / math.Max(TargetMinFrame, dt)
}

func (s *TargetSystem) Update(dt float64) coresys.Signal {
	minStep := MinStep(dt)
	ecs.Each2(s.world, func(id ecs.EntityID, target *component.Target, t *component.Transform2D) {
		delta := target.Position.Sub(t.Position)
		step := delta.Scale(TargetGain)
		for axis := range step {
			d := delta[axis]
			if d == 0 || math.Abs(step[axis]) >= minStep {
				continue
			}
			step[axis] = math.Copysign(math.Min(minStep, math.Abs(d)), d)
		}
		t.Position = t.Position.Add(step)

		if !target.Position.Sub(t.Position).Within(TargetSnapDistance) {
			return
		}
		t.Position = target.Position
		if v, ok := ecs.GetComponent[component.Velocity](s.world, id); ok {
			v.Value = vmath.Vec2{}
		}
		ecs.RemoveComponent[component.Target](s.world, id)
	})
	return coresys.SignalNone
}

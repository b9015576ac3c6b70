package level

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/controller"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/resource"
	"github.com/nerissimo/game/internal/vmath"
)

// Controls carries the tuning shared by controller components.
type Controls struct {
	UserSpeed   float64
	KnightShort float64
	KnightLong  float64
	KnightGain  float64
}

func DefaultControls() Controls {
	return Controls{
		UserSpeed:   controller.DefaultUserSpeed,
		KnightShort: 8,
		KnightLong:  16,
		KnightGain:  1.5,
	}
}

// Spawner turns entity specs into entities, resolving sprites through a
// resource provider.
type Spawner struct {
	res      resource.Provider
	controls Controls
	log      *zap.Logger
}

func NewSpawner(res resource.Provider, controls Controls, log *zap.Logger) *Spawner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{res: res, controls: controls, log: log}
}

// Spawn creates one entity in w. A sprite lookup failure creates nothing.
func (s *Spawner) Spawn(w *ecs.World, spec data.EntitySpec) (ecs.EntityID, error) {
	comps := []any{&component.Transform2D{Position: vmath.Vec2(spec.Position)}}

	if spec.Sprite != "" {
		pix, err := s.res.Lookup(spec.Sprite)
		if err != nil {
			return ecs.NoEntity, fmt.Errorf("spawn: %w", err)
		}
		comps = append(comps, &component.Sprite{Key: spec.Sprite, Pixels: pix})
	}
	if spec.Velocity != nil || spec.Controller != data.ControllerNone {
		v := &component.Velocity{}
		if spec.Velocity != nil {
			v.Value = vmath.Vec2(*spec.Velocity)
		}
		comps = append(comps, v)
	}
	if spec.Clipped {
		comps = append(comps, &component.EnsureClipped{})
	}

	switch spec.Controller {
	case data.ControllerNone:
	case data.ControllerUser:
		speed := spec.Speed
		if speed == 0 {
			speed = s.controls.UserSpeed
		}
		comps = append(comps, &controller.UserControlled{Speed: speed})
	case data.ControllerKnight:
		c := s.controls
		comps = append(comps, controller.NewKnight(c.KnightShort, c.KnightLong, c.KnightGain, s.log))
	default:
		return ecs.NoEntity, fmt.Errorf("spawn: unknown controller %q", spec.Controller)
	}

	if o := spec.Oscillate; o != nil {
		axis := vmath.Col
		if o.Axis == "row" {
			axis = vmath.Row
		}
		comps = append(comps, &controller.Oscillate{
			Axis:      axis,
			Amplitude: o.Amplitude,
			Frequency: o.Frequency,
		})
	}
	return w.CreateEntity(comps...), nil
}

// Content builds the transformer placing a level table entry's entities.
func (s *Spawner) Content(entry *data.LevelEntry) Transformer {
	return func(h *Handle, w *ecs.World) error {
		if _, info, ok := ecs.First[component.LevelInfo](w); ok && entry.Title != "" {
			info.Title = entry.Title
		}
		for i, spec := range entry.Entities {
			if _, err := s.Spawn(w, spec); err != nil {
				return fmt.Errorf("entity %d: %w", i, err)
			}
		}
		s.log.Debug("level content placed",
			zap.String("level", h.Name()),
			zap.Int("entities", len(entry.Entities)),
		)
		return nil
	}
}

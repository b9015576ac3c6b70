package controller

import (
	"math"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// Oscillate moves one axis of the entity's position along
// base + Amplitude*cos(time*Frequency) on every update. base is the
// position on that axis when the component was attached.
type Oscillate struct {
	Axis      int
	Amplitude float64
	Frequency float64

	base float64
	time float64
}

func (o *Oscillate) Attach(w *ecs.World, id ecs.EntityID) {
	if tr, ok := ecs.GetComponent[component.Transform2D](w, id); ok {
		o.base = tr.Position[o.Axis]
	}
}

// Base returns the captured rest position.
func (o *Oscillate) Base() float64 { return o.base }

func (o *Oscillate) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.OnUpdate: o.onUpdate,
	}
}

func (o *Oscillate) onUpdate(w *ecs.World, id ecs.EntityID, args ...any) coresys.Signal {
	tr, ok := ecs.GetComponent[component.Transform2D](w, id)
	if !ok {
		return coresys.SignalNone
	}
	o.time += event.DtArg(args)
	tr.Position[o.Axis] = o.base + o.Amplitude*math.Cos(o.time*o.Frequency)
	return coresys.SignalNone
}

package controller

import (
	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/vmath"
)

// DefaultUserSpeed keeps free movement under one pixel per frame at 30 fps.
const DefaultUserSpeed = 10.0

// UserControlled drives the entity's Velocity from the arrow keys: a key
// down sets the matching axis to ±Speed, the key up clears it.
type UserControlled struct {
	Speed float64
}

// Direction returns the unit vector of an arrow key in (row, col) space.
func Direction(k event.Key) (vmath.Vec2, bool) {
	switch k {
	case event.Up:
		return vmath.V(-1, 0), true
	case event.Right:
		return vmath.V(0, 1), true
	case event.Down:
		return vmath.V(1, 0), true
	case event.Left:
		return vmath.V(0, -1), true
	}
	return vmath.Vec2{}, false
}

func (u *UserControlled) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.KeyDown: u.onKeyDown,
		event.KeyUp:   u.onKeyUp,
	}
}

func (u *UserControlled) speed() float64 {
	if u.Speed == 0 {
		return DefaultUserSpeed
	}
	return u.Speed
}

func (u *UserControlled) onKeyDown(w *ecs.World, id ecs.EntityID, args ...any) coresys.Signal {
	dir, ok := Direction(event.KeyArg(args))
	if !ok || ecs.Has[component.Target](w, id) {
		return coresys.SignalNone
	}
	v := velocityOf(w, id)
	for axis := range dir {
		if dir[axis] != 0 {
			v.Value[axis] = dir[axis] * u.speed()
		}
	}
	return coresys.SignalNone
}

func (u *UserControlled) onKeyUp(w *ecs.World, id ecs.EntityID, args ...any) coresys.Signal {
	dir, ok := Direction(event.KeyArg(args))
	if !ok || ecs.Has[component.Target](w, id) {
		return coresys.SignalNone
	}
	v, ok := ecs.GetComponent[component.Velocity](w, id)
	if !ok {
		return coresys.SignalNone
	}
	for axis := range dir {
		// Only stop if still moving the released way; a newer key wins.
		if dir[axis] != 0 && v.Value[axis]*dir[axis] > 0 {
			v.Value[axis] = 0
		}
	}
	return coresys.SignalNone
}

// velocityOf returns id's Velocity, attaching a zero one if missing.
func velocityOf(w *ecs.World, id ecs.EntityID) *component.Velocity {
	if v, ok := ecs.GetComponent[component.Velocity](w, id); ok {
		return v
	}
	v := &component.Velocity{}
	w.AddComponents(id, v)
	return v
}

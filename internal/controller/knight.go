package controller

import (
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/core/task"
	"github.com/nerissimo/game/internal/system"
	"github.com/nerissimo/game/internal/vmath"
)

// Knight moves its entity in L-shaped jumps: each arrow key requests a
// destination Long pixels along the arrow and Short pixels across it. The
// jump is carried out by the target seeking system; a new jump is refused
// while one is in flight.
type Knight struct {
	Short float64
	Long  float64
	// Gain turns the jump offset into the initial velocity, per second.
	Gain float64

	log *zap.Logger
}

func NewKnight(short, long, gain float64, log *zap.Logger) *Knight {
	return &Knight{Short: short, Long: long, Gain: gain, log: log}
}

// Offset returns the jump for an arrow key, rotating clockwise: the short
// side always points to the right of the travel direction.
func (k *Knight) Offset(key event.Key) (vmath.Vec2, bool) {
	switch key {
	case event.Up:
		return vmath.V(-k.Long, k.Short), true
	case event.Right:
		return vmath.V(k.Short, k.Long), true
	case event.Down:
		return vmath.V(k.Long, -k.Short), true
	case event.Left:
		return vmath.V(-k.Short, -k.Long), true
	}
	return vmath.Vec2{}, false
}

// CheckTarget reports whether a shape of size (rows, cols) at pos stays
// within rect on every side.
func CheckTarget(rect vmath.Rect, pos vmath.Vec2, rows, cols float64) bool {
	return rect.Contains(pos, rows, cols)
}

func (k *Knight) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.KeyDown: k.onKeyDown,
	}
}

func (k *Knight) onKeyDown(w *ecs.World, id ecs.EntityID, args ...any) coresys.Signal {
	offset, ok := k.Offset(event.KeyArg(args))
	if !ok || ecs.Has[component.Target](w, id) {
		return coresys.SignalNone
	}
	tr, ok := ecs.GetComponent[component.Transform2D](w, id)
	if !ok {
		return coresys.SignalNone
	}

	candidate := tr.Position.Add(offset)
	if clip, ok := ecs.GetSystem[*system.ClipSystem](w); ok {
		sprite, _ := ecs.GetComponent[component.Sprite](w, id)
		rows, cols := sprite.Size()
		if !CheckTarget(clip.Rect(), candidate, rows, cols) {
			k.logger().Debug("knight move rejected",
				zap.Uint64("entity", uint64(id)),
				zap.Float64s("candidate", candidate[:]),
			)
			return coresys.SignalNone
		}
	}

	v := velocityOf(w, id)
	v.Value = offset.Scale(k.Gain)
	w.AddComponents(id, &component.Target{Position: candidate})

	if sched, ok := ecs.GetSystem[*task.Scheduler](w); ok {
		sched.Spawn(DecayVelocity(w, id))
	}
	return coresys.SignalNone
}

func (k *Knight) logger() *zap.Logger {
	if k.log == nil {
		return zap.NewNop()
	}
	return k.log
}

// DecayVelocity returns a task halving id's Velocity every tick for as long
// as a Target stays attached. It ends on its own once the Target is gone.
func DecayVelocity(w *ecs.World, id ecs.EntityID) task.Func {
	return func(float64) bool {
		if !ecs.Has[component.Target](w, id) {
			return false
		}
		if v, ok := ecs.GetComponent[component.Velocity](w, id); ok {
			v.Value = v.Value.Scale(0.5)
		}
		return true
	}
}

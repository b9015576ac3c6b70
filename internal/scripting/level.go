package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/level"
)

// realization is the state visible to the Lua API while one script runs.
type realization struct {
	handle  *level.Handle
	world   *ecs.World
	spawner *level.Spawner
	spawned int
	err     error
}

// LevelScript returns a transformer that runs the named script against each
// new World. The script places entities with spawn{...}.
func (e *Engine) LevelScript(name string, spawner *level.Spawner) (level.Transformer, error) {
	fn, err := e.compile(name)
	if err != nil {
		return nil, err
	}
	return func(h *level.Handle, w *ecs.World) error {
		r := &realization{handle: h, world: w, spawner: spawner}
		e.vm.SetGlobal("screen", e.screenTable(w))
		e.vm.SetGlobal("level_name", lua.LString(h.Name()))
		e.active = r
		defer func() { e.active = nil }()

		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}); err != nil {
			if r.err != nil {
				return fmt.Errorf("script %s: %w", name, r.err)
			}
			return fmt.Errorf("script %s: %w", name, err)
		}
		e.log.Debug("level script ran",
			zap.String("script", name),
			zap.String("level", h.Name()),
			zap.Int("spawned", r.spawned),
		)
		return nil
	}, nil
}

func (e *Engine) screenTable(w *ecs.World) *lua.LTable {
	t := e.vm.NewTable()
	if buf, ok := level.Screen(w); ok {
		t.RawSetString("rows", lua.LNumber(buf.Rows))
		t.RawSetString("cols", lua.LNumber(buf.Cols))
	}
	return t
}

func (e *Engine) current(L *lua.LState) *realization {
	if e.active == nil {
		L.RaiseError("spawn called outside a level script")
	}
	return e.active
}

func (e *Engine) registerAPI() {
	e.vm.SetGlobal("spawn", e.vm.NewFunction(e.luaSpawn))
	e.vm.SetGlobal("log", e.vm.NewFunction(e.luaLog))
}

// spawn{sprite=, position={r,c}, velocity={r,c}, clipped=, controller=,
// speed=, oscillate={axis=, amplitude=, frequency=}} -> entity id
func (e *Engine) luaSpawn(L *lua.LState) int {
	r := e.current(L)
	t := L.CheckTable(1)
	spec, err := entitySpec(t)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	id, err := r.spawner.Spawn(r.world, spec)
	if err != nil {
		r.err = err
		L.RaiseError("%s", err.Error())
		return 0
	}
	r.spawned++
	L.Push(lua.LNumber(uint64(id)))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	e.log.Info(msg, zap.String("source", "lua"))
	return 0
}

func entitySpec(t *lua.LTable) (data.EntitySpec, error) {
	var spec data.EntitySpec
	spec.Sprite = lua.LVAsString(t.RawGetString("sprite"))
	spec.Controller = lua.LVAsString(t.RawGetString("controller"))
	spec.Clipped = lua.LVAsBool(t.RawGetString("clipped"))
	spec.Speed = float64(lua.LVAsNumber(t.RawGetString("speed")))

	if v := t.RawGetString("position"); v != lua.LNil {
		pos, err := pair(v)
		if err != nil {
			return spec, fmt.Errorf("position: %w", err)
		}
		spec.Position = pos
	}
	if v := t.RawGetString("velocity"); v != lua.LNil {
		vel, err := pair(v)
		if err != nil {
			return spec, fmt.Errorf("velocity: %w", err)
		}
		spec.Velocity = &vel
	}
	if v := t.RawGetString("oscillate"); v != lua.LNil {
		ot, ok := v.(*lua.LTable)
		if !ok {
			return spec, fmt.Errorf("oscillate: table expected")
		}
		spec.Oscillate = &data.OscillateSpec{
			Axis:      lua.LVAsString(ot.RawGetString("axis")),
			Amplitude: float64(lua.LVAsNumber(ot.RawGetString("amplitude"))),
			Frequency: float64(lua.LVAsNumber(ot.RawGetString("frequency"))),
		}
		switch spec.Oscillate.Axis {
		case "":
			spec.Oscillate.Axis = "col"
		case "row", "col":
		default:
			return spec, fmt.Errorf("oscillate axis %q", spec.Oscillate.Axis)
		}
	}
	return spec, nil
}

func pair(v lua.LValue) ([2]float64, error) {
	t, ok := v.(*lua.LTable)
	if !ok || t.Len() != 2 {
		return [2]float64{}, fmt.Errorf("{row, col} expected")
	}
	return [2]float64{
		float64(lua.LVAsNumber(t.RawGetInt(1))),
		float64(lua.LVAsNumber(t.RawGetInt(2))),
	}, nil
}

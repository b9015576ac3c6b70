package level

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/controller"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/core/task"
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/resource"
	"github.com/nerissimo/game/internal/system"
	"github.com/nerissimo/game/internal/vmath"
)

func counting(n *int) Transformer {
	return func(*Handle, *ecs.World) error {
		*n++
		return nil
	}
}

func TestHandleRealizesOnce(t *testing.T) {
	var runs int
	h := NewHandle("a", counting(&runs))
	assert.False(t, h.Realized())
	assert.Nil(t, h.World())

	w1, err := h.Realize()
	require.NoError(t, err)
	w2, err := h.Realize()
	require.NoError(t, err)
	assert.Same(t, w1, w2)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, h.Realizations())

	h.Clear()
	assert.False(t, h.Realized())
	w3, err := h.Realize()
	require.NoError(t, err)
	assert.NotSame(t, w1, w3, "cleared handle realises a fresh world")
	assert.Equal(t, 2, runs)
}

func TestHandleTransformerOrder(t *testing.T) {
	var order []string
	step := func(name string) Transformer {
		return func(*Handle, *ecs.World) error {
			order = append(order, name)
			return nil
		}
	}
	r := NewRegistry(step("base"), step("platform"))
	h, err := r.Register("lvl", step("content-1"), step("content-2"))
	require.NoError(t, err)
	_, err = h.Realize()
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "content-1", "content-2", "platform"}, order)
}

func TestHandleFailureCachesNothing(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	h := NewHandle("broken", func(*Handle, *ecs.World) error {
		if fail {
			return boom
		}
		return nil
	})

	w, err := h.Realize()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.Nil(t, w)
	assert.False(t, h.Realized())
	assert.Equal(t, 0, h.Realizations())

	fail = false
	w, err = h.Realize()
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(nil, nil)
	for _, name := range []string{"a", "b", "c"} {
		_, err := r.Register(name)
		require.NoError(t, err)
	}
	_, err := r.Register("b")
	assert.Error(t, err)
	_, err = r.Register("")
	assert.Error(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
	assert.Equal(t, 3, r.Len())
	h, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", h.Name())
	_, ok = r.Get("zzz")
	assert.False(t, ok)

	w, err := h.Realize()
	require.NoError(t, err)
	assert.Equal(t, 0, w.EntityCount(), "nil base and platform are skipped")
}

func TestBaseInstallsProcessors(t *testing.T) {
	h := NewHandle("base", Base(BaseOptions{Rows: 8, Cols: 16, QuitKey: event.Escape}))
	w, err := h.Realize()
	require.NoError(t, err)

	screen, ok := Screen(w)
	require.True(t, ok)
	assert.Equal(t, 8, screen.Rows)
	assert.Equal(t, 16, screen.Cols)

	systems := w.Runner().Systems()
	require.Len(t, systems, 7)
	_, first := systems[0].(*task.Scheduler)
	assert.True(t, first, "scheduler runs first")
	_, last := systems[len(systems)-1].(*system.WinSystem)
	assert.True(t, last, "win detection runs last")
	clip, ok := ecs.GetSystem[*system.ClipSystem](w)
	require.True(t, ok)
	assert.Equal(t, vmath.Rect{Bottom: 8, Right: 16}, clip.Rect())

	assert.Equal(t, 1, w.Subscribers(event.OnWin))
	assert.Equal(t, coresys.SignalQuit, w.Dispatch(event.KeyDown, event.Escape))
}

func TestBaseRejectsEmptyScreen(t *testing.T) {
	_, err := NewHandle("x", Base(BaseOptions{})).Realize()
	assert.ErrorContains(t, err, "screen size")
}

func TestEmptyLevelWinsImmediately(t *testing.T) {
	w, err := NewHandle("empty", Base(BaseOptions{Rows: 4, Cols: 4})).Realize()
	require.NoError(t, err)
	assert.Equal(t, coresys.SignalNext, w.Tick(1.0/30))
	assert.Equal(t, coresys.SignalNone, w.Tick(1.0/30))
}

func TestSpawnerContent(t *testing.T) {
	res := resource.NewMap()
	spawner := NewSpawner(res, DefaultControls(), zap.NewNop())
	entry := &data.LevelEntry{
		Name:  "square",
		Title: "two squares",
		Entities: []data.EntitySpec{
			{Sprite: "square/30x30", Position: [2]float64{2, 2}, Controller: data.ControllerKnight, Clipped: true},
			{Sprite: "square/30x30", Position: [2]float64{17, 49}},
			{Position: [2]float64{5, 5}, Controller: data.ControllerUser},
			{Position: [2]float64{1, 7}, Velocity: &[2]float64{0, 3}, Oscillate: &data.OscillateSpec{Axis: "row", Amplitude: 2, Frequency: 1}},
		},
	}
	h := NewHandle("square", Base(BaseOptions{Rows: 64, Cols: 128}), spawner.Content(entry))
	w, err := h.Realize()
	require.NoError(t, err)

	var sprites []ecs.EntityID
	for id := range ecs.Get[component.Sprite](w) {
		sprites = append(sprites, id)
	}
	require.Len(t, sprites, 2)
	knight := sprites[0]
	assert.True(t, ecs.Has[controller.Knight](w, knight))
	assert.True(t, ecs.Has[component.EnsureClipped](w, knight))
	assert.True(t, ecs.Has[component.Velocity](w, knight))
	assert.False(t, ecs.Has[component.Velocity](w, sprites[1]))

	_, user, ok := ecs.First[controller.UserControlled](w)
	require.True(t, ok)
	assert.Equal(t, controller.DefaultUserSpeed, user.Speed)

	id, osc, ok := ecs.First[controller.Oscillate](w)
	require.True(t, ok)
	assert.Equal(t, vmath.Row, osc.Axis)
	assert.Equal(t, 1.0, osc.Base())
	v, _ := ecs.GetComponent[component.Velocity](w, id)
	assert.Equal(t, vmath.V(0, 3), v.Value)

	_, info, ok := ecs.First[component.LevelInfo](w)
	require.True(t, ok)
	assert.Equal(t, "square", info.Name)
	assert.Equal(t, "two squares", info.Title)

	// The two squares are apart: one tick rasterises them without a win.
	assert.Equal(t, coresys.SignalNone, w.Tick(1.0/30))
	screen, _ := Screen(w)
	assert.Equal(t, 2*30*30, screen.CountNonZero())
}

func TestSpawnerMissingSpriteIsFatal(t *testing.T) {
	spawner := NewSpawner(resource.NewMap(), DefaultControls(), nil)
	entry := &data.LevelEntry{
		Name:     "ghost",
		Entities: []data.EntitySpec{{Sprite: "sprites/ghost"}},
	}
	h := NewHandle("ghost", Base(BaseOptions{Rows: 8, Cols: 8}), spawner.Content(entry))
	w, err := h.Realize()
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.Nil(t, w)
	assert.False(t, h.Realized())
}

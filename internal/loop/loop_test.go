package loop

import (
	"context"
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
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/level"
	"github.com/nerissimo/game/internal/resource"
	"github.com/nerissimo/game/internal/vmath"
)

const frame = 1.0 / 30

func base() level.Transformer {
	return level.Base(level.BaseOptions{Rows: 64, Cols: 128, QuitKey: event.Escape})
}

func counting(n *int) level.Transformer {
	return func(*level.Handle, *ecs.World) error {
		*n++
		return nil
	}
}

type presentCounter struct{ worlds []*ecs.World }

func (p *presentCounter) Present(w *ecs.World) { p.worlds = append(p.worlds, w) }

// Empty levels are black from the first tick, so every Step wins.
func TestRotationIsCircularAndRealizesFresh(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	counts := map[string]*int{"a": new(int), "b": new(int), "c": new(int)}
	for _, name := range []string{"a", "b", "c"} {
		_, err := reg.Register(name, counting(counts[name]))
		require.NoError(t, err)
	}
	l := New(reg, zap.NewNop())
	assert.Equal(t, StateIdle, l.State())
	require.NoError(t, l.Start())
	assert.Equal(t, StateRunning, l.State())
	assert.Equal(t, "a", l.Level())
	firstA := l.World()

	var visited []string
	for i := 0; i < 3; i++ {
		sig, err := l.Step(frame)
		require.NoError(t, err)
		require.Equal(t, coresys.SignalNext, sig)
		visited = append(visited, l.Level())
	}
	assert.Equal(t, []string{"b", "c", "a"}, visited)
	assert.Equal(t, 2, *counts["a"], "a realised again after the wrap")
	assert.Equal(t, 1, *counts["b"])
	assert.Equal(t, 1, *counts["c"])
	assert.NotEqual(t, firstA.ID(), l.World().ID())

	hb, _ := reg.Get("b")
	assert.False(t, hb.Realized(), "left levels are cleared")
	assert.Equal(t, uint64(3), l.Frames())
}

func TestSingleLevelRotationReplays(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	var n int
	_, err := reg.Register("only", counting(&n))
	require.NoError(t, err)
	l := New(reg, nil)
	require.NoError(t, l.Start())
	before := l.World()

	sig, err := l.Step(frame)
	require.NoError(t, err)
	assert.Equal(t, coresys.SignalNext, sig)
	assert.Equal(t, 2, n)
	assert.NotSame(t, before, l.World())
}

func squareLevel(t *testing.T, reg *level.Registry, name string) {
	t.Helper()
	spawner := level.NewSpawner(resource.NewMap(), level.DefaultControls(), zap.NewNop())
	entry := &data.LevelEntry{Name: name, Entities: []data.EntitySpec{
		{Sprite: "square/30x30", Position: [2]float64{2, 2}, Controller: data.ControllerUser, Clipped: true},
		{Sprite: "square/30x30", Position: [2]float64{17, 49}},
	}}
	_, err := reg.Register(name, spawner.Content(entry))
	require.NoError(t, err)
}

func TestInputDeliveredAfterTick(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	squareLevel(t, reg, "square")
	q := event.NewQueue()
	p := &presentCounter{}
	l := New(reg, zap.NewNop(), WithInput(q), WithPresenter(p))
	require.NoError(t, l.Start())

	q.Push(event.Input{Name: event.KeyDown, Key: event.Right})
	sig, err := l.Step(frame)
	require.NoError(t, err)
	require.Equal(t, coresys.SignalNone, sig)

	id, _, ok := ecs.First[controller.UserControlled](l.World())
	require.True(t, ok)
	v, _ := ecs.GetComponent[component.Velocity](l.World(), id)
	tr, _ := ecs.GetComponent[component.Transform2D](l.World(), id)
	assert.Equal(t, vmath.V(0, controller.DefaultUserSpeed), v.Value)
	assert.Equal(t, vmath.V(2, 2), tr.Position, "position unchanged on the frame the key lands")

	_, err = l.Step(0.1)
	require.NoError(t, err)
	assert.Equal(t, vmath.V(2, 3), tr.Position)
	assert.Len(t, p.worlds, 2)
}

func TestQuitKeyStopsLoop(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	squareLevel(t, reg, "square")
	q := event.NewQueue()
	l := New(reg, zap.NewNop(), WithInput(q))
	require.NoError(t, l.Start())

	q.Push(event.Input{Name: event.KeyDown, Key: event.Escape})
	q.Push(event.Input{Name: event.KeyDown, Key: event.Right})
	sig, err := l.Step(frame)
	require.NoError(t, err)
	assert.Equal(t, coresys.SignalQuit, sig)
	assert.Equal(t, StateStopped, l.State())

	_, err = l.Step(frame)
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Error(t, l.Start(), "stopped is terminal")
}

func TestAdvanceFailureStopsLoop(t *testing.T) {
	boom := errors.New("missing asset")
	reg := level.NewRegistry(base(), nil)
	_, err := reg.Register("a")
	require.NoError(t, err)
	_, err = reg.Register("b", func(*level.Handle, *ecs.World) error { return boom })
	require.NoError(t, err)

	l := New(reg, zap.NewNop())
	require.NoError(t, l.Start())
	_, err = l.Step(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateStopped, l.State())
}

func TestStartErrors(t *testing.T) {
	assert.ErrorIs(t, New(level.NewRegistry(nil, nil), nil).Start(), ErrNoLevels)

	reg := level.NewRegistry(base(), nil)
	_, err := reg.Register("a")
	require.NoError(t, err)
	assert.ErrorContains(t, New(reg, nil, WithOrder("a", "zzz")).Start(), `"zzz"`)

	boom := errors.New("bad first level")
	bad := level.NewRegistry(func(*level.Handle, *ecs.World) error { return boom }, nil)
	_, err = bad.Register("a")
	require.NoError(t, err)
	l := New(bad, nil)
	assert.ErrorIs(t, l.Start(), boom)
	assert.Equal(t, StateStopped, l.State())
}

func TestWithOrder(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	for _, name := range []string{"a", "b", "c"} {
		_, err := reg.Register(name)
		require.NoError(t, err)
	}
	l := New(reg, nil, WithOrder("c", "a"))
	require.NoError(t, l.Start())
	assert.Equal(t, "c", l.Level())
	_, err := l.Step(frame)
	require.NoError(t, err)
	assert.Equal(t, "a", l.Level())
	_, err = l.Step(frame)
	require.NoError(t, err)
	assert.Equal(t, "c", l.Level())
}

func TestRunUntilQuitOnWin(t *testing.T) {
	quitOnWin := func(_ *level.Handle, w *ecs.World) error {
		w.CreateEntity(&controller.QuitOnWin{})
		return nil
	}
	reg := level.NewRegistry(base(), quitOnWin)
	_, err := reg.Register("a")
	require.NoError(t, err)

	clock := &StepClock{Dt: frame, Limit: 10}
	l := New(reg, nil)
	require.NoError(t, l.Run(context.Background(), clock))
	assert.Equal(t, StateStopped, l.State())
	assert.Equal(t, 1, clock.Frames(), "quit beats next on the same win")
}

func TestRunClockExhausted(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	squareLevel(t, reg, "square")
	clock := &StepClock{Dt: frame, Limit: 5}
	err := New(reg, nil).Run(context.Background(), clock)
	assert.ErrorIs(t, err, ErrClockExhausted)
	assert.Equal(t, 5, clock.Frames())
}

func TestRunCancelled(t *testing.T) {
	reg := level.NewRegistry(base(), nil)
	squareLevel(t, reg, "square")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := New(reg, nil)
	require.NoError(t, l.Run(ctx, &StepClock{Dt: frame}))
	assert.Equal(t, StateStopped, l.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(9).String())
}

package loop

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/level"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

var (
	ErrNoLevels       = errors.New("no levels registered")
	ErrNotRunning     = errors.New("loop not running")
	ErrClockExhausted = errors.New("clock exhausted")
)

// Presenter shows the active World after every frame.
type Presenter interface {
	Present(w *ecs.World)
}

// Loop drives the active level. It owns the rotation order of level names,
// ticks the active World once per Step and swaps Worlds when a tick or an
// input event signals quit or next.
type Loop struct {
	registry  *level.Registry
	order     []string
	input     *event.Queue
	presenter Presenter
	log       *zap.Logger

	state   State
	current *level.Handle
	world   *ecs.World
	frames  uint64
}

type Option func(*Loop)

// WithInput delivers events pushed to q after every tick.
func WithInput(q *event.Queue) Option { return func(l *Loop) { l.input = q } }

func WithPresenter(p Presenter) Option { return func(l *Loop) { l.presenter = p } }

// WithOrder overrides the registry order. Unknown names fail Start.
func WithOrder(names ...string) Option {
	return func(l *Loop) { l.order = append([]string(nil), names...) }
}

func New(registry *level.Registry, log *zap.Logger, opts ...Option) *Loop {
	l := &Loop{registry: registry, log: log}
	for _, o := range opts {
		o(l)
	}
	if l.order == nil {
		l.order = registry.Names()
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	return l
}

func (l *Loop) State() State { return l.state }

// World returns the active World, nil unless running.
func (l *Loop) World() *ecs.World { return l.world }

// Level returns the active level's name.
func (l *Loop) Level() string {
	if l.current == nil {
		return ""
	}
	return l.current.Name()
}

func (l *Loop) Frames() uint64 { return l.frames }

// Start activates the first level in the rotation.
func (l *Loop) Start() error {
	if l.state != StateIdle {
		return fmt.Errorf("start loop: state %s", l.state)
	}
	if len(l.order) == 0 {
		return ErrNoLevels
	}
	for _, name := range l.order {
		if _, ok := l.registry.Get(name); !ok {
			return fmt.Errorf("start loop: unknown level %q", name)
		}
	}
	if err := l.switchTo(l.order[0]); err != nil {
		l.state = StateStopped
		return err
	}
	l.state = StateRunning
	return nil
}

// Stop moves the loop to its terminal state.
func (l *Loop) Stop() {
	if l.state == StateStopped {
		return
	}
	l.state = StateStopped
	if l.current != nil {
		l.log.Info("loop stopped", zap.String("level", l.current.Name()), zap.Uint64("frames", l.frames))
	}
}

// Step advances one frame: tick the active World, then deliver queued input.
// A non-nil error means the next level could not be realised; the loop is
// stopped in that case.
func (l *Loop) Step(dt float64) (coresys.Signal, error) {
	if l.state != StateRunning {
		return coresys.SignalNone, ErrNotRunning
	}
	l.frames++
	w := l.world
	sig := w.Tick(dt)
	if sig == coresys.SignalNone && l.input != nil {
		for _, in := range l.input.Swap() {
			if sig = w.Dispatch(in.Name, in.Key); sig != coresys.SignalNone {
				break
			}
		}
	}
	if l.presenter != nil {
		l.presenter.Present(w)
	}

	switch sig {
	case coresys.SignalQuit:
		l.Stop()
	case coresys.SignalNext:
		if err := l.advance(); err != nil {
			l.Stop()
			return sig, err
		}
	}
	return sig, nil
}

// advance rotates the name queue and switches to its new head. The level
// being left is cleared so a later visit gets a fresh World.
func (l *Loop) advance() error {
	l.order = append(l.order[1:], l.order[0])
	prev := l.current
	if err := l.switchTo(l.order[0]); err != nil {
		return err
	}
	if prev != l.current {
		prev.Clear()
	}
	return nil
}

func (l *Loop) switchTo(name string) error {
	h, ok := l.registry.Get(name)
	if !ok {
		return fmt.Errorf("switch level: unknown level %q", name)
	}
	if h == l.current {
		// Single-level rotation: replay from scratch.
		h.Clear()
	}
	w, err := h.Realize()
	if err != nil {
		return fmt.Errorf("switch level: %w", err)
	}
	if l.input != nil {
		l.input.Swap()
	}
	l.current, l.world = h, w
	l.log.Info("level started",
		zap.String("level", name),
		zap.Stringer("world", w.ID()),
		zap.Int("realization", h.Realizations()),
	)
	return nil
}

// Run starts the loop if needed and steps it on every clock tick until it
// stops or ctx is cancelled. Cancellation is a clean shutdown.
func (l *Loop) Run(ctx context.Context, clock Clock) error {
	if l.state == StateIdle {
		if err := l.Start(); err != nil {
			return err
		}
	}
	for l.state == StateRunning {
		dt, err := clock.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.Stop()
				return nil
			}
			return fmt.Errorf("clock: %w", err)
		}
		if _, err := l.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

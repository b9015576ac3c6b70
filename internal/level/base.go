package level

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/controller"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/core/task"
	"github.com/nerissimo/game/internal/system"
	"github.com/nerissimo/game/internal/vmath"
)

type BaseOptions struct {
	Rows        int
	Cols        int
	Diagnostics bool
	QuitKey     event.Key // event.None disables the quit entity
	Log         *zap.Logger
}

// Base installs the processors every level shares: task scheduler, clock,
// screen, movement, clipping, raster and win detection, plus the entities
// that advance on win and quit on the quit key.
func Base(opts BaseOptions) Transformer {
	return func(h *Handle, w *ecs.World) error {
		if opts.Rows <= 0 || opts.Cols <= 0 {
			return fmt.Errorf("screen size %dx%d", opts.Rows, opts.Cols)
		}
		log := opts.Log
		if log == nil {
			log = zap.NewNop()
		}
		log = log.With(zap.String("level", h.Name()), zap.Stringer("world", w.ID()))

		screen := component.NewPixelBuffer(opts.Rows, opts.Cols)
		w.CreateEntity(screen, &component.Screen{}, &component.LevelInfo{Name: h.Name(), Title: h.Name()})

		w.AddProcessor(task.NewScheduler(), coresys.PriorityTasks)
		w.AddProcessor(system.NewTimeSystem(w), coresys.PriorityTime)
		w.AddProcessor(system.NewVelocitySystem(w, log, opts.Diagnostics), coresys.PriorityDefault)
		w.AddProcessor(system.NewTargetSystem(w), coresys.PriorityDefault)
		w.AddProcessor(system.NewClipSystem(w, vmath.Rect{
			Bottom: float64(opts.Rows),
			Right:  float64(opts.Cols),
		}), coresys.PriorityClip)
		w.AddProcessor(system.NewRasterSystem(w, screen), coresys.PriorityRaster)
		w.AddProcessor(system.NewWinSystem(w, screen, log), coresys.PriorityWin)

		w.CreateEntity(&controller.NextOnWin{})
		if opts.QuitKey != event.None {
			w.CreateEntity(&controller.QuitOnKey{Key: opts.QuitKey})
		}
		log.Debug("base installed", zap.Int("rows", opts.Rows), zap.Int("cols", opts.Cols))
		return nil
	}
}

// Screen returns the screen buffer installed by Base.
func Screen(w *ecs.World) (*component.PixelBuffer, bool) {
	for id := range ecs.Get[component.Screen](w) {
		if buf, ok := ecs.GetComponent[component.PixelBuffer](w, id); ok {
			return buf, true
		}
	}
	return nil, false
}

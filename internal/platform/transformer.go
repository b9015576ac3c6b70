package platform

import (
	"github.com/nerissimo/game/internal/audio"
	"github.com/nerissimo/game/internal/controller"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/level"
)

type Options struct {
	Chime     audio.Chimer // nil disables the win chime
	QuitOnWin bool
}

// Transformer returns the platform layer applied after level content.
func Transformer(opts Options) level.Transformer {
	return func(_ *level.Handle, w *ecs.World) error {
		if opts.Chime != nil {
			w.CreateEntity(&audio.ChimeOnWin{Player: opts.Chime})
		}
		if opts.QuitOnWin {
			w.CreateEntity(&controller.QuitOnWin{})
		}
		return nil
	}
}

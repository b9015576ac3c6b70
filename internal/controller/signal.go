package controller

import (
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// QuitOnWin shuts the game down when the level is won.
type QuitOnWin struct{}

func (QuitOnWin) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.OnWin: func(*ecs.World, ecs.EntityID, ...any) coresys.Signal {
			return coresys.SignalQuit
		},
	}
}

// NextOnWin advances to the next level when the level is won.
type NextOnWin struct{}

func (NextOnWin) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.OnWin: func(*ecs.World, ecs.EntityID, ...any) coresys.Signal {
			return coresys.SignalNext
		},
	}
}

// QuitOnKey shuts the game down as soon as Key is pressed.
type QuitOnKey struct {
	Key event.Key
}

func (q *QuitOnKey) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.KeyDown: func(_ *ecs.World, _ ecs.EntityID, args ...any) coresys.Signal {
			if event.KeyArg(args) == q.Key {
				return coresys.SignalQuit
			}
			return coresys.SignalNone
		},
	}
}

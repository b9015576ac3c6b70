package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/config"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/level"
	"github.com/nerissimo/game/internal/loop"
	"github.com/nerissimo/game/internal/platform"
	"github.com/nerissimo/game/internal/resource"
	"github.com/nerissimo/game/internal/scripting"
)

func shippedRegistry(t *testing.T) (*level.Registry, *config.Config) {
	t.Helper()
	root := filepath.Join("..", "..")
	cfg, err := config.Load(filepath.Join(root, "config", "game.toml"), false)
	require.NoError(t, err)

	sprites, err := data.LoadSpriteTable(filepath.Join(root, "assets", "sprites.yaml"))
	require.NoError(t, err)
	res, err := resource.FromSpriteTable(sprites)
	require.NoError(t, err)
	levels, err := data.LoadLevelTable(filepath.Join(root, "assets", "levels.yaml"))
	require.NoError(t, err)
	engine, err := scripting.NewEngine(filepath.Join(root, "assets", "scripts"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	reg, err := buildRegistry(cfg, levels, res, engine, platform.Transformer(platform.Options{}), zap.NewNop())
	require.NoError(t, err)
	return reg, cfg
}

func TestShippedLevelsRealize(t *testing.T) {
	reg, _ := shippedRegistry(t)
	require.Equal(t, []string{"square", "nerissimo", "knight", "pendulum"}, reg.Names())

	for _, name := range reg.Names() {
		h, _ := reg.Get(name)
		w, err := h.Realize()
		require.NoError(t, err, name)

		assert.Equal(t, coresys.SignalNone, w.Tick(1.0/30), "%s must not start won", name)
		screen, ok := level.Screen(w)
		require.True(t, ok)
		assert.Positive(t, screen.CountNonZero(), name)
	}
}

func TestKnightLevelIsWinnable(t *testing.T) {
	reg, cfg := shippedRegistry(t)
	q := event.NewQueue()
	game := loop.New(reg, zap.NewNop(), loop.WithInput(q), loop.WithOrder("knight", "square"))
	require.NoError(t, game.Start())

	knightID, _, ok := ecs.First[component.Sprite](game.World())
	require.True(t, ok)
	seek := func() {
		q.Push(event.Input{Name: event.KeyDown, Key: event.Right})
		q.Push(event.Input{Name: event.KeyUp, Key: event.Right})
		_, err := game.Step(cfg.Game.FixedDt)
		require.NoError(t, err)
		for i := 0; ecs.Has[component.Target](game.World(), knightID); i++ {
			require.Less(t, i, 300)
			sig, err := game.Step(cfg.Game.FixedDt)
			require.NoError(t, err)
			if sig == coresys.SignalNext {
				return
			}
		}
	}

	seek()
	require.Equal(t, "knight", game.Level())
	seek()
	// Arrival, raster and win detection share the final tick.
	assert.Equal(t, "square", game.Level())
}

package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/config"
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/level"
	"github.com/nerissimo/game/internal/resource"
	"github.com/nerissimo/game/internal/scripting"
)

// buildRegistry registers every level of the table: shared base first, the
// level's YAML entities and optional Lua script, then the platform layer.
func buildRegistry(
	cfg *config.Config,
	levels *data.LevelTable,
	res resource.Provider,
	engine *scripting.Engine,
	platform level.Transformer,
	log *zap.Logger,
) (*level.Registry, error) {
	base := level.Base(level.BaseOptions{
		Rows:        cfg.Screen.Rows,
		Cols:        cfg.Screen.Cols,
		Diagnostics: cfg.Debug.MovementDiagnostics,
		QuitKey:     cfg.Controls.QuitKey,
		Log:         log,
	})
	spawner := level.NewSpawner(res, level.Controls{
		UserSpeed:   cfg.Controls.UserSpeed,
		KnightShort: cfg.Controls.KnightShort,
		KnightLong:  cfg.Controls.KnightLong,
		KnightGain:  cfg.Controls.KnightGain,
	}, log)

	registry := level.NewRegistry(base, platform)
	for _, name := range levels.Names() {
		entry := levels.Get(name)
		content := []level.Transformer{spawner.Content(entry)}
		if entry.Script != "" {
			script, err := engine.LevelScript(entry.Script, spawner)
			if err != nil {
				return nil, fmt.Errorf("level %q: %w", name, err)
			}
			content = append(content, script)
		}
		if _, err := registry.Register(name, content...); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nerissimo/game/internal/core/event"
)

type Config struct {
	Game     GameConfig     `toml:"game"`
	Screen   ScreenConfig   `toml:"screen"`
	Platform PlatformConfig `toml:"platform"`
	Controls ControlsConfig `toml:"controls"`
	Logging  LoggingConfig  `toml:"logging"`
	Debug    DebugConfig    `toml:"debug"`
}

type GameConfig struct {
	TickRate    time.Duration `toml:"tick_rate"`
	FixedDt     float64       `toml:"fixed_dt"` // seconds per frame, 0 = measured
	LevelsFile  string        `toml:"levels_file"`
	SpritesFile string        `toml:"sprites_file"`
	ScriptsDir  string        `toml:"scripts_dir"`
	LevelOrder  []string      `toml:"level_order"` // empty = levels file order
}

type ScreenConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

type PlatformConfig struct {
	Target    string `toml:"target"` // "terminal" or "headless"
	Audio     bool   `toml:"audio"`
	QuitOnWin bool   `toml:"quit_on_win"`
	Frames    int    `toml:"frames"` // headless only: stop after this many frames, 0 = unbounded
}

type ControlsConfig struct {
	UserSpeed   float64   `toml:"user_speed"`
	KnightShort float64   `toml:"knight_short"`
	KnightLong  float64   `toml:"knight_long"`
	KnightGain  float64   `toml:"knight_gain"`
	QuitKey     event.Key `toml:"quit_key"`

	// KeyRelease is how long a held terminal key may go without repeating
	// before it counts as released.
	KeyRelease time.Duration `toml:"key_release"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

type DebugConfig struct {
	MovementDiagnostics bool `toml:"movement_diagnostics"`
}

const (
	TargetTerminal = "terminal"
	TargetHeadless = "headless"
)

// Load reads path over the defaults. A missing file is an error unless
// optional is set, in which case the defaults are returned.
func Load(path string, optional bool) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.Rows <= 0 || c.Screen.Cols <= 0 {
		return fmt.Errorf("screen size %dx%d", c.Screen.Rows, c.Screen.Cols)
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("game.tick_rate must be positive")
	}
	if c.Game.FixedDt < 0 {
		return fmt.Errorf("game.fixed_dt must not be negative")
	}
	switch c.Platform.Target {
	case TargetTerminal, TargetHeadless:
	default:
		return fmt.Errorf("unknown platform target %q", c.Platform.Target)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			TickRate:    time.Second / 30,
			FixedDt:     1.0 / 30,
			LevelsFile:  "assets/levels.yaml",
			SpritesFile: "assets/sprites.yaml",
			ScriptsDir:  "assets/scripts",
		},
		Screen: ScreenConfig{
			Rows: 64,
			Cols: 128,
		},
		Platform: PlatformConfig{
			Target: TargetTerminal,
			Audio:  true,
		},
		Controls: ControlsConfig{
			UserSpeed:   10,
			KnightShort: 8,
			KnightLong:  16,
			KnightGain:  1.5,
			QuitKey:     event.Escape,
			KeyRelease:  500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/nerissimo/game/internal/audio"
	"github.com/nerissimo/game/internal/config"
	"github.com/nerissimo/game/internal/core/event"
	"github.com/nerissimo/game/internal/data"
	"github.com/nerissimo/game/internal/loop"
	"github.com/nerissimo/game/internal/platform"
	"github.com/nerissimo/game/internal/resource"
	"github.com/nerissimo/game/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(target string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m                 nerissimo                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mplatform:\033[0m %s\n\n", target)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main game logic ────────────────────────────────────────────────

func run() error {
	// 1. Load config; the default path may be absent
	cfgPath, optional := "config/game.toml", true
	if p := os.Getenv("NERISSIMO_CONFIG"); p != "" {
		cfgPath, optional = p, false
	}
	cfg, err := config.Load(cfgPath, optional)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	terminal := cfg.Platform.Target == config.TargetTerminal
	if terminal && cfg.Logging.File == "" {
		// The terminal belongs to the game screen.
		cfg.Logging.File = "nerissimo.log"
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Platform.Target)

	// 3. Load assets
	printSection("assets")

	sprites, err := data.LoadSpriteTable(cfg.Game.SpritesFile)
	if err != nil {
		return fmt.Errorf("load sprite table: %w", err)
	}
	res, err := resource.FromSpriteTable(sprites)
	if err != nil {
		return err
	}
	printStat("sprites", sprites.Count())

	levels, err := data.LoadLevelTable(cfg.Game.LevelsFile)
	if err != nil {
		return fmt.Errorf("load level table: %w", err)
	}
	printStat("levels", levels.Count())

	engine, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	printOK("lua engine ready")
	fmt.Println()

	// 4. Platform: presenter, input pump, audio
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := event.NewQueue()
	opts := platform.Options{QuitOnWin: cfg.Platform.QuitOnWin}
	var (
		presenter loop.Presenter
		pump      func(context.Context) error
		clock     loop.Clock
	)
	if terminal {
		if cfg.Platform.Audio {
			player := audio.NewPlayer(log)
			if err := player.Initialize(); err != nil {
				// Non-fatal, the game runs without sound
				log.Warn("audio unavailable", zap.Error(err))
			} else {
				defer player.Close()
				opts.Chime = player
			}
		}
		term, err := platform.OpenTerminal(log)
		if err != nil {
			return err
		}
		defer term.Close()
		presenter = term
		pump = platform.NewKeySource(term.Screen(), queue, cfg.Controls.KeyRelease, cancel, log).Run

		ticker := loop.NewTickerClock(cfg.Game.TickRate, cfg.Game.FixedDt)
		defer ticker.Stop()
		clock = ticker
	} else {
		presenter = platform.NewHeadless(log)
		dt := cfg.Game.FixedDt
		if dt == 0 {
			dt = cfg.Game.TickRate.Seconds()
		}
		clock = &loop.StepClock{Dt: dt, Limit: cfg.Platform.Frames}
	}

	// 5. Levels
	registry, err := buildRegistry(cfg, levels, res, engine, platform.Transformer(opts), log)
	if err != nil {
		return err
	}
	loopOpts := []loop.Option{loop.WithInput(queue), loop.WithPresenter(presenter)}
	if len(cfg.Game.LevelOrder) > 0 {
		loopOpts = append(loopOpts, loop.WithOrder(cfg.Game.LevelOrder...))
	}
	game := loop.New(registry, log, loopOpts...)

	// 6. Run the frame loop and the input pump until quit or signal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := game.Run(gctx, clock)
		if errors.Is(err, loop.ErrClockExhausted) {
			return nil
		}
		return err
	})
	if pump != nil {
		g.Go(func() error { return pump(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("shutdown complete", zap.Uint64("frames", game.Frames()), zap.String("level", game.Level()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	if cfg.File != "" {
		if cfg.Format != "json" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

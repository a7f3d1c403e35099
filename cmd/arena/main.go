// cmd/arena/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/opd-ai/go-robotarena/pkg/arena"
	"github.com/opd-ai/go-robotarena/pkg/audio"
	"github.com/opd-ai/go-robotarena/pkg/config"
	"github.com/opd-ai/go-robotarena/pkg/driver"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/logging"
	"github.com/opd-ai/go-robotarena/pkg/render"
	engorender "github.com/opd-ai/go-robotarena/pkg/render/engo"
	"github.com/opd-ai/go-robotarena/pkg/render/tui"
	"github.com/opd-ai/go-robotarena/pkg/telemetry"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	configPath := flag.String("config", "arena.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	rendererName := flag.String("renderer", "", "Renderer: tui, engo, terminal or headless (default tui on a terminal, headless otherwise)")
	ticks := flag.Int("ticks", 1000, "Ticks to run (headless only)")
	verbose := flag.Bool("verbose", false, "Print collisions and recharges to the console")
	withAudio := flag.Bool("audio", false, "Play sound cues")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		os.Exit(1)
	}

	if _, set := os.LookupEnv(logging.LevelEnvVar); !set {
		logger = logging.NewLoggerWithWriter(os.Stderr, logging.ParseLevel(cfg.Simulation.LogLevel))
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	mode := *rendererName
	if mode == "" {
		mode = "headless"
		if interactive {
			mode = "tui"
		}
	}

	bus := event.NewEventBus()
	a, err := arena.New(cfg, bus, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create arena", err)
		os.Exit(1)
	}
	a.SetContext(ctx)

	telemetry.NewLogSink(ctx, logger).Attach(bus)
	if mode != "tui" && mode != "engo" {
		telemetry.NewConsoleSink(os.Stdout, *verbose, interactive).Attach(bus)
	}

	if *withAudio {
		player, err := audio.NewSpeakerPlayer()
		if err != nil {
			logger.Warn(ctx, "Audio disabled", "error", err)
		} else {
			defer player.Close()
			audio.NewCues(ctx, player, logger).Attach(bus)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := driver.IntervalFromRate(cfg.Simulation.TickRate)
	logger.Info(ctx, "Starting arena",
		"renderer", mode,
		"width", cfg.Width,
		"height", cfg.Height,
		"tick_interval", interval.String(),
	)

	if err := run(ctx, mode, a, interval, *ticks, interactive, logger); err != nil {
		logger.Error(ctx, "Arena stopped with error", err, "renderer", mode)
		os.Exit(1)
	}

	logger.Info(ctx, "Arena stopped",
		"tick", a.Tick(),
		"outcome", a.Outcome().String(),
		"battery", a.Robot().BatteryLevel(),
	)
}

// loadConfig reads path, falling back to defaults when it does not exist,
// then applies environment overrides.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.ArenaConfig, error) {
	var cfg *config.ArenaConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", path,
			)
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		return nil, err
	}
	return cfg, nil
}

var errNeedTerminal = errors.New("the tui renderer needs a terminal on stdout")

func run(ctx context.Context, mode string, a *arena.Arena, interval time.Duration, ticks int, interactive bool, logger *logging.Logger) error {
	switch mode {
	case "tui":
		if !interactive {
			return errNeedTerminal
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		return tui.Run(ctx, screen, a, interval, logger)

	case "engo":
		engorender.Run(a, interval, logger)
		return nil

	case "terminal":
		cols, rows := 80, 24
		if interactive {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 10 && h > 6 {
				cols, rows = w-2, h-4
			}
		}
		r := render.NewTerminalRenderer(os.Stdout, cols, rows, a.Width(), a.Height())
		r.SetClearScreen(interactive)
		err := driver.New(a, r, interval, logger).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err

	case "headless":
		d := driver.New(a, render.NewNullRenderer(logger), interval, logger)
		d.RunTicks(ticks)
		return nil

	default:
		return fmt.Errorf("unknown renderer %q", mode)
	}
}

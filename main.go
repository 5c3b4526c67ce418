package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	envErr := godotenv.Load()

	cfg, err := LoadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logLevel := initLogger(os.Stderr, cfg.Logging)
	if envErr != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	world := newWorldFromConfig(cfg)

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		_, err := runHeadless(ctx, cfg, world)
		return err
	}
	return runWindow(cfg, world, logLevel)
}

func newWorldFromConfig(cfg *Config) *World {
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("Creating world",
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"speed", cfg.Sim.Speed,
		"stars", cfg.Sim.Stars,
		"seed", seed,
	)
	return NewWorld(cfg.Window.Width, cfg.Window.Height, cfg.Sim.Speed, defaultBodies(),
		WithRand(rand.New(rand.NewSource(seed))),
		WithStarCount(cfg.Sim.Stars),
	)
}

func runWindow(cfg *Config, world *World, logLevel *slog.LevelVar) error {
	a := app.New()
	w := a.NewWindow("Planets")

	s := newSession(cfg, world, logLevel, w)
	w.SetContent(s.view)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.CenterOnScreen()
	w.Canvas().SetOnTypedRune(s.handleRune)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.SetOnClosed(cancel)

	if cfg.Watch {
		err := watchConfig(ctx, cfg.Path, func(c *Config) {
			fyne.Do(func() { s.applyConfig(c) })
		})
		if err != nil {
			return err
		}
	}

	go s.run(ctx)

	w.ShowAndRun()
	return nil
}

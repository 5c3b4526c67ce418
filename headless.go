package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
)

// runHeadless steps the world without a window and optionally writes the
// final frame as a PNG.
func runHeadless(ctx context.Context, cfg *Config, world *World) (Stats, error) {
	logger := slog.With("component", "headless", "frames", cfg.Headless.Frames)
	logger.Info("Starting headless run", "speed", world.Speed())

	for i := 1; i <= cfg.Headless.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return world.Stats(), err
		}
		world.Update()
		if cfg.Headless.LogEvery > 0 && i%cfg.Headless.LogEvery == 0 {
			logStats(logger, world)
		}
	}

	stats := world.Stats()
	logger.Info("Headless run finished", "year", stats.Year, "population", stats.Population)

	if cfg.Headless.Snapshot != "" {
		if err := writeSnapshot(cfg.Headless.Snapshot, NewRenderer(), world); err != nil {
			return stats, err
		}
		logger.Info("Snapshot written", "path", cfg.Headless.Snapshot)
	}
	return stats, nil
}

func logStats(logger *slog.Logger, world *World) {
	args := []any{"year", world.Year(), "frame", world.Frame(), "population", world.TotalPopulation()}
	for _, b := range world.Bodies() {
		args = append(args, slog.Int64(b.Name, b.Population()))
	}
	logger.Info("Stats", args...)
}

func writeSnapshot(path string, r *Renderer, world *World) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := png.Encode(f, r.Render(world)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	return nil
}

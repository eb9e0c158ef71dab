package app

import (
	"context"
	"fmt"
	"time"

	"glaze/panel"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless drives the simulation clock without opening a window,
// for CI and soak runs. Nothing is drawn; the world still advances,
// including watcher-driven asset reloads.
func RunHeadless(ctx context.Context, a *App, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("app: invalid headless hz: %d", cfg.Hz)
	}
	defer a.Close()

	dt := float32(1) / float32(cfg.Hz)
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := a.step(dt, panel.Input{}); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

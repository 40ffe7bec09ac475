package main

import (
	"context"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/software"
	"github.com/pthm-cable/states/volume"
)

// runHeadless ticks software viewports until max ticks or a signal, then
// writes the final frames.
func runHeadless(ctx context.Context, cfg *config.Config, tex *volume.VolumeTexture, opts runOptions) error {
	atom := software.NewPass(nil, true, color.NRGBA{A: 255})
	defer atom.Close()
	states := software.NewPass(tex, false, color.NRGBA{})
	defer states.Close()

	pair := newViewportPair(cfg, atom, states)
	if err := pair.Resize(cfg.Screen.Width, cfg.Screen.Height, 1); err != nil {
		return err
	}
	sched, err := newScheduler(cfg, pair, opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless run",
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"max_ticks", opts.maxTicks,
	)
	if opts.maxTicks == 0 {
		slog.Warn("no max ticks set, running until interrupted")
	}

	host := &software.Host{}
	if err := sched.Run(ctx, host); err != nil {
		return err
	}
	slog.Info("headless run finished", "ticks", sched.TickCount(), "frames", host.Frames)

	if host.Frames == 0 {
		return nil
	}
	if opts.outPath != "" {
		if err := software.WritePNG(opts.outPath, states.Image()); err != nil {
			return err
		}
		slog.Info("wrote secondary viewport", "path", opts.outPath)
	}
	if opts.output != nil {
		path := filepath.Join(opts.output.Dir(), "frame.png")
		if err := software.WritePNG(path, software.Compose(atom.Image(), states.Image())); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/camera"
	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/scene"
	"github.com/pthm-cable/states/telemetry"
	"github.com/pthm-cable/states/volume"
)

// buildVolume generates the density field, records its statistics and packs
// it for sampling.
func buildVolume(cfg *config.Config, output *telemetry.OutputManager) (*volume.VolumeTexture, error) {
	noise, err := volume.NewNoise(cfg.Volume.Noise, cfg.Volume.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating noise: %w", err)
	}
	gen := volume.NewGenerator(cfg.Volume.Size, cfg.Volume.Scale, cfg.Volume.Anisotropy, noise)

	start := time.Now()
	field := gen.Generate()
	elapsed := time.Since(start)

	stats := volume.Summarize(field, cfg.Gas.Threshold)
	slog.Info("density field generated",
		"size", cfg.Volume.Size,
		"samples", cfg.Derived.Samples,
		"noise", cfg.Volume.Noise,
		"duration", elapsed,
		"stats", stats,
	)
	if output != nil {
		if err := output.WriteFieldStats(telemetry.NewFieldStatsCSV(cfg, stats, elapsed.Milliseconds())); err != nil {
			return nil, err
		}
	}
	return volume.Encode(field), nil
}

// newViewportPair builds the primary ("atom") and secondary ("states")
// viewports with their own cameras and orbit controls.
func newViewportPair(cfg *config.Config, primary, secondary game.Pass) *game.ViewportPair {
	return &game.ViewportPair{
		Primary:          newViewport(cfg, "atom", primary),
		Secondary:        newViewport(cfg, "states", secondary),
		SecondaryDivisor: cfg.Viewports.SecondaryDivisor,
		MaxPixelRatio:    float32(cfg.Screen.MaxPixelRatio),
	}
}

func newViewport(cfg *config.Config, name string, pass game.Pass) *game.Viewport {
	c := cfg.Camera
	cam := camera.New(float32(c.FOV), float32(c.Near), float32(c.Far), vec3(c.Position), vec3(c.Target))
	cam.Aspect = cfg.Derived.Aspect

	ctl := camera.NewOrbitControls(cam)
	ctl.EnableDamping = cfg.Controls.EnableDamping
	ctl.DampingFactor = float32(cfg.Controls.DampingFactor)
	ctl.RotateSpeed = float32(cfg.Controls.RotateSpeed)
	ctl.ZoomSpeed = float32(cfg.Controls.ZoomSpeed)
	ctl.MinDistance = float32(cfg.Controls.MinDistance)
	if cfg.Controls.MaxDistance > 0 {
		ctl.MaxDistance = float32(cfg.Controls.MaxDistance)
	}

	return &game.Viewport{Name: name, Camera: cam, Controls: ctl, Pass: pass}
}

// newScheduler wires the scenes and initial uniforms to the pair. The gas
// uniforms are checked before the first tick.
func newScheduler(cfg *config.Config, pair *game.ViewportPair, opts runOptions) (*game.Scheduler, error) {
	raymarch := game.NewRaymarchUniforms(cfg)
	if err := raymarch.Validate(); err != nil {
		return nil, fmt.Errorf("gas uniforms: %w", err)
	}
	return game.NewScheduler(pair, scene.New(cfg), scene.NewAtom(cfg),
		raymarch, game.NewFluidUniforms(cfg),
		game.Options{
			MaxTicks:       opts.maxTicks,
			PerfWindow:     cfg.Telemetry.PerfWindow,
			LogStats:       opts.logStats,
			LogIntervalSec: cfg.Telemetry.LogIntervalSec,
			Output:         opts.output,
		}), nil
}

func vec3(a [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

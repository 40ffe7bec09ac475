package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/volume"
)

// Smallest step length the raymarcher accepts.
const minRange = 1e-4

// RaymarchUniforms are the per-draw inputs of the gas program.
type RaymarchUniforms struct {
	BaseColor mgl32.Vec3
	Threshold float32
	Opacity   float32
	Range     float32
	Steps     int

	// Gas observer's camera position in world space
	CameraPosition mgl32.Vec3

	// Incremented every tick; wraps
	FrameIndex uint32

	// Jitter the first sample per pixel by FrameIndex
	Dither bool
}

// NewRaymarchUniforms builds the initial uniforms from config.
func NewRaymarchUniforms(cfg *config.Config) RaymarchUniforms {
	c := cfg.Gas.BaseColor.Floats()
	return RaymarchUniforms{
		BaseColor: mgl32.Vec3{c[0], c[1], c[2]},
		Threshold: float32(cfg.Gas.Threshold),
		Opacity:   float32(cfg.Gas.Opacity),
		Range:     float32(cfg.Gas.Range),
		Steps:     cfg.Gas.Steps,
		Dither:    cfg.Gas.Dither,
	}
}

// Validate reports values the device program cannot handle.
func (u *RaymarchUniforms) Validate() error {
	switch {
	case u.Steps <= 0:
		return fmt.Errorf("steps must be positive, got %d", u.Steps)
	case u.Range <= 0:
		return fmt.Errorf("range must be positive, got %v", u.Range)
	case u.Threshold < 0 || u.Threshold > 1:
		return fmt.Errorf("threshold must be in [0, 1], got %v", u.Threshold)
	case u.Opacity < 0 || u.Opacity > 1:
		return fmt.Errorf("opacity must be in [0, 1], got %v", u.Opacity)
	}
	return nil
}

// Clamp forces the tunable values into their legal ranges.
func (u *RaymarchUniforms) Clamp() {
	if u.Steps < 1 {
		u.Steps = 1
	}
	if u.Range < minRange {
		u.Range = minRange
	}
	u.Threshold = clamp01(u.Threshold)
	u.Opacity = clamp01(u.Opacity)
}

// Params converts the uniforms for the CPU raymarcher. Jitter is derived from
// FrameIndex the same way for every pixel, so it only shifts the sample grid.
func (u *RaymarchUniforms) Params() volume.Params {
	p := volume.Params{
		BaseColor: u.BaseColor,
		Threshold: u.Threshold,
		Opacity:   u.Opacity,
		Range:     u.Range,
		Steps:     u.Steps,
	}
	if u.Dither {
		p.Jitter = float32(u.FrameIndex%16) / 16
	}
	return p
}

// FluidUniforms are the per-draw inputs of the fluid program.
type FluidUniforms struct {
	Elapsed       float32
	PointerInside bool
	ColorA        mgl32.Vec3
	ColorB        mgl32.Vec3
}

// NewFluidUniforms builds the initial uniforms from config.
func NewFluidUniforms(cfg *config.Config) FluidUniforms {
	a := cfg.Fluid.ColorA.Floats()
	b := cfg.Fluid.ColorB.Floats()
	return FluidUniforms{
		ColorA: mgl32.Vec3{a[0], a[1], a[2]},
		ColorB: mgl32.Vec3{b[0], b[1], b[2]},
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

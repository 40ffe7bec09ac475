// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Viewports ViewportsConfig `yaml:"viewports"`
	Volume    VolumeConfig    `yaml:"volume"`
	Gas       GasConfig       `yaml:"gas"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Cube      CubeConfig      `yaml:"cube"`
	Camera    CameraConfig    `yaml:"camera"`
	Controls  ControlsConfig  `yaml:"controls"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"` // Device pixel ratio is clamped to this
}

// ViewportsConfig holds the layout of the two render targets.
type ViewportsConfig struct {
	SecondaryDivisor int `yaml:"secondary_divisor"` // Secondary target = window / this (linear)
}

// VolumeConfig holds density field generation parameters.
type VolumeConfig struct {
	Size       int     `yaml:"size"`       // Grid side length N (N³ samples)
	Scale      float64 `yaml:"scale"`      // Noise coordinate scale
	Anisotropy float64 `yaml:"anisotropy"` // Extra divisor applied to x and z
	Noise      string  `yaml:"noise"`      // "perlin" or "simplex"
	Seed       int64   `yaml:"seed"`       // 0 = reference permutation
}

// GasConfig holds the raymarch program defaults and gas mesh placement.
type GasConfig struct {
	BaseColor    Color      `yaml:"base_color"`
	Threshold    float64    `yaml:"threshold"` // Minimum normalized density that contributes
	Opacity      float64    `yaml:"opacity"`   // Alpha accumulated per contributing sample
	Range        float64    `yaml:"range"`     // Step length in object space
	Steps        int        `yaml:"steps"`     // Maximum samples per ray
	Dither       bool       `yaml:"dither"`    // Offset the first sample per pixel using the frame counter
	Position     [3]float64 `yaml:"position"`
	Scale        float64    `yaml:"scale"`
	SpinPeriodMs float64    `yaml:"spin_period_ms"` // rotation.y = -wall_ms / this
}

// FluidConfig holds the translucent sphere parameters.
type FluidConfig struct {
	ColorA       Color   `yaml:"color_a"`
	ColorB       Color   `yaml:"color_b"`
	Radius       float64 `yaml:"radius"`
	Segments     int     `yaml:"segments"`
	TrackPointer bool    `yaml:"track_pointer"` // Let the host drive the pointer-inside flag
}

// CubeConfig holds the solid cube parameters.
type CubeConfig struct {
	Size      float64    `yaml:"size"`
	Position  [3]float64 `yaml:"position"`
	SpinRates [3]float64 `yaml:"spin_rates"` // Radians per second of logical time
}

// CameraConfig holds the perspective camera shared by both viewports.
type CameraConfig struct {
	FOV      float64    `yaml:"fov"` // Vertical, degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
}

// ControlsConfig holds orbit control parameters.
type ControlsConfig struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
}

// TelemetryConfig holds performance reporting parameters.
type TelemetryConfig struct {
	PerfWindow     int     `yaml:"perf_window"`      // Ticks averaged per perf sample
	LogIntervalSec float64 `yaml:"log_interval_sec"` // Seconds between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Aspect  float32 // Screen.Width / Screen.Height
	Samples int     // Volume.Size³
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from path (or defaults only if empty)
// and stores it as the global config.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges that would otherwise produce undefined rendering.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Screen.MaxPixelRatio <= 0:
		return fmt.Errorf("screen.max_pixel_ratio must be positive, got %v", c.Screen.MaxPixelRatio)
	case c.Viewports.SecondaryDivisor < 1:
		return fmt.Errorf("viewports.secondary_divisor must be >= 1, got %d", c.Viewports.SecondaryDivisor)
	case c.Volume.Size <= 0 || c.Volume.Size > 512:
		return fmt.Errorf("volume.size must be in (0, 512], got %d", c.Volume.Size)
	case c.Volume.Scale <= 0:
		return fmt.Errorf("volume.scale must be positive, got %v", c.Volume.Scale)
	case c.Volume.Anisotropy <= 0:
		return fmt.Errorf("volume.anisotropy must be positive, got %v", c.Volume.Anisotropy)
	case c.Volume.Noise != "perlin" && c.Volume.Noise != "simplex":
		return fmt.Errorf("volume.noise must be perlin or simplex, got %q", c.Volume.Noise)
	case c.Gas.Steps <= 0:
		return fmt.Errorf("gas.steps must be positive, got %d", c.Gas.Steps)
	case c.Gas.Range <= 0:
		return fmt.Errorf("gas.range must be positive, got %v", c.Gas.Range)
	case c.Gas.Threshold < 0 || c.Gas.Threshold > 1:
		return fmt.Errorf("gas.threshold must be in [0, 1], got %v", c.Gas.Threshold)
	case c.Gas.Opacity < 0 || c.Gas.Opacity > 1:
		return fmt.Errorf("gas.opacity must be in [0, 1], got %v", c.Gas.Opacity)
	case c.Gas.SpinPeriodMs == 0:
		return fmt.Errorf("gas.spin_period_ms must be non-zero")
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip planes invalid: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	case c.Controls.DampingFactor < 0 || c.Controls.DampingFactor > 1:
		return fmt.Errorf("controls.damping_factor must be in [0, 1], got %v", c.Controls.DampingFactor)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
	c.Derived.Samples = c.Volume.Size * c.Volume.Size * c.Volume.Size
}

// SetScreenSize overrides the window size and recomputes derived values.
// Non-positive arguments keep the current value.
func (c *Config) SetScreenSize(width, height int) error {
	if width > 0 {
		c.Screen.Width = width
	}
	if height > 0 {
		c.Screen.Height = height
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the current configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

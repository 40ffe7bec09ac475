// Shader debug tool - renders the gas program offscreen to a PNG file.
//
// Usage: go run ./cmd/shaderdebug -out gas.png -size 64 -steps 100
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/camera"
	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/renderer"
	"github.com/pthm-cable/states/scene"
	"github.com/pthm-cable/states/volume"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "gas.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	size := flag.Int("size", 0, "Volume size override (0 = use config)")
	steps := flag.Int("steps", 0, "Raymarch steps override (0 = use config)")
	threshold := flag.Float64("threshold", -1, "Density threshold override (<0 = use config)")
	distance := flag.Float64("distance", 4, "Camera distance from the gas box")
	flag.Parse()

	if err := run(*configPath, *outPath, *width, *height, *size, *steps, *threshold, float32(*distance)); err != nil {
		fmt.Fprintf(os.Stderr, "shaderdebug: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, outPath string, width, height, size, steps int, threshold float64, distance float32) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if size > 0 {
		cfg.Volume.Size = size
	}

	noise, err := volume.NewNoise(cfg.Volume.Noise, cfg.Volume.Seed)
	if err != nil {
		return err
	}
	field := volume.NewGenerator(cfg.Volume.Size, cfg.Volume.Scale, cfg.Volume.Anisotropy, noise).Generate()
	tex := volume.Encode(field)

	// Hidden window for the GL context
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(width), int32(height), "Shader Debug")
	defer rl.CloseWindow()
	if err := renderer.InitGL(); err != nil {
		return err
	}

	gpuTex, err := renderer.UploadVolume(tex)
	if err != nil {
		return err
	}
	defer gpuTex.Unload()
	gas, err := renderer.NewGasProgram(gpuTex)
	if err != nil {
		return err
	}
	defer gas.Unload()

	pass := renderer.NewStatesPass(nil, nil, gas)
	defer pass.Unload()

	// Look straight at the gas box
	states := scene.New(cfg)
	gasT, err := states.Transform(scene.ShapeGas)
	if err != nil {
		return err
	}
	eye := gasT.Position.Add(mgl32.Vec3{0, 0, distance})
	cam := camera.New(float32(cfg.Camera.FOV), float32(cfg.Camera.Near), float32(cfg.Camera.Far), eye, gasT.Position)
	cam.Resize(float32(width), float32(height))
	v := &game.Viewport{Name: "gas", Camera: cam, Width: width, Height: height, PixelRatio: 1, Pass: pass}

	uniforms := game.NewRaymarchUniforms(cfg)
	if steps > 0 {
		uniforms.Steps = steps
	}
	if threshold >= 0 {
		uniforms.Threshold = float32(threshold)
	}
	uniforms.CameraPosition = eye
	if err := uniforms.Validate(); err != nil {
		return fmt.Errorf("gas uniforms: %w", err)
	}

	frame := &game.Frame{
		Raymarch: uniforms,
		Fluid:    game.NewFluidUniforms(cfg),
		States:   states,
	}
	if err := pass.Resize(v); err != nil {
		return err
	}
	if err := pass.Render(v, frame); err != nil {
		return err
	}

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(pass.Texture())
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	if !rl.ExportImage(*img, outPath) {
		return fmt.Errorf("exporting %s", outPath)
	}

	fmt.Printf("Gas rendered to: %s (%dx%d, volume %d³, %d steps)\n",
		outPath, width, height, cfg.Volume.Size, uniforms.Steps)
	return nil
}

// Density field preview tool - interactive z-slice viewer with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/volume"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// fieldParams are the generator inputs being previewed.
type fieldParams struct {
	Size       int
	Scale      float32
	Anisotropy float32
	Noise      string
	Seed       int64
	Slice      int
	Threshold  float32
}

func defaultParams(cfg *config.Config) fieldParams {
	return fieldParams{
		Size:       cfg.Volume.Size,
		Scale:      float32(cfg.Volume.Scale),
		Anisotropy: float32(cfg.Volume.Anisotropy),
		Noise:      cfg.Volume.Noise,
		Seed:       cfg.Volume.Seed,
		Slice:      cfg.Volume.Size / 2,
		Threshold:  float32(cfg.Gas.Threshold),
	}
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Density Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams(cfg)

	var texture rl.Texture2D
	texSize := 0
	slice := []uint8(nil)
	var stats volume.FieldStats
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			if texSize != params.Size {
				if texSize > 0 {
					rl.UnloadTexture(texture)
				}
				img := rl.GenImageColor(params.Size, params.Size, rl.Black)
				texture = rl.LoadTextureFromImage(img)
				rl.UnloadImage(img)
				texSize = params.Size
			}
			slice, err = generateSlice(params, slice)
			if err != nil {
				slog.Error("failed to generate slice", "error", err)
				return
			}
			stats = volume.Summarize(&volume.DensityField{Size: params.Size, Data: slice}, float64(params.Threshold))
			updateTexture(texture, slice, params.Threshold)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texSize), Height: float32(texSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Mean: %.1f  StdDev: %.1f  Max: %d", stats.Mean, stats.StdDev, stats.Max), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Above threshold: %.1f%%", stats.Coverage*100), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Density Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, changed := slider(panelX, &panelY, "Slice (z)", fmt.Sprintf("%d", params.Slice), float32(params.Slice), 0, float32(params.Size-1)); changed && int(v) != params.Slice {
			params.Slice = int(v)
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Size (N)", fmt.Sprintf("%d", params.Size), float32(params.Size), 8, 256); changed && int(v) != params.Size {
			params.Size = int(v)
			if params.Slice >= params.Size {
				params.Slice = params.Size - 1
			}
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Scale (noise frequency)", fmt.Sprintf("%.3f", params.Scale), params.Scale, 0.005, 0.2); changed {
			params.Scale = v
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Anisotropy (x/z stretch)", fmt.Sprintf("%.2f", params.Anisotropy), params.Anisotropy, 0.5, 4); changed {
			params.Anisotropy = v
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Threshold", fmt.Sprintf("%.2f", params.Threshold), params.Threshold, 0, 1); changed {
			params.Threshold = v
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Seed (0 = reference)", fmt.Sprintf("%d", params.Seed), float32(params.Seed), 0, 9999); changed && int64(v) != params.Seed {
			params.Seed = int64(v)
			needsRegen = true
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Noise: "+params.Noise) {
			params.Noise = toggleText(params.Noise == volume.NoisePerlin, volume.NoiseSimplex, volume.NoisePerlin)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
	if texSize > 0 {
		rl.UnloadTexture(texture)
	}
}

// slider draws a labelled slider and advances y. It reports whether the value
// moved this frame.
func slider(x float32, y *float32, label, value string, cur, min, max float32) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprint(min), fmt.Sprint(max),
		cur, min, max,
	)
	rl.DrawText(value, int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next, next != cur
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func yamlLines(p fieldParams) []string {
	return []string{
		"volume:",
		fmt.Sprintf("  size: %d", p.Size),
		fmt.Sprintf("  scale: %.3f", p.Scale),
		fmt.Sprintf("  anisotropy: %.2f", p.Anisotropy),
		fmt.Sprintf("  noise: %s", p.Noise),
		fmt.Sprintf("  seed: %d", p.Seed),
		"gas:",
		fmt.Sprintf("  threshold: %.2f", p.Threshold),
	}
}

// generateSlice fills one z-slice of the field, reusing buf when it fits.
func generateSlice(p fieldParams, buf []uint8) ([]uint8, error) {
	noise, err := volume.NewNoise(p.Noise, p.Seed)
	if err != nil {
		return nil, err
	}
	n := p.Size * p.Size
	if cap(buf) < n {
		buf = make([]uint8, n)
	}
	buf = buf[:n]
	volume.NewGenerator(p.Size, float64(p.Scale), float64(p.Anisotropy), noise).GenerateSlice(p.Slice, buf)
	return buf, nil
}

// updateTexture colors the slice, dimming samples under the threshold.
func updateTexture(texture rl.Texture2D, slice []uint8, threshold float32) {
	pixels := make([]color.RGBA, len(slice))
	for i, d := range slice {
		v := float32(d) / 255
		// Gradient: dark blue -> cyan -> yellow -> white
		var r, g, b uint8
		switch {
		case v < 0.25:
			t := v / 0.25
			r, g, b = uint8(10+t*30), uint8(20+t*60), uint8(60+t*100)
		case v < 0.5:
			t := (v - 0.25) / 0.25
			r, g, b = uint8(40+t*20), uint8(80+t*120), uint8(160+t*40)
		case v < 0.75:
			t := (v - 0.5) / 0.25
			r, g, b = uint8(60+t*140), uint8(200-t*40), uint8(200-t*150)
		default:
			t := (v - 0.75) / 0.25
			r, g, b = uint8(200+t*55), uint8(160+t*95), uint8(50+t*205)
		}
		if v < threshold {
			r, g, b = r/3, g/3, b/3
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

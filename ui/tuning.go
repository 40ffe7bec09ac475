package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/states/game"
)

// Slider binds one tunable value to a raygui slider.
type Slider struct {
	Label    string
	Min, Max float32
	Format   string
	Get      func() float32
	Set      func(float32)
}

// Toggle binds one flag to a button.
type Toggle struct {
	Label string
	Get   func() bool
	Set   func(bool)
}

// RaymarchSliders binds the gas uniforms. Every write is clamped into the
// legal range so a slider never produces an invalid program input.
func RaymarchSliders(u *game.RaymarchUniforms) []Slider {
	set := func(apply func(float32)) func(float32) {
		return func(v float32) {
			apply(v)
			u.Clamp()
		}
	}
	return []Slider{
		{
			Label: "Threshold", Min: 0, Max: 1, Format: "%.2f",
			Get: func() float32 { return u.Threshold },
			Set: set(func(v float32) { u.Threshold = v }),
		},
		{
			Label: "Opacity", Min: 0, Max: 1, Format: "%.2f",
			Get: func() float32 { return u.Opacity },
			Set: set(func(v float32) { u.Opacity = v }),
		},
		{
			Label: "Range", Min: 0.001, Max: 0.5, Format: "%.3f",
			Get: func() float32 { return u.Range },
			Set: set(func(v float32) { u.Range = v }),
		},
		{
			Label: "Steps", Min: 1, Max: 300, Format: "%.0f",
			Get: func() float32 { return float32(u.Steps) },
			Set: set(func(v float32) { u.Steps = int(math.Round(float64(v))) }),
		},
	}
}

// Toggles binds the boolean uniforms. The pointer flag is only offered when
// the host is not tracking the pointer itself.
func Toggles(u *game.RaymarchUniforms, f *game.FluidUniforms, trackPointer bool) []Toggle {
	toggles := []Toggle{{
		Label: "Dither",
		Get:   func() bool { return u.Dither },
		Set:   func(v bool) { u.Dither = v },
	}}
	if !trackPointer {
		toggles = append(toggles, Toggle{
			Label: "Pointer inside",
			Get:   func() bool { return f.PointerInside },
			Set:   func(v bool) { f.PointerInside = v },
		})
	}
	return toggles
}

// TuningPanel draws sliders for the live gas and fluid uniforms. Writes go
// straight into the scheduler's records and apply on the next tick.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32

	sliders  []Slider
	toggles  []Toggle
	defaults game.RaymarchUniforms
	raymarch *game.RaymarchUniforms
}

// NewTuningPanel creates a panel editing u and f. The current values of u
// become the reset target.
func NewTuningPanel(x, y, width int32, u *game.RaymarchUniforms, f *game.FluidUniforms, trackPointer bool) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sliders:  RaymarchSliders(u),
		toggles:  Toggles(u, f, trackPointer),
		defaults: *u,
		raymarch: u,
	}
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Bounds returns the panel's screen rectangle.
func (p *TuningPanel) Bounds() rl.Rectangle {
	return rl.NewRectangle(float32(p.x), float32(p.y), float32(p.width), float32(p.height()))
}

// Contains reports whether the pointer is over the panel.
func (p *TuningPanel) Contains(pos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pos, p.Bounds())
}

func (p *TuningPanel) height() int32 {
	theme := p.renderer.Theme
	rows := int32(len(p.sliders))*2 + int32(len(p.toggles)+1)
	return theme.Padding*3 + theme.LineHeight + rows*(theme.LineHeight+6)
}

// Reset restores the gas uniforms the panel started with, keeping the
// per-tick fields.
func (p *TuningPanel) Reset() {
	cam, frame := p.raymarch.CameraPosition, p.raymarch.FrameIndex
	*p.raymarch = p.defaults
	p.raymarch.CameraPosition, p.raymarch.FrameIndex = cam, frame
}

// Draw renders the panel and applies any edits.
func (p *TuningPanel) Draw() {
	r := p.renderer
	theme := r.Theme
	r.DrawPanel(p.x, p.y, p.width, p.height())

	x := float32(p.x + theme.Padding)
	y := r.DrawSectionHeader(p.x+theme.Padding, p.y+theme.Padding, "Gas")
	sliderW := float32(p.width - theme.Padding*2 - 60)

	for _, s := range p.sliders {
		rl.DrawText(s.Label, int32(x), y, theme.FontSize, theme.LabelColor)
		y += theme.LineHeight
		cur := s.Get()
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
			"", "",
			cur, s.Min, s.Max,
		)
		rl.DrawText(fmt.Sprintf(s.Format, cur), int32(x+sliderW+8), y+2, theme.FontSize, theme.ValueColor)
		if next != cur {
			s.Set(next)
		}
		y += theme.LineHeight + 6
	}

	for _, t := range p.toggles {
		state := "off"
		if t.Get() {
			state = "on"
		}
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 20}, t.Label+": "+state) {
			t.Set(!t.Get())
		}
		y += theme.LineHeight + 6
	}

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 20}, "Reset") {
		p.Reset()
	}
}

package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/game"
)

// OpenWindow creates the resizable high-DPI window and its GL context.
func OpenWindow(cfg *config.Config, title string) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	return InitGL()
}

// CloseWindow tears down the window and GL context.
func CloseWindow() {
	rl.CloseWindow()
}

// HostOptions configures a Host.
type HostOptions struct {
	// Fluid receives the pointer-inside flag when TrackPointer is set
	Fluid        *game.FluidUniforms
	TrackPointer bool

	// Overlay draws on top of the composited viewports, after both
	Overlay func()

	// InputCaptured reports whether an overlay owns the pointer this frame
	InputCaptured func() bool
}

// Host drives the scheduler from the window: it polls events, applies
// resizes, routes orbit input and composites both viewports on present.
type Host struct {
	pair      *game.ViewportPair
	primary   *ScenePass
	secondary *ScenePass
	opts      HostOptions

	// viewport being dragged; input sticks to it until release
	dragging *game.Viewport

	err error
}

// NewHost creates a host for the viewport pair and its passes.
func NewHost(pair *game.ViewportPair, primary, secondary *ScenePass, opts HostOptions) *Host {
	return &Host{
		pair:      pair,
		primary:   primary,
		secondary: secondary,
		opts:      opts,
	}
}

// Resize applies the current window size to the viewport pair.
func (h *Host) Resize() error {
	w, hgt := rl.GetScreenWidth(), rl.GetScreenHeight()
	dpr := rl.GetWindowScaleDPI().X
	slog.Info("resize", "width", w, "height", hgt, "dpr", dpr)
	return h.pair.Resize(w, hgt, dpr)
}

// Err returns the error that made BeginFrame stop the loop, if any.
func (h *Host) Err() error {
	return h.err
}

// BeginFrame implements game.Host.
func (h *Host) BeginFrame() bool {
	if rl.WindowShouldClose() {
		return false
	}
	if rl.IsWindowResized() {
		if err := h.Resize(); err != nil {
			h.err = err
			return false
		}
	}
	h.handleInput()
	return true
}

// EndFrame implements game.Host.
func (h *Host) EndFrame() {
	w := float32(rl.GetScreenWidth())
	hgt := float32(rl.GetScreenHeight())
	sec := h.secondaryRect()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	drawTarget(h.primary.Texture(), rl.NewRectangle(0, 0, w, hgt), rl.White)
	// The secondary target keeps its alpha, so the primary shows through
	drawTarget(h.secondary.Texture(), sec, rl.White)
	if h.opts.Overlay != nil {
		h.opts.Overlay()
	}
	rl.EndDrawing()
}

// drawTarget blits a render texture, flipped since GL stores it bottom-up.
func drawTarget(tex rl.Texture2D, dst rl.Rectangle, tint rl.Color) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, tint)
}

// secondaryRect is the secondary viewport's screen area, bottom-right.
func (h *Host) secondaryRect() rl.Rectangle {
	v := h.pair.Secondary
	w, hgt := float32(v.Width), float32(v.Height)
	return rl.NewRectangle(float32(rl.GetScreenWidth())-w, float32(rl.GetScreenHeight())-hgt, w, hgt)
}

// handleInput routes drag and wheel to the viewport under the pointer. Each
// viewport's controls orbit the camera that renders it.
func (h *Host) handleInput() {
	mouse := rl.GetMousePosition()
	overSecondary := rl.CheckCollisionPointRec(mouse, h.secondaryRect())

	if h.opts.TrackPointer && h.opts.Fluid != nil {
		h.opts.Fluid.PointerInside = overSecondary
	}

	if h.opts.InputCaptured != nil && h.opts.InputCaptured() {
		h.dragging = nil
		return
	}

	hover := h.pair.Primary
	if overSecondary {
		hover = h.pair.Secondary
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		h.dragging = hover
	}
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		h.dragging = nil
	}
	if v := h.dragging; v != nil && v.Controls != nil {
		d := rl.GetMouseDelta()
		v.Controls.Rotate(d.X, d.Y, float32(v.Height))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && hover.Controls != nil {
		hover.Controls.Dolly(wheel)
	}
}

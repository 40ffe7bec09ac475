package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/scene"
)

// Reference grid drawn in the primary scene.
const (
	gridSlices  = 10
	gridSpacing = 1
)

// ScenePass renders one viewport into an offscreen render texture.
type ScenePass struct {
	Clear rl.Color

	// nil programs are skipped; the atom pass has none and draws the grid
	solid *SolidProgram
	fluid *FluidProgram
	gas   *GasProgram
	grid  bool

	target rl.RenderTexture2D
	loaded bool
}

// NewStatesPass draws the cube, the fluid sphere and the gas volume over a
// transparent background.
func NewStatesPass(solid *SolidProgram, fluid *FluidProgram, gas *GasProgram) *ScenePass {
	return &ScenePass{
		Clear: rl.Blank,
		solid: solid,
		fluid: fluid,
		gas:   gas,
	}
}

// NewAtomPass draws the lights-only scene with a reference grid.
func NewAtomPass(clear rl.Color) *ScenePass {
	return &ScenePass{Clear: clear, grid: true}
}

// Resize reallocates the render texture at the viewport's device-pixel size.
func (p *ScenePass) Resize(v *game.Viewport) error {
	w, h := v.TargetSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid render target size %dx%d", w, h)
	}
	p.unloadTarget()

	p.target = rl.LoadRenderTexture(int32(w), int32(h))
	if !rl.IsRenderTextureValid(p.target) {
		return fmt.Errorf("creating %dx%d render target for %s", w, h, v.Name)
	}
	rl.SetTextureFilter(p.target.Texture, rl.FilterBilinear)
	p.loaded = true
	return nil
}

// Render draws the frame into the render texture.
func (p *ScenePass) Render(v *game.Viewport, f *game.Frame) error {
	if !p.loaded {
		if err := p.Resize(v); err != nil {
			return err
		}
	}

	rl.BeginTextureMode(p.target)
	rl.ClearBackground(p.Clear)
	rl.BeginMode3D(toCamera3D(v.Camera))
	// Replace raylib's projection so near/far and aspect follow the camera
	rl.SetMatrixProjection(toMatrix(v.Camera.Projection()))

	if p.grid {
		rl.DrawGrid(gridSlices, gridSpacing)
	}
	p.drawStates(v, f)

	rl.EndMode3D()
	rl.EndTextureMode()

	return checkGL(fmt.Sprintf("rendering %s", v.Name))
}

// drawStates draws opaque geometry first, then the translucent objects.
func (p *ScenePass) drawStates(v *game.Viewport, f *game.Frame) {
	s := f.States
	if s == nil {
		return
	}
	if p.solid != nil && s.Has(scene.ShapeCube) {
		p.solid.Draw(s.Matrix(scene.ShapeCube), s.Lights())
	}
	if p.fluid != nil && s.Has(scene.ShapeFluid) {
		p.fluid.Draw(s.Matrix(scene.ShapeFluid), &f.Fluid, v.Camera.Position)
	}
	if p.gas != nil && s.Has(scene.ShapeGas) {
		p.gas.Draw(s.Matrix(scene.ShapeGas), &f.Raymarch)
	}
}

// Texture returns the last rendered frame.
func (p *ScenePass) Texture() rl.Texture2D {
	return p.target.Texture
}

// Unload frees the render texture. Programs are owned by the caller.
func (p *ScenePass) Unload() {
	p.unloadTarget()
}

func (p *ScenePass) unloadTarget() {
	if p.loaded {
		rl.UnloadRenderTexture(p.target)
		p.loaded = false
	}
}

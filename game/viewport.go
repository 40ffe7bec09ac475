package game

import (
	"fmt"

	"github.com/pthm-cable/states/camera"
)

// Pass draws one viewport. Implementations own their render target.
type Pass interface {
	// Render draws the frame through the viewport's camera. An error is
	// fatal to the loop.
	Render(v *Viewport, f *Frame) error

	// Resize reallocates the render target to the viewport's current size.
	Resize(v *Viewport) error
}

// Controls moves a viewport's camera from pointer input.
// *camera.OrbitControls is the implementation.
type Controls interface {
	Rotate(dx, dy, viewportHeight float32)
	Dolly(wheel float32)
	// Update applies queued input and reports whether the camera moved.
	Update() bool
}

// Viewport is one camera, its orbit controls and its render target size.
type Viewport struct {
	Name     string
	Camera   *camera.Camera
	Controls Controls

	// Render target size in logical pixels
	Width, Height int
	PixelRatio    float32

	Pass Pass
}

// TargetSize returns the render target size in device pixels.
func (v *Viewport) TargetSize() (int, int) {
	return int(float32(v.Width) * v.PixelRatio), int(float32(v.Height) * v.PixelRatio)
}

// ViewportPair is the full-size primary viewport and the reduced secondary
// viewport, resized together.
type ViewportPair struct {
	Primary   *Viewport
	Secondary *Viewport

	SecondaryDivisor int
	MaxPixelRatio    float32
}

// Resize applies a window resize to both viewports: primary gets (w, h),
// secondary (w/div, h/div), both cameras take aspect w/h, and the device
// pixel ratio is capped at MaxPixelRatio.
func (p *ViewportPair) Resize(width, height int, devicePixelRatio float32) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	div := p.SecondaryDivisor
	if div < 1 {
		div = 1
	}
	ratio := devicePixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	if p.MaxPixelRatio > 0 && ratio > p.MaxPixelRatio {
		ratio = p.MaxPixelRatio
	}

	p.Primary.Width, p.Primary.Height = width, height
	p.Secondary.Width, p.Secondary.Height = width/div, height/div

	for _, v := range p.Each() {
		v.PixelRatio = ratio
		v.Camera.Resize(float32(width), float32(height))
		if v.Pass == nil {
			continue
		}
		if err := v.Pass.Resize(v); err != nil {
			return fmt.Errorf("resizing %s viewport: %w", v.Name, err)
		}
	}
	return nil
}

// Each returns the viewports in render order.
func (p *ViewportPair) Each() [2]*Viewport {
	return [2]*Viewport{p.Primary, p.Secondary}
}

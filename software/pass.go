// Package software renders viewports on the CPU for headless runs. The gas
// volume goes through the same integration as the device program.
package software

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/scene"
	"github.com/pthm-cable/states/volume"
)

// Pass rasterizes one viewport into an NRGBA image.
type Pass struct {
	// Atom renders the lights-only scene with a ground grid instead of the
	// states objects.
	Atom bool

	Background color.NRGBA

	texture *volume.VolumeTexture
	img     *image.NRGBA
	pool    *rowPool
}

// NewPass creates a pass sampling tex for the gas volume. tex may be nil for
// the atom viewport.
func NewPass(tex *volume.VolumeTexture, atom bool, background color.NRGBA) *Pass {
	return &Pass{
		Atom:       atom,
		Background: background,
		texture:    tex,
		pool:       newRowPool(),
	}
}

// Resize reallocates the image to the viewport's device-pixel size.
func (p *Pass) Resize(v *game.Viewport) error {
	w, h := v.TargetSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid render target size %dx%d", w, h)
	}
	p.img = image.NewNRGBA(image.Rect(0, 0, w, h))
	return nil
}

// Image returns the last rendered frame.
func (p *Pass) Image() *image.NRGBA {
	return p.img
}

// Close stops the worker goroutines.
func (p *Pass) Close() {
	p.pool.stop()
}

// Render draws the frame through the viewport camera.
func (p *Pass) Render(v *game.Viewport, f *game.Frame) error {
	if p.img == nil {
		if err := p.Resize(v); err != nil {
			return err
		}
	}

	var objs objects
	if p.Atom {
		objs.lights = f.Atom.Lights()
		objs.grid = true
	} else {
		objs = p.collect(f)
	}

	b := p.img.Bounds()
	w, h := b.Dx(), b.Dy()
	cam := v.Camera

	p.pool.run(h, func(y0, y1 int) {
		var hits []hit
		for y := y0; y < y1; y++ {
			ndcY := 1 - (float32(y)+0.5)/float32(h)*2
			for x := 0; x < w; x++ {
				ndcX := (float32(x)+0.5)/float32(w)*2 - 1
				origin, dir := cam.Ray(ndcX, ndcY)
				hits = objs.trace(origin, dir, hits[:0])
				p.img.SetNRGBA(x, y, composite(p.Background, hits))
			}
		}
	})
	return nil
}

// objects is the per-frame geometry snapshot shared by all rows.
type objects struct {
	lights []scene.Light
	grid   bool

	cube    *box
	fluid   *sphere
	gas     *box
	marcher volume.Marcher
	gasEye  mgl32.Vec3

	elapsed       float32
	pointerInside bool
	colorA        mgl32.Vec3
	colorB        mgl32.Vec3
}

type box struct {
	model mgl32.Mat4
	inv   mgl32.Mat4
}

type sphere struct {
	center mgl32.Vec3
	radius float32
}

func (p *Pass) collect(f *game.Frame) objects {
	s := f.States
	objs := objects{
		lights:        s.Lights(),
		elapsed:       f.Fluid.Elapsed,
		pointerInside: f.Fluid.PointerInside,
		colorA:        f.Fluid.ColorA,
		colorB:        f.Fluid.ColorB,
	}
	if s.Has(scene.ShapeCube) {
		m := s.Matrix(scene.ShapeCube)
		objs.cube = &box{model: m, inv: m.Inv()}
	}
	if t, err := s.Transform(scene.ShapeFluid); err == nil {
		objs.fluid = &sphere{center: t.Position, radius: t.Scale.X()}
	}
	if s.Has(scene.ShapeGas) && p.texture != nil {
		m := s.Matrix(scene.ShapeGas)
		objs.gas = &box{model: m, inv: m.Inv()}
		objs.marcher = volume.Marcher{Texture: p.texture, Params: f.Raymarch.Params()}
		objs.gasEye = f.Raymarch.CameraPosition
	}
	return objs
}

// hit is one translucent or opaque layer along a ray.
type hit struct {
	t    float32
	rgba [4]float32 // straight alpha
}

func (o *objects) trace(origin, dir mgl32.Vec3, hits []hit) []hit {
	if o.grid {
		if h, ok := o.traceGrid(origin, dir); ok {
			hits = append(hits, h)
		}
	}
	if o.cube != nil {
		if h, ok := o.traceCube(origin, dir); ok {
			hits = append(hits, h)
		}
	}
	if o.fluid != nil {
		if h, ok := o.traceFluid(origin, dir); ok {
			hits = append(hits, h)
		}
	}
	if o.gas != nil {
		if h, ok := o.traceGas(dir); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

func (o *objects) traceGrid(origin, dir mgl32.Vec3) (hit, bool) {
	if dir.Y() > -1e-6 && dir.Y() < 1e-6 {
		return hit{}, false
	}
	t := -origin.Y() / dir.Y()
	if t <= 0 {
		return hit{}, false
	}
	p := origin.Add(dir.Mul(t))
	if abs(p.X()) > 5 || abs(p.Z()) > 5 {
		return hit{}, false
	}
	const width = 0.02
	fx := abs(p.X() - float32(math.Round(float64(p.X()))))
	fz := abs(p.Z() - float32(math.Round(float64(p.Z()))))
	if fx > width && fz > width {
		return hit{}, false
	}
	return hit{t: t, rgba: [4]float32{0.5, 0.5, 0.5, 1}}, true
}

func (o *objects) traceCube(origin, dir mgl32.Vec3) (hit, bool) {
	lo := o.cube.inv.Mul4x1(origin.Vec4(1)).Vec3()
	ld := o.cube.inv.Mul4x1(dir.Vec4(0)).Vec3()
	t0, _, ok := volume.HitBox(lo, ld)
	if !ok || t0 <= 0 {
		return hit{}, false
	}

	// Face normal from the dominant axis of the local hit point
	lp := lo.Add(ld.Mul(t0))
	axis := 0
	for i := 1; i < 3; i++ {
		if abs(lp[i]) > abs(lp[axis]) {
			axis = i
		}
	}
	var n mgl32.Vec3
	n[axis] = sign(lp[axis])
	normal := o.cube.model.Mul4x1(n.Vec4(0)).Vec3().Normalize()

	shade := o.lambert(origin.Add(dir.Mul(t0)), normal)
	return hit{t: t0, rgba: [4]float32{shade, shade, shade, 1}}, true
}

func (o *objects) traceFluid(origin, dir mgl32.Vec3) (hit, bool) {
	s := o.fluid
	oc := origin.Sub(s.center)
	a := dir.Dot(dir)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := b*b - a*c
	if disc < 0 {
		return hit{}, false
	}
	t := (-b - float32(math.Sqrt(float64(disc)))) / a
	if t <= 0 {
		return hit{}, false
	}

	p := origin.Add(dir.Mul(t))
	n := p.Sub(s.center).Normalize()
	view := dir.Normalize().Mul(-1)
	rim := 1 - abs(n.Dot(view))
	fresnel := rim * rim

	pattern := 0.5 + 0.5*float32(math.Sin(float64(p.Y()*8-o.elapsed*2)))
	if o.pointerInside {
		pattern = 1 - pattern
	}
	k := clamp01(pattern*0.6 + fresnel*0.4)
	col := o.colorA.Mul(1 - k).Add(o.colorB.Mul(k))
	return hit{t: t, rgba: [4]float32{col.X(), col.Y(), col.Z(), 0.35 + 0.55*fresnel}}, true
}

func (o *objects) traceGas(dir mgl32.Vec3) (hit, bool) {
	lo := o.gas.inv.Mul4x1(o.gasEye.Vec4(1)).Vec3()
	ld := o.gas.inv.Mul4x1(dir.Vec4(0)).Vec3()
	t0, _, ok := volume.HitBox(lo, ld)
	if !ok {
		return hit{}, false
	}
	acc := o.marcher.Integrate(lo, ld)
	if acc.Transparent() {
		return hit{}, false
	}
	r, g, b, a := acc.Straight()
	if t0 < 0 {
		t0 = 0
	}
	return hit{t: t0, rgba: [4]float32{r, g, b, a}}, true
}

// lambert applies the ambient and point lights to a white surface.
func (o *objects) lambert(p, n mgl32.Vec3) float32 {
	var shade float32
	for _, l := range o.lights {
		switch l.Kind {
		case scene.LightAmbient:
			shade += l.Intensity * l.Color.X()
		case scene.LightPoint:
			toLight := l.Position.Sub(p).Normalize()
			if d := n.Dot(toLight); d > 0 {
				shade += l.Intensity * l.Color.X() * d
			}
		}
	}
	return clamp01(shade)
}

// composite blends hits far to near over the background.
func composite(bg color.NRGBA, hits []hit) color.NRGBA {
	if len(hits) == 0 {
		return bg
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t > hits[j].t })

	a := float32(bg.A) / 255
	r := float32(bg.R) / 255 * a
	g := float32(bg.G) / 255 * a
	b := float32(bg.B) / 255 * a
	for _, h := range hits {
		sa := h.rgba[3]
		r = h.rgba[0]*sa + r*(1-sa)
		g = h.rgba[1]*sa + g*(1-sa)
		b = h.rgba[2]*sa + b*(1-sa)
		a = sa + a*(1-sa)
	}
	if a <= 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: toByte(r / a),
		G: toByte(g / a),
		B: toByte(b / a),
		A: toByte(a),
	}
}

func toByte(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
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

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

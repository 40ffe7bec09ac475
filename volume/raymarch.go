package volume

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Raymarch defaults.
const (
	DefaultThreshold = 0.25
	DefaultOpacity   = 0.25
	DefaultRange     = 0.1
	DefaultSteps     = 100

	// Accumulated alpha at which a ray stops marching.
	earlyOutAlpha = 0.95
)

// Params are the per-draw integration inputs.
type Params struct {
	BaseColor mgl32.Vec3
	Threshold float32 // normalized density needed to contribute
	Opacity   float32 // alpha composited per contributing sample
	Range     float32 // step length in object space
	Steps     int     // sample budget per ray
	Jitter    float32 // first-sample offset as a fraction of Range, in [0, 1)
}

// DefaultParams returns the stock raymarch parameters.
func DefaultParams() Params {
	return Params{
		BaseColor: mgl32.Vec3{1, 1, 1},
		Threshold: DefaultThreshold,
		Opacity:   DefaultOpacity,
		Range:     DefaultRange,
		Steps:     DefaultSteps,
	}
}

// Accum is a front-to-back composited color with premultiplied RGB.
type Accum struct {
	R, G, B, A float32
}

// Transparent reports whether nothing was accumulated.
func (a Accum) Transparent() bool {
	return a.A == 0
}

// Straight returns the color with alpha divided out.
func (a Accum) Straight() (r, g, b, alpha float32) {
	if a.A == 0 {
		return 0, 0, 0, 0
	}
	return a.R / a.A, a.G / a.A, a.B / a.A, a.A
}

// HitBox intersects a ray with the unit cube centered at the origin and
// returns the entry and exit distances along dir.
func HitBox(origin, dir mgl32.Vec3) (t0, t1 float32, hit bool) {
	const eps = 1e-8
	t0 = -1e30
	t1 = 1e30
	for axis := 0; axis < 3; axis++ {
		o := origin[axis]
		d := dir[axis]
		if d > -eps && d < eps {
			if o < -0.5 || o > 0.5 {
				return 0, 0, false
			}
			continue
		}
		a := (-0.5 - o) / d
		b := (0.5 - o) / d
		if a > b {
			a, b = b, a
		}
		if a > t0 {
			t0 = a
		}
		if b < t1 {
			t1 = b
		}
	}
	if t0 > t1 || t1 < 0 {
		return 0, 0, false
	}
	return t0, t1, true
}

// Marcher integrates a volume texture along rays in object space, where the
// volume occupies the unit cube centered at the origin.
type Marcher struct {
	Texture *VolumeTexture
	Params  Params
}

// Integrate marches from the entry face toward the exit face, compositing
// BaseColor front to back wherever the sampled density reaches Threshold.
func (m *Marcher) Integrate(origin, dir mgl32.Vec3) Accum {
	p := m.Params
	if p.Steps <= 0 || p.Range <= 0 {
		return Accum{}
	}
	if dir.Len() == 0 {
		return Accum{}
	}
	dir = dir.Normalize()

	t0, t1, ok := HitBox(origin, dir)
	if !ok {
		return Accum{}
	}
	if t0 < 0 {
		t0 = 0
	}

	var acc Accum
	t := t0 + p.Jitter*p.Range
	for i := 0; i < p.Steps && t <= t1; i++ {
		pos := origin.Add(dir.Mul(t))
		d := m.Texture.Sample(pos.X()+0.5, pos.Y()+0.5, pos.Z()+0.5)
		if d >= p.Threshold {
			w := (1 - acc.A) * p.Opacity
			acc.R += w * p.BaseColor.X()
			acc.G += w * p.BaseColor.Y()
			acc.B += w * p.BaseColor.Z()
			acc.A += w
			if acc.A >= earlyOutAlpha {
				break
			}
		}
		t += p.Range
	}
	return acc
}

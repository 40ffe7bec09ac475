package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Keeps the camera off the poles so LookAt stays well defined.
const polarEps = 1e-4

// OrbitControls rotates and dollies a camera around its target in response
// to pointer input. Input only accumulates deltas; Update applies them,
// optionally with damping so motion eases out over subsequent frames.
type OrbitControls struct {
	Camera *Camera

	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
}

// NewOrbitControls attaches controls to a camera with stock settings.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		scale:         1,
	}
}

// Rotate queues an orbit by a pointer drag of (dx, dy) pixels in a viewport
// of the given height. A drag across the full height is one full turn.
func (o *OrbitControls) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	o.deltaTheta -= 2 * math32.Pi * dx / viewportHeight * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / viewportHeight * o.RotateSpeed
}

// Dolly queues a zoom by wheel ticks. Positive values move toward the target.
func (o *OrbitControls) Dolly(wheel float32) {
	if wheel == 0 {
		return
	}
	step := math32.Pow(0.95, o.ZoomSpeed*math32.Abs(wheel))
	if wheel > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// Update applies queued input to the camera. Returns true if the camera moved.
func (o *OrbitControls) Update() bool {
	if o.Idle() {
		o.deltaTheta, o.deltaPhi = 0, 0
		return false
	}
	cam := o.Camera
	offset := cam.Position.Sub(cam.Target)

	radius := offset.Len()
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y()/radius, -1, 1))
	}

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}
	phi = clamp(phi, polarEps, math32.Pi-polarEps)

	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := math32.Sin(phi)
	next := cam.Target.Add(mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	})

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}
	o.scale = 1

	moved := next.Sub(cam.Position).Len() > 1e-6
	cam.Position = next
	return moved
}

// Idle reports whether no queued motion remains.
func (o *OrbitControls) Idle() bool {
	return math32.Abs(o.deltaTheta) < 1e-6 && math32.Abs(o.deltaPhi) < 1e-6 && o.scale == 1
}

func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

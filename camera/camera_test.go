package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertVecNear compares component-wise with an absolute tolerance.
func assertVecNear(t *testing.T, want, got mgl32.Vec3, eps float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestNew(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{1, 1, 2}, mgl32.Vec3{})

	assert.Equal(t, float32(1), cam.Aspect)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up)
	assert.InDelta(t, math.Sqrt(6), cam.Distance(), 1e-5)
}

func TestResize(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{})

	cam.Resize(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, cam.Aspect, 1e-6)

	// Minimized window keeps the previous aspect
	cam.Resize(1920, 0)
	assert.InDelta(t, 1920.0/1080.0, cam.Aspect, 1e-6, "zero height changed aspect")
}

func TestTargetProjectsToCenter(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{1, 1, 2}, mgl32.Vec3{})
	cam.Resize(800, 600)

	p := cam.Project(cam.Target)
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
}

func TestRayThroughCenterHitsTarget(t *testing.T) {
	cam := New(60, 0.1, 100, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	origin, dir := cam.Ray(0, 0)
	assert.Equal(t, cam.Position, origin, "ray should start at the camera")
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, dir, 1e-5)
}

func TestOrbitPreservesDistance(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{1, 1, 2}, mgl32.Vec3{})
	controls := NewOrbitControls(cam)
	before := cam.Distance()

	controls.Rotate(120, -40, 600)
	require.True(t, controls.Update(), "expected camera to move")
	assert.InDelta(t, before, cam.Distance(), 1e-4)
	assert.True(t, controls.Idle(), "undamped controls should consume all input in one update")
	assert.False(t, controls.Update(), "idle update should not move the camera")
}

func TestOrbitFullTurn(t *testing.T) {
	start := mgl32.Vec3{0, 1, 3}
	cam := New(75, 0.1, 100, start, mgl32.Vec3{})
	controls := NewOrbitControls(cam)

	// Dragging the full viewport height wraps around once. The x component
	// returns to zero, so the comparison must be absolute.
	controls.Rotate(500, 0, 500)
	controls.Update()
	assertVecNear(t, start, cam.Position, 1e-4)
}

func TestOrbitClampsPolarAngle(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{})
	controls := NewOrbitControls(cam)

	// Drag far past the pole
	controls.Rotate(0, 5000, 500)
	controls.Update()

	assert.Greater(t, cam.Position.Z(), float32(0), "camera reached the pole: %v", cam.Position)
	assert.Greater(t, cam.Position.Y(), float32(0), "expected camera above target: %v", cam.Position)
}

func TestDollyRespectsLimits(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{})
	controls := NewOrbitControls(cam)
	controls.MinDistance = 2
	controls.MaxDistance = 4

	controls.Dolly(1)
	controls.Update()
	assert.InDelta(t, 3*0.95, cam.Distance(), 1e-4, "one wheel tick scales by 0.95")

	controls.Dolly(50)
	controls.Update()
	assert.InDelta(t, 2, cam.Distance(), 1e-4, "clamp to min distance")

	controls.Dolly(-50)
	controls.Update()
	assert.InDelta(t, 4, cam.Distance(), 1e-4, "clamp to max distance")
}

func TestDampingEasesOut(t *testing.T) {
	cam := New(75, 0.1, 100, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{})
	controls := NewOrbitControls(cam)
	controls.EnableDamping = true
	controls.DampingFactor = 0.1

	controls.Rotate(100, 0, 500)

	var steps []float32
	prev := cam.Position
	for i := 0; i < 5; i++ {
		controls.Update()
		steps = append(steps, cam.Position.Sub(prev).Len())
		prev = cam.Position
	}

	for i := 1; i < len(steps); i++ {
		assert.Less(t, steps[i], steps[i-1], "damped step %d", i)
	}
	assert.False(t, controls.Idle(), "damped controls should still have residual motion")
}

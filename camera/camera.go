// Package camera provides perspective cameras and orbit controls for the
// 3D viewports.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Vertical field of view in degrees
	FOV float32

	// Width / height of the viewport this camera renders into
	Aspect float32

	Near, Far float32
}

// New creates a camera at position looking at target with a unit aspect ratio.
func New(fov, near, far float32, position, target mgl32.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      fov,
		Aspect:   1,
		Near:     near,
		Far:      far,
	}
}

// Resize updates the aspect ratio for a viewport of the given pixel size.
// Zero-height viewports (minimized windows) leave the aspect unchanged.
func (c *Camera) Resize(width, height float32) {
	if height <= 0 || width <= 0 {
		return
	}
	c.Aspect = width / height
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Len()
}

// Ray returns the world-space ray through normalized device coordinates
// (ndcX, ndcY) in [-1, 1], with +y up.
func (c *Camera) Ray(ndcX, ndcY float32) (origin, dir mgl32.Vec3) {
	inv := c.ViewProjection().Inv()
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 1}, inv)
	return c.Position, far.Sub(c.Position).Normalize()
}

// Project maps a world point to normalized device coordinates.
func (c *Camera) Project(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, c.ViewProjection())
}

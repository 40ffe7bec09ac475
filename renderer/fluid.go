package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/shaders"
)

// FluidProgram draws the translucent wobbling sphere.
type FluidProgram struct {
	*program
}

// NewFluidProgram compiles the fluid shader on a unit sphere mesh.
func NewFluidProgram(segments int) (*FluidProgram, error) {
	n := sphereSegments(segments)
	mesh := rl.GenMeshSphere(1, n, n)
	p, err := loadProgram("fluid", shaders.FluidVS, shaders.FluidFS, mesh,
		"uTime", "uPointerInside", "uColor", "uColor1", "viewPos")
	if err != nil {
		return nil, err
	}
	return &FluidProgram{program: p}, nil
}

// Draw renders the sphere seen from viewPos.
func (f *FluidProgram) Draw(model mgl32.Mat4, u *game.FluidUniforms, viewPos mgl32.Vec3) {
	inside := float32(0)
	if u.PointerInside {
		inside = 1
	}
	f.setFloat("uTime", u.Elapsed)
	f.setFloat("uPointerInside", inside)
	f.setVec3("uColor", u.ColorA)
	f.setVec3("uColor1", u.ColorB)
	f.setVec3("viewPos", viewPos)
	f.draw(model)
}

// Unload frees the shader and mesh.
func (f *FluidProgram) Unload() {
	f.unload()
}

// sphereSegments is the ring and slice count of the fluid mesh.
func sphereSegments(segments int) int {
	return max(segments, 3)
}

package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/shaders"
)

// GasProgram raymarches the volume texture inside a unit cube.
type GasProgram struct {
	*program
	texture *GPUVolumeTexture
}

// NewGasProgram compiles the gas shader and points its sampler at tex.
func NewGasProgram(tex *GPUVolumeTexture) (*GasProgram, error) {
	p, err := loadProgram("gas", shaders.GasVS, shaders.GasFS, rl.GenMeshCube(1, 1, 1),
		"map", "cameraPos", "base", "threshold", "opacity", "range", "steps", "frame", "dither")
	if err != nil {
		return nil, err
	}

	gl.UseProgram(p.shader.ID)
	gl.Uniform1i(p.locs["map"], tex.Unit())
	gl.UseProgram(0)
	if err := checkGL("binding gas sampler"); err != nil {
		p.unload()
		return nil, err
	}

	return &GasProgram{program: p, texture: tex}, nil
}

// Draw renders the gas box with the given model matrix.
func (g *GasProgram) Draw(model mgl32.Mat4, u *game.RaymarchUniforms) {
	g.setVec3("cameraPos", u.CameraPosition)
	g.setVec3("base", u.BaseColor)
	g.setFloat("threshold", u.Threshold)
	g.setFloat("opacity", u.Opacity)
	g.setFloat("range", u.Range)
	g.setFloat("steps", float32(u.Steps))
	g.setFloat("frame", float32(u.FrameIndex))
	dither := float32(0)
	if u.Dither {
		dither = 1
	}
	g.setFloat("dither", dither)

	g.texture.Bind()
	g.draw(model)
}

// Unload frees the shader and mesh. The texture is owned by the caller.
func (g *GasProgram) Unload() {
	g.unload()
}

package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// program is a compiled shader with its mesh, material and uniform
// locations.
type program struct {
	name     string
	shader   rl.Shader
	material rl.Material
	mesh     rl.Mesh
	locs     map[string]int32
}

// loadProgram compiles vs/fs and resolves every named uniform. raylib falls
// back to its default shader when compilation fails, so a missing uniform is
// how a broken program shows up.
func loadProgram(name, vs, fs string, mesh rl.Mesh, uniforms ...string) (*program, error) {
	shader := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(shader) {
		rl.UnloadMesh(&mesh)
		return nil, fmt.Errorf("loading %s program: shader not valid", name)
	}

	p := &program{
		name:   name,
		shader: shader,
		mesh:   mesh,
		locs:   make(map[string]int32, len(uniforms)),
	}
	for _, u := range uniforms {
		loc := rl.GetShaderLocation(shader, u)
		if loc < 0 {
			p.unload()
			return nil, fmt.Errorf("loading %s program: uniform %q not found, compile or link failed", name, u)
		}
		p.locs[u] = loc
	}

	p.material = rl.LoadMaterialDefault()
	p.material.Shader = shader
	return p, nil
}

func (p *program) setFloat(name string, v float32) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{v}, rl.ShaderUniformFloat)
}

func (p *program) setVec3(name string, v mgl32.Vec3) {
	rl.SetShaderValue(p.shader, p.locs[name], []float32{v.X(), v.Y(), v.Z()}, rl.ShaderUniformVec3)
}

func (p *program) setColor(c rl.Color) {
	p.material.GetMap(rl.MapDiffuse).Color = c
}

func (p *program) draw(model mgl32.Mat4) {
	rl.DrawMesh(p.mesh, p.material, toMatrix(model))
}

func (p *program) unload() {
	rl.UnloadShader(p.shader)
	rl.UnloadMesh(&p.mesh)
}

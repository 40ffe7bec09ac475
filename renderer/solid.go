package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/scene"
	"github.com/pthm-cable/states/shaders"
)

// SolidProgram draws the white lit cube.
type SolidProgram struct {
	*program
}

// NewSolidProgram compiles the lambert shader on a unit cube mesh.
func NewSolidProgram() (*SolidProgram, error) {
	p, err := loadProgram("solid", shaders.SolidVS, shaders.SolidFS, rl.GenMeshCube(1, 1, 1),
		"ambientColor", "ambientIntensity", "lightPos", "lightColor", "lightIntensity")
	if err != nil {
		return nil, err
	}
	p.setColor(rl.White)
	return &SolidProgram{program: p}, nil
}

// Draw renders the cube lit by the scene's ambient and point lights.
func (s *SolidProgram) Draw(model mgl32.Mat4, lights []scene.Light) {
	var ambient, point scene.Light
	for _, l := range lights {
		switch l.Kind {
		case scene.LightAmbient:
			ambient = l
		case scene.LightPoint:
			point = l
		}
	}
	s.setVec3("ambientColor", ambient.Color)
	s.setFloat("ambientIntensity", ambient.Intensity)
	s.setVec3("lightPos", point.Position)
	s.setVec3("lightColor", point.Color)
	s.setFloat("lightIntensity", point.Intensity)
	s.draw(model)
}

// Unload frees the shader and mesh.
func (s *SolidProgram) Unload() {
	s.unload()
}

// Package renderer draws the viewports with raylib. The gas volume's 3D
// texture goes through OpenGL directly, since raylib has no 3D texture API.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/states/camera"
)

// maxGLErrors bounds how many queued errors one check drains.
const maxGLErrors = 8

// InitGL loads the OpenGL entry points for raylib's context. Call it after
// rl.InitWindow.
func InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	return nil
}

// checkGL drains the GL error queue and reports what was found.
func checkGL(op string) error {
	var codes []uint32
	for len(codes) < maxGLErrors {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("%s: GL errors %#x", op, codes)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout. Both
// index elements column-major, so fields map one to one.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toCamera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

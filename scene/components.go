package scene

import "github.com/go-gl/mathgl/mgl32"

// ShapeKind identifies a renderable object.
type ShapeKind uint8

const (
	ShapeCube  ShapeKind = iota // opaque lit cube
	ShapeFluid                  // translucent sphere
	ShapeGas                    // raymarched unit cube
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeFluid:
		return "fluid"
	case ShapeGas:
		return "gas"
	}
	return "unknown"
}

// TimeSource selects which clock drives a Spin.
type TimeSource uint8

const (
	SourceLogical TimeSource = iota // seconds from the scheduler clock
	SourceWall                      // milliseconds of wall time
)

// Transform places an object in world space. Rotation is XYZ Euler radians.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Spin sets rotation as a linear function of a clock value.
type Spin struct {
	Rate   mgl32.Vec3 // radians per unit of Source
	Source TimeSource
}

// Shape marks an entity as renderable.
type Shape struct {
	Kind ShapeKind
}

// LightKind distinguishes ambient from point lights.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightPoint
)

// Light illuminates solid geometry.
type Light struct {
	Kind      LightKind
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3 // unused for ambient
}

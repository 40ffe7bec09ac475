package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/states/config"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNewPlacesObjects(t *testing.T) {
	s := New(loadDefaults(t))

	cube, err := s.Transform(ShapeCube)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-3, 0, 0}, cube.Position)
	assert.InDelta(t, 1.3, cube.Scale.X(), 1e-6)

	gas, err := s.Transform(ShapeGas)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, gas.Position)
	assert.InDelta(t, 2.3, gas.Scale.Y(), 1e-6)

	fluid, err := s.Transform(ShapeFluid)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{}, fluid.Position)
	assert.InDelta(t, 1, fluid.Scale.Z(), 1e-6)

	assert.Len(t, s.Lights(), 2)
}

func TestAtomSceneHasOnlyLights(t *testing.T) {
	s := NewAtom(loadDefaults(t))
	assert.False(t, s.Has(ShapeCube))
	assert.False(t, s.Has(ShapeGas))
	assert.Len(t, s.Lights(), 2)

	_, err := s.Transform(ShapeGas)
	assert.Error(t, err)
	assert.Equal(t, mgl32.Ident4(), s.Matrix(ShapeGas))
}

func TestSpinLogicalDrivesCubeOnly(t *testing.T) {
	s := New(loadDefaults(t))

	s.Spin(SourceLogical, 10)

	cube, _ := s.Transform(ShapeCube)
	assert.InDelta(t, 0.1, cube.Rotation.X(), 1e-6)
	assert.InDelta(t, 0.2, cube.Rotation.Y(), 1e-6)
	assert.InDelta(t, 0.1, cube.Rotation.Z(), 1e-6)

	gas, _ := s.Transform(ShapeGas)
	assert.Equal(t, mgl32.Vec3{}, gas.Rotation, "gas follows the wall clock")
}

func TestSpinWallDrivesGas(t *testing.T) {
	s := New(loadDefaults(t))

	s.Spin(SourceWall, 7500)
	gas, _ := s.Transform(ShapeGas)
	assert.InDelta(t, -1, gas.Rotation.Y(), 1e-6)
	assert.Zero(t, gas.Rotation.X())

	// Absolute, not cumulative
	s.Spin(SourceWall, 7500)
	gas, _ = s.Transform(ShapeGas)
	assert.InDelta(t, -1, gas.Rotation.Y(), 1e-6)

	cube, _ := s.Transform(ShapeCube)
	assert.Equal(t, mgl32.Vec3{}, cube.Rotation)
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{3, 0, 0},
		Rotation: mgl32.Vec3{0, math.Pi / 2, 0},
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	m := tr.Matrix()

	// Local +x: scaled, rotated a quarter turn about y onto -z, then translated
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVecNear(t, mgl32.Vec3{3, 0, -2}, p)

	// Inverse maps the world origin back into object space
	o := m.Inv().Mul4x1(mgl32.Vec4{3, 0, 0, 1}).Vec3()
	assertVecNear(t, mgl32.Vec3{}, o)
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

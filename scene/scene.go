// Package scene holds the objects of each viewport in an ECS world and
// advances their rotation from the frame clocks.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/states/config"
)

// Scene is the set of objects rendered into one viewport.
type Scene struct {
	world *ecs.World

	objectMapper *ecs.Map3[Transform, Spin, Shape]
	objectFilter *ecs.Filter3[Transform, Spin, Shape]
	lightMapper  *ecs.Map1[Light]
	lightFilter  *ecs.Filter1[Light]
	transformMap *ecs.Map1[Transform]

	byKind map[ShapeKind]ecs.Entity
}

func newScene() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:        world,
		objectMapper: ecs.NewMap3[Transform, Spin, Shape](world),
		objectFilter: ecs.NewFilter3[Transform, Spin, Shape](world),
		lightMapper:  ecs.NewMap1[Light](world),
		lightFilter:  ecs.NewFilter1[Light](world),
		transformMap: ecs.NewMap1[Transform](world),
		byKind:       make(map[ShapeKind]ecs.Entity),
	}
}

// New builds the states scene: solid cube, fluid sphere and gas volume, lit
// by an ambient and a point light.
func New(cfg *config.Config) *Scene {
	s := newScene()
	s.addLights()

	cube := float32(cfg.Cube.Size)
	s.add(ShapeCube,
		Transform{Position: vec3(cfg.Cube.Position), Scale: mgl32.Vec3{cube, cube, cube}},
		Spin{Rate: vec3(cfg.Cube.SpinRates), Source: SourceLogical},
	)

	r := float32(cfg.Fluid.Radius)
	s.add(ShapeFluid,
		Transform{Scale: mgl32.Vec3{r, r, r}},
		Spin{Source: SourceLogical},
	)

	gas := float32(cfg.Gas.Scale)
	var gasRate mgl32.Vec3
	if cfg.Gas.SpinPeriodMs > 0 {
		gasRate[1] = float32(-1 / cfg.Gas.SpinPeriodMs)
	}
	s.add(ShapeGas,
		Transform{Position: vec3(cfg.Gas.Position), Scale: mgl32.Vec3{gas, gas, gas}},
		Spin{Rate: gasRate, Source: SourceWall},
	)

	return s
}

// NewAtom builds the primary scene, which holds only lights.
func NewAtom(cfg *config.Config) *Scene {
	s := newScene()
	s.addLights()
	return s
}

func (s *Scene) addLights() {
	s.lightMapper.NewEntity(&Light{
		Kind:      LightAmbient,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 0.5,
	})
	s.lightMapper.NewEntity(&Light{
		Kind:      LightPoint,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 0.5,
		Position:  mgl32.Vec3{2, 3, 4},
	})
}

func (s *Scene) add(kind ShapeKind, t Transform, spin Spin) {
	shape := Shape{Kind: kind}
	s.byKind[kind] = s.objectMapper.NewEntity(&t, &spin, &shape)
}

// Spin sets the rotation of every object driven by source to Rate * value.
// Rotation is absolute, so repeated calls with the same value are idempotent.
func (s *Scene) Spin(source TimeSource, value float64) {
	query := s.objectFilter.Query()
	for query.Next() {
		t, spin, _ := query.Get()
		if spin.Source != source {
			continue
		}
		t.Rotation = spin.Rate.Mul(float32(value))
	}
}

// Has reports whether the scene contains an object of the given kind.
func (s *Scene) Has(kind ShapeKind) bool {
	_, ok := s.byKind[kind]
	return ok
}

// Transform returns the current transform of the object of the given kind.
func (s *Scene) Transform(kind ShapeKind) (Transform, error) {
	e, ok := s.byKind[kind]
	if !ok {
		return Transform{}, fmt.Errorf("scene has no %s", kind)
	}
	return *s.transformMap.Get(e), nil
}

// Matrix returns the model matrix of the object of the given kind, or identity
// if it is absent.
func (s *Scene) Matrix(kind ShapeKind) mgl32.Mat4 {
	t, err := s.Transform(kind)
	if err != nil {
		return mgl32.Ident4()
	}
	return t.Matrix()
}

// Lights returns every light in the scene.
func (s *Scene) Lights() []Light {
	var lights []Light
	query := s.lightFilter.Query()
	for query.Next() {
		lights = append(lights, *query.Get())
	}
	return lights
}

func vec3(a [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

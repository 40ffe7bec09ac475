package software

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/states/camera"
	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/scene"
	"github.com/pthm-cable/states/volume"
)

func uniformTexture(size int, v uint8) *volume.VolumeTexture {
	data := make([]uint8, size*size*size)
	for i := range data {
		data[i] = v
	}
	return volume.Encode(&volume.DensityField{Size: size, Data: data})
}

type fixture struct {
	cfg   *config.Config
	frame *game.Frame
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &fixture{
		cfg: cfg,
		frame: &game.Frame{
			Raymarch: game.NewRaymarchUniforms(cfg),
			Fluid:    game.NewFluidUniforms(cfg),
			States:   scene.New(cfg),
			Atom:     scene.NewAtom(cfg),
		},
	}
}

// render draws a 9x9 frame from position toward target and returns it.
func (f *fixture) render(t *testing.T, p *Pass, position, target mgl32.Vec3) *image.NRGBA {
	t.Helper()
	v := &game.Viewport{
		Name:       "test",
		Camera:     camera.New(30, 0.1, 100, position, target),
		Width:      9,
		Height:     9,
		PixelRatio: 1,
	}
	f.frame.Raymarch.CameraPosition = position
	require.NoError(t, p.Resize(v))
	require.NoError(t, p.Render(v, f.frame))
	return p.Image()
}

func TestRenderEmptyGasIsTransparent(t *testing.T) {
	f := newFixture(t)
	p := NewPass(uniformTexture(8, 0), false, color.NRGBA{})
	defer p.Close()

	img := f.render(t, p, mgl32.Vec3{3, 0, 5}, mgl32.Vec3{3, 0, 0})
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			assert.Equal(t, color.NRGBA{}, img.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestRenderDenseGas(t *testing.T) {
	f := newFixture(t)
	p := NewPass(uniformTexture(8, 255), false, color.NRGBA{})
	defer p.Close()

	img := f.render(t, p, mgl32.Vec3{3, 0, 5}, mgl32.Vec3{3, 0, 0})
	c := img.NRGBAAt(4, 4)
	assert.Greater(t, c.A, uint8(200))
	// White base color
	assert.Equal(t, uint8(255), c.R)
}

func TestRenderCubeIsOpaqueAndLit(t *testing.T) {
	f := newFixture(t)
	p := NewPass(uniformTexture(4, 0), false, color.NRGBA{})
	defer p.Close()

	img := f.render(t, p, mgl32.Vec3{-3, 0, 5}, mgl32.Vec3{-3, 0, 0})
	c := img.NRGBAAt(4, 4)
	assert.Equal(t, uint8(255), c.A)
	// Ambient plus roughly half the point light
	assert.InDelta(t, 191, int(c.R), 10)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.R, c.B)
}

func TestRenderFluidIsTranslucent(t *testing.T) {
	f := newFixture(t)
	p := NewPass(uniformTexture(4, 0), false, color.NRGBA{})
	defer p.Close()

	f.frame.Fluid.Elapsed = 0.5
	img := f.render(t, p, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	center := img.NRGBAAt(4, 4)
	// Head-on there is no fresnel term
	assert.InDelta(t, 89, int(center.A), 2)

	// The pointer flag inverts the pattern
	f.frame.Fluid.PointerInside = true
	inverted := f.render(t, p, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}).NRGBAAt(4, 4)
	assert.NotEqual(t, center.R, inverted.R)
}

func TestRenderAtomGrid(t *testing.T) {
	f := newFixture(t)
	p := NewPass(nil, true, color.NRGBA{A: 255})
	defer p.Close()

	img := f.render(t, p, mgl32.Vec3{0, 1, 2}, mgl32.Vec3{})
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img.NRGBAAt(4, 4))

	// Looking up there is nothing to hit
	img = f.render(t, p, mgl32.Vec3{0, 1, 2}, mgl32.Vec3{0, 2, 0})
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(4, 4))
}

func TestResize(t *testing.T) {
	p := NewPass(nil, true, color.NRGBA{})
	defer p.Close()

	v := &game.Viewport{Width: 40, Height: 20, PixelRatio: 2}
	require.NoError(t, p.Resize(v))
	assert.Equal(t, image.Rect(0, 0, 80, 40), p.Image().Bounds())

	v.Width = 0
	assert.Error(t, p.Resize(v))
}

func TestRowPoolCoversEveryRow(t *testing.T) {
	pool := newRowPool()
	defer pool.stop()

	for _, rows := range []int{1, 5, parallelThreshold, 100, 257} {
		counts := make([]int32, rows)
		pool.run(rows, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				atomic.AddInt32(&counts[y], 1)
			}
		})
		for y, c := range counts {
			require.Equal(t, int32(1), c, "rows=%d y=%d", rows, y)
		}
	}
}

func TestCompose(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	primary := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			primary.SetNRGBA(x, y, red)
		}
	}
	secondary := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	secondary.SetNRGBA(1, 1, blue)

	out := Compose(primary, secondary)
	assert.Equal(t, blue, out.NRGBAAt(5, 5))
	// Transparent secondary pixels leave the primary visible
	assert.Equal(t, red, out.NRGBAAt(4, 4))
	assert.Equal(t, red, out.NRGBAAt(0, 0))
	// The input is untouched
	assert.Equal(t, red, primary.NRGBAAt(5, 5))
}

func TestSchedulerDrivesSoftwarePasses(t *testing.T) {
	f := newFixture(t)
	cfg := f.cfg

	newViewport := func(name string, pass *Pass) *game.Viewport {
		cam := camera.New(75, 0.1, 100, mgl32.Vec3{1, 1, 2}, mgl32.Vec3{})
		return &game.Viewport{Name: name, Camera: cam, Controls: camera.NewOrbitControls(cam), Pass: pass}
	}
	atom := NewPass(nil, true, color.NRGBA{A: 255})
	states := NewPass(uniformTexture(8, 255), false, color.NRGBA{})
	defer atom.Close()
	defer states.Close()

	pair := &game.ViewportPair{
		Primary:          newViewport("atom", atom),
		Secondary:        newViewport("states", states),
		SecondaryDivisor: 3,
		MaxPixelRatio:    1,
	}
	require.NoError(t, pair.Resize(48, 24, 1))

	sched := game.NewScheduler(pair, f.frame.States, f.frame.Atom,
		game.NewRaymarchUniforms(cfg), game.NewFluidUniforms(cfg),
		game.Options{MaxTicks: 2, PerfWindow: 1})
	host := &Host{}
	require.NoError(t, sched.Run(context.Background(), host))

	assert.Equal(t, uint64(2), host.Frames)
	assert.Equal(t, image.Rect(0, 0, 16, 8), states.Image().Bounds())
	out := Compose(atom.Image(), states.Image())
	assert.Equal(t, image.Rect(0, 0, 48, 24), out.Bounds())
}

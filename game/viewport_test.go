package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportPairResize(t *testing.T) {
	f := newFixture(t, Options{})

	for _, tc := range []struct{ w, h int }{{1280, 720}, {1920, 1080}, {901, 601}} {
		require.NoError(t, f.pair.Resize(tc.w, tc.h, 1))

		assert.Equal(t, tc.w, f.pair.Primary.Width)
		assert.Equal(t, tc.h, f.pair.Primary.Height)
		assert.Equal(t, tc.w/3, f.pair.Secondary.Width)
		assert.Equal(t, tc.h/3, f.pair.Secondary.Height)

		aspect := float32(tc.w) / float32(tc.h)
		assert.InDelta(t, aspect, f.pair.Primary.Camera.Aspect, 1e-6)
		assert.InDelta(t, aspect, f.pair.Secondary.Camera.Aspect, 1e-6)
	}
}

func TestViewportPairClampsPixelRatio(t *testing.T) {
	f := newFixture(t, Options{})

	require.NoError(t, f.pair.Resize(600, 300, 3))
	assert.Equal(t, float32(2), f.pair.Primary.PixelRatio)
	assert.Equal(t, float32(2), f.pair.Secondary.PixelRatio)
	assert.Equal(t, [2]int{1200, 600}, f.primary.resizes[0])
	assert.Equal(t, [2]int{400, 200}, f.secondary.resizes[0])

	require.NoError(t, f.pair.Resize(600, 300, 1.5))
	assert.Equal(t, [2]int{900, 450}, f.primary.resizes[1])
}

func TestViewportPairIgnoresEmptyWindow(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.pair.Resize(1280, 720, 1))

	require.NoError(t, f.pair.Resize(0, 0, 1))
	assert.Equal(t, 1280, f.pair.Primary.Width)
	assert.Len(t, f.primary.resizes, 1)
}

func TestRaymarchUniformsValidate(t *testing.T) {
	f := newFixture(t, Options{})
	u := *f.sched.Raymarch()
	require.NoError(t, u.Validate())

	bad := u
	bad.Steps = 0
	assert.Error(t, bad.Validate())

	bad = u
	bad.Range = -1
	assert.Error(t, bad.Validate())

	bad.Clamp()
	assert.NoError(t, bad.Validate())
}

func TestRaymarchParamsDither(t *testing.T) {
	f := newFixture(t, Options{})
	u := *f.sched.Raymarch()
	u.FrameIndex = 5

	assert.Zero(t, u.Params().Jitter)

	u.Dither = true
	assert.InDelta(t, 5.0/16, u.Params().Jitter, 1e-6)
	assert.Equal(t, u.Steps, u.Params().Steps)
}

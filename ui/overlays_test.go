package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()
	assert.Len(t, reg.All(), 4)
	assert.True(t, reg.IsEnabled(OverlayHUD))
	assert.False(t, reg.IsEnabled(OverlayTuning))
	assert.False(t, reg.IsEnabled(OverlayPerf))
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyTab)
	assert.True(t, ok)
	assert.Equal(t, OverlayTuning, id)
	assert.True(t, on)
	assert.True(t, reg.IsEnabled(OverlayTuning))

	_, on, _ = reg.HandleKeyPress(rl.KeyTab)
	assert.False(t, on)

	_, _, ok = reg.HandleKeyPress(rl.KeyZ)
	assert.False(t, ok)
}

func TestOverlayPollKeys(t *testing.T) {
	reg := NewOverlayRegistry()

	pressed := map[int32]bool{rl.KeyF1: true, rl.KeyF2: true}
	reg.pollKeys(func(key int32) bool { return pressed[key] })

	assert.False(t, reg.IsEnabled(OverlayHUD))
	assert.True(t, reg.IsEnabled(OverlayPerf))
	assert.False(t, reg.IsEnabled(OverlayTuning))

	reg.pollKeys(func(int32) bool { return false })
	assert.True(t, reg.IsEnabled(OverlayPerf), "no key pressed leaves state alone")
}

func TestOverlayUnknownID(t *testing.T) {
	reg := NewOverlayRegistry()
	assert.False(t, reg.Toggle("missing"))
	reg.SetEnabled("missing", true)
	assert.False(t, reg.IsEnabled("missing"))
}

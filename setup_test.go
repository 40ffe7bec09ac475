package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/game"
)

func TestNewSchedulerRejectsBadGasUniforms(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	pair := newViewportPair(cfg, nil, nil)

	sched, err := newScheduler(cfg, pair, runOptions{})
	require.NoError(t, err)
	assert.Equal(t, game.StateIdle, sched.State())

	// Config validation is bypassed here, as a programmatic edit would
	cfg.Gas.Steps = 0
	_, err = newScheduler(cfg, pair, runOptions{})
	assert.ErrorContains(t, err, "steps must be positive")
}

func TestNewViewportTakesConfiguredAspect(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.SetScreenSize(1000, 800))

	pair := newViewportPair(cfg, nil, nil)
	for _, v := range pair.Each() {
		assert.InDelta(t, 1.25, v.Camera.Aspect, 1e-6, v.Name)
	}
}

package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcesEmbedded(t *testing.T) {
	for name, src := range map[string]string{
		"gas.vs": GasVS, "gas.fs": GasFS,
		"fluid.vs": FluidVS, "fluid.fs": FluidFS,
		"solid.vs": SolidVS, "solid.fs": SolidFS,
	} {
		assert.True(t, strings.HasPrefix(src, "#version 330"), name)
	}
}

func TestGasUniformNames(t *testing.T) {
	// Renderer looks these up by name
	for _, u := range []string{"map", "base", "threshold", "opacity", "range", "steps", "frame", "dither"} {
		assert.Regexp(t, `uniform \w+ `+u+`;`, GasFS)
	}
	assert.Contains(t, GasVS, "uniform vec3 cameraPos;")
}

func TestFluidUniformNames(t *testing.T) {
	for _, u := range []string{"uTime", "uPointerInside", "uColor", "uColor1"} {
		assert.Regexp(t, `uniform \w+ `+u+`;`, FluidFS)
	}
}

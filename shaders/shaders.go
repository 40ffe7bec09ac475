// Package shaders embeds the GLSL programs used by the renderer.
package shaders

import _ "embed"

// Gas raymarches a 3D density texture bound to the unit cube.
var (
	//go:embed gas.vs
	GasVS string
	//go:embed gas.fs
	GasFS string
)

// Fluid shades the translucent sphere.
var (
	//go:embed fluid.vs
	FluidVS string
	//go:embed fluid.fs
	FluidFS string
)

// Solid is a lambert shader for opaque meshes.
var (
	//go:embed solid.vs
	SolidVS string
	//go:embed solid.fs
	SolidFS string
)

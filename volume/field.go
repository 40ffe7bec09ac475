// Package volume synthesizes the gas density field, packs it into a
// sampleable volume texture and integrates it along view rays.
package volume

import "math"

// Default generation parameters.
const (
	DefaultSize       = 128
	DefaultScale      = 0.05
	DefaultAnisotropy = 1.5
)

// DensityField is a cubic grid of 8-bit density samples stored x-fastest,
// then y, then z. Len(Data) is always Size³.
type DensityField struct {
	Size int
	Data []uint8
}

// Index returns the offset of cell (x, y, z) in Data.
func (f *DensityField) Index(x, y, z int) int {
	return x + f.Size*(y+f.Size*z)
}

// At returns the sample at cell (x, y, z).
func (f *DensityField) At(x, y, z int) uint8 {
	return f.Data[f.Index(x, y, z)]
}

// Mask returns the radial falloff for cell (x, y, z): 1 at the grid center,
// decreasing linearly with distance, clamped at 0 once the distance reaches size.
func Mask(x, y, z, size int) float64 {
	half := float64(size) / 2
	dx := float64(x) - half
	dy := float64(y) - half
	dz := float64(z) - half
	d := 1 - math.Sqrt(dx*dx+dy*dy+dz*dz)/float64(size)
	if d < 0 {
		return 0
	}
	return d
}

// Generator produces density fields from a noise source.
type Generator struct {
	Size       int
	Scale      float64
	Anisotropy float64 // x and z are divided by this on top of Scale
	Noise      Noise
}

// NewGenerator creates a generator. Panics on a non-positive size.
func NewGenerator(size int, scale, anisotropy float64, noise Noise) *Generator {
	if size <= 0 {
		panic("volume: generator size must be positive")
	}
	if anisotropy == 0 {
		anisotropy = 1
	}
	return &Generator{
		Size:       size,
		Scale:      scale,
		Anisotropy: anisotropy,
		Noise:      noise,
	}
}

// Sample computes the density of a single cell.
func (g *Generator) Sample(x, y, z int) uint8 {
	d := Mask(x, y, z, g.Size)
	if d == 0 {
		return 0
	}
	n := g.Noise.Noise3D(
		float64(x)*g.Scale/g.Anisotropy,
		float64(y)*g.Scale,
		float64(z)*g.Scale/g.Anisotropy,
	)
	base := clampByte(math.Round(128 + 128*n))
	return uint8(clampByte(base * d * d))
}

// Generate fills a new field with Size³ samples.
func (g *Generator) Generate() *DensityField {
	n := g.Size
	field := &DensityField{
		Size: n,
		Data: make([]uint8, n*n*n),
	}
	i := 0
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				field.Data[i] = g.Sample(x, y, z)
				i++
			}
		}
	}
	return field
}

// GenerateSlice fills dst (len Size²) with the z-th xy slice.
func (g *Generator) GenerateSlice(z int, dst []uint8) {
	i := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			dst[i] = g.Sample(x, y, z)
			i++
		}
	}
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

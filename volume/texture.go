package volume

import (
	"fmt"
	"math"
)

// Format describes the texel layout of a volume texture.
type Format int

const (
	FormatRed8 Format = iota // single channel, unsigned 8-bit
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// VolumeTexture is a density field packaged for sampling: single-channel,
// linearly filtered, tightly packed rows. It owns Data exclusively.
type VolumeTexture struct {
	Size            int
	Format          Format
	MinFilter       Filter
	MagFilter       Filter
	UnpackAlignment int
	Data            []uint8
}

// Encode packs a density field into a volume texture. The field hands over
// its storage and is left empty. Panics if the field is malformed.
func Encode(field *DensityField) *VolumeTexture {
	n := field.Size
	if n <= 0 || len(field.Data) != n*n*n {
		panic(fmt.Sprintf("volume: field of size %d has %d samples, want %d", n, len(field.Data), n*n*n))
	}
	tex := &VolumeTexture{
		Size:            n,
		Format:          FormatRed8,
		MinFilter:       FilterLinear,
		MagFilter:       FilterLinear,
		UnpackAlignment: 1,
		Data:            field.Data,
	}
	field.Data = nil
	return tex
}

// Texel returns the normalized value of texel (x, y, z), clamped to the edge.
func (t *VolumeTexture) Texel(x, y, z int) float32 {
	x = clampIndex(x, t.Size)
	y = clampIndex(y, t.Size)
	z = clampIndex(z, t.Size)
	return float32(t.Data[x+t.Size*(y+t.Size*z)]) / 255
}

// Sample returns the trilinearly filtered value at normalized coordinates
// (u, v, w) in [0, 1]³, with texel centers at (i+0.5)/Size.
func (t *VolumeTexture) Sample(u, v, w float32) float32 {
	n := float32(t.Size)
	fx := u*n - 0.5
	fy := v*n - 0.5
	fz := w*n - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	z0 := int(math.Floor(float64(fz)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)
	tz := fz - float32(z0)

	c00 := mix(t.Texel(x0, y0, z0), t.Texel(x0+1, y0, z0), tx)
	c10 := mix(t.Texel(x0, y0+1, z0), t.Texel(x0+1, y0+1, z0), tx)
	c01 := mix(t.Texel(x0, y0, z0+1), t.Texel(x0+1, y0, z0+1), tx)
	c11 := mix(t.Texel(x0, y0+1, z0+1), t.Texel(x0+1, y0+1, z0+1), tx)

	return mix(mix(c00, c10, ty), mix(c01, c11, ty), tz)
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

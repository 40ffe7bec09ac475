package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/pthm-cable/states/volume"
)

// VolumeTextureUnit is the texture unit the gas sampler reads from. raylib
// binds material maps from unit 0 upward, so this stays clear of them.
const VolumeTextureUnit = 4

// GPUVolumeTexture is a density field resident on the GPU as a single
// channel 3D texture.
type GPUVolumeTexture struct {
	id   uint32
	size int32
	unit uint32
}

// UploadVolume creates the 3D texture from tex. The CPU copy stays valid.
func UploadVolume(tex *volume.VolumeTexture) (*GPUVolumeTexture, error) {
	if tex.Format != volume.FormatRed8 {
		return nil, fmt.Errorf("uploading volume: unsupported format %d", tex.Format)
	}
	n := int32(tex.Size)
	if n <= 0 || len(tex.Data) != tex.Size*tex.Size*tex.Size {
		return nil, fmt.Errorf("uploading volume: %d samples for size %d", len(tex.Data), tex.Size)
	}

	t := &GPUVolumeTexture{size: n, unit: VolumeTextureUnit}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_3D, t.id)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, int32(tex.UnpackAlignment))
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R8, n, n, n, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(tex.Data))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, glFilter(tex.MinFilter))
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, glFilter(tex.MagFilter))
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_3D, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	if err := checkGL("uploading volume"); err != nil {
		t.Unload()
		return nil, err
	}
	return t, nil
}

// Bind makes the texture current on its unit.
func (t *GPUVolumeTexture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_3D, t.id)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Unit returns the texture unit index for the sampler uniform.
func (t *GPUVolumeTexture) Unit() int32 {
	return int32(t.unit)
}

// Unload frees the texture.
func (t *GPUVolumeTexture) Unload() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func glFilter(f volume.Filter) int32 {
	if f == volume.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

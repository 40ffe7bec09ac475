package software

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// Host is a display-less loop driver. It never asks to close; bound the run
// with MaxTicks or a context.
type Host struct {
	Frames uint64
}

// BeginFrame always continues.
func (h *Host) BeginFrame() bool {
	return true
}

// EndFrame counts presented frames.
func (h *Host) EndFrame() {
	h.Frames++
}

// Compose overlays the secondary image on the bottom-right corner of the
// primary, blending by the secondary's alpha.
func Compose(primary, secondary *image.NRGBA) *image.NRGBA {
	pb := primary.Bounds()
	out := image.NewNRGBA(pb)
	draw.Draw(out, pb, primary, pb.Min, draw.Src)
	if secondary == nil {
		return out
	}

	sb := secondary.Bounds()
	dst := image.Rect(pb.Max.X-sb.Dx(), pb.Max.Y-sb.Dy(), pb.Max.X, pb.Max.Y)
	draw.Draw(out, dst, secondary, sb.Min, draw.Over)
	return out
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

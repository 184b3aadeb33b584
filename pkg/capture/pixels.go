package capture

import (
	"image"

	"github.com/pkg/errors"
)

// FromBGRX converts a top-down 32bpp BGRX/BGRA buffer (the layout of both X11
// Z pixmaps and GDI DIB sections) into an opaque RGBA image. stride is the
// number of bytes per source row.
func FromBGRX(data []byte, width, height, stride int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid image size %dx%d", width, height)
	}
	if stride < width*4 {
		return nil, errors.Errorf("stride %d too small for width %d", stride, width)
	}
	if need := stride*(height-1) + width*4; len(data) < need {
		return nil, errors.Errorf("short image data: got %d bytes, want %d", len(data), need)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := data[y*stride : y*stride+width*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width*4; x += 4 {
			dst[x] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x]
			dst[x+3] = 0xff
		}
	}
	return img, nil
}

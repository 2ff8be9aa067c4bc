package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/pkg/errors"
)

// Smooth applies a Gaussian blur of the given radius to img before the
// gradient computation. Noisy photographs give fewer spurious local maxima
// once smoothed; a radius of 0 or less returns img unchanged.
func Smooth(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Gaussian(img, radius)
}

// MagnitudeMap renders a row-major buffer of gradient magnitudes as a grey
// image, the largest magnitude becoming white. Magnitudes at or below floor
// are drawn black, which shows what the detector can see at a given
// threshold.
func MagnitudeMap(width, height int, magnitudes []int, floor int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid map size %dx%d", width, height)
	}
	if len(magnitudes) != width*height {
		return nil, errors.Errorf("magnitude buffer holds %d values, want %d", len(magnitudes), width*height)
	}

	top := 0
	for _, m := range magnitudes {
		top = max(top, m)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	if top == 0 {
		return img, nil
	}
	for i, m := range magnitudes {
		if m <= floor {
			continue
		}
		img.Pix[i] = uint8(m * 255 / top)
	}
	return img, nil
}

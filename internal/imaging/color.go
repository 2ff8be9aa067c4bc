package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// GrayMode selects how color pixels are turned into grey levels before the
// gradient computation.
type GrayMode string

const (
	// GrayRec601 weights the channels with the ITU-R BT.601 luma
	// coefficients (0.299 R + 0.587 G + 0.114 B).
	GrayRec601 GrayMode = "rec601"

	// GrayLab uses the CIE L* lightness scaled to 0..255. It follows
	// perceived brightness more closely on saturated colors.
	GrayLab GrayMode = "lab"
)

// ParseGrayMode maps a tool argument to a GrayMode. The empty string selects
// GrayRec601.
func ParseGrayMode(s string) (GrayMode, error) {
	switch GrayMode(s) {
	case "", GrayRec601:
		return GrayRec601, nil
	case GrayLab:
		return GrayLab, nil
	}
	return "", errors.Errorf("unknown gray mode: %q", s)
}

// GrayLevels converts img to a row-major buffer of grey levels in 0..255,
// with the top-left pixel of the image bounds at index 0.
//
// Grey images are copied as they are whatever the mode.
func GrayLevels(img image.Image, mode GrayMode) (width, height int, levels []int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	levels = make([]int, width*height)

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			row := g.Pix[(y+b.Min.Y-g.Rect.Min.Y)*g.Stride+(b.Min.X-g.Rect.Min.X):]
			for x := 0; x < width; x++ {
				levels[y*width+x] = int(row[x])
			}
		}
		return width, height, levels
	}

	if mode == GrayLab {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				levels[y*width+x] = lightness(img, b.Min.X+x, b.Min.Y+y)
			}
		}
		return width, height, levels
	}

	gray := imaging.Grayscale(img)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			levels[y*width+x] = int(row[4*x])
		}
	}
	return width, height, levels
}

// lightness returns the CIE L* of the pixel at (x, y) on a 0..255 scale.
// Fully transparent pixels are black.
func lightness(img image.Image, x, y int) int {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return 0
	}
	l, _, _ := c.Lab()
	return min(max(int(math.Round(l*255)), 0), 255)
}

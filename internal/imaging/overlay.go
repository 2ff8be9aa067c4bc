package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/pkg/errors"
)

// DefaultOverlayColor is used when the overlay color cannot be parsed.
var DefaultOverlayColor = color.RGBA{255, 0, 0, 255}

// Overlay draws point sets on a copy of img, each labelled with its index
// next to its first point. Points are given in img coordinates.
func Overlay(img image.Image, sets [][]image.Point, colorHex string, labels bool) *image.RGBA {
	c, err := parseHexColor(colorHex)
	if err != nil {
		c = DefaultOverlayColor
	}

	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for _, pts := range sets {
		for _, p := range pts {
			if p.In(bounds) {
				result.Set(p.X, p.Y, c)
			}
		}
	}

	if labels {
		fg := color.RGBA{255, 255, 255, 255}
		bg := color.RGBA{0, 0, 0, 180}
		for i, pts := range sets {
			if len(pts) == 0 {
				continue
			}
			drawLabel(result, pts[0].X+2, pts[0].Y+2, strconv.Itoa(i), fg, bg)
		}
	}
	return result
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, errors.New("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "invalid hex color %q", hex)
	}
	switch len(hex) {
	case 6:
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, errors.New("invalid hex color length")
}

// 3x5 glyphs of the decimal digits
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel draws a small digit label on a background box at (x, y)
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	const charWidth, labelHeight = 4, 7
	labelWidth := len(text) * charWidth

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if p := image.Pt(cx+col, y+row); pixel == '1' && p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}

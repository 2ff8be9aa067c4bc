package gradient

import "github.com/ironsheep/blurred-segments/internal/geom"

// IsFree reports whether p has not been claimed by an accepted segment.
func (f *Field) IsFree(p geom.Point) bool {
	return !f.mask[p.Y*f.width+p.X]
}

// SetMask claims the given pixels and their dilation halo.
func (f *Field) SetMask(pts []geom.Point) {
	halo := bowl[:dilationSizes[f.dilation]]
	for _, p := range pts {
		f.mask[p.Y*f.width+p.X] = true
		for _, v := range halo {
			q := p.Add(v)
			if f.Contains(q) {
				f.mask[q.Y*f.width+q.X] = true
			}
		}
	}
}

// ClearMask frees every pixel.
func (f *Field) ClearMask() {
	clear(f.mask)
}

// Masking reports whether oriented local maxima skip claimed pixels.
func (f *Field) Masking() bool { return f.masking }

// SetMasking turns the occupancy test of OrientedLocalMax on or off.
func (f *Field) SetMasking(on bool) { f.masking = on }

// MaskDilation returns the number of halo neighbours stamped around each
// claimed pixel.
func (f *Field) MaskDilation() int { return dilationSizes[f.dilation] }

// ToggleMaskDilation cycles through the halo sizes 0, 4, 8, 12 and 20.
func (f *Field) ToggleMaskDilation() {
	f.dilation = (f.dilation + 1) % len(dilationSizes)
}

// SetMaskDilation selects the halo size; n must be one of 0, 4, 8, 12, 20.
// It reports whether n was accepted.
func (f *Field) SetMaskDilation(n int) bool {
	for i, s := range dilationSizes {
		if s == n {
			f.dilation = i
			return true
		}
	}
	return false
}

package gradient

import (
	"sort"

	"github.com/ironsheep/blurred-segments/internal/geom"
)

// LargestIn returns the index of the strongest pixel of scan whose magnitude
// exceeds both the magnitude threshold and the first pixel's magnitude.
// It returns -1 when there is none or when it is the last pixel.
func (f *Field) LargestIn(scan []geom.Point) int {
	if len(scan) == 0 {
		return -1
	}
	best := -1
	gmax := max(f.MagnitudeAt(scan[0]), f.magThreshold)
	for i, p := range scan {
		if g := f.MagnitudeAt(p); g > gmax {
			gmax = g
			best = i
		}
	}
	if best == len(scan)-1 {
		return -1
	}
	return best
}

// LocalMax returns the indices of the contrasted, unclaimed local maxima of
// the magnitude profile along scan, strongest first. The result reuses buf.
func (f *Field) LocalMax(scan []geom.Point, buf []int) []int {
	sig := f.profile(scan)
	lmax := f.searchLocalMax(sig, buf[:0])
	lmax = f.keepContrasted(lmax, sig)
	lmax = f.keepFree(scan, lmax)
	sortByMagnitude(lmax, sig)
	return lmax
}

// OrientedLocalMax returns the indices of the local maxima along scan whose
// gradient is close in direction to ref, strongest first. Claimed pixels are
// skipped only when masking is on, and gradients opposite to ref only when
// the orientation constraint is on. The result reuses buf.
func (f *Field) OrientedLocalMax(scan []geom.Point, ref geom.Vector, buf []int) []int {
	sig := f.profile(scan)
	lmax := f.searchLocalMax(sig, buf[:0])
	if f.masking {
		lmax = f.keepFree(scan, lmax)
	}
	if f.oriented {
		lmax = f.keepDirected(scan, lmax, ref)
	}
	lmax = f.keepOriented(scan, lmax, ref)
	sortByMagnitude(lmax, sig)
	return lmax
}

func (f *Field) profile(scan []geom.Point) []int {
	if cap(f.signal) < len(scan) {
		f.signal = make([]int, len(scan), 2*len(scan))
	}
	sig := f.signal[:len(scan)]
	for i, p := range scan {
		sig[i] = f.MagnitudeAt(p)
	}
	return sig
}

// searchLocalMax appends the plateau midpoints of every rise-then-fall of
// sig that exceed the magnitude threshold.
func (f *Field) searchLocalMax(sig []int, lmax []int) []int {
	n := len(sig)
	offset := 0
	up := true
	for offset < n-1 && sig[offset] == sig[0] {
		if sig[offset] < sig[offset+1] {
			up = true
			break
		}
		if sig[offset] > sig[offset+1] {
			up = false
			break
		}
		offset++
	}
	for i := offset; i < n-1; i++ {
		if !up {
			if sig[i+1] > sig[i] {
				up = true
			}
			continue
		}
		if sig[i+1] < sig[i] {
			up = false
			k := i
			for k > 0 && sig[k-1] == sig[i] {
				k--
			}
			if m := k + (i-k)/2; sig[m] > f.magThreshold {
				lmax = append(lmax, m)
			}
		}
	}
	return lmax
}

// keepContrasted drops the lower of two neighbouring peaks when it rises
// less than the gradient resolution above the pond separating them.
func (f *Field) keepContrasted(lmax []int, sig []int) []int {
	n := len(lmax)
	if n == 0 {
		return lmax
	}
	if cap(f.pond) < n {
		f.pond = make([]int, n)
		f.fired = make([]bool, n)
	}
	pond, fired := f.pond[:n-1], f.fired[:n]
	clear(fired)
	for i := 0; i < n-1; i++ {
		pond[i] = sig[lmax[i]]
		for j := lmax[i] + 1; j < lmax[i+1]; j++ {
			pond[i] = min(pond[i], sig[j])
		}
	}
	left := 0
	for i := 0; i < n-1; i++ {
		if sig[lmax[i+1]] < sig[lmax[left]] {
			if sig[lmax[i+1]]-pond[i] < f.gradientRes {
				fired[i+1] = true
				if i < n-2 && pond[i+1] < pond[i] {
					pond[i+1] = pond[i]
				}
			}
		} else if sig[lmax[left]]-pond[i] < f.gradientRes {
			fired[left] = true
			left = i + 1
		}
	}
	kept := lmax[:0]
	for i, m := range lmax {
		if !fired[i] {
			kept = append(kept, m)
		}
	}
	return kept
}

// keepFree removes claimed candidates, filling holes from the end.
func (f *Field) keepFree(scan []geom.Point, lmax []int) []int {
	n := len(lmax)
	for i := 0; i < n; {
		if !f.IsFree(scan[lmax[i]]) {
			n--
			lmax[i] = lmax[n]
		} else {
			i++
		}
	}
	return lmax[:n]
}

// keepDirected removes candidates whose gradient is not in the half plane
// of ref.
func (f *Field) keepDirected(scan []geom.Point, lmax []int, ref geom.Vector) []int {
	n := len(lmax)
	for i := 0; i < n; {
		if f.GradientAt(scan[lmax[i]]).Dot(ref) <= 0 {
			n--
			lmax[i] = lmax[n]
		} else {
			i++
		}
	}
	return lmax[:n]
}

// keepOriented removes candidates whose squared cosine with ref is below
// the angular threshold.
func (f *Field) keepOriented(scan []geom.Point, lmax []int, ref geom.Vector) []int {
	vn2 := ref.Norm2()
	n := len(lmax)
	for i := 0; i < n; {
		g := f.GradientAt(scan[lmax[i]])
		ps := g.Dot(ref)
		if ps*ps*100 < vn2*g.Norm2()*int64(f.angleThreshold) {
			n--
			lmax[i] = lmax[n]
		} else {
			i++
		}
	}
	return lmax[:n]
}

func sortByMagnitude(lmax []int, sig []int) {
	sort.SliceStable(lmax, func(i, j int) bool {
		return sig[lmax[i]] > sig[lmax[j]]
	})
}

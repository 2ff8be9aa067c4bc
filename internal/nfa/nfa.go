// Package nfa validates blurred segments with an a contrario test on the
// gradient magnitude of their points.
//
// A segment section is meaningful when the number of false alarms, the
// expected count of sections as contrasted as it in a random image, is
// below 1. Sections failing the test are split at their weakest point and
// both halves are tested again.
package nfa

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/gradient"
	"github.com/ironsheep/blurred-segments/internal/segment"
)

const (
	// Epsilon is the number of false alarms under which a section is
	// meaningful.
	Epsilon = 1.0
	// DefaultLengthRatio divides section lengths before the test.
	DefaultLengthRatio = 1.0
	// MinLengthRatio and MaxLengthRatio bound the length ratio.
	MinLengthRatio = 1.0
	MaxLengthRatio = 3.0
	// LengthRatioStep is the increment of IncLengthRatio.
	LengthRatioStep = 0.05
	// MinSectionLength is the shortest section that can be meaningful.
	MinSectionLength = 3
)

// Filter sorts blurred segments into valid and rejected ones.
type Filter struct {
	field *gradient.Field
	// cumHisto[g] is the share of pixels whose magnitude is at least g.
	cumHisto []float64
	maxGrad2 int64
	// sections is the number of candidate sections of the filtered set.
	sections float64
	lratio   float64
}

// New returns a filter with the default length ratio. Init must be called
// before filtering.
func New() *Filter {
	return &Filter{lratio: DefaultLengthRatio}
}

// Init computes the magnitude distribution of field.
func (f *Filter) Init(field *gradient.Field) {
	f.field = field
	w, h := field.Width(), field.Height()
	f.maxGrad2 = 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.maxGrad2 = max(f.maxGrad2, field.SqNormAt(geom.Pt(x, y)))
		}
	}

	f.cumHisto = make([]float64, int(math.Sqrt(float64(f.maxGrad2)))+1)
	for _, g := range field.Magnitudes() {
		f.cumHisto[g]++
	}
	for g := len(f.cumHisto) - 1; g > 0; g-- {
		f.cumHisto[g-1] += f.cumHisto[g]
	}
	// Border pixels carry no gradient and are left out of the count.
	floats.Scale(1/float64(max((w-2)*(h-2), 1)), f.cumHisto)
}

// LengthRatio returns the divisor applied to section lengths.
func (f *Filter) LengthRatio() float64 { return f.lratio }

// IncLengthRatio shifts the length ratio by inc steps within its bounds.
func (f *Filter) IncLengthRatio(inc int) {
	f.SetLengthRatio(f.lratio + float64(inc)*LengthRatioStep)
}

// SetLengthRatio sets the length ratio, clamped to its bounds and rounded
// to a multiple of the step.
func (f *Filter) SetLengthRatio(r float64) {
	f.lratio = math.Round(min(max(r, MinLengthRatio), MaxLengthRatio)/LengthRatioStep) * LengthRatioStep
}

// Probability returns the share of pixels whose magnitude is at least g.
func (f *Filter) Probability(g int) float64 {
	if g >= len(f.cumHisto) {
		return 0
	}
	return f.cumHisto[max(g, 0)]
}

// Filter splits segs into meaningful and rejected segments, keeping their
// order.
func (f *Filter) Filter(segs []*segment.BlurredSegment) (valid, rejected []*segment.BlurredSegment) {
	f.sections = 0
	for _, bs := range segs {
		n := float64(bs.Size())
		f.sections += n * (n - 1) / 2
	}
	for _, bs := range segs {
		if f.meaningful(bs, 0, bs.Size()) {
			valid = append(valid, bs)
		} else {
			rejected = append(rejected, bs)
		}
	}
	return valid, rejected
}

func (f *Filter) nfa(proba float64, length int) float64 {
	length = int(float64(length) / f.lratio)
	nfa := f.sections
	for i := 0; i < length && nfa > Epsilon; i++ {
		nfa *= proba
	}
	return nfa
}

// meaningful tests the section [start, end) of bs.
func (f *Filter) meaningful(bs *segment.BlurredSegment, start, end int) bool {
	if end-start < MinSectionLength {
		return false
	}
	gmin := f.maxGrad2
	pmin := -1
	for i := start; i < end; i++ {
		if gn := f.field.SqNormAt(bs.At(i)); gn < gmin {
			gmin = gn
			pmin = i
		}
	}
	if f.nfa(f.Probability(int(math.Sqrt(float64(gmin)))), end-start) < Epsilon {
		return true
	}
	if pmin == -1 {
		return false
	}
	return f.meaningful(bs, start, pmin) && f.meaningful(bs, pmin+1, end)
}

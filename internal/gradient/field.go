package gradient

import (
	"math"

	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/pkg/errors"
)

// Kernel selects the gradient operator.
type Kernel int

const (
	// Sobel3x3 is the 3x3 Sobel operator.
	Sobel3x3 Kernel = iota
	// Sobel5x5 is the 5x5 Sobel-like operator.
	Sobel5x5
	// Precomputed marks a field built from an existing vector map.
	Precomputed
)

func (k Kernel) String() string {
	switch k {
	case Sobel3x3:
		return "sobel3x3"
	case Sobel5x5:
		return "sobel5x5"
	case Precomputed:
		return "precomputed"
	}
	return "unknown"
}

const (
	// NearSquaredAngle is the minimal squared cosine, in percent, between a
	// candidate gradient and the reference vector (roughly 25 degrees).
	NearSquaredAngle = 80
	// DefaultGradientThreshold is the initial gradient threshold.
	DefaultGradientThreshold = 20
	// DefaultGradientResolution is the initial local max contrast.
	DefaultGradientResolution = 100
	// GradientResolutionStep is the increment of IncGradientResolution.
	GradientResolutionStep = 5
	// DefaultDilation is the index of the default dilation size.
	DefaultDilation = 4
)

// dilationSizes are the prefix lengths of bowl that may be used as mask halo.
var dilationSizes = [...]int{0, 4, 8, 12, 20}

var bowl = [...]geom.Vector{
	{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}, {X: -1, Y: 1},
	{X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 0, Y: -2},
	{X: 2, Y: 1}, {X: 1, Y: 2}, {X: -1, Y: 2}, {X: -2, Y: 1},
	{X: -2, Y: -1}, {X: -1, Y: -2}, {X: 1, Y: -2}, {X: 2, Y: -1},
}

// Field is the gradient vector map of an image together with its occupancy
// mask and local maxima settings.
type Field struct {
	width  int
	height int
	kernel Kernel

	vectors    []geom.Vector
	magnitudes []int

	gradientThreshold int
	magThreshold      int
	gradientRes       int
	angleThreshold    int
	oriented          bool

	mask     []bool
	masking  bool
	dilation int

	// signal is the per-call magnitude profile of the scan being analysed.
	signal []int
	pond   []int
	fired  []bool
}

// NewField computes the gradient map of a width x height grey-level buffer
// stored row by row.
func NewField(width, height int, levels []int, kernel Kernel) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid field size %dx%d", width, height)
	}
	if len(levels) != width*height {
		return nil, errors.Errorf("pixel buffer holds %d values, want %d", len(levels), width*height)
	}
	f := newField(width, height, kernel)
	switch kernel {
	case Sobel3x3:
		f.vectors = sobel3x3(width, height, levels)
	case Sobel5x5:
		f.vectors = sobel5x5(width, height, levels)
	default:
		return nil, errors.Errorf("unsupported gradient kernel %v", kernel)
	}
	f.computeMagnitudes()
	return f, nil
}

// NewFieldFromBytes is NewField for 8-bit pixel buffers.
func NewFieldFromBytes(width, height int, pix []byte, kernel Kernel) (*Field, error) {
	levels := make([]int, len(pix))
	for i, v := range pix {
		levels[i] = int(v)
	}
	f, err := NewField(width, height, levels, kernel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build gradient field")
	}
	return f, nil
}

// NewFieldFromVectors wraps an existing gradient map. The slice is owned by
// the field afterwards.
func NewFieldFromVectors(width, height int, vectors []geom.Vector) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid field size %dx%d", width, height)
	}
	if len(vectors) != width*height {
		return nil, errors.Errorf("vector map holds %d values, want %d", len(vectors), width*height)
	}
	f := newField(width, height, Precomputed)
	f.vectors = vectors
	f.computeMagnitudes()
	return f, nil
}

func newField(width, height int, kernel Kernel) *Field {
	return &Field{
		width:             width,
		height:            height,
		kernel:            kernel,
		gradientThreshold: DefaultGradientThreshold,
		magThreshold:      DefaultGradientThreshold * DefaultGradientThreshold,
		gradientRes:       DefaultGradientResolution,
		angleThreshold:    NearSquaredAngle,
		oriented:          true,
		mask:              make([]bool, width*height),
		dilation:          DefaultDilation,
	}
}

func (f *Field) computeMagnitudes() {
	f.magnitudes = make([]int, len(f.vectors))
	for i, v := range f.vectors {
		f.magnitudes[i] = int(math.Sqrt(float64(v.Norm2())))
	}
}

// Width returns the field width in pixels.
func (f *Field) Width() int { return f.width }

// Height returns the field height in pixels.
func (f *Field) Height() int { return f.height }

// MaxDimension returns the larger of width and height.
func (f *Field) MaxDimension() int { return max(f.width, f.height) }

// Kernel returns the operator the field was built with.
func (f *Field) Kernel() Kernel { return f.kernel }

// Contains reports whether p lies inside the field.
func (f *Field) Contains(p geom.Point) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

// GradientAt returns the gradient vector at p.
func (f *Field) GradientAt(p geom.Point) geom.Vector {
	return f.vectors[p.Y*f.width+p.X]
}

// MagnitudeAt returns the gradient magnitude at p.
func (f *Field) MagnitudeAt(p geom.Point) int {
	return f.magnitudes[p.Y*f.width+p.X]
}

// SqNormAt returns the squared gradient norm at p.
func (f *Field) SqNormAt(p geom.Point) int64 {
	return f.vectors[p.Y*f.width+p.X].Norm2()
}

// Magnitudes returns the magnitude map, row by row. It must not be modified.
func (f *Field) Magnitudes() []int { return f.magnitudes }

// GradientThreshold returns the gradient threshold.
func (f *Field) GradientThreshold() int { return f.gradientThreshold }

// MagnitudeThreshold returns the magnitude a local maximum must exceed.
func (f *Field) MagnitudeThreshold() int { return f.magThreshold }

// IncGradientThreshold shifts the gradient threshold by inc, within 0..255.
// Sobel magnitudes are compared with its square, precomputed ones with the
// threshold itself.
func (f *Field) IncGradientThreshold(inc int) {
	f.gradientThreshold = min(max(f.gradientThreshold+inc, 0), 255)
	f.magThreshold = f.gradientThreshold
	if f.kernel != Precomputed {
		f.magThreshold *= f.gradientThreshold
	}
}

// SetGradientThreshold sets the gradient threshold, within 0..255. Setting
// the current value changes nothing.
func (f *Field) SetGradientThreshold(t int) {
	if t != f.gradientThreshold {
		f.IncGradientThreshold(t - f.gradientThreshold)
	}
}

// GradientResolution returns the minimal contrast between two neighbouring
// local maxima for both to be kept.
func (f *Field) GradientResolution() int { return f.gradientRes }

// IncGradientResolution shifts the gradient resolution by inc steps.
func (f *Field) IncGradientResolution(inc int) {
	f.gradientRes = max(f.gradientRes+inc*GradientResolutionStep, 0)
}

// SetGradientResolution sets the gradient resolution, at least 0.
func (f *Field) SetGradientResolution(r int) {
	f.gradientRes = max(r, 0)
}

// OrientationConstraint reports whether oriented local maxima must have a
// gradient pointing the same way as the reference.
func (f *Field) OrientationConstraint() bool { return f.oriented }

// SwitchOrientationConstraint toggles OrientationConstraint.
func (f *Field) SwitchOrientationConstraint() { f.oriented = !f.oriented }

// SetOrientationConstraint sets OrientationConstraint.
func (f *Field) SetOrientationConstraint(on bool) { f.oriented = on }

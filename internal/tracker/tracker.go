package tracker

import (
	"strings"

	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/gradient"
	"github.com/ironsheep/blurred-segments/internal/scanner"
)

const (
	// MinScan is the minimal scan length; shorter scans stop a side.
	MinScan = 8
	// DefaultMaxScan is the default number of fast track steps per side.
	DefaultMaxScan = 32
	// DefaultFittingDelay is the number of steps before the fine track strip
	// starts following the segment.
	DefaultFittingDelay = 20
	// DefaultThicknessControlDelay is the number of stable additions after
	// which the assigned width is tightened.
	DefaultThicknessControlDelay = 20
	// DefaultProximityThreshold is the maximal Manhattan distance between
	// consecutive fast track points when the proximity test is on.
	DefaultProximityThreshold = 10
)

// Failure is a set of fine track failure flags.
type Failure int

const (
	// NoStart means no seed point or too few points.
	NoStart Failure = 1
	// ImageBoundOnRight means the strip left the image on the right.
	ImageBoundOnRight Failure = 2
	// ImageBoundOnLeft means the strip left the image on the left.
	ImageBoundOnLeft Failure = 4
	// LostOrientation means the segment got too far from the expected
	// direction.
	LostOrientation Failure = 32
)

func (f Failure) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fl := range []struct {
		bit  Failure
		name string
	}{
		{NoStart, "no_start"},
		{ImageBoundOnRight, "image_bound_right"},
		{ImageBoundOnLeft, "image_bound_left"},
		{LostOrientation, "lost_orientation"},
	} {
		if f&fl.bit != 0 {
			parts = append(parts, fl.name)
		}
	}
	return strings.Join(parts, "|")
}

// Tracker grows blurred segments in a gradient field.
type Tracker struct {
	field    *gradient.Field
	provider *scanner.Provider

	proxTest      bool
	proxThreshold int
	maxScan       int
	fittingDelay  int
	atcDelay      int
	failure       Failure

	recordScans bool
	recorded    [][]geom.Point

	// pix and cand are the scan and candidate buffers, sized to the largest
	// image dimension.
	pix  []geom.Point
	cand []int
}

// New returns a tracker working on field.
func New(field *gradient.Field) *Tracker {
	t := &Tracker{
		proxThreshold: DefaultProximityThreshold,
		maxScan:       DefaultMaxScan,
		fittingDelay:  DefaultFittingDelay,
		atcDelay:      DefaultThicknessControlDelay,
	}
	t.SetField(field)
	return t
}

// SetField switches to another gradient field and resizes the buffers.
func (t *Tracker) SetField(field *gradient.Field) {
	t.field = field
	t.provider = scanner.NewProvider(field.Width(), field.Height())
	n := field.MaxDimension()
	t.pix = make([]geom.Point, 0, n)
	t.cand = make([]int, 0, n)
}

// Failure returns the flags set by the last FineTrack call.
func (t *Tracker) Failure() Failure { return t.failure }

// ProximityConstraint reports whether fast track rejects points far from the
// last point added on the same side.
func (t *Tracker) ProximityConstraint() bool { return t.proxTest }

// SwitchProximityConstraint toggles the proximity test.
func (t *Tracker) SwitchProximityConstraint() { t.proxTest = !t.proxTest }

// ProximityThreshold returns the proximity test distance.
func (t *Tracker) ProximityThreshold() int { return t.proxThreshold }

// IncProximityThreshold changes the proximity distance by one, keeping it
// at least 1.
func (t *Tracker) IncProximityThreshold(inc bool) {
	if inc {
		t.proxThreshold++
	} else {
		t.proxThreshold--
	}
	t.proxThreshold = max(t.proxThreshold, 1)
}

// MaxScan returns the number of fast track steps per side.
func (t *Tracker) MaxScan() int { return t.maxScan }

// SwitchScanExtent toggles the fast track step limit between its default
// and the largest image dimension.
func (t *Tracker) SwitchScanExtent() {
	if d := t.field.MaxDimension(); t.maxScan == d {
		t.maxScan = DefaultMaxScan
	} else {
		t.maxScan = d
	}
}

// FittingDelay returns the number of fine track steps before the strip
// follows the segment.
func (t *Tracker) FittingDelay() int { return t.fittingDelay }

// ThicknessControlDelay returns the number of stable additions before the
// assigned width is tightened.
func (t *Tracker) ThicknessControlDelay() int { return t.atcDelay }

// IncThicknessControlDelay adds val to the delay, keeping it at least 1.
func (t *Tracker) IncThicknessControlDelay(val int) {
	t.atcDelay = max(t.atcDelay+val, 1)
}

// RecordScans reports whether scans are recorded.
func (t *Tracker) RecordScans() bool { return t.recordScans }

// SetRecordScans turns scan recording on or off. Turning it off also
// discards recorded scans.
func (t *Tracker) SetRecordScans(on bool) {
	t.recordScans = on
	if !on {
		t.ClearScans()
	}
}

// Scans returns the scans recorded since the last ClearScans, in visiting
// order.
func (t *Tracker) Scans() [][]geom.Point { return t.recorded }

// ClearScans discards recorded scans.
func (t *Tracker) ClearScans() { t.recorded = nil }

func (t *Tracker) record(pix []geom.Point) {
	if t.recordScans {
		t.recorded = append(t.recorded, append([]geom.Point(nil), pix...))
	}
}

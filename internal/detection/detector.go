package detection

import (
	"github.com/rs/zerolog"

	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/gradient"
	"github.com/ironsheep/blurred-segments/internal/nfa"
	"github.com/ironsheep/blurred-segments/internal/segment"
	"github.com/ironsheep/blurred-segments/internal/tracker"
)

// ScanInput is the stroke a fast track ran on: end points P1 and P2, and,
// when Width is not 0, a strip of that width centred on Center.
type ScanInput struct {
	P1     geom.Point `json:"p1"`
	P2     geom.Point `json:"p2"`
	Width  int        `json:"width"`
	Center geom.Point `json:"center"`
}

type sweepMode int

const (
	sweepNone sweepMode = iota
	sweepSequential
	sweepBalanced
)

// Detector extracts blurred segments from a gradient field, either along a
// user stroke or by sweeping the whole image.
//
// A Detector owns the occupancy mask of its field during multi detections
// and is not safe for concurrent use.
type Detector struct {
	field *gradient.Field
	opts  Options
	log   zerolog.Logger

	prelim  *tracker.Tracker
	initial *tracker.Tracker
	final   *tracker.Tracker
	filter  *nfa.Filter

	bspre *segment.BlurredSegment
	bsini *segment.BlurredSegment
	bsf   *segment.BlurredSegment
	multi []*segment.BlurredSegment
	valid []*segment.BlurredSegment
	// rejected holds the multi detection output failing the NFA test.
	rejected []*segment.BlurredSegment

	result Result
	trials int
	preIn  ScanInput
	iniIn  ScanInput
	sweep  sweepMode
	selP1  geom.Point
	selP2  geom.Point
	stroke []geom.Point
	locmax []int
}

// New returns a detector working on field with the given options.
func New(field *gradient.Field, opts Options) *Detector {
	d := &Detector{
		log:    zerolog.Nop(),
		result: Undetermined,
	}
	d.opts = DefaultOptions()
	d.SetField(field)
	d.Apply(opts)
	return d
}

// SetLogger sets the logger used for detection events.
func (d *Detector) SetLogger(l zerolog.Logger) { d.log = l }

// SetField switches to another gradient field and forgets former results.
func (d *Detector) SetField(field *gradient.Field) {
	d.field = field
	if d.final == nil {
		d.prelim = tracker.New(field)
		d.initial = tracker.New(field)
		d.final = tracker.New(field)
	} else {
		d.prelim.SetField(field)
		d.initial.SetField(field)
		d.final.SetField(field)
	}
	if d.filter != nil {
		d.filter.Init(field)
	}
	d.applyFieldOptions()
	d.ClearAll()
}

// Field returns the gradient field.
func (d *Detector) Field() *gradient.Field { return d.field }

// Apply changes every setting to the values of opts, clamped as by the
// individual setters.
func (d *Detector) Apply(opts Options) {
	d.SetAssignedThickness(opts.AssignedThickness)
	d.SetAcceptedLacks(opts.AcceptedLacks)
	d.opts.Preliminary = opts.Preliminary
	d.SetInitialMinSize(opts.InitialMinSize)
	d.opts.InitialSparsityTest = opts.InitialSparsityTest
	d.opts.FinalSizeTest = opts.FinalSizeTest
	d.SetFinalMinSize(opts.FinalMinSize)
	d.opts.FinalSparsityTest = opts.FinalSparsityTest
	d.opts.FragmentMinSize = max(opts.FragmentMinSize, 1)
	d.opts.SingleEdge = opts.SingleEdge
	d.opts.OppositeGradient = opts.OppositeGradient && opts.SingleEdge
	d.opts.DualEdgeMulti = opts.DualEdgeMulti
	d.opts.MultiSelection = opts.MultiSelection
	d.SetSweepStep(opts.SweepStep)
	d.SetMaxDetections(opts.MaxDetections)
	d.SetNFA(opts.NFA)
	d.SetNFALengthRatio(opts.NFALengthRatio)
	d.opts.GradientThreshold = opts.GradientThreshold
	d.opts.GradientResolution = opts.GradientResolution
	d.opts.MaskDilation = opts.MaskDilation
	d.applyFieldOptions()
}

// applyFieldOptions pushes the field related options to the field and reads
// back the clamped values.
func (d *Detector) applyFieldOptions() {
	f := d.field
	f.SetOrientationConstraint(d.opts.SingleEdge)
	f.SetGradientThreshold(d.opts.GradientThreshold)
	f.SetGradientResolution(d.opts.GradientResolution)
	if !f.SetMaskDilation(d.opts.MaskDilation) {
		d.opts.MaskDilation = f.MaskDilation()
	}
	d.opts.GradientThreshold = f.GradientThreshold()
	d.opts.GradientResolution = f.GradientResolution()
}

// Options returns the current settings.
func (d *Detector) Options() Options { return d.opts }

// ClearAll forgets every detected segment.
func (d *Detector) ClearAll() {
	d.bspre, d.bsini, d.bsf = nil, nil, nil
	d.multi, d.valid, d.rejected = nil, nil, nil
	d.result = Undetermined
}

// Result returns the outcome of the last single detection.
func (d *Detector) Result() Result { return d.result }

// DetectSingle detects one blurred segment crossed by the stroke p1p2.
func (d *Detector) DetectSingle(p1, p2 geom.Point) Result {
	d.result = d.detectSingle(p1, p2, false, geom.Point{})
	return d.result
}

// DetectSingleFrom detects one blurred segment crossing the stroke p1p2 at
// pc, scanning a strip of fixed width around pc.
func (d *Detector) DetectSingleFrom(p1, p2, pc geom.Point) Result {
	d.result = d.detectSingle(p1, p2, true, pc)
	return d.result
}

// DetectSelection runs a single detection along p1p2, or a multi detection
// when MultiSelection is on.
func (d *Detector) DetectSelection(p1, p2 geom.Point) {
	d.sweep = sweepNone
	d.selP1, d.selP2 = p1, p2
	d.multi = nil
	if !d.opts.MultiSelection {
		d.DetectSingle(p1, p2)
		return
	}
	d.field.SetMasking(true)
	d.field.ClearMask()
	d.trials = 0
	d.detectMulti(p1, p2)
	d.endOfMulti()
}

// DetectAll sweeps the image with vertical strokes from the middle
// outwards, then with horizontal ones, and detects every segment crossing
// them.
func (d *Detector) DetectAll() {
	d.startSweep(sweepSequential)
	w, h := d.field.Width(), d.field.Height()
	step := d.opts.SweepStep
	next := true
	for x := w / 2; next && x > 0; x -= step {
		next = d.detectMulti(geom.Pt(x, 0), geom.Pt(x, h-1))
	}
	for x := w/2 + step; next && x < w-1; x += step {
		next = d.detectMulti(geom.Pt(x, 0), geom.Pt(x, h-1))
	}
	for y := h / 2; next && y > 0; y -= step {
		next = d.detectMulti(geom.Pt(0, y), geom.Pt(w-1, y))
	}
	for y := h/2 + step; next && y < h-1; y += step {
		next = d.detectMulti(geom.Pt(0, y), geom.Pt(w-1, y))
	}
	d.endOfSweep()
}

// DetectAllWithBalancedXY is DetectAll with vertical and horizontal strokes
// interleaved, so that neither direction claims the mask first.
func (d *Detector) DetectAllWithBalancedXY() {
	d.startSweep(sweepBalanced)
	w, h := d.field.Width(), d.field.Height()
	step := d.opts.SweepStep
	xl, yl := w/2, h/2
	xr, yr := xl+step, yl+step
	left, low, right, high := true, true, true, true
	next := true
	for next && (left || low || right || high) {
		if left {
			next = d.detectMulti(geom.Pt(xl, 0), geom.Pt(xl, h-1))
			xl -= step
			left = xl > 0
		}
		if next && low {
			next = d.detectMulti(geom.Pt(0, yl), geom.Pt(w-1, yl))
			yl -= step
			low = yl > 0
		}
		if next && right {
			next = d.detectMulti(geom.Pt(xr, 0), geom.Pt(xr, h-1))
			xr += step
			right = xr < w-1
		}
		if next && high {
			next = d.detectMulti(geom.Pt(0, yr), geom.Pt(w-1, yr))
			yr += step
			high = yr < h-1
		}
	}
	d.endOfSweep()
}

// Redetect runs the last sweep or selection again.
func (d *Detector) Redetect() {
	switch d.sweep {
	case sweepSequential:
		d.DetectAll()
	case sweepBalanced:
		d.DetectAllWithBalancedXY()
	default:
		d.DetectSelection(d.selP1, d.selP2)
	}
}

func (d *Detector) startSweep(mode sweepMode) {
	d.sweep = mode
	d.multi, d.valid, d.rejected = nil, nil, nil
	d.field.SetMasking(true)
	d.field.ClearMask()
	d.trials = 0
}

func (d *Detector) endOfSweep() {
	d.endOfMulti()
	if d.filter != nil {
		d.valid, d.rejected = d.filter.Filter(d.multi)
	}
	d.log.Info().
		Int("detections", len(d.multi)).
		Int("valid", len(d.valid)).
		Int("rejected", len(d.rejected)).
		Int("trials", d.trials).
		Msg("image sweep done")
}

func (d *Detector) endOfMulti() {
	if d.opts.MaxDetections > len(d.multi) {
		d.opts.MaxDetections = 0
	}
	d.field.SetMasking(false)
}

// detectMulti detects segments from every free local maximum along p1p2,
// masking each one found. It reports false once MaxDetections is reached.
func (d *Detector) detectMulti(p1, p2 geom.Point) bool {
	d.stroke = p1.DrawTo(p2, d.stroke[:0])
	d.locmax = d.field.LocalMax(d.stroke, d.locmax[:0])

	next := true
	for i := 0; next && i < len(d.locmax); i++ {
		start := d.stroke[d.locmax[i]]
		if !d.field.IsFree(start) {
			continue
		}
		saved := d.opts.OppositeGradient
		d.opts.OppositeGradient = false
		runs := 1
		if d.opts.DualEdgeMulti && d.field.OrientationConstraint() {
			runs = 2
		}
		for ; next && runs != 0; runs-- {
			if d.detectSingle(p1, p2, true, start) == OK {
				d.field.SetMask(d.bsf.Points())
				d.multi = append(d.multi, d.bsf)
				d.bsf = nil
				if len(d.multi) == d.opts.MaxDetections {
					next = false
				}
			}
			d.opts.OppositeGradient = !d.opts.OppositeGradient
			d.trials++
		}
		d.opts.OppositeGradient = saved
	}
	return next
}

func (d *Detector) detectSingle(p1, p2 geom.Point, centralp bool, pc geom.Point) Result {
	res := d.track(p1, p2, centralp, pc)
	if e := d.log.Debug(); e.Enabled() {
		n := 0
		if s := d.stageSegment(res.Stage()); s != nil {
			n = s.Size()
		}
		e.Stringer("stage", res.Stage()).
			Stringer("result", res).
			Int("points", n).
			Msg("single detection")
	}
	return res
}

// track runs the preliminary, initial and final passes.
func (d *Detector) track(p1, p2 geom.Point, centralp bool, pc geom.Point) Result {
	if p1 == p2 || (!centralp && p1.Chessboard(p2) < tracker.MinScan) {
		return Void
	}
	d.bspre, d.bsini, d.bsf = nil, nil, nil
	width := 0
	if centralp {
		width = FastTrackScanWidth
	}
	fastWidth := d.opts.AssignedThickness + FastTrackMargin
	lacks := d.opts.AcceptedLacks

	d.preIn = ScanInput{P1: p1, P2: p2, Width: width, Center: pc}
	d.iniIn = d.preIn
	if d.opts.Preliminary {
		d.bspre = d.prelim.FastTrack(p1, p2, fastWidth, lacks, width, pc)
		if d.bspre == nil {
			return PrelimNoDetection
		}
		if d.bspre.Size() < d.opts.InitialMinSize {
			return PrelimTooFew
		}
		if in, ok := recentre(d.bspre, p1, p2); ok {
			d.iniIn = in
		}
	}

	in := d.iniIn
	d.bsini = d.initial.FastTrack(in.P1, in.P2, fastWidth, lacks, in.Width, in.Center)
	if d.bsini == nil {
		return InitialNoDetection
	}
	if d.bsini.Size() < d.opts.InitialMinSize {
		return InitialTooFew
	}
	if d.opts.InitialSparsityTest && d.bsini.Size() < d.bsini.Extent()/2 {
		return InitialTooSparse
	}
	dir := d.bsini.SupportVector()
	if dir.OrientedAs(in.P1.VectorTo(in.P2)) {
		return InitialCloseOrientation
	}

	gref := d.field.GradientAt(d.bsini.Center())
	if d.opts.OppositeGradient && d.field.OrientationConstraint() {
		gref = gref.Invert()
	}
	center := d.bsini.CenterOfIntersection(in.P1, in.P2)

	d.bsf = d.final.FineTrack(center, dir, d.opts.AssignedThickness, lacks, gref)
	if d.bsf == nil {
		return FinalNoDetection
	}
	if d.bsf.Size() < d.opts.InitialMinSize {
		return FinalTooFew
	}
	if d.opts.FinalSizeTest && d.bsf.Size() < d.opts.FinalMinSize {
		return FinalTooSmall
	}
	if d.opts.FinalSparsityTest && d.bsf.Size() < d.bsf.Extent()*4/5 {
		return FinalTooSparse
	}
	return OK
}

// recentre builds the initial stroke across a preliminary segment: centred
// where the segment crosses p1p2, orthogonal to the segment, and wide enough
// for its thickness.
func recentre(bs *segment.BlurredSegment, p1, p2 geom.Point) (ScanInput, bool) {
	v := bs.SupportVector()
	l := v.Chessboard()
	if l == 0 {
		return ScanInput{}, false
	}
	c := bs.CenterOfIntersection(p1, p2)
	w := max(2*(1+bs.MinimalWidth().Floor()), PrelimMinHalfWidth)
	dx := (v.Y * w) / l
	dy := -(v.X * w) / l
	return ScanInput{P1: geom.Pt(c.X+dx, c.Y+dy), P2: geom.Pt(c.X-dx, c.Y-dy)}, true
}

func (d *Detector) stageSegment(s Step) *segment.BlurredSegment {
	switch s {
	case StepPrelim:
		return d.bspre
	case StepInitial:
		return d.bsini
	case StepFinal:
		return d.bsf
	}
	return nil
}

// Segment returns the segment of the given pass of the last detection. For
// the final pass after a multi detection, it is the last segment found.
func (d *Detector) Segment(s Step) *segment.BlurredSegment {
	if s == StepFinal && len(d.multi) != 0 {
		return d.multi[len(d.multi)-1]
	}
	return d.stageSegment(s)
}

// ScanInput returns the stroke the given fast track pass ran on. It reports
// false for the final pass and for a disabled preliminary pass.
func (d *Detector) ScanInput(s Step) (ScanInput, bool) {
	switch s {
	case StepPrelim:
		return d.preIn, d.opts.Preliminary
	case StepInitial:
		return d.iniIn, true
	}
	return ScanInput{}, false
}

// Segments returns the output of the last multi detection.
func (d *Detector) Segments() []*segment.BlurredSegment { return d.multi }

// ValidSegments returns the multi detection output passing the NFA test.
// It is empty when the NFA filter is off.
func (d *Detector) ValidSegments() []*segment.BlurredSegment { return d.valid }

// RejectedSegments returns the multi detection output failing the NFA test.
func (d *Detector) RejectedSegments() []*segment.BlurredSegment { return d.rejected }

// DigitalStraightSegments returns the fitted segments of the last detection:
// every multi detection output, or the final segment of a single detection.
func (d *Detector) DigitalStraightSegments() []segment.DigitalStraightSegment {
	src := d.multi
	if len(src) == 0 && d.bsf != nil {
		src = []*segment.BlurredSegment{d.bsf}
	}
	dss := make([]segment.DigitalStraightSegment, 0, len(src))
	for _, bs := range src {
		dss = append(dss, bs.Segment())
	}
	return dss
}

// Trials returns the number of single detections run by the last multi
// detection.
func (d *Detector) Trials() int { return d.trials }

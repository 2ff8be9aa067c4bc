package detection

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/gradient"
)

func newField(t *testing.T, width, height int, level func(x, y int) int) *gradient.Field {
	t.Helper()
	levels := make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			levels[y*width+x] = level(x, y)
		}
	}
	f, err := gradient.NewField(width, height, levels, gradient.Sobel3x3)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

// createRampField returns a 60x60 field with a one pixel wide vertical ramp
// on column 30, where the gradient ridge lies.
func createRampField(t *testing.T) *gradient.Field {
	return newField(t, 60, 60, func(x, y int) int {
		switch {
		case x < 30:
			return 0
		case x == 30:
			return 100
		}
		return 200
	})
}

// createDiagonalField returns a 54x54 field bright above the main diagonal.
// Its ridge covers the pixels where x-y is 0 or 1.
func createDiagonalField(t *testing.T) *gradient.Field {
	return newField(t, 54, 54, func(x, y int) int {
		if x > y {
			return 200
		}
		return 0
	})
}

// createDiagonalRampField returns a 54x54 field dark below the main
// diagonal, bright above it, with a mid grey diagonal between. Its ridge is
// the diagonal itself; anti-diagonal scans that miss it meet two equal
// pixels on each side.
func createDiagonalRampField(t *testing.T) *gradient.Field {
	return newField(t, 54, 54, func(x, y int) int {
		switch {
		case x > y:
			return 200
		case x == y:
			return 100
		}
		return 0
	})
}

// createSquareField returns a 60x60 field with a bright square on
// [15,44]x[15,44].
func createSquareField(t *testing.T) *gradient.Field {
	return newField(t, 60, 60, func(x, y int) int {
		if x >= 15 && x <= 44 && y >= 15 && y <= 44 {
			return 200
		}
		return 0
	})
}

func createFlatField(t *testing.T) *gradient.Field {
	return newField(t, 60, 60, func(x, y int) int { return 90 })
}

func TestDetectSingleRamp(t *testing.T) {
	tests := []struct {
		name        string
		preliminary bool
	}{
		{"without preliminary pass", false},
		{"with preliminary pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Preliminary = tt.preliminary
			d := New(createRampField(t), opts)

			if res := d.DetectSingle(geom.Pt(10, 30), geom.Pt(50, 30)); res != OK {
				t.Fatalf("DetectSingle = %v, want OK", res)
			}
			bs := d.Segment(StepFinal)
			if bs == nil {
				t.Fatal("no final segment")
			}
			if bs.Size() < 45 {
				t.Errorf("final size = %d, want at least 45", bs.Size())
			}
			if w := bs.MinimalWidth().Floor(); w != 0 {
				t.Errorf("strict thickness floor = %d, want 0", w)
			}
			for _, p := range bs.Points() {
				if p.X != 30 {
					t.Errorf("point %v off the ramp", p)
				}
			}
			if d.Segment(StepInitial) == nil {
				t.Error("no initial segment")
			}
			if got := d.Segment(StepPrelim) != nil; got != tt.preliminary {
				t.Errorf("preliminary segment present = %v, want %v", got, tt.preliminary)
			}
			if _, ok := d.ScanInput(StepPrelim); ok != tt.preliminary {
				t.Errorf("preliminary scan input reported = %v", ok)
			}
		})
	}
}

func TestDetectSingleDiagonal(t *testing.T) {
	tests := []struct {
		name   string
		field  func(*testing.T) *gradient.Field
		lo, hi int
	}{
		{name: "step", field: createDiagonalField, lo: 0, hi: 1},
		{name: "one pixel ramp", field: createDiagonalRampField, lo: -1, hi: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.field(t), DefaultOptions())

			if res := d.DetectSingle(geom.Pt(17, 37), geom.Pt(37, 17)); res != OK {
				t.Fatalf("DetectSingle = %v, want OK", res)
			}
			bs := d.Segment(StepFinal)
			if bs.Size() < 45 {
				t.Errorf("final size = %d, want at least 45", bs.Size())
			}
			// Scans across a 45 degree edge alternate between two
			// neighbouring diagonals, giving a staircase of strict
			// thickness 1 rather than a single pixel line.
			if w := bs.MinimalWidth().Floor(); w > 1 {
				t.Errorf("strict thickness floor = %d, want at most 1", w)
			}
			for _, p := range bs.Points() {
				if diff := p.X - p.Y; diff < tt.lo || diff > tt.hi {
					t.Errorf("point %v off the ridge", p)
				}
			}
			if bs.Line().Thickness().GreaterThan(geom.NewExactDistance(3, 1)) {
				t.Errorf("digital thickness %v above assigned thickness", bs.Line().Thickness())
			}
		})
	}
}

func TestDetectSingleFailures(t *testing.T) {
	tests := []struct {
		name   string
		field  func(t *testing.T) *gradient.Field
		prelim bool
		noTest bool
		p1, p2 geom.Point
		want   Result
	}{
		{
			name:  "equal points",
			field: createRampField,
			p1:    geom.Pt(20, 20), p2: geom.Pt(20, 20),
			want: Void,
		},
		{
			name:  "stroke too short",
			field: createRampField,
			p1:    geom.Pt(27, 30), p2: geom.Pt(33, 30),
			want: Void,
		},
		{
			name:  "flat image",
			field: createFlatField,
			p1:    geom.Pt(10, 30), p2: geom.Pt(50, 30),
			want: InitialNoDetection,
		},
		{
			name:   "flat image with preliminary pass",
			field:  createFlatField,
			prelim: true,
			p1:     geom.Pt(10, 30), p2: geom.Pt(50, 30),
			want: PrelimNoDetection,
		},
		{
			name:   "stroke close to the edge direction",
			field:  createRampField,
			noTest: true,
			p1:     geom.Pt(20, 10), p2: geom.Pt(40, 50),
			want: InitialCloseOrientation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Preliminary = tt.prelim
			if tt.noTest {
				opts.InitialSparsityTest = false
			}
			d := New(tt.field(t), opts)

			res := d.DetectSingle(tt.p1, tt.p2)
			if res != tt.want {
				t.Fatalf("DetectSingle = %v, want %v", res, tt.want)
			}
			if d.Result() != res {
				t.Errorf("Result() = %v, want %v", d.Result(), res)
			}
			if d.Segment(StepFinal) != nil {
				t.Error("final segment kept after a failure")
			}
		})
	}
}

func TestDetectSingleIsRepeatable(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())

	d.DetectSingle(geom.Pt(10, 30), geom.Pt(50, 30))
	first := d.Segment(StepFinal).Points()
	d.DetectSingle(geom.Pt(10, 30), geom.Pt(50, 30))
	second := d.Segment(StepFinal).Points()

	if len(first) != len(second) {
		t.Fatalf("sizes differ: %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs: %v and %v", i, first[i], second[i])
		}
	}
}

func TestDetectSingleFrom(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())

	res := d.DetectSingleFrom(geom.Pt(0, 30), geom.Pt(59, 30), geom.Pt(30, 30))
	if res != OK {
		t.Fatalf("DetectSingleFrom = %v, want OK", res)
	}
	in, ok := d.ScanInput(StepInitial)
	if !ok || in.Width != FastTrackScanWidth || in.Center != geom.Pt(30, 30) {
		t.Errorf("initial scan input = %+v, %v", in, ok)
	}
}

func TestDetectAllSquare(t *testing.T) {
	tests := []struct {
		name   string
		detect func(d *Detector)
	}{
		{"sequential", (*Detector).DetectAll},
		{"balanced", (*Detector).DetectAllWithBalancedXY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := createSquareField(t)
			d := New(field, DefaultOptions())
			tt.detect(d)

			segs := d.Segments()
			if len(segs) == 0 {
				t.Fatal("no segment detected")
			}
			if d.Trials() < len(segs) {
				t.Errorf("trials = %d for %d segments", d.Trials(), len(segs))
			}
			if field.Masking() {
				t.Error("masking left on after the sweep")
			}

			seen := make(map[geom.Point]bool)
			for _, bs := range segs {
				if bs.Size() < MinSize {
					t.Errorf("segment of size %d", bs.Size())
				}
				for _, p := range bs.Points() {
					if seen[p] {
						t.Errorf("point %v claimed twice", p)
					}
					seen[p] = true
					if field.IsFree(p) {
						t.Errorf("point %v not masked", p)
					}
				}
			}

			orients := make(map[string]int)
			for _, l := range d.Lines(0).Lines {
				orients[l.Orientation]++
			}
			if orients["horizontal"] == 0 || orients["vertical"] == 0 {
				t.Errorf("orientations = %v, want both horizontal and vertical", orients)
			}
			if got := len(d.DigitalStraightSegments()); got != len(segs) {
				t.Errorf("DigitalStraightSegments = %d, want %d", got, len(segs))
			}
		})
	}
}

func TestDetectAllMaxDetections(t *testing.T) {
	d := New(createSquareField(t), DefaultOptions())
	d.SetMaxDetections(1)
	d.DetectAll()

	if got := len(d.Segments()); got != 1 {
		t.Fatalf("detections = %d, want 1", got)
	}
	if d.MaxDetections() != 1 {
		t.Errorf("MaxDetections = %d, want 1", d.MaxDetections())
	}

	d.SetMaxDetections(50)
	d.DetectAll()
	if d.MaxDetections() != 0 {
		t.Errorf("unreached MaxDetections not reset: %d", d.MaxDetections())
	}
}

func TestDetectAllWithNFA(t *testing.T) {
	opts := DefaultOptions()
	opts.NFA = true
	d := New(createSquareField(t), opts)
	d.DetectAll()

	valid, rejected := d.ValidSegments(), d.RejectedSegments()
	if len(valid)+len(rejected) != len(d.Segments()) {
		t.Errorf("valid %d + rejected %d != detections %d",
			len(valid), len(rejected), len(d.Segments()))
	}
	if len(valid) == 0 {
		t.Error("no square side passed the NFA test")
	}
	lines := d.Lines(0)
	if lines.Count > len(valid) {
		t.Errorf("lines = %d, more than valid segments %d", lines.Count, len(valid))
	}

	d.SetNFA(false)
	if d.NFA() {
		t.Error("NFA still on")
	}
	d.DetectAll()
	if len(d.ValidSegments()) != 0 {
		t.Error("valid segments reported with NFA off")
	}
}

func TestDetectSelection(t *testing.T) {
	d := New(createSquareField(t), DefaultOptions())

	d.DetectSelection(geom.Pt(30, 2), geom.Pt(30, 57))
	if d.Result() != OK {
		t.Fatalf("single selection = %v, want OK", d.Result())
	}
	if len(d.Segments()) != 0 {
		t.Errorf("single selection filled %d multi segments", len(d.Segments()))
	}

	d.SwitchMultiSelection()
	d.DetectSelection(geom.Pt(30, 2), geom.Pt(30, 57))
	if got := len(d.Segments()); got < 2 {
		t.Errorf("multi selection found %d segments, want the top and bottom sides", got)
	}

	d.Redetect()
	if got := len(d.Segments()); got < 2 {
		t.Errorf("redetection found %d segments", got)
	}
}

func TestFinalScansRecord(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())
	d.DetectSelection(geom.Pt(10, 30), geom.Pt(50, 30))
	if len(d.FinalScans()) != 0 {
		t.Fatal("scans recorded while off")
	}

	d.SetFinalScansRecord(true)
	if !d.FinalScansRecord() {
		t.Fatal("recording not on")
	}
	if len(d.FinalScans()) == 0 {
		t.Error("no scan recorded after redetection")
	}

	d.SetFinalScansRecord(false)
	if len(d.FinalScans()) != 0 {
		t.Error("scans kept after switching recording off")
	}
}

func TestSetField(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())
	d.DetectSingle(geom.Pt(10, 30), geom.Pt(50, 30))

	flat := createFlatField(t)
	d.SetField(flat)
	if d.Field() != flat {
		t.Fatal("field not replaced")
	}
	if d.Result() != Undetermined || d.Segment(StepFinal) != nil {
		t.Error("former results kept")
	}
	if flat.GradientThreshold() != d.Sensitivity() {
		t.Error("field options not applied to the new field")
	}
}

func TestSettingsClamp(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())

	d.SetAssignedThickness(0)
	if d.AssignedThickness() != 3 {
		t.Errorf("AssignedThickness = %d, want 3", d.AssignedThickness())
	}
	d.SetAcceptedLacks(-1)
	if d.AcceptedLacks() != 5 {
		t.Errorf("AcceptedLacks = %d, want 5", d.AcceptedLacks())
	}
	d.SetInitialMinSize(1)
	if d.InitialMinSize() != MinSize {
		t.Errorf("InitialMinSize = %d, want %d", d.InitialMinSize(), MinSize)
	}

	if !d.SetSweepStep(6) || d.SweepStep() != 6 {
		t.Errorf("SweepStep = %d, want 6", d.SweepStep())
	}
	if d.SetSweepStep(7) {
		t.Error("SetSweepStep(7) accepted on a 60 pixel wide field")
	}
	if d.SweepStep() != 6 {
		t.Errorf("SweepStep = %d, want 6 after a too large step", d.SweepStep())
	}
	if d.SetSweepStep(0) {
		t.Error("SetSweepStep(0) accepted")
	}

	d.SetNFALengthRatio(5)
	if d.NFALengthRatio() != 3 {
		t.Errorf("NFALengthRatio = %v, want 3", d.NFALengthRatio())
	}

	for d.FragmentMinSize() > 1 {
		d.IncFragmentMinSize(false)
	}
	if d.IncFragmentMinSize(false) {
		t.Error("fragment min size went below 1")
	}

	d.SwitchFinalSizeTest()
	if d.FinalMinSize() != MinSize {
		t.Errorf("FinalMinSize without test = %d", d.FinalMinSize())
	}

	d.SwitchSingleOrDoubleEdge()
	if d.SingleEdge() {
		t.Fatal("still in single edge mode")
	}
	if d.SwitchOppositeGradient() {
		t.Error("opposite gradient switched in double edge mode")
	}

	d.SetMaxDetections(-4)
	if d.MaxDetections() != 0 {
		t.Errorf("MaxDetections = %d, want 0", d.MaxDetections())
	}
}

func TestApplyOptions(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())

	opts := DefaultOptions()
	opts.AssignedThickness = 7
	opts.GradientThreshold = 30
	opts.MaskDilation = 6
	opts.SingleEdge = false
	opts.OppositeGradient = true
	d.Apply(opts)

	got := d.Options()
	if got.AssignedThickness != 7 {
		t.Errorf("AssignedThickness = %d", got.AssignedThickness)
	}
	if d.Sensitivity() != 30 || got.GradientThreshold != 30 {
		t.Errorf("gradient threshold = %d / %d", d.Sensitivity(), got.GradientThreshold)
	}
	if got.MaskDilation != DefaultOptions().MaskDilation {
		t.Errorf("invalid dilation accepted: %d", got.MaskDilation)
	}
	if got.OppositeGradient {
		t.Error("opposite gradient set in double edge mode")
	}
}

func TestDetectionLogging(t *testing.T) {
	var buf bytes.Buffer
	d := New(createSquareField(t), DefaultOptions())
	d.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	d.DetectSingle(geom.Pt(30, 2), geom.Pt(30, 57))
	out := buf.String()
	if !strings.Contains(out, `"message":"single detection"`) || !strings.Contains(out, `"result":"OK"`) {
		t.Errorf("single detection not logged: %s", out)
	}

	buf.Reset()
	d.DetectAll()
	if !strings.Contains(buf.String(), `"message":"image sweep done"`) {
		t.Errorf("sweep not logged: %s", buf.String())
	}
}

func TestResultString(t *testing.T) {
	tests := []struct {
		res   Result
		name  string
		stage Step
	}{
		{OK, "OK", StepFinal},
		{Void, "VOID", -1},
		{Undetermined, "UNDETERMINED", -1},
		{PrelimTooFew, "PRELIM_TOO_FEW", StepPrelim},
		{InitialCloseOrientation, "INITIAL_CLOSE_ORIENTATION", StepInitial},
		{FinalTooSmall, "FINAL_TOO_SMALL", StepFinal},
		{Result(99), "UNKNOWN", -1},
	}

	for _, tt := range tests {
		if got := tt.res.String(); got != tt.name {
			t.Errorf("String(%d) = %q, want %q", int(tt.res), got, tt.name)
		}
		if got := tt.res.Stage(); got != tt.stage {
			t.Errorf("Stage(%v) = %v, want %v", tt.res, got, tt.stage)
		}
	}
	if Step(-1).String() != "none" {
		t.Errorf("Step(-1) = %q", Step(-1).String())
	}
}

func TestRecentre(t *testing.T) {
	d := New(createRampField(t), DefaultOptions())
	if res := d.DetectSingle(geom.Pt(10, 30), geom.Pt(50, 30)); res != OK {
		t.Fatalf("DetectSingle = %v", res)
	}

	in, ok := recentre(d.Segment(StepInitial), geom.Pt(10, 30), geom.Pt(50, 30))
	if !ok {
		t.Fatal("recentre failed")
	}
	// Vertical support: the new stroke is horizontal, PrelimMinHalfWidth
	// pixels on each side of the crossing.
	if in.P1.Y != 30 || in.P2.Y != 30 {
		t.Errorf("stroke %v-%v not on row 30", in.P1, in.P2)
	}
	if got := in.P1.Chessboard(in.P2); got != 2*PrelimMinHalfWidth {
		t.Errorf("stroke length = %d, want %d", got, 2*PrelimMinHalfWidth)
	}
}

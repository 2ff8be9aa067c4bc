package detection

import (
	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/nfa"
)

// AssignedThickness returns the maximal width of final segments.
func (d *Detector) AssignedThickness() int { return d.opts.AssignedThickness }

// SetAssignedThickness sets the maximal width; values below 1 are ignored.
func (d *Detector) SetAssignedThickness(val int) {
	if val > 0 {
		d.opts.AssignedThickness = val
	}
}

// AcceptedLacks returns the tolerated number of consecutive empty scans.
func (d *Detector) AcceptedLacks() int { return d.opts.AcceptedLacks }

// SetAcceptedLacks sets the lack tolerance; negative values are ignored.
func (d *Detector) SetAcceptedLacks(n int) {
	if n >= 0 {
		d.opts.AcceptedLacks = n
	}
}

// InitialMinSize returns the minimal size of initial segments.
func (d *Detector) InitialMinSize() int { return d.opts.InitialMinSize }

// SetInitialMinSize sets the minimal size of initial segments, at least
// MinSize.
func (d *Detector) SetInitialMinSize(val int) {
	d.opts.InitialMinSize = max(val, MinSize)
}

// FinalMinSize returns the minimal size of final segments, MinSize when the
// size test is off.
func (d *Detector) FinalMinSize() int {
	if !d.opts.FinalSizeTest {
		return MinSize
	}
	return d.opts.FinalMinSize
}

// SetFinalMinSize sets the minimal size of final segments, at least MinSize.
func (d *Detector) SetFinalMinSize(val int) {
	d.opts.FinalMinSize = max(val, MinSize)
}

// FragmentMinSize returns the minimal size of segment fragments.
func (d *Detector) FragmentMinSize() int { return d.opts.FragmentMinSize }

// IncFragmentMinSize changes the fragment minimal size by one. It reports
// false when the size cannot go below 1.
func (d *Detector) IncFragmentMinSize(inc bool) bool {
	if !inc && d.opts.FragmentMinSize <= 1 {
		return false
	}
	if inc {
		d.opts.FragmentMinSize++
	} else {
		d.opts.FragmentMinSize--
	}
	return true
}

// Sensitivity returns the gradient threshold of the field.
func (d *Detector) Sensitivity() int { return d.field.GradientThreshold() }

// IncSensitivity shifts the gradient threshold of the field.
func (d *Detector) IncSensitivity(inc int) {
	d.field.IncGradientThreshold(inc)
	d.opts.GradientThreshold = d.field.GradientThreshold()
}

// GradientResolution returns the local max contrast of the field.
func (d *Detector) GradientResolution() int { return d.field.GradientResolution() }

// IncGradientResolution shifts the local max contrast by inc steps.
func (d *Detector) IncGradientResolution(inc int) {
	d.field.IncGradientResolution(inc)
	d.opts.GradientResolution = d.field.GradientResolution()
}

// SweepStep returns the distance between sweep strokes.
func (d *Detector) SweepStep() int { return d.opts.SweepStep }

// SetSweepStep sets the sweep step and reports whether n was accepted.
// Values outside 1..width/8 (exclusive) leave the step unchanged.
func (d *Detector) SetSweepStep(n int) bool {
	if n > 0 && n < d.field.Width()/8 {
		d.opts.SweepStep = n
		return true
	}
	return false
}

// Preliminary reports whether the preliminary pass is on.
func (d *Detector) Preliminary() bool { return d.opts.Preliminary }

// SwitchPreliminary toggles the preliminary pass.
func (d *Detector) SwitchPreliminary() { d.opts.Preliminary = !d.opts.Preliminary }

// OppositeGradient reports whether edges of opposite gradient are tracked.
func (d *Detector) OppositeGradient() bool { return d.opts.OppositeGradient }

// SwitchOppositeGradient toggles the tracked gradient direction. It only
// works in single edge mode and reports whether it did.
func (d *Detector) SwitchOppositeGradient() bool {
	if !d.field.OrientationConstraint() {
		return false
	}
	d.opts.OppositeGradient = !d.opts.OppositeGradient
	return true
}

// SingleEdge reports whether only gradients directed as the reference are
// tracked.
func (d *Detector) SingleEdge() bool { return d.field.OrientationConstraint() }

// SwitchSingleOrDoubleEdge toggles the single edge mode.
func (d *Detector) SwitchSingleOrDoubleEdge() {
	d.field.SwitchOrientationConstraint()
	d.opts.SingleEdge = d.field.OrientationConstraint()
}

// DualEdgeMulti reports whether multi detections try both polarities from
// each local maximum.
func (d *Detector) DualEdgeMulti() bool { return d.opts.DualEdgeMulti }

// SwitchSingleOrDoubleMultiDetection toggles DualEdgeMulti.
func (d *Detector) SwitchSingleOrDoubleMultiDetection() {
	d.opts.DualEdgeMulti = !d.opts.DualEdgeMulti
}

// MultiSelection reports whether DetectSelection runs a multi detection.
func (d *Detector) MultiSelection() bool { return d.opts.MultiSelection }

// SwitchMultiSelection toggles MultiSelection.
func (d *Detector) SwitchMultiSelection() { d.opts.MultiSelection = !d.opts.MultiSelection }

// InitialSparsityTest reports whether sparse initial segments are rejected.
func (d *Detector) InitialSparsityTest() bool { return d.opts.InitialSparsityTest }

// SwitchInitialSparsityTest toggles InitialSparsityTest.
func (d *Detector) SwitchInitialSparsityTest() {
	d.opts.InitialSparsityTest = !d.opts.InitialSparsityTest
}

// FinalSparsityTest reports whether sparse final segments are rejected.
func (d *Detector) FinalSparsityTest() bool { return d.opts.FinalSparsityTest }

// SwitchFinalSparsityTest toggles FinalSparsityTest.
func (d *Detector) SwitchFinalSparsityTest() {
	d.opts.FinalSparsityTest = !d.opts.FinalSparsityTest
}

// FinalSizeTest reports whether small final segments are rejected.
func (d *Detector) FinalSizeTest() bool { return d.opts.FinalSizeTest }

// SwitchFinalSizeTest toggles FinalSizeTest.
func (d *Detector) SwitchFinalSizeTest() { d.opts.FinalSizeTest = !d.opts.FinalSizeTest }

// MaxDetections returns the multi detection cap, 0 for none.
func (d *Detector) MaxDetections() int { return d.opts.MaxDetections }

// SetMaxDetections sets the multi detection cap; negative values mean none.
func (d *Detector) SetMaxDetections(n int) { d.opts.MaxDetections = max(n, 0) }

// ResetMaxDetections removes the multi detection cap.
func (d *Detector) ResetMaxDetections() { d.opts.MaxDetections = 0 }

// IncMaxDetections lowers the cap by one when dec is set, raises it
// otherwise. Going below 0 wraps to the last detection count.
func (d *Detector) IncMaxDetections(dec bool) {
	if dec {
		d.opts.MaxDetections--
	} else {
		d.opts.MaxDetections++
	}
	if d.opts.MaxDetections < 0 {
		d.opts.MaxDetections = len(d.multi)
	}
}

// NFA reports whether multi detection output is filtered.
func (d *Detector) NFA() bool { return d.filter != nil }

// SetNFA turns the NFA filter on or off.
func (d *Detector) SetNFA(on bool) {
	d.opts.NFA = on
	if !on {
		d.filter = nil
		return
	}
	if d.filter == nil {
		d.filter = nfa.New()
		d.filter.SetLengthRatio(d.opts.NFALengthRatio)
		d.filter.Init(d.field)
	}
}

// SwitchNFA toggles the NFA filter.
func (d *Detector) SwitchNFA() { d.SetNFA(d.filter == nil) }

// NFALengthRatio returns the NFA length ratio.
func (d *Detector) NFALengthRatio() float64 { return d.opts.NFALengthRatio }

// SetNFALengthRatio sets the NFA length ratio, within 1..3 by steps of 0.05.
func (d *Detector) SetNFALengthRatio(r float64) {
	f := d.filter
	if f == nil {
		f = nfa.New()
	}
	f.SetLengthRatio(r)
	d.opts.NFALengthRatio = f.LengthRatio()
}

// IncNFALengthRatio shifts the NFA length ratio by inc steps.
func (d *Detector) IncNFALengthRatio(inc int) {
	d.SetNFALengthRatio(d.opts.NFALengthRatio + float64(inc)*nfa.LengthRatioStep)
}

// FinalScansRecord reports whether the final pass records its scans.
func (d *Detector) FinalScansRecord() bool { return d.final.RecordScans() }

// SetFinalScansRecord turns final scan recording on or off. Turning it on
// runs the last detection again to fill the record.
func (d *Detector) SetFinalScansRecord(on bool) {
	d.final.SetRecordScans(on)
	if on {
		d.Redetect()
	}
}

// FinalScans returns the scans recorded by the final pass.
func (d *Detector) FinalScans() [][]geom.Point { return d.final.Scans() }

// SwitchInitialBounding toggles the initial fast track scan extent between
// its default and the image size.
func (d *Detector) SwitchInitialBounding() { d.initial.SwitchScanExtent() }

// InitialDetectionMaxExtent returns the number of initial fast track steps
// per side.
func (d *Detector) InitialDetectionMaxExtent() int { return d.initial.MaxScan() }

// FastTrackProximityConstraint reports whether the initial fast track
// rejects distant points.
func (d *Detector) FastTrackProximityConstraint() bool {
	return d.initial.ProximityConstraint()
}

// SwitchFastTrackProximityConstraint toggles the initial fast track
// proximity test.
func (d *Detector) SwitchFastTrackProximityConstraint() {
	d.initial.SwitchProximityConstraint()
}

// FastTrackProximityThreshold returns the initial fast track proximity
// distance.
func (d *Detector) FastTrackProximityThreshold() int { return d.initial.ProximityThreshold() }

// IncFastTrackProximityThreshold changes the proximity distance by one.
func (d *Detector) IncFastTrackProximityThreshold(inc bool) {
	d.initial.IncProximityThreshold(inc)
}

// ThicknessControlDelay returns the final pass assigned thickness control
// delay.
func (d *Detector) ThicknessControlDelay() int { return d.final.ThicknessControlDelay() }

// IncThicknessControlDelay shifts the assigned thickness control delay.
func (d *Detector) IncThicknessControlDelay(val int) {
	d.final.IncThicknessControlDelay(val)
}

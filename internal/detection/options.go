package detection

import (
	"github.com/ironsheep/blurred-segments/internal/gradient"
	"github.com/ironsheep/blurred-segments/internal/nfa"
)

const (
	// Version is the detector version.
	Version = "1.3.0"

	// FastTrackScanWidth is the strip width of fast tracks started from a
	// local maximum during multi detection.
	FastTrackScanWidth = 16
	// FastTrackMargin is added to the assigned thickness in fast tracks.
	FastTrackMargin = 2
	// MinSize is the smallest size a segment test may require.
	MinSize = 3
	// PrelimMinHalfWidth is the smallest half width of the strip built from
	// a preliminary segment.
	PrelimMinHalfWidth = 10
	// AxisTolerance is the largest coordinate difference between the end
	// points of a segment reported as horizontal or vertical.
	AxisTolerance = 4
)

// Options holds the detector tunables. All of them can be changed later
// through Detector setters.
type Options struct {
	// AssignedThickness is the maximal width of final segments.
	AssignedThickness int `json:"assigned_thickness"`
	// AcceptedLacks is the number of consecutive scans without a point
	// tolerated before a side stops growing.
	AcceptedLacks int `json:"accepted_lacks"`
	// Preliminary adds a first fast track that recentres the stroke.
	Preliminary bool `json:"preliminary"`

	InitialMinSize      int  `json:"initial_min_size"`
	InitialSparsityTest bool `json:"initial_sparsity_test"`
	FinalSizeTest       bool `json:"final_size_test"`
	FinalMinSize        int  `json:"final_min_size"`
	FinalSparsityTest   bool `json:"final_sparsity_test"`
	FragmentMinSize     int  `json:"fragment_min_size"`

	// SingleEdge keeps only gradients pointing the same way as the
	// reference. When off, both edges of a thin line are candidates.
	SingleEdge bool `json:"single_edge"`
	// OppositeGradient tracks edges whose gradient opposes the reference.
	// It only applies with SingleEdge.
	OppositeGradient bool `json:"opposite_gradient"`
	// DualEdgeMulti runs, during multi detection, a second detection of the
	// opposite polarity from each local maximum. It only applies with
	// SingleEdge.
	DualEdgeMulti bool `json:"dual_edge_multi"`
	// MultiSelection makes DetectSelection run a multi detection.
	MultiSelection bool `json:"multi_selection"`

	// SweepStep is the distance between two strokes of a whole image sweep.
	SweepStep int `json:"sweep_step"`
	// MaxDetections stops multi detections after that many segments;
	// 0 means no limit.
	MaxDetections int `json:"max_detections"`

	// NFA filters multi detection output with the a contrario test.
	NFA            bool    `json:"nfa"`
	NFALengthRatio float64 `json:"nfa_length_ratio"`

	GradientThreshold  int `json:"gradient_threshold"`
	GradientResolution int `json:"gradient_resolution"`
	// MaskDilation is the number of neighbours claimed around each pixel of
	// a detected segment: 0, 4, 8, 12 or 20.
	MaskDilation int `json:"mask_dilation"`
}

// DefaultOptions returns the standard detector settings.
func DefaultOptions() Options {
	return Options{
		AssignedThickness:   3,
		AcceptedLacks:       5,
		InitialMinSize:      MinSize,
		InitialSparsityTest: true,
		FinalSizeTest:       true,
		FinalMinSize:        MinSize,
		FragmentMinSize:     5,
		SingleEdge:          true,
		SweepStep:           5,
		NFALengthRatio:      nfa.DefaultLengthRatio,
		GradientThreshold:   gradient.DefaultGradientThreshold,
		GradientResolution:  gradient.DefaultGradientResolution,
		MaskDilation:        20,
	}
}

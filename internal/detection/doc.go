// Package detection finds blurred segments in a gradient field.
//
// A blurred segment is a run of edge pixels that fits inside a digital
// straight line of bounded thickness. The Detector is the entry point: it
// runs the trackers along user strokes or sweeps the whole image, and keeps
// the results for reporting.
//
// # Single Detection
//
// DetectSingle works on a stroke drawn across an edge. It runs up to three
// passes:
//
//  1. Preliminary (optional): a fast track along the stroke, used only to
//     build a shorter stroke centred on the edge and orthogonal to it
//  2. Initial: a fast track keeping the strongest pixel of each scan, with a
//     loose width bound
//  3. Final: a fine track along the initial segment, keeping only pixels
//     whose gradient agrees with the one at the initial segment centre
//
// Each pass may reject the detection. The outcome is one of the Result
// values; only OK yields a final segment.
//
// # Multi Detection
//
// DetectAll and DetectAllWithBalancedXY sweep the image with parallel
// vertical and horizontal strokes, SweepStep pixels apart, starting from the
// middle. Every free local maximum along a stroke seeds a single detection.
// Accepted segments are stamped into the field's occupancy mask so that
// later strokes do not detect them again. The sweep stops early once
// MaxDetections segments were found.
//
// When the NFA option is on, the sweep output is split into valid and
// rejected segments with an a contrario test (see package nfa).
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Reports
//
// Lines turns detected segments into Line reports carrying end points,
// length, orientation, density, fitted bounding lines and gradient
// magnitude statistics.
package detection

// Package geom provides the exact integer geometry used by the blurred
// segment detector.
//
// Nothing in this package touches floating point on the detection path:
// points and vectors are plain integer pairs, and distances that must be
// compared (segment thickness, hull width) are kept as rationals.
//
// # Coordinate System
//
// Coordinates follow the image convention used across this module:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Exact Distances
//
// ExactDistance holds a numerator and a denominator. Comparisons
// cross-multiply in 64-bit arithmetic, so ordering is exact for any
// coordinates an image can produce. A zero denominator is allowed while a
// value is being propagated; such a value is never converted to a float by
// the detector.
package geom

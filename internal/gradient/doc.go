// Package gradient builds the gradient vector field of a grey-level image and
// extracts gradient ridges along scan lines.
//
// # Gradient Map
//
// The field is computed once per image with a Sobel operator:
//
//   - Sobel3x3: the classic 3x3 kernel, 1-pixel zero border
//   - Sobel5x5: a wider 5x5 kernel (weights 5,8,10,8,5 / 4,10,20,10,4),
//     2-pixel zero border
//
// Each pixel stores its gradient vector and a magnitude, the integer square
// root of the vector's squared norm. Magnitudes are only ever compared with
// each other or with the magnitude threshold.
//
// # Local Maxima
//
// LocalMax and OrientedLocalMax return indices into a scan, ordered by
// decreasing magnitude. The plain variant merges low-contrast neighbouring
// peaks (see GradientResolution) and drops pixels already claimed in the
// occupancy mask. The oriented variant keeps only candidates whose gradient
// is close in direction to a reference vector.
//
// # Occupancy Mask
//
// Accepted segments are stamped into a boolean mask, with a small dilation
// bowl around each pixel, so that a whole-image sweep does not detect the
// same edge twice. The mask is only reset by ClearMask.
//
// A Field is not safe for concurrent use.
package gradient

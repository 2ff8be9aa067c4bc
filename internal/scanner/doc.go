// Package scanner generates the parallel scan lines along which blurred
// segments are tracked.
//
// A scanner covers a directional strip: a naive digital line (the central
// scan) and its translates on each side, clipped by two bounding lines
// a*x + b*y = c1 and a*x + b*y = c2 and by the image box. Successive calls to
// NextOnLeft and NextOnRight return scans farther from the centre; together
// the scans tile the strip without overlap.
//
// # Octants
//
// Every direction is mapped to a canonical frame where it reads (u, v) with
// u >= v >= 0, by a signed permutation of the axes (see Octant). Stepping is
// done there with integer arithmetic only, and points are mapped back before
// being returned.
//
// # Variants
//
//   - Fixed scanners keep their bounding lines for their whole life.
//   - Adaptive scanners can be re-bound to a new support line with BindTo,
//     which lets the strip follow a drifting segment.
//   - VH scanners handle horizontal and vertical scan directions with a
//     closed-form row computation.
//
// The Provider picks the variant from the requested direction.
package scanner

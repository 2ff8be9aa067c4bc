// Package tracker grows blurred segments by walking a directional strip
// through the gradient field.
//
// # Fast Track
//
// FastTrack scans a fixed strip, either between two stroke end points or of
// a given width around a centre. Each scan contributes at most its single
// strongest pixel, added on the side the scan lies on. A side stops when the
// strip leaves the image or after too many consecutive rejections.
//
// # Fine Track
//
// FineTrack scans an adaptive strip orthogonal to an expected segment
// direction. Each scan offers its oriented local maxima in decreasing
// magnitude order until one is accepted. Once the segment is long enough the
// strip is re-centred on the segment's central line so that tracking follows
// the edge. The assigned width may shrink once the segment thickness is
// stable, and tracking aborts if the segment turns out crosswise.
//
// Failures are reported through Failure flags after each FineTrack call.
//
// A Tracker reuses its scan buffers and is not safe for concurrent use.
package tracker

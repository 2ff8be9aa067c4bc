// Package imaging turns image files into the grey-level buffers the
// blurred segment detector works on, and renders detection results back
// onto images.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Loading
//
// ImageCache decodes PNG, JPEG, GIF, BMP and TIFF files once and keeps them
// in memory, keyed by path. It is safe for concurrent use.
//
// # Grey Levels
//
// GrayLevels converts any image to a row-major []int of levels in 0..255.
// Two conversions are available:
//   - GrayRec601: ITU-R BT.601 luma weights (default)
//   - GrayLab: CIE L* lightness
//
// Smooth applies an optional Gaussian blur first, and CropRegion restricts
// the work to a sub-rectangle. Coordinates found in a cropped image are
// relative to the crop origin.
//
// # Rendering
//
// Overlay draws point sets (detected segments) over an image, MagnitudeMap
// renders a gradient magnitude buffer, and Encode returns any image as a
// base64 PNG for MCP clients.
package imaging

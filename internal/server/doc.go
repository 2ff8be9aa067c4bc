// Package server implements the MCP (Model Context Protocol) server for blurred segment detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the detector
// through the MCP protocol, so that MCP-compatible clients can find the
// straight edges of an image and inspect them.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_crop: Extract rectangular region
//
// Segment Detection:
//   - segments_detect_all: Sweep the whole image and report every segment
//   - segment_detect: Detect the segment crossed by a stroke
//   - segments_overlay: Draw the detected segments over the image
//
// Gradient Diagnostics:
//   - gradient_local_maxima: Candidate edge points along a stroke
//   - gradient_map: Gradient magnitude image
//
// Every detection tool first prepares the image: optional crop (region or
// named_region), scale, Gaussian smoothing and grey level conversion, then
// builds the gradient field with a 3x3 or 5x5 Sobel kernel. Coordinates in
// arguments and results are those of the prepared image; the offset and
// scale fields of each result map them back to the source image.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// Gradient fields are rebuilt on each call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server

package server

import (
	"encoding/json"
	"image"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/blurred-segments/internal/detection"
	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/gradient"
	"github.com/ironsheep/blurred-segments/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "segments_detect_all").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Error().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		return s.errorResponse(req.ID, codeToolFailure, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image from cache and builds its gradient field as needed
//  4. Calls the appropriate imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Segment Detection
	case "segments_detect_all":
		return s.handleSegmentsDetectAll(args)
	case "segment_detect":
		return s.handleSegmentDetect(args)
	case "segments_overlay":
		return s.handleSegmentsOverlay(args)

	// Gradient Diagnostics
	case "gradient_local_maxima":
		return s.handleGradientLocalMaxima(args)
	case "gradient_map":
		return s.handleGradientMap(args)

	default:
		return nil, errors.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	cropped, err := imaging.CropRegion(img, b.Min.X+a.X1, b.Min.Y+a.Y1, b.Min.X+a.X2, b.Min.Y+a.Y2)
	if err != nil {
		return nil, err
	}
	return imaging.Encode(imaging.Scale(cropped, a.Scale))
}

// === Gradient Field Preparation ===

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type prepareArgs struct {
	Path              string      `json:"path"`
	Region            *regionArgs `json:"region"`
	NamedRegion       string      `json:"named_region"`
	Scale             float64     `json:"scale"`
	SmoothRadius      float64     `json:"smooth_radius"`
	GrayMode          string      `json:"gray_mode"`
	Kernel            int         `json:"kernel"`
	GradientThreshold *int        `json:"gradient_threshold"`
}

// offset is the position of the processed image in the source image.
type offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// frame tells how result coordinates map to the source image:
// source = offset + point / scale.
type frame struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Offset offset  `json:"offset"`
	Scale  float64 `json:"scale"`
}

// prepared is an image ready for detection: cropped, scaled, smoothed and
// turned into a gradient field.
type prepared struct {
	img   image.Image
	field *gradient.Field
	frame frame
}

func (s *Server) prepare(a prepareArgs) (*prepared, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	var rect image.Rectangle
	switch {
	case a.Region != nil:
		rect = image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
	case a.NamedRegion != "":
		if rect, err = imaging.NamedRegion(b.Dx(), b.Dy(), a.NamedRegion); err != nil {
			return nil, err
		}
	}
	if !rect.Empty() || a.Region != nil {
		r := rect.Add(b.Min)
		if img, err = imaging.CropRegion(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y); err != nil {
			return nil, err
		}
	}

	if a.Scale <= 0 {
		a.Scale = 1.0
	}
	img = imaging.Smooth(imaging.Scale(img, a.Scale), a.SmoothRadius)

	mode, err := imaging.ParseGrayMode(a.GrayMode)
	if err != nil {
		return nil, err
	}
	kernel := gradient.Sobel3x3
	switch a.Kernel {
	case 0, 3:
	case 5:
		kernel = gradient.Sobel5x5
	default:
		return nil, errors.Errorf("unsupported kernel size %d", a.Kernel)
	}

	w, h, levels := imaging.GrayLevels(img, mode)
	field, err := gradient.NewField(w, h, levels, kernel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute gradient")
	}
	if a.GradientThreshold != nil {
		field.SetGradientThreshold(*a.GradientThreshold)
	}

	return &prepared{
		img:   img,
		field: field,
		frame: frame{
			Width:  w,
			Height: h,
			Offset: offset{X: rect.Min.X, Y: rect.Min.Y},
			Scale:  a.Scale,
		},
	}, nil
}

func (p *prepared) point(x, y int) (geom.Point, error) {
	q := geom.Pt(x, y)
	if !p.field.Contains(q) {
		return q, errors.Errorf("point (%d,%d) outside the %dx%d working image", x, y, p.frame.Width, p.frame.Height)
	}
	return q, nil
}

// === Segment Detection Handlers ===

type detectorArgs struct {
	prepareArgs
	Thickness          *int  `json:"thickness"`
	Lacks              *int  `json:"lacks"`
	GradientResolution *int  `json:"gradient_resolution"`
	MaskDilation       *int  `json:"mask_dilation"`
	SingleEdge         *bool `json:"single_edge"`
	FinalMinSize       *int  `json:"final_min_size"`
}

func (a detectorArgs) options() detection.Options {
	opts := detection.DefaultOptions()
	if a.GradientThreshold != nil {
		opts.GradientThreshold = *a.GradientThreshold
	}
	if a.Thickness != nil {
		opts.AssignedThickness = *a.Thickness
	}
	if a.Lacks != nil {
		opts.AcceptedLacks = *a.Lacks
	}
	if a.GradientResolution != nil {
		opts.GradientResolution = *a.GradientResolution
	}
	if a.MaskDilation != nil {
		opts.MaskDilation = *a.MaskDilation
	}
	if a.SingleEdge != nil {
		opts.SingleEdge = *a.SingleEdge
	}
	if a.FinalMinSize != nil {
		opts.FinalMinSize = *a.FinalMinSize
	}
	return opts
}

func (s *Server) detector(p *prepared, opts detection.Options) *detection.Detector {
	d := detection.New(p.field, opts)
	d.SetLogger(s.detLog)
	return d
}

type sweepArgs struct {
	detectorArgs
	Balanced       bool     `json:"balanced"`
	NFA            bool     `json:"nfa"`
	NFALengthRatio *float64 `json:"nfa_length_ratio"`
	MaxDetections  int      `json:"max_detections"`
	DualEdge       bool     `json:"dual_edge"`
	SweepStep      *int     `json:"sweep_step"`
	MinDensity     float64  `json:"min_density"`
}

func (a sweepArgs) options() detection.Options {
	opts := a.detectorArgs.options()
	opts.NFA = a.NFA
	if a.NFALengthRatio != nil {
		opts.NFALengthRatio = *a.NFALengthRatio
	}
	opts.MaxDetections = a.MaxDetections
	opts.DualEdgeMulti = a.DualEdge
	if a.SweepStep != nil {
		opts.SweepStep = *a.SweepStep
	}
	return opts
}

// segmentReport is a line report with an identifier clients can refer to.
type segmentReport struct {
	ID string `json:"id"`
	detection.Line
}

func newReports(lines []detection.Line) []segmentReport {
	reports := make([]segmentReport, len(lines))
	for i, l := range lines {
		reports[i] = segmentReport{ID: uuid.NewString(), Line: l}
	}
	return reports
}

// DetectAllResult is the answer of segments_detect_all.
type DetectAllResult struct {
	frame
	Segments []segmentReport `json:"segments"`
	Count    int             `json:"count"`
	Valid    int             `json:"valid"`
	Rejected int             `json:"rejected"`
	Trials   int             `json:"trials"`
	// SweepStep is the stroke spacing actually used.
	SweepStep int `json:"sweep_step"`
}

func (s *Server) sweep(args json.RawMessage) (*prepared, *detection.Detector, *sweepArgs, error) {
	var a sweepArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, nil, err
	}
	p, err := s.prepare(a.prepareArgs)
	if err != nil {
		return nil, nil, nil, err
	}
	d := s.detector(p, a.options())
	if a.SweepStep != nil && d.SweepStep() != *a.SweepStep {
		s.log.Warn().
			Int("requested", *a.SweepStep).
			Int("used", d.SweepStep()).
			Int("width", p.frame.Width).
			Msg("sweep step must be below an eighth of the image width")
	}
	if a.Balanced {
		d.DetectAllWithBalancedXY()
	} else {
		d.DetectAll()
	}
	return p, d, &a, nil
}

func (s *Server) handleSegmentsDetectAll(args json.RawMessage) (interface{}, error) {
	p, d, a, err := s.sweep(args)
	if err != nil {
		return nil, err
	}
	lines := d.Lines(a.MinDensity)
	return &DetectAllResult{
		frame:    p.frame,
		Segments: newReports(lines.Lines),
		Count:    lines.Count,
		Valid:    lines.Valid,
		Rejected: lines.Rejected,
		Trials:   d.Trials(),

		SweepStep: d.SweepStep(),
	}, nil
}

// OverlayResult is the answer of segments_overlay.
type OverlayResult struct {
	*imaging.EncodedImage
	Count int `json:"count"`
}

type overlayArgs struct {
	Color  string `json:"color"`
	Labels *bool  `json:"labels"`
}

func (s *Server) handleSegmentsOverlay(args json.RawMessage) (interface{}, error) {
	var o overlayArgs
	if err := decodeArgs(args, &o); err != nil {
		return nil, err
	}
	if o.Color == "" {
		o.Color = "#FF0000"
	}
	labels := o.Labels == nil || *o.Labels

	p, d, _, err := s.sweep(args)
	if err != nil {
		return nil, err
	}
	segs := d.Segments()
	if d.NFA() {
		segs = d.ValidSegments()
	}
	sets := make([][]image.Point, len(segs))
	for i, bs := range segs {
		pts := bs.Points()
		sets[i] = make([]image.Point, len(pts))
		for j, q := range pts {
			sets[i][j] = image.Pt(q.X, q.Y).Add(p.img.Bounds().Min)
		}
	}

	enc, err := imaging.Encode(imaging.Overlay(p.img, sets, o.Color, labels))
	if err != nil {
		return nil, err
	}
	return &OverlayResult{EncodedImage: enc, Count: len(sets)}, nil
}

type segmentDetectArgs struct {
	detectorArgs
	X1               int  `json:"x1"`
	Y1               int  `json:"y1"`
	X2               int  `json:"x2"`
	Y2               int  `json:"y2"`
	CX               *int `json:"cx"`
	CY               *int `json:"cy"`
	Preliminary      bool `json:"preliminary"`
	OppositeGradient bool `json:"opposite_gradient"`
}

// DetectSingleResult is the answer of segment_detect.
type DetectSingleResult struct {
	frame
	Result        string         `json:"result"`
	Stage         string         `json:"stage"`
	Segment       *segmentReport `json:"segment,omitempty"`
	InitialPoints int            `json:"initial_points"`
}

func (s *Server) handleSegmentDetect(args json.RawMessage) (interface{}, error) {
	var a segmentDetectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if (a.CX == nil) != (a.CY == nil) {
		return nil, errors.New("cx and cy must be given together")
	}
	p, err := s.prepare(a.prepareArgs)
	if err != nil {
		return nil, err
	}
	p1, err := p.point(a.X1, a.Y1)
	if err != nil {
		return nil, err
	}
	p2, err := p.point(a.X2, a.Y2)
	if err != nil {
		return nil, err
	}

	opts := a.options()
	opts.Preliminary = a.Preliminary
	opts.OppositeGradient = a.OppositeGradient
	d := s.detector(p, opts)

	var res detection.Result
	if a.CX != nil {
		pc, err := p.point(*a.CX, *a.CY)
		if err != nil {
			return nil, err
		}
		res = d.DetectSingleFrom(p1, p2, pc)
	} else {
		res = d.DetectSingle(p1, p2)
	}

	out := &DetectSingleResult{
		frame:  p.frame,
		Result: res.String(),
		Stage:  res.Stage().String(),
	}
	if ini := d.Segment(detection.StepInitial); ini != nil {
		out.InitialPoints = ini.Size()
	}
	if res == detection.OK {
		out.Segment = &segmentReport{
			ID:   uuid.NewString(),
			Line: detection.Report(d.Segment(detection.StepFinal), p.field),
		}
	}
	return out, nil
}

// === Gradient Diagnostic Handlers ===

type strokeArgs struct {
	prepareArgs
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// LocalMaximum is a candidate edge point along a stroke.
type LocalMaximum struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Magnitude int `json:"magnitude"`
	GX        int `json:"gx"`
	GY        int `json:"gy"`
}

// LocalMaximaResult is the answer of gradient_local_maxima.
type LocalMaximaResult struct {
	frame
	Maxima             []LocalMaximum `json:"maxima"`
	Count              int            `json:"count"`
	StrokeLength       int            `json:"stroke_length"`
	MagnitudeThreshold int            `json:"magnitude_threshold"`
}

func (s *Server) handleGradientLocalMaxima(args json.RawMessage) (interface{}, error) {
	var a strokeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a.prepareArgs)
	if err != nil {
		return nil, err
	}
	p1, err := p.point(a.X1, a.Y1)
	if err != nil {
		return nil, err
	}
	p2, err := p.point(a.X2, a.Y2)
	if err != nil {
		return nil, err
	}

	stroke := p1.DrawTo(p2, nil)
	idx := p.field.LocalMax(stroke, nil)
	maxima := make([]LocalMaximum, len(idx))
	for i, k := range idx {
		q := stroke[k]
		g := p.field.GradientAt(q)
		maxima[i] = LocalMaximum{X: q.X, Y: q.Y, Magnitude: p.field.MagnitudeAt(q), GX: g.X, GY: g.Y}
	}
	return &LocalMaximaResult{
		frame:              p.frame,
		Maxima:             maxima,
		Count:              len(maxima),
		StrokeLength:       len(stroke),
		MagnitudeThreshold: p.field.MagnitudeThreshold(),
	}, nil
}

func (s *Server) handleGradientMap(args json.RawMessage) (interface{}, error) {
	var a prepareArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a)
	if err != nil {
		return nil, err
	}
	f := p.field
	img, err := imaging.MagnitudeMap(f.Width(), f.Height(), f.Magnitudes(), f.MagnitudeThreshold())
	if err != nil {
		return nil, err
	}
	return imaging.Encode(img)
}

package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func boolProperty(description string, def bool) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description, "default": def}
}

// preparationProperties are the arguments shared by every tool computing a
// gradient field: how the image is cut, resized, smoothed and converted to
// grey levels.
func preparationProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"region": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required":    []string{"x1", "y1", "x2", "y2"},
			"description": "Optional rectangle to work in, x2 and y2 exclusive. Result coordinates are relative to its top-left corner.",
		},
		"named_region": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
			"description": "Optional named part of the image to work in. Ignored when region is given.",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor applied after cropping (e.g., 2.0 to double size). Default 1.0",
			"default":     1.0,
		},
		"smooth_radius": map[string]interface{}{
			"type":        "number",
			"description": "Optional Gaussian blur radius applied before the gradient computation. Default 0 (none)",
			"default":     0,
		},
		"gray_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"rec601", "lab"},
			"description": "Grey level conversion: BT.601 luma or CIE L* lightness. Default rec601",
			"default":     "rec601",
		},
		"kernel": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{3, 5},
			"description": "Sobel kernel size. Default 3",
			"default":     3,
		},
		"gradient_threshold": intProperty("Gradient threshold (0-255); local maxima need a magnitude above its square. Default 20"),
	}
}

// detectionProperties adds the detector settings to the preparation ones.
func detectionProperties() map[string]interface{} {
	props := preparationProperties()
	props["thickness"] = intProperty("Assigned maximal segment thickness in pixels. Default 3")
	props["lacks"] = intProperty("Accepted consecutive scans without a point. Default 5")
	props["gradient_resolution"] = intProperty("Minimal contrast between neighbouring local maxima. Default 100")
	props["mask_dilation"] = map[string]interface{}{
		"type":        "integer",
		"enum":        []int{0, 4, 8, 12, 20},
		"description": "Neighbours claimed around each detected pixel. Default 20",
	}
	props["single_edge"] = boolProperty("Only track gradients pointing the same way as the first one. Default true", true)
	props["final_min_size"] = intProperty("Minimal number of points of a final segment. Default 3")
	return props
}

// sweepProperties adds the whole-image sweep settings.
func sweepProperties() map[string]interface{} {
	props := detectionProperties()
	props["balanced"] = boolProperty("Interleave vertical and horizontal sweep strokes. Default false", false)
	props["nfa"] = boolProperty("Keep only segments passing the a-contrario NFA test. Default false", false)
	props["nfa_length_ratio"] = map[string]interface{}{
		"type":        "number",
		"description": "NFA length ratio (1-3). Default 1",
		"default":     1.0,
	}
	props["max_detections"] = intProperty("Stop after this many segments; 0 for no limit. Default 0")
	props["dual_edge"] = boolProperty("Try both gradient directions from each local maximum. Default false", false)
	props["sweep_step"] = intProperty("Distance between sweep strokes in pixels. Default 5")
	props["min_density"] = map[string]interface{}{
		"type":        "number",
		"description": "Minimal ratio of points to length for a segment to be reported. Default 0",
		"default":     0,
	}
	return props
}

func strokeRequired(extra ...string) []string {
	return append([]string{"path", "x1", "y1", "x2", "y2"}, extra...)
}

func withStroke(props map[string]interface{}) map[string]interface{} {
	props["x1"] = intProperty("Stroke start X")
	props["y1"] = intProperty("Stroke start Y")
	props["x2"] = intProperty("Stroke end X")
	props["y2"] = intProperty("Stroke end Y")
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	single := withStroke(detectionProperties())
	single["cx"] = intProperty("Optional X of the point where the stroke crosses the segment; scans a fixed width strip around it")
	single["cy"] = intProperty("Optional Y of the crossing point")
	single["preliminary"] = boolProperty("Run the preliminary pass that recentres the stroke. Default false", false)
	single["opposite_gradient"] = boolProperty("Track the edge of opposite gradient direction. Default false", false)

	overlay := sweepProperties()
	overlay["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Segment color as hex (#RRGGBB or #RRGGBBAA). Default #FF0000",
		"default":     "#FF0000",
	}
	overlay["labels"] = boolProperty("Draw the index of each segment. Default true", true)

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to look at a detected segment closely.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   intProperty("Left edge X coordinate (0-based)"),
					"y1":   intProperty("Top edge Y coordinate (0-based)"),
					"x2":   intProperty("Right edge X coordinate (exclusive)"),
					"y2":   intProperty("Bottom edge Y coordinate (exclusive)"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Segment Detection
		{
			Name:        "segments_detect_all",
			Description: "Detect every blurred segment (thick straight edge) of an image by sweeping it with vertical and horizontal strokes. Returns one report per segment with end points, thickness, angle and gradient statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sweepProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "segment_detect",
			Description: "Detect the blurred segment crossed by a stroke between two points. Returns the detection result code and, on success, the segment report.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": single,
				"required":   strokeRequired(),
			},
		},
		{
			Name:        "segments_overlay",
			Description: "Detect every blurred segment of an image and return the image with the segment pixels drawn over it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlay,
				"required":   []string{"path"},
			},
		},

		// Gradient Diagnostics
		{
			Name:        "gradient_local_maxima",
			Description: "List the gradient magnitude local maxima along a stroke: the candidate edge points a detection would start from.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withStroke(preparationProperties()),
				"required":   strokeRequired(),
			},
		},
		{
			Name:        "gradient_map",
			Description: "Render the gradient magnitude of an image as a grey base64-encoded PNG, hiding magnitudes under the detection threshold.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": preparationProperties(),
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

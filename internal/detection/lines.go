package detection

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/gradient"
	"github.com/ironsheep/blurred-segments/internal/segment"
)

// Line describes a detected blurred segment for downstream consumers
type Line struct {
	Start         geom.Point      `json:"start"`
	End           geom.Point      `json:"end"`
	Points        int             `json:"points"`
	SquaredLength int64           `json:"squared_length"`
	Length        float64         `json:"length"`
	AngleDegrees  float64         `json:"angle_degrees"`
	Orientation   string          `json:"orientation"`
	Density       float64         `json:"density"`
	Thickness     float64         `json:"thickness"`
	BoundingLines [2]segment.Line `json:"bounding_lines"`
	MeanMagnitude float64         `json:"mean_magnitude"`
	MinMagnitude  float64         `json:"min_magnitude"`
	StdMagnitude  float64         `json:"std_magnitude"`
}

// LinesResult contains the reports of a detection
type LinesResult struct {
	Lines    []Line `json:"lines"`
	Count    int    `json:"count"`
	Valid    int    `json:"valid"`
	Rejected int    `json:"rejected"`
}

// Report describes bs, with magnitude statistics read from field
func Report(bs *segment.BlurredSegment, field *gradient.Field) Line {
	start, end := bs.FrontPoint(), bs.BackPoint()
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	length := math.Sqrt(float64(bs.SquaredLength()))

	mags := make([]float64, bs.Size())
	for i := range mags {
		mags[i] = float64(field.MagnitudeAt(bs.At(i)))
	}
	mean, std := stat.MeanStdDev(mags, nil)

	density := 0.0
	if length > 0 {
		density = float64(bs.Size()) / length
	}
	low, high := bs.Line().BoundingLines()

	return Line{
		Start:         start,
		End:           end,
		Points:        bs.Size(),
		SquaredLength: bs.SquaredLength(),
		Length:        math.Round(length*10) / 10,
		AngleDegrees:  math.Round(math.Atan2(dy, dx)*180/math.Pi*10) / 10,
		Orientation:   orientation(start, end),
		Density:       math.Round(density*100) / 100,
		Thickness:     math.Round(bs.MinimalWidth().Float64()*100) / 100,
		BoundingLines: [2]segment.Line{low, high},
		MeanMagnitude: math.Round(mean*10) / 10,
		MinMagnitude:  floats.Min(mags),
		StdMagnitude:  math.Round(std*10) / 10,
	}
}

// orientation classifies a segment from its end points
func orientation(p, q geom.Point) string {
	dx, dy := q.X-p.X, q.Y-p.Y
	switch {
	case dy > -AxisTolerance && dy < AxisTolerance:
		return "horizontal"
	case dx > -AxisTolerance && dx < AxisTolerance:
		return "vertical"
	}
	return "oblique"
}

// Lines reports the segments of the last detection: the NFA valid ones
// after a filtered multi detection, every one after an unfiltered multi
// detection, or the final segment of a successful single detection.
// Segments whose density is below minDensity are left out.
func (d *Detector) Lines(minDensity float64) *LinesResult {
	src := d.multi
	if d.filter != nil && d.sweep != sweepNone {
		src = d.valid
	}
	if len(d.multi) == 0 && d.result == OK && d.bsf != nil {
		src = []*segment.BlurredSegment{d.bsf}
	}

	lines := make([]Line, 0, len(src))
	for _, bs := range src {
		l := Report(bs, d.field)
		if l.Density < minDensity {
			continue
		}
		lines = append(lines, l)
	}
	return &LinesResult{
		Lines:    lines,
		Count:    len(lines),
		Valid:    len(d.valid),
		Rejected: len(d.rejected),
	}
}

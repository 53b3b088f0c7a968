package path

import "github.com/dshills/contour/internal/design"

// SegmentKind identifies the curve type of a segment.
type SegmentKind uint8

const (
	// SegmentLine is a straight line between two on-curve points.
	SegmentLine SegmentKind = iota
	// SegmentQuad is a quadratic curve with one handle.
	SegmentQuad
	// SegmentCubic is a cubic curve with two handles.
	SegmentCubic
)

// String returns a string representation of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "line"
	case SegmentQuad:
		return "quad"
	case SegmentCubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// Segment is the portion of a path between two consecutive on-curve points.
type Segment struct {
	Kind SegmentKind

	// Points holds the start point, any handles, and the end point, in order.
	Points []PathPoint
}

// Start returns the segment's first on-curve point.
func (s Segment) Start() PathPoint {
	return s.Points[0]
}

// End returns the segment's last on-curve point.
func (s Segment) End() PathPoint {
	return s.Points[len(s.Points)-1]
}

// StartID returns the ID of the start point.
func (s Segment) StartID() EntityID {
	return s.Start().ID
}

// IsLine returns true if the segment has no handles.
func (s Segment) IsLine() bool {
	return s.Kind == SegmentLine
}

// IDs returns the IDs of every point in the segment, endpoints and handles.
func (s Segment) IDs() []EntityID {
	ids := make([]EntityID, len(s.Points))
	for i, p := range s.Points {
		ids[i] = p.ID
	}
	return ids
}

// Eval returns the position on the segment at parameter t in [0, 1].
func (s Segment) Eval(t float64) design.Point {
	pts := make([]design.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.Point
	}
	// de Casteljau
	for n := len(pts) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			pts[i] = pts[i].Lerp(pts[i+1], t)
		}
	}
	return pts[0]
}

func segmentKind(handles int) SegmentKind {
	switch handles {
	case 0:
		return SegmentLine
	case 1:
		return SegmentQuad
	default:
		return SegmentCubic
	}
}

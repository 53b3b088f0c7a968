package path

import (
	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/geom"
)

// PointType distinguishes path vertices from curve control handles.
type PointType uint8

const (
	// OffCurve is a control handle of a curve segment.
	OffCurve PointType = iota
	// OnCurve is a path vertex.
	OnCurve
)

// String returns a string representation of the point type.
func (t PointType) String() string {
	switch t {
	case OnCurve:
		return "on-curve"
	case OffCurve:
		return "off-curve"
	default:
		return "unknown"
	}
}

// PathPoint is a point of a path in design space.
type PathPoint struct {
	ID    EntityID
	Point design.Point
	Type  PointType

	// Smooth marks an on-curve point whose handles are kept collinear.
	// Corner points have Smooth == false. Ignored for off-curve points.
	Smooth bool
}

// IsOnCurve returns true for path vertices.
func (p PathPoint) IsOnCurve() bool {
	return p.Type == OnCurve
}

// ToScreen returns the point's screen position through vp.
func (p PathPoint) ToScreen(vp design.Viewport) geom.Point {
	return vp.ToScreen(p.Point)
}

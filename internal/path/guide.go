package path

import (
	"math"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/geom"
)

// GuideKind is the orientation of a guide.
type GuideKind uint8

const (
	// GuideHorizontal is a guide running left to right at a fixed Y.
	GuideHorizontal GuideKind = iota
	// GuideVertical is a guide running bottom to top at a fixed X.
	GuideVertical
)

// String returns a string representation of the guide kind.
func (k GuideKind) String() string {
	switch k {
	case GuideHorizontal:
		return "horizontal"
	case GuideVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Guide is an infinite reference line.
type Guide struct {
	ID   EntityID
	Kind GuideKind

	// Pos anchors the guide. Horizontal guides use Pos.Y, vertical guides Pos.X.
	Pos design.Point
}

// NewGuide creates a guide with the given ID.
func NewGuide(id uint64, kind GuideKind, pos design.Point) Guide {
	return Guide{ID: GuideID(id), Kind: kind, Pos: pos}
}

// Toggle flips the guide's orientation and re-anchors it at pos.
func (g *Guide) Toggle(pos design.Point) {
	if g.Kind == GuideHorizontal {
		g.Kind = GuideVertical
	} else {
		g.Kind = GuideHorizontal
	}
	g.Pos = pos
}

// Nudge moves the guide by delta along its free axis.
func (g *Guide) Nudge(delta design.Vec2) {
	g.Pos = g.Pos.Add(delta)
}

// ScreenDistance returns the screen-space distance from p to the guide line.
func (g Guide) ScreenDistance(p geom.Point, vp design.Viewport) float64 {
	anchor := vp.ToScreen(g.Pos)
	if g.Kind == GuideHorizontal {
		return math.Abs(p.Y - anchor.Y)
	}
	return math.Abs(p.X - anchor.X)
}

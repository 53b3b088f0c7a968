package app

import (
	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/path"
	"github.com/dshills/contour/internal/session"
)

// demoExtent is the design-space size of the demo document.
var demoExtent = design.Vec(600, 400)

// DemoDocument returns a session holding a few sample paths and guides:
// a closed square, a closed curved drop, an open cubic stroke, and a
// baseline and x-height pair of guides.
func DemoDocument() *session.EditSession {
	doc := session.New()

	sq := doc.NewPath()
	sq.AddOnCurve(design.Pt(40, 40))
	sq.AddOnCurve(design.Pt(180, 40))
	sq.AddOnCurve(design.Pt(180, 180))
	sq.AddOnCurve(design.Pt(40, 180))
	sq.Close()

	drop := doc.NewPath()
	drop.AddOnCurve(design.Pt(320, 40))
	drop.CurveTo(design.Pt(400, 40), design.Pt(420, 120), design.Pt(320, 260))
	// handles of the closing segment back to the first vertex
	drop.AddOffCurve(design.Pt(220, 120))
	drop.AddOffCurve(design.Pt(240, 40))
	drop.Close()

	stroke := doc.NewPath()
	stroke.AddOnCurve(design.Pt(460, 40))
	stroke.CurveTo(design.Pt(460, 200), design.Pt(560, 200), design.Pt(560, 360))
	stroke.AddOnCurve(design.Pt(480, 360))

	doc.AddGuide(path.GuideHorizontal, design.Pt(0, 40))
	doc.AddGuide(path.GuideHorizontal, design.Pt(0, 260))
	return doc
}

// FitViewport returns a viewport that shows a design area of the given
// extent inside bounds with a margin, origin at the bottom left.
func FitViewport(bounds geom.Rect, extent design.Vec2, margin float64) design.Viewport {
	w := bounds.Width() - 2*margin
	h := bounds.Height() - 2*margin
	zoom := 1.0
	if w > 0 && h > 0 && extent.X > 0 && extent.Y > 0 {
		zoom = min(w/extent.X, h/extent.Y)
	}
	return design.Viewport{
		Offset: geom.Vec2{X: bounds.X0 + margin, Y: bounds.Y1 - margin},
		Zoom:   zoom,
	}
}

package editor

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/path"
	"github.com/dshills/contour/internal/tool"
)

// curveSteps is the number of chords used to draw a curved segment.
const curveSteps = 24

// Surface is the paint target for a document.
type Surface interface {
	tool.Surface

	// Bounds returns the visible area in screen space.
	Bounds() geom.Rect
	StrokeLine(a, b geom.Point, c color.Color, width float64)
	FillCircle(center geom.Point, radius float64, c color.Color)
}

// Theme holds the document colors.
type Theme struct {
	Background color.Color
	Path       color.Color
	Handle     color.Color
	Point      color.Color
	Selected   color.Color
	Guide      color.Color

	// PointRadius is the drawn radius of on-curve points in screen units.
	// Handles are drawn at two thirds of it.
	PointRadius float64
}

// DefaultTheme returns the default colors.
func DefaultTheme() Theme {
	return Theme{
		Background:  colornames.White,
		Path:        colornames.Black,
		Handle:      colornames.Darkgray,
		Point:       colornames.Steelblue,
		Selected:    colornames.Orangered,
		Guide:       colornames.Mediumseagreen,
		PointRadius: 3,
	}
}

// Paint draws the document and the tool overlay onto s.
func (e *Editor) Paint(s Surface) {
	doc := e.session
	vp := doc.Viewport()
	bounds := s.Bounds()
	th := e.theme
	sel := doc.Selection()

	s.FillRect(bounds, th.Background)

	for _, g := range doc.Guides() {
		c := th.Guide
		if sel.Contains(g.ID) {
			c = th.Selected
		}
		a := vp.ToScreen(g.Pos)
		if g.Kind == path.GuideHorizontal {
			s.StrokeLine(geom.Pt(bounds.X0, a.Y), geom.Pt(bounds.X1, a.Y), c, 1)
		} else {
			s.StrokeLine(geom.Pt(a.X, bounds.Y0), geom.Pt(a.X, bounds.Y1), c, 1)
		}
	}

	for _, p := range doc.Paths() {
		for seg := range p.Segments() {
			paintSegment(s, seg, vp, th)
		}
	}

	for pt := range doc.IterPoints() {
		c := th.Point
		r := th.PointRadius
		if !pt.IsOnCurve() {
			c = th.Handle
			r = r * 2 / 3
		}
		if sel.Contains(pt.ID) {
			c = th.Selected
		}
		s.FillCircle(vp.ToScreen(pt.Point), r, c)
	}

	e.tool.Paint(s, doc)
}

func paintSegment(s Surface, seg path.Segment, vp design.Viewport, th Theme) {
	if seg.IsLine() {
		s.StrokeLine(vp.ToScreen(seg.Start().Point), vp.ToScreen(seg.End().Point), th.Path, 1)
		return
	}

	// handle arms
	s.StrokeLine(vp.ToScreen(seg.Start().Point), vp.ToScreen(seg.Points[1].Point), th.Handle, 1)
	n := len(seg.Points)
	s.StrokeLine(vp.ToScreen(seg.Points[n-2].Point), vp.ToScreen(seg.End().Point), th.Handle, 1)

	prev := vp.ToScreen(seg.Start().Point)
	for i := 1; i <= curveSteps; i++ {
		next := vp.ToScreen(seg.Eval(float64(i) / curveSteps))
		s.StrokeLine(prev, next, th.Path, 1)
		prev = next
	}
}

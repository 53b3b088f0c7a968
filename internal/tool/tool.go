// Package tool defines the editing tools of the path editor and the
// interfaces they use to reach the document and the screen.
package tool

import (
	"image/color"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/input/mouse"
	"github.com/dshills/contour/internal/path"
	"github.com/dshills/contour/internal/selection"
)

// Document is the document a tool edits. *session.EditSession implements it.
type Document interface {
	Viewport() design.Viewport

	// Hit testing in screen space.
	HitTestAll(pos geom.Point, filter func(path.EntityID) bool) (path.EntityID, bool)
	HitTestSegments(pos geom.Point, filter func(path.Segment) bool) (path.Segment, float64, bool)
	PointsInRect(r geom.Rect) []path.EntityID
	PathPoint(id path.EntityID) (path.PathPoint, bool)
	PathForPoint(id path.EntityID) (*path.Path, bool)

	// Selection access. Selection returns a snapshot; SelectionMut the live set.
	Selection() selection.Set
	SelectionMut() *selection.Set
	SetSelection(sel selection.Set)
	SetSelectionOne(id path.EntityID)

	// Edits.
	DeleteSelection() bool
	NudgeSelection(delta design.Vec2) bool
	SelectNext()
	SelectPrev()
	ToggleSelectedOnCurveType() bool
	ToggleGuide(id path.EntityID, pos geom.Point) bool
	SelectPath(pos geom.Point, additive bool) bool
}

// Surface is the paint target for tool overlays.
type Surface interface {
	FillRect(r geom.Rect, c color.Color)
	StrokeRect(r geom.Rect, c color.Color, width float64)
}

// EventContext collects requests a tool makes while handling an event.
type EventContext struct {
	paint bool
}

// RequestPaint asks the host to repaint after the current event.
func (c *EventContext) RequestPaint() {
	c.paint = true
}

// PaintRequested reports whether a repaint was requested and clears the request.
func (c *EventContext) PaintRequested() bool {
	p := c.paint
	c.paint = false
	return p
}

// Tool handles input for one editing mode.
//
// KeyDown and MouseEvent return the kind of edit they made, if any, for the
// host's undo history.
type Tool interface {
	Name() string
	Paint(s Surface, doc Document)
	KeyDown(event key.Event, ctx *EventContext, doc Document) (history.EditType, bool)
	MouseEvent(event mouse.Event, ctx *EventContext, m *mouse.Mouse, doc Document) (history.EditType, bool)

	// CancelGesture aborts the pointer gesture in progress, if any.
	CancelGesture(ctx *EventContext, m *mouse.Mouse, doc Document)
}

// Config configures the tools.
type Config struct {
	// PrimaryModifier scales nudges by 100. Shift scales by 10.
	PrimaryModifier key.Modifier

	MarqueeFill   color.Color
	MarqueeStroke color.Color
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		PrimaryModifier: key.ModMeta,
		MarqueeFill:     color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0x55},
		MarqueeStroke:   color.NRGBA{R: 0x53, G: 0x8B, B: 0xBB, A: 0xFF},
	}
}

package tool

import (
	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/input/mouse"
	"github.com/dshills/contour/internal/logger"
	"github.com/dshills/contour/internal/selection"
)

// Select is the selection tool. It selects, moves and nudges points,
// handles, segments and guides.
type Select struct {
	config Config

	// lastPos is the last pointer position seen, in screen space.
	lastPos geom.Point

	drag dragState

	// pending is the edit made by the handler currently running. It is
	// empty between events.
	pending    history.EditType
	hasPending bool
}

var _ Tool = (*Select)(nil)
var _ mouse.Delegate[Document] = (*Select)(nil)

// NewSelect creates a selection tool.
func NewSelect(config Config) *Select {
	return &Select{config: config, drag: dragNone{}}
}

// Name returns "select".
func (s *Select) Name() string {
	return "select"
}

// SetConfig replaces the tool configuration.
func (s *Select) SetConfig(config Config) {
	s.config = config
}

// LastPointerPos returns the last pointer position seen.
func (s *Select) LastPointerPos() geom.Point {
	return s.lastPos
}

// Marquee returns the marquee rectangle while a rectangle selection is in
// progress.
func (s *Select) Marquee() (geom.Rect, bool) {
	if sel, ok := s.drag.(*dragSelect); ok {
		return sel.rect, true
	}
	return geom.Rect{}, false
}

// Paint draws the marquee, if any.
func (s *Select) Paint(surface Surface, doc Document) {
	rect, ok := s.Marquee()
	if !ok {
		return
	}
	surface.FillRect(rect, s.config.MarqueeFill)
	surface.StrokeRect(rect, s.config.MarqueeStroke, 1)
}

// KeyDown handles arrow nudges, deletion and Tab navigation.
func (s *Select) KeyDown(event key.Event, ctx *EventContext, doc Document) (history.EditType, bool) {
	defer s.discardOnPanic()
	s.begin()

	switch {
	case event.Key.IsArrowKey():
		s.nudge(event, doc)

	case event.Key.IsDeleteKey():
		// Normal only when something was deleted, like nudge.
		if doc.DeleteSelection() {
			s.setEdit(history.Normal)
		}

	case event.Key == key.KeyTab:
		if event.Modifiers.HasShift() {
			doc.SelectPrev()
		} else {
			doc.SelectNext()
		}
		ctx.RequestPaint()
	}

	return s.take()
}

// MouseEvent runs event through the gesture dispatcher m. A repaint is
// requested when the marquee appears, moves or disappears.
func (s *Select) MouseEvent(event mouse.Event, ctx *EventContext, m *mouse.Mouse, doc Document) (history.EditType, bool) {
	defer s.discardOnPanic()
	s.begin()

	rect, had := s.Marquee()
	mouse.Dispatch[Document](m, event, s, doc)
	s.repaintIfMarqueeChanged(rect, had, ctx)

	return s.take()
}

// CancelGesture aborts the gesture in progress through m.
func (s *Select) CancelGesture(ctx *EventContext, m *mouse.Mouse, doc Document) {
	defer s.discardOnPanic()
	s.begin()

	rect, had := s.Marquee()
	mouse.Cancel[Document](m, s, doc)
	s.repaintIfMarqueeChanged(rect, had, ctx)

	// cancel never edits
	s.take()
}

func (s *Select) repaintIfMarqueeChanged(rect geom.Rect, had bool, ctx *EventContext) {
	now, has := s.Marquee()
	if had != has || rect != now {
		ctx.RequestPaint()
	}
}

// begin asserts that no edit type is left over from a previous event.
func (s *Select) begin() {
	if s.hasPending {
		panic("select: stale edit type " + s.pending.String() + " from a previous event")
	}
}

// discardOnPanic clears the pending edit of a handler that panicked, so a
// host that recovers can keep sending events.
func (s *Select) discardOnPanic() {
	if r := recover(); r != nil {
		s.take()
		panic(r)
	}
}

func (s *Select) setEdit(edit history.EditType) {
	s.pending = edit
	s.hasPending = true
}

// take returns and clears the pending edit type.
func (s *Select) take() (history.EditType, bool) {
	edit, ok := s.pending, s.hasPending
	s.pending, s.hasPending = history.Normal, false
	return edit, ok
}

// MouseMoved records the pointer position.
func (s *Select) MouseMoved(event mouse.Event, doc Document) {
	s.lastPos = event.Position
}

// LeftDown handles single and double clicks.
func (s *Select) LeftDown(event mouse.Event, doc Document) {
	s.lastPos = event.Position
	switch event.Count {
	case 1:
		s.click(event, doc)
	case 2:
		s.doubleClick(event, doc)
	}
}

func (s *Select) click(event mouse.Event, doc Document) {
	shift := event.HasShift()

	if id, ok := doc.HitTestAll(event.Position, nil); ok {
		sel := doc.SelectionMut()
		switch {
		case shift:
			sel.Toggle(id)
		case !sel.Contains(id):
			doc.SetSelectionOne(id)
		}
		return
	}

	if seg, _, ok := doc.HitTestSegments(event.Position, nil); ok {
		if event.Modifiers.HasAlt() && seg.IsLine() {
			if p, found := doc.PathForPoint(seg.StartID()); found && p.UpgradeLineSeg(seg) {
				logger.WithTag("select").Debug("upgraded line to curve", "segment", seg.StartID())
				s.setEdit(history.Normal)
			}
			return
		}

		ids := seg.IDs()
		sel := doc.SelectionMut()
		all := sel.ContainsAll(ids)
		switch {
		case !shift && !all:
			doc.SetSelection(selection.New(ids...))
		case shift && all:
			for _, id := range ids {
				sel.Remove(id)
			}
		case shift:
			sel.Extend(ids...)
		}
		return
	}

	if !shift {
		doc.SelectionMut().Clear()
	}
}

func (s *Select) doubleClick(event mouse.Event, doc Document) {
	if id, ok := doc.HitTestAll(event.Position, nil); ok {
		if id.IsGuide() {
			doc.ToggleGuide(id, event.Position)
			s.setEdit(history.Normal)
			return
		}
		if pt, found := doc.PathPoint(id); found && pt.IsOnCurve() {
			doc.ToggleSelectedOnCurveType()
			s.setEdit(history.Normal)
			return
		}
	}
	doc.SelectPath(event.Position, event.HasShift())
}

// LeftUp ends the gesture.
func (s *Select) LeftUp(event mouse.Event, doc Document) {
	s.lastPos = event.Position
	s.drag = dragNone{}
}

package tool

import (
	"fmt"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/mouse"
	"github.com/dshills/contour/internal/logger"
	"github.com/dshills/contour/internal/selection"
)

// dragState is one of dragNone, *dragSelect or *dragMove.
type dragState interface {
	dragState()
}

// dragNone means no drag is in progress.
type dragNone struct{}

// dragSelect is a rectangle selection. previous is the selection before
// the drag began; rect is the marquee in screen space.
type dragSelect struct {
	previous selection.Set
	rect     geom.Rect
}

// dragMove moves the selection. lastUsedPos is the design-space pointer
// position the selection was last moved to.
type dragMove struct {
	lastUsedPos design.Point
}

func (dragNone) dragState()    {}
func (*dragSelect) dragState() {}
func (*dragMove) dragState()   {}

// LeftDragBegan starts a move if the drag starts on an entity, otherwise a
// rectangle selection.
func (s *Select) LeftDragBegan(drag mouse.Drag, doc Document) {
	start := drag.Start.Position
	log := logger.WithTag("select")

	if _, ok := doc.HitTestAll(start, nil); ok {
		s.drag = &dragMove{lastUsedPos: doc.Viewport().FromScreen(start)}
		log.Debug("drag began", "mode", "move", "start", start)
		return
	}

	s.drag = &dragSelect{
		previous: doc.Selection(),
		rect:     geom.RectFromPoints(start, drag.Current.Position),
	}
	log.Debug("drag began", "mode", "select", "start", start)
}

// LeftDragChanged updates the marquee selection or moves the selection.
func (s *Select) LeftDragChanged(drag mouse.Drag, doc Document) {
	s.lastPos = drag.Current.Position

	switch st := s.drag.(type) {
	case *dragSelect:
		st.rect = geom.RectFromPoints(drag.Start.Position, drag.Current.Position)
		doc.SetSelection(rectSelection(st.previous, st.rect, drag.Current.HasShift(), doc))

	case *dragMove:
		pos := doc.Viewport().FromScreen(drag.Current.Position)
		if delta := pos.Sub(st.lastUsedPos); !delta.IsZero() {
			doc.NudgeSelection(delta)
			st.lastUsedPos = pos
		}
		s.setEdit(history.Drag)

	default:
		panic(fmt.Sprintf("select: drag changed with no drag in progress (%T)", s.drag))
	}
}

// LeftDragEnded closes a move.
func (s *Select) LeftDragEnded(drag mouse.Drag, doc Document) {
	switch s.drag.(type) {
	case *dragMove:
		s.setEdit(history.DragUp)
	case *dragSelect:
	default:
		panic(fmt.Sprintf("select: drag ended with no drag in progress (%T)", s.drag))
	}
}

// Cancel abandons the gesture. A rectangle selection is rolled back to the
// selection it started from; a move keeps the geometry it has applied.
func (s *Select) Cancel(doc Document) {
	if st, ok := s.drag.(*dragSelect); ok {
		doc.SetSelection(st.previous)
		logger.WithTag("select").Debug("rectangle selection cancelled", "restored", st.previous.Len())
	}
	s.drag = dragNone{}
}

// rectSelection computes the selection for a marquee over rect, starting
// from previous. With toggle set, points inside rect flip membership;
// otherwise they are added.
func rectSelection(previous selection.Set, rect geom.Rect, toggle bool, doc Document) selection.Set {
	inside := selection.New(doc.PointsInRect(rect)...)

	if toggle {
		return previous.SymmetricDifference(inside)
	}
	return previous.Union(inside)
}

package tool

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/input/mouse"
	"github.com/dshills/contour/internal/path"
	"github.com/dshills/contour/internal/selection"
	"github.com/dshills/contour/internal/session"
)

var _ Document = (*session.EditSession)(nil)

// harness drives a Select tool through a real dispatcher and session.
// Design y maps to screen 500-y.
type harness struct {
	t    *testing.T
	doc  *session.EditSession
	tool *Select
	m    *mouse.Mouse
	ctx  EventContext
	now  time.Time

	square []path.EntityID // closed, design (100,100)..(200,200)
	curve  []path.EntityID // open cubic: start, h1, h2, end
	guide  path.EntityID   // horizontal at design y=400
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	doc := session.New()
	doc.SetViewport(design.Viewport{Offset: geom.Vec2{X: 0, Y: 500}, Zoom: 1})

	sq := doc.NewPath()
	square := []path.EntityID{
		sq.AddOnCurve(design.Pt(100, 100)),
		sq.AddOnCurve(design.Pt(200, 100)),
		sq.AddOnCurve(design.Pt(200, 200)),
		sq.AddOnCurve(design.Pt(100, 200)),
	}
	sq.Close()

	cv := doc.NewPath()
	curve := []path.EntityID{
		cv.AddOnCurve(design.Pt(300, 100)),
		cv.AddOffCurve(design.Pt(300, 200)),
		cv.AddOffCurve(design.Pt(400, 200)),
		cv.AddOnCurve(design.Pt(400, 100)),
	}

	guide := doc.AddGuide(path.GuideHorizontal, design.Pt(0, 400))

	return &harness{
		t:      t,
		doc:    doc,
		tool:   NewSelect(DefaultConfig()),
		m:      mouse.New(mouse.DefaultConfig()),
		now:    time.Unix(1000, 0),
		square: square,
		curve:  curve,
		guide:  guide,
	}
}

func screen(x, y float64) geom.Point {
	return geom.Pt(x, 500-y)
}

type result struct {
	edit history.EditType
	ok   bool
}

func (h *harness) send(action mouse.Action, pos geom.Point, mods key.Modifier) result {
	e := mouse.Event{Position: pos, Modifiers: mods, Action: action, Timestamp: h.now}
	if action != mouse.ActionMove {
		e.Button = mouse.ButtonLeft
	}
	edit, ok := h.tool.MouseEvent(e, &h.ctx, h.m, h.doc)
	return result{edit, ok}
}

// press sends a left press far enough in time from the last one to be a
// single click.
func (h *harness) press(pos geom.Point, mods key.Modifier) result {
	h.now = h.now.Add(time.Second)
	return h.send(mouse.ActionPress, pos, mods)
}

func (h *harness) release(pos geom.Point, mods key.Modifier) result {
	return h.send(mouse.ActionRelease, pos, mods)
}

func (h *harness) move(pos geom.Point, mods key.Modifier) result {
	return h.send(mouse.ActionMove, pos, mods)
}

func (h *harness) click(pos geom.Point, mods key.Modifier) result {
	r := h.press(pos, mods)
	h.release(pos, mods)
	return r
}

func (h *harness) doubleClick(pos geom.Point, mods key.Modifier) result {
	h.click(pos, mods)
	h.now = h.now.Add(100 * time.Millisecond)
	r := h.send(mouse.ActionPress, pos, mods)
	h.release(pos, mods)
	return r
}

func (h *harness) key(k key.Key, mods key.Modifier) result {
	edit, ok := h.tool.KeyDown(key.NewEvent(k, mods), &h.ctx, h.doc)
	return result{edit, ok}
}

func (h *harness) selected() []path.EntityID {
	return h.doc.Selection().IDs()
}

func (h *harness) point(id path.EntityID) path.PathPoint {
	h.t.Helper()
	pt, ok := h.doc.PathPoint(id)
	require.True(h.t, ok, "point %v missing", id)
	return pt
}

func at(h *harness, id path.EntityID) geom.Point {
	return h.point(id).ToScreen(h.doc.Viewport())
}

var none = result{}

func TestClickPointScenario(t *testing.T) {
	h := newHarness(t)
	p1, p2 := h.square[0], h.square[1]

	require.Equal(t, none, h.click(at(h, p1), key.ModNone))
	require.Equal(t, []path.EntityID{p1}, h.selected())

	h.click(at(h, p2), key.ModShift)
	require.Equal(t, []path.EntityID{p1, p2}, h.selected())

	h.click(at(h, p1), key.ModShift)
	require.Equal(t, []path.EntityID{p2}, h.selected())
}

func TestClickSelectedPointKeepsSelection(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelection(selection.New(h.square[0], h.square[1]))

	h.click(at(h, h.square[0]), key.ModNone)
	require.Equal(t, []path.EntityID{h.square[0], h.square[1]}, h.selected())

	h.click(at(h, h.square[2]), key.ModNone)
	require.Equal(t, []path.EntityID{h.square[2]}, h.selected())
}

func TestClickEmptySpace(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelectionOne(h.square[0])

	h.click(screen(150, 150), key.ModShift)
	require.Equal(t, []path.EntityID{h.square[0]}, h.selected(), "shift keeps selection")

	h.click(screen(150, 150), key.ModNone)
	require.Empty(t, h.selected())
}

func TestClickGuide(t *testing.T) {
	h := newHarness(t)
	h.click(screen(700, 401), key.ModNone)
	require.Equal(t, []path.EntityID{h.guide}, h.selected())
}

func TestClickSegmentGroup(t *testing.T) {
	h := newHarness(t)
	apex := screen(350, 175)

	h.doc.SetSelectionOne(h.square[0])
	h.click(apex, key.ModNone)
	require.ElementsMatch(t, h.curve, h.selected(), "replaces with the segment's points")

	h.click(apex, key.ModShift)
	require.Empty(t, h.selected(), "shift on a fully selected group removes it")

	h.click(apex, key.ModShift)
	require.ElementsMatch(t, h.curve, h.selected(), "shift on an unselected group adds it")
}

func TestShiftClickPartiallySelectedSegmentAdds(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelection(selection.New(h.square[0], h.curve[0]))

	h.click(screen(350, 175), key.ModShift)
	require.ElementsMatch(t, append([]path.EntityID{h.square[0]}, h.curve...), h.selected())
}

func TestClickFullySelectedSegmentKeepsSelection(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelection(selection.New(h.square...))

	h.click(screen(150, 100), key.ModNone)
	require.ElementsMatch(t, h.square, h.selected())
}

func TestAltClickUpgradesLine(t *testing.T) {
	h := newHarness(t)
	sq, _ := h.doc.PathForPoint(h.square[0])

	r := h.click(screen(150, 100), key.ModAlt)
	require.Equal(t, result{history.Normal, true}, r)
	require.Equal(t, 6, sq.Len())
	require.Empty(t, h.selected(), "upgrade does not select")

	// the segment is a curve now, so alt-click selects it instead
	r = h.click(screen(150, 100), key.ModAlt)
	require.Equal(t, none, r)
	require.Equal(t, 6, sq.Len())
	require.Len(t, h.selected(), 4)
}

func TestMarqueeSelectAndCancel(t *testing.T) {
	h := newHarness(t)

	h.press(screen(90, 90), key.ModNone)
	h.move(screen(210, 150), key.ModNone)
	require.True(t, h.ctx.PaintRequested(), "marquee appeared")
	require.ElementsMatch(t, []path.EntityID{h.square[0], h.square[1]}, h.selected())

	rect, ok := h.tool.Marquee()
	require.True(t, ok)
	require.Equal(t, geom.RectFromPoints(screen(90, 90), screen(210, 150)), rect)

	h.tool.CancelGesture(&h.ctx, h.m, h.doc)
	require.Empty(t, h.selected(), "cancel restores the pre-drag selection")
	require.True(t, h.ctx.PaintRequested(), "marquee disappeared")
	_, ok = h.tool.Marquee()
	require.False(t, ok)

	// the release that follows the cancel is not a gesture
	require.Equal(t, none, h.release(screen(210, 150), key.ModNone))
	require.Empty(t, h.selected())
}

func TestMarqueeRecomputesFromSnapshot(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelectionOne(h.curve[0])

	h.press(screen(90, 90), key.ModShift)
	h.move(screen(210, 150), key.ModNone)
	require.ElementsMatch(t, []path.EntityID{h.curve[0], h.square[0], h.square[1]}, h.selected())

	// shrinking the rectangle drops what left it
	h.move(screen(150, 150), key.ModNone)
	require.ElementsMatch(t, []path.EntityID{h.curve[0], h.square[0]}, h.selected())

	// holding shift mid-drag toggles against the snapshot
	h.move(screen(410, 150), key.ModShift)
	require.ElementsMatch(t, []path.EntityID{h.square[0], h.square[1], h.curve[3]}, h.selected(),
		"curve[0] was in the snapshot and inside the rectangle")

	require.Equal(t, none, h.release(screen(410, 150), key.ModShift))
	require.ElementsMatch(t, []path.EntityID{h.square[0], h.square[1], h.curve[3]}, h.selected())
	_, ok := h.tool.Marquee()
	require.False(t, ok)
}

func TestMarqueeShiftTwiceRestores(t *testing.T) {
	h := newHarness(t)
	prev := selection.New(h.square[0], h.curve[0])
	h.doc.SetSelection(prev)

	drag := func() {
		h.press(screen(90, 90), key.ModShift)
		h.move(screen(210, 150), key.ModShift)
		h.release(screen(210, 150), key.ModShift)
	}

	drag()
	require.ElementsMatch(t, []path.EntityID{h.square[1], h.curve[0]}, h.selected())
	drag()
	require.True(t, h.doc.Selection().Equal(prev))
}

func TestMoveDrag(t *testing.T) {
	h := newHarness(t)
	a := h.square[0]
	start := at(h, a)

	require.Equal(t, none, h.press(start, key.ModNone))
	require.Equal(t, []path.EntityID{a}, h.selected())

	r := h.move(start.Add(geom.Vec2{X: 10, Y: -5}), key.ModNone)
	require.Equal(t, result{history.Drag, true}, r)
	require.Equal(t, design.Pt(110, 105), h.point(a).Point)
	_, ok := h.tool.Marquee()
	require.False(t, ok)
	require.False(t, h.ctx.PaintRequested(), "moves do not touch the marquee")

	r = h.move(start.Add(geom.Vec2{X: 20, Y: -5}), key.ModNone)
	require.Equal(t, result{history.Drag, true}, r)
	require.Equal(t, design.Pt(120, 105), h.point(a).Point)

	r = h.release(start.Add(geom.Vec2{X: 20, Y: -5}), key.ModNone)
	require.Equal(t, result{history.DragUp, true}, r)

	// other points stay put
	require.Equal(t, design.Pt(200, 100), h.point(h.square[1]).Point)
}

func TestMoveDragsWholeSelection(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelection(selection.New(h.square[0], h.square[1]))

	start := at(h, h.square[1])
	h.press(start, key.ModNone)
	h.move(start.Add(geom.Vec2{X: 0, Y: -30}), key.ModNone)
	h.release(start.Add(geom.Vec2{X: 0, Y: -30}), key.ModNone)

	require.Equal(t, design.Pt(100, 130), h.point(h.square[0]).Point)
	require.Equal(t, design.Pt(200, 130), h.point(h.square[1]).Point)
}

func TestCancelMoveKeepsGeometry(t *testing.T) {
	h := newHarness(t)
	a := h.square[0]
	start := at(h, a)

	h.press(start, key.ModNone)
	h.move(start.Add(geom.Vec2{X: 10, Y: 0}), key.ModNone)
	h.tool.CancelGesture(&h.ctx, h.m, h.doc)

	require.Equal(t, design.Pt(110, 100), h.point(a).Point)
	require.Equal(t, []path.EntityID{a}, h.selected())
	require.Equal(t, none, h.release(start, key.ModNone))
}

func TestDragChangedWithoutDragPanics(t *testing.T) {
	h := newHarness(t)
	require.Panics(t, func() { h.tool.LeftDragChanged(mouse.Drag{}, h.doc) })
	require.Panics(t, func() { h.tool.LeftDragEnded(mouse.Drag{}, h.doc) })
}

func TestStaleEditTypePanics(t *testing.T) {
	h := newHarness(t)
	h.tool.setEdit(history.Normal)
	require.Panics(t, func() { h.key(key.KeyLeft, key.ModNone) })
}

func TestPanicClearsPendingEdit(t *testing.T) {
	h := newHarness(t)
	h.tool.setEdit(history.Drag)
	require.Panics(t, func() { h.key(key.KeyLeft, key.ModNone) })

	// a host that recovers keeps working
	h.doc.SetSelectionOne(h.square[0])
	require.Equal(t, result{history.NudgeLeft, true}, h.key(key.KeyLeft, key.ModNone))
	require.Equal(t, design.Pt(99, 100), h.point(h.square[0]).Point)

	h.tool.setEdit(history.Normal)
	require.Panics(t, func() { h.move(screen(0, 0), key.ModNone) })
	require.Equal(t, none, h.click(screen(50, 50), key.ModNone))
	require.Empty(t, h.selected())
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name  string
		key   key.Key
		mods  key.Modifier
		delta design.Vec2
		edit  history.EditType
	}{
		{"left", key.KeyLeft, key.ModNone, design.Vec(-1, 0), history.NudgeLeft},
		{"right", key.KeyRight, key.ModNone, design.Vec(1, 0), history.NudgeRight},
		{"up is +y", key.KeyUp, key.ModNone, design.Vec(0, 1), history.NudgeUp},
		{"down is -y", key.KeyDown, key.ModNone, design.Vec(0, -1), history.NudgeDown},
		{"shift right", key.KeyRight, key.ModShift, design.Vec(10, 0), history.Normal},
		{"meta up", key.KeyUp, key.ModMeta, design.Vec(0, 100), history.Normal},
		{"meta wins over shift", key.KeyLeft, key.ModMeta | key.ModShift, design.Vec(-100, 0), history.Normal},
		{"ctrl is not scaling", key.KeyDown, key.ModCtrl, design.Vec(0, -1), history.NudgeDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			a := h.square[0]
			h.doc.SetSelectionOne(a)

			r := h.key(tt.key, tt.mods)
			require.Equal(t, result{tt.edit, true}, r)
			require.Equal(t, design.Pt(100, 100).Add(tt.delta), h.point(a).Point)
		})
	}
}

func TestRepeatedUnitNudgesShareEditType(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelectionOne(h.square[0])

	for range 3 {
		require.Equal(t, result{history.NudgeRight, true}, h.key(key.KeyRight, key.ModNone))
	}
	require.Equal(t, design.Pt(103, 100), h.point(h.square[0]).Point)
}

func TestNudgeCtrlPrimary(t *testing.T) {
	h := newHarness(t)
	cfg := DefaultConfig()
	cfg.PrimaryModifier = key.ModCtrl
	h.tool.SetConfig(cfg)
	h.doc.SetSelectionOne(h.square[0])

	require.Equal(t, result{history.Normal, true}, h.key(key.KeyLeft, key.ModCtrl))
	require.Equal(t, result{history.NudgeLeft, true}, h.key(key.KeyLeft, key.ModMeta))
	require.Equal(t, design.Pt(-1, 100), h.point(h.square[0]).Point)
}

func TestNudgeEmptySelectionIsNoop(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, none, h.key(key.KeyRight, key.ModShift))
	require.Equal(t, none, h.key(key.KeyBackspace, key.ModNone), "nothing to delete")
}

func TestDelete(t *testing.T) {
	for _, k := range []key.Key{key.KeyBackspace, key.KeyDelete} {
		t.Run(k.String(), func(t *testing.T) {
			h := newHarness(t)
			h.doc.SetSelection(selection.New(h.square[0], h.guide))

			require.Equal(t, result{history.Normal, true}, h.key(k, key.ModNone))
			require.Empty(t, h.selected())
			require.Empty(t, h.doc.Guides())
			_, ok := h.doc.PathPoint(h.square[0])
			require.False(t, ok)

			require.Equal(t, none, h.key(k, key.ModNone), "nothing left to delete")
		})
	}
}

func TestTabNavigation(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, none, h.key(key.KeyTab, key.ModNone))
	require.Equal(t, []path.EntityID{h.square[0]}, h.selected())
	require.True(t, h.ctx.PaintRequested())

	h.key(key.KeyTab, key.ModNone)
	require.Equal(t, []path.EntityID{h.square[1]}, h.selected())

	require.Equal(t, none, h.key(key.KeyTab, key.ModShift))
	require.Equal(t, []path.EntityID{h.square[0]}, h.selected())
}

func TestUnhandledKey(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelectionOne(h.square[0])
	require.Equal(t, none, h.key(key.KeyEnter, key.ModNone))
	require.Equal(t, []path.EntityID{h.square[0]}, h.selected())
}

func TestDoubleClickOnCurveTogglesType(t *testing.T) {
	h := newHarness(t)
	a := h.square[2]

	r := h.doubleClick(at(h, a), key.ModNone)
	require.Equal(t, result{history.Normal, true}, r)
	require.True(t, h.point(a).Smooth)

	h.doubleClick(at(h, a), key.ModNone)
	require.False(t, h.point(a).Smooth)
}

func TestDoubleClickGuideToggles(t *testing.T) {
	h := newHarness(t)

	r := h.doubleClick(screen(500, 400), key.ModNone)
	require.Equal(t, result{history.Normal, true}, r)

	g, ok := h.doc.Guide(h.guide)
	require.True(t, ok)
	require.Equal(t, path.GuideVertical, g.Kind)
	require.Equal(t, 500.0, g.Pos.X)
}

func TestDoubleClickSegmentSelectsPath(t *testing.T) {
	h := newHarness(t)
	h.doc.SetSelectionOne(h.curve[0])

	r := h.doubleClick(screen(150, 100), key.ModNone)
	require.Equal(t, none, r, "selecting a path is not an edit")
	require.ElementsMatch(t, h.square, h.selected())

	h.doubleClick(screen(350, 175), key.ModShift)
	require.Len(t, h.selected(), 8)
}

func TestDoubleClickHandleSelectsPath(t *testing.T) {
	h := newHarness(t)

	r := h.doubleClick(at(h, h.curve[1]), key.ModNone)
	require.Equal(t, none, r)
	require.ElementsMatch(t, h.curve, h.selected())
}

func TestMouseMovedRecordsPosition(t *testing.T) {
	h := newHarness(t)
	h.move(screen(12, 34), key.ModNone)
	require.Equal(t, screen(12, 34), h.tool.LastPointerPos())
	require.False(t, h.ctx.PaintRequested())
}

type surfaceCall struct {
	op    string
	rect  geom.Rect
	color color.Color
}

type recordingSurface struct {
	calls []surfaceCall
}

func (s *recordingSurface) FillRect(r geom.Rect, c color.Color) {
	s.calls = append(s.calls, surfaceCall{"fill", r, c})
}

func (s *recordingSurface) StrokeRect(r geom.Rect, c color.Color, width float64) {
	s.calls = append(s.calls, surfaceCall{"stroke", r, c})
}

func TestPaintMarquee(t *testing.T) {
	h := newHarness(t)
	cfg := DefaultConfig()

	var idle recordingSurface
	h.tool.Paint(&idle, h.doc)
	require.Empty(t, idle.calls)

	h.press(screen(0, 0), key.ModNone)
	h.move(screen(50, 50), key.ModNone)

	var s recordingSurface
	h.tool.Paint(&s, h.doc)
	rect := geom.RectFromPoints(screen(0, 0), screen(50, 50))
	require.Equal(t, []surfaceCall{
		{"fill", rect, cfg.MarqueeFill},
		{"stroke", rect, cfg.MarqueeStroke},
	}, s.calls)
}

func TestEventContextPaintRequested(t *testing.T) {
	var ctx EventContext
	require.False(t, ctx.PaintRequested())
	ctx.RequestPaint()
	require.True(t, ctx.PaintRequested())
	require.False(t, ctx.PaintRequested(), "request is cleared on read")
}

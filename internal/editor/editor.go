// Package editor connects an edit session to its input, its tool and its
// undo history.
//
// The host feeds key and mouse events to an Editor, asks NeedsPaint after
// each one, and calls Paint when a repaint is due. Every edit the tool
// reports is recorded in the undo history as a snapshot of the session
// taken before the event.
package editor

import (
	"errors"

	"github.com/dshills/contour/internal/config"
	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/input/mouse"
	"github.com/dshills/contour/internal/logger"
	"github.com/dshills/contour/internal/session"
	"github.com/dshills/contour/internal/tool"
)

// Editor is the host for one edit session.
type Editor struct {
	session *session.EditSession
	mouse   *mouse.Mouse
	tool    *tool.Select
	history *history.History[*session.EditSession]

	ctx   tool.EventContext
	dirty bool

	undoKey key.HotKey
	redoKey key.HotKey
	theme   Theme
}

// New creates an editor for doc.
func New(doc *session.EditSession, cfg config.Config) *Editor {
	e := &Editor{
		session: doc,
		mouse:   mouse.New(cfg.MouseSettings()),
		tool:    tool.NewSelect(cfg.ToolSettings()),
		history: history.NewHistory[*session.EditSession](cfg.HistoryLimit()),
		theme:   DefaultTheme(),
	}
	e.applyConfig(cfg)
	return e
}

// SetConfig applies cfg to the running editor. The history limit only takes
// effect for new editors.
func (e *Editor) SetConfig(cfg config.Config) {
	e.mouse.SetConfig(cfg.MouseSettings())
	e.tool.SetConfig(cfg.ToolSettings())
	e.applyConfig(cfg)
	e.dirty = true
}

func (e *Editor) applyConfig(cfg config.Config) {
	e.session.SetHitTolerance(cfg.Select.HitTolerance)
	e.undoKey = cfg.UndoKey()
	e.redoKey = cfg.RedoKey()
}

// Session returns the session being edited. Undo and redo replace it.
func (e *Editor) Session() *session.EditSession {
	return e.session
}

// Tool returns the active tool.
func (e *Editor) Tool() *tool.Select {
	return e.tool
}

// History returns the undo history.
func (e *Editor) History() *history.History[*session.EditSession] {
	return e.history
}

// SetTheme replaces the document colors.
func (e *Editor) SetTheme(t Theme) {
	e.theme = t
	e.dirty = true
}

// HandleKey processes a key press.
func (e *Editor) HandleKey(event key.Event) {
	switch {
	case e.undoKey.Matches(event):
		e.Undo()
	case e.redoKey.Matches(event):
		e.Redo()
	case event.IsEscape():
		e.cancelGesture()
	default:
		before := e.session.Snapshot()
		edit, ok := e.tool.KeyDown(event, &e.ctx, e.session)
		e.afterEvent(before, edit, ok)
	}
}

// HandleMouse processes a pointer event.
func (e *Editor) HandleMouse(event mouse.Event) {
	if e.mouse.State() == mouse.StateUp && event.Action != mouse.ActionPress {
		// hover and stray releases reach only MouseMoved, which never edits
		e.tool.MouseEvent(event, &e.ctx, e.mouse, e.session)
		return
	}
	before := e.session.Snapshot()
	edit, ok := e.tool.MouseEvent(event, &e.ctx, e.mouse, e.session)
	e.afterEvent(before, edit, ok)
}

func (e *Editor) afterEvent(before *session.EditSession, edit history.EditType, ok bool) {
	if ok {
		if e.history.Record(edit, before) {
			logger.WithTag("history").Debug("undo step", "edit", edit, "steps", e.history.UndoCount())
		}
		e.dirty = true
		return
	}
	if !before.Selection().Equal(e.session.Selection()) {
		e.dirty = true
	}
}

// cancelGesture aborts the gesture in progress. A cancelled move never
// delivers DragUp, so its undo step is closed here.
func (e *Editor) cancelGesture() {
	dragging := e.mouse.IsDragging()
	e.tool.CancelGesture(&e.ctx, e.mouse, e.session)
	if dragging {
		e.history.Break()
	}
}

// Undo restores the state before the last undo step. A gesture in
// progress is cancelled first.
func (e *Editor) Undo() bool {
	e.cancelGesture()
	prev, err := e.history.Undo(e.session)
	if err != nil {
		if !errors.Is(err, history.ErrNothingToUndo) {
			logger.WithTag("history").Error("undo failed", "err", err)
		}
		return false
	}
	e.restore(prev, "undo")
	return true
}

// Redo re-applies the last undone step.
func (e *Editor) Redo() bool {
	e.cancelGesture()
	next, err := e.history.Redo(e.session)
	if err != nil {
		if !errors.Is(err, history.ErrNothingToRedo) {
			logger.WithTag("history").Error("redo failed", "err", err)
		}
		return false
	}
	e.restore(next, "redo")
	return true
}

func (e *Editor) restore(s *session.EditSession, op string) {
	// keep the live viewport and tolerance across undo
	s.SetViewport(e.session.Viewport())
	s.SetHitTolerance(e.session.HitTolerance())
	e.session = s
	e.dirty = true
	logger.WithTag("history").Debug(op, "undo", e.history.UndoCount(), "redo", e.history.RedoCount())
}

// Invalidate forces a repaint, for instance after the surface is resized.
func (e *Editor) Invalidate() {
	e.dirty = true
}

// NeedsPaint reports whether the view changed since the last call.
func (e *Editor) NeedsPaint() bool {
	p := e.ctx.PaintRequested() || e.dirty
	e.dirty = false
	return p
}

// Package history provides undo/redo for the path editor.
//
// # Edit Types
//
// Every undoable change is tagged with an EditType. Normal edits always
// start a new undo step. Repeated edits of the same coalescable type (unit
// nudges in one direction, or the frames of a drag) fold into the step
// opened by the first of them, so one undo reverts the whole run. DragUp
// closes a drag's step without adding one.
//
// # History Stack
//
// History stores snapshots of the edited state. The caller records the
// state as it was before each edit and swaps in whatever Undo or Redo
// returns:
//
//	h := history.NewHistory[*session.EditSession](256)
//
//	before := sess.Snapshot()
//	edit, ok := tool.KeyDown(event, sess)
//	if ok {
//	    h.Record(edit, before)
//	}
//
//	prev, err := h.Undo(sess)
//	if err == nil {
//	    sess = prev
//	}
package history

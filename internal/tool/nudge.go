package tool

import (
	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/input/key"
)

const (
	primaryNudge = 100
	shiftNudge   = 10
)

// nudgeVector returns the design-space nudge for an arrow key event.
// The primary modifier wins over shift when both are held.
func nudgeVector(event key.Event, primary key.Modifier) design.Vec2 {
	dx, dy := event.Key.Direction()
	v := design.Vec(dx, dy)
	switch {
	case event.Modifiers.Has(primary):
		v = v.Scale(primaryNudge)
	case event.Modifiers.HasShift():
		v = v.Scale(shiftNudge)
	}
	return v
}

// nudgeEdit classifies a nudge. Scaled nudges never coalesce.
func nudgeEdit(k key.Key, v design.Vec2) history.EditType {
	if v.Hypot() > 1 {
		return history.Normal
	}
	switch k {
	case key.KeyLeft:
		return history.NudgeLeft
	case key.KeyRight:
		return history.NudgeRight
	case key.KeyUp:
		return history.NudgeUp
	default:
		return history.NudgeDown
	}
}

func (s *Select) nudge(event key.Event, doc Document) {
	v := nudgeVector(event, s.config.PrimaryModifier)
	// An empty selection moves nothing and records no edit, so it never
	// leaves an empty undo step.
	if doc.NudgeSelection(v) {
		s.setEdit(nudgeEdit(event.Key, v))
	}
}

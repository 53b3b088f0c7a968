package history

// EditType classifies an edit for undo coalescing.
type EditType uint8

const (
	// Normal is an edit that always gets its own undo step.
	Normal EditType = iota
	// NudgeLeft is a unit nudge to the left.
	NudgeLeft
	// NudgeRight is a unit nudge to the right.
	NudgeRight
	// NudgeUp is a unit nudge upward.
	NudgeUp
	// NudgeDown is a unit nudge downward.
	NudgeDown
	// Drag is one frame of an in-progress move.
	Drag
	// DragUp marks the end of a move.
	DragUp
)

// String returns a string representation of the edit type.
func (e EditType) String() string {
	switch e {
	case Normal:
		return "normal"
	case NudgeLeft:
		return "nudge-left"
	case NudgeRight:
		return "nudge-right"
	case NudgeUp:
		return "nudge-up"
	case NudgeDown:
		return "nudge-down"
	case Drag:
		return "drag"
	case DragUp:
		return "drag-up"
	default:
		return "unknown"
	}
}

// IsNudge returns true for the directional nudge types.
func (e EditType) IsNudge() bool {
	return e >= NudgeLeft && e <= NudgeDown
}

// Coalesces returns true if consecutive edits of this type share an undo step.
func (e EditType) Coalesces() bool {
	return e.IsNudge() || e == Drag
}

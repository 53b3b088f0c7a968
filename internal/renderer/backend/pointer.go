package backend

import (
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/mouse"
)

// Default cell size in screen units. Terminal cells are about twice as tall
// as they are wide.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Pointer turns terminal mouse reports, which carry the buttons held at
// each report, into press, move and release events in screen space.
type Pointer struct {
	CellWidth  float64
	CellHeight float64

	held mouse.Button
}

// NewPointer creates a pointer with the default cell size.
func NewPointer() *Pointer {
	return &Pointer{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}
}

// CellCenter returns the screen position of the center of cell (x, y).
func (p *Pointer) CellCenter(x, y int) geom.Point {
	return geom.Pt((float64(x)+0.5)*p.CellWidth, (float64(y)+0.5)*p.CellHeight)
}

// Translate converts a mouse report. Wheel reports and non-mouse events
// return false.
func (p *Pointer) Translate(ev Event) (mouse.Event, bool) {
	if ev.Type != EventMouse || ev.Buttons&ButtonWheel != 0 {
		return mouse.Event{}, false
	}

	out := mouse.Event{
		Position:  p.CellCenter(ev.MouseX, ev.MouseY),
		Modifiers: ev.Mod,
		Action:    mouse.ActionMove,
		Timestamp: ev.When,
	}

	button := primaryButton(ev.Buttons)
	switch {
	case p.held == mouse.ButtonNone && button != mouse.ButtonNone:
		out.Action = mouse.ActionPress
		out.Button = button
		p.held = button
	case p.held != mouse.ButtonNone && button == mouse.ButtonNone:
		out.Action = mouse.ActionRelease
		out.Button = p.held
		p.held = mouse.ButtonNone
	}
	return out, true
}

// Held returns the button currently held, if any.
func (p *Pointer) Held() mouse.Button {
	return p.held
}

func primaryButton(b ButtonMask) mouse.Button {
	switch {
	case b&ButtonLeft != 0:
		return mouse.ButtonLeft
	case b&ButtonRight != 0:
		return mouse.ButtonRight
	case b&ButtonMiddle != 0:
		return mouse.ButtonMiddle
	default:
		return mouse.ButtonNone
	}
}

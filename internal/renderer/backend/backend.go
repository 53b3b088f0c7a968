// Package backend provides the terminal display for the path editor.
//
// A Backend is a grid of character cells plus an event source. Raster
// draws the document onto the cell grid, and Pointer turns the terminal's
// button-state mouse reports into press, move and release events.
package backend

import (
	"image/color"
	"time"

	"github.com/dshills/contour/internal/input/key"
)

// Cell is one character cell of the display. Nil colors use the terminal
// default.
type Cell struct {
	Rune rune
	Fg   color.Color
	Bg   color.Color
}

// EmptyCell returns a blank cell in the default colors.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// Equals returns true if both cells draw the same.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune && sameColor(c.Fg, other.Fg) && sameColor(c.Bg, other.Bg)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// ButtonMask is the set of mouse buttons held during a mouse report.
type ButtonMask int

const (
	ButtonLeft ButtonMask = 1 << iota
	ButtonMiddle
	ButtonRight
	ButtonWheel
)

// Event represents a terminal event.
type Event struct {
	Type EventType
	When time.Time

	// Key event fields
	Key key.Event

	// Mouse event fields, in cells
	MouseX, MouseY int
	Buttons        ButtonMask
	Mod            key.Modifier

	// Resize event fields
	Width, Height int
}

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the display are silently ignored.
	SetCell(x, y int, cell Cell)

	// Show flushes changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	shown         int
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell()
		}
	}
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at the given position.
func (b *NullBackend) GetCell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}

func (b *NullBackend) Show() {
	b.shown++
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	return b.shown
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

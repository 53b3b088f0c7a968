package mouse

import (
	"time"

	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Action is the tag of a raw mouse event.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates pointer movement, with or without a button held.
	ActionMove
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// Event is a tagged mouse event in screen space.
type Event struct {
	// Position is the pointer position in screen coordinates.
	Position geom.Point

	// Button is the button pressed or released. Moves use ButtonNone.
	Button Button

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action tags the event as a press, release or move.
	Action Action

	// Count is the click count of a press (1 single, 2 double, 3 triple).
	// The dispatcher fills it in; it is zero for other actions.
	Count int

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Down returns a left-button press at pos.
func Down(pos geom.Point, mods key.Modifier) Event {
	return Event{Position: pos, Button: ButtonLeft, Modifiers: mods, Action: ActionPress, Timestamp: time.Now()}
}

// Up returns a left-button release at pos.
func Up(pos geom.Point, mods key.Modifier) Event {
	return Event{Position: pos, Button: ButtonLeft, Modifiers: mods, Action: ActionRelease, Timestamp: time.Now()}
}

// Moved returns a pointer move to pos.
func Moved(pos geom.Point, mods key.Modifier) Event {
	return Event{Position: pos, Modifiers: mods, Action: ActionMove, Timestamp: time.Now()}
}

// HasShift returns true if shift was held.
func (e Event) HasShift() bool {
	return e.Modifiers.HasShift()
}

// Drag describes an in-progress drag gesture.
type Drag struct {
	// Start is the press that began the gesture.
	Start Event

	// Prev is the event delivered with the previous drag callback, or Start
	// for the first one.
	Prev Event

	// Current is the event that triggered this callback.
	Current Event
}

// Config configures gesture recognition.
type Config struct {
	// DoubleClickTime is the maximum time between presses of a multi-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum pointer travel between presses of a
	// multi-click, in screen units.
	DoubleClickDistance float64

	// DragThreshold is how far the pointer must travel with the button held
	// before a press becomes a drag.
	DragThreshold float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
		DragThreshold:       2,
	}
}

// Delegate receives gesture callbacks. T is the value passed through from
// Dispatch, typically the document the gesture applies to.
type Delegate[T any] interface {
	MouseMoved(event Event, data T)
	LeftDown(event Event, data T)
	LeftUp(event Event, data T)
	LeftDragBegan(drag Drag, data T)
	LeftDragChanged(drag Drag, data T)
	LeftDragEnded(drag Drag, data T)
	Cancel(data T)
}

// State is the dispatcher's gesture state.
type State uint8

const (
	// StateUp means no button is held.
	StateUp State = iota
	// StateDown means the left button is held but the pointer has not moved
	// past the drag threshold.
	StateDown
	// StateDrag means a drag gesture is in progress.
	StateDrag
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUp:
		return "up"
	case StateDown:
		return "down"
	case StateDrag:
		return "drag"
	default:
		return "unknown"
	}
}

// Mouse is the gesture dispatcher.
type Mouse struct {
	config Config
	click  *clickTracker

	state State
	start Event
	prev  Event
}

// New creates a dispatcher with the given configuration.
func New(config Config) *Mouse {
	return &Mouse{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
	}
}

// Config returns the current configuration.
func (m *Mouse) Config() Config {
	return m.config
}

// SetConfig replaces the configuration. A gesture in progress is unaffected
// except for the drag threshold.
func (m *Mouse) SetConfig(config Config) {
	m.config = config
	m.click.maxTime = config.DoubleClickTime
	m.click.maxDistance = config.DoubleClickDistance
}

// State returns the current gesture state.
func (m *Mouse) State() State {
	return m.state
}

// IsDragging returns true while a drag gesture is in progress.
func (m *Mouse) IsDragging() bool {
	return m.state == StateDrag
}

// Dispatch classifies event and invokes the matching delegate callbacks.
func Dispatch[T any](m *Mouse, event Event, d Delegate[T], data T) {
	switch event.Action {
	case ActionPress:
		press(m, event, d, data)
	case ActionMove:
		move(m, event, d, data)
	case ActionRelease:
		release(m, event, d, data)
	}
}

// Cancel aborts the gesture in progress, if any, calling the delegate's
// Cancel in place of the rest of the gesture. The next press starts a new
// click sequence.
func Cancel[T any](m *Mouse, d Delegate[T], data T) {
	if m.state == StateUp {
		return
	}
	m.reset()
	m.click.reset()
	d.Cancel(data)
}

func press[T any](m *Mouse, event Event, d Delegate[T], data T) {
	if event.Button != ButtonLeft || m.state != StateUp {
		return
	}
	event.Count = m.click.recordClick(event.Position, event.Timestamp)
	m.state = StateDown
	m.start = event
	m.prev = event
	d.LeftDown(event, data)
}

func move[T any](m *Mouse, event Event, d Delegate[T], data T) {
	switch m.state {
	case StateUp:
		d.MouseMoved(event, data)

	case StateDown:
		if event.Position.Distance(m.start.Position) <= m.config.DragThreshold {
			return
		}
		m.state = StateDrag
		drag := m.drag(event)
		d.LeftDragBegan(drag, data)
		d.LeftDragChanged(drag, data)

	case StateDrag:
		d.LeftDragChanged(m.drag(event), data)
	}
}

func release[T any](m *Mouse, event Event, d Delegate[T], data T) {
	if event.Button != ButtonLeft && event.Button != ButtonNone {
		return
	}
	switch m.state {
	case StateDown:
		m.reset()
		d.LeftUp(event, data)

	case StateDrag:
		drag := m.drag(event)
		m.reset()
		d.LeftDragEnded(drag, data)
		d.LeftUp(event, data)
	}
}

// drag builds the Drag for event and advances Prev.
func (m *Mouse) drag(event Event) Drag {
	dr := Drag{Start: m.start, Prev: m.prev, Current: event}
	m.prev = event
	return dr
}

func (m *Mouse) reset() {
	m.state = StateUp
	m.start = Event{}
	m.prev = Event{}
}

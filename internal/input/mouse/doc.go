// Package mouse turns raw pointer events into gestures.
//
// The dispatcher (Mouse) classifies a stream of press, move and release
// events into semantic callbacks on a Delegate: MouseMoved, LeftDown,
// LeftUp, and the drag triple LeftDragBegan, LeftDragChanged and
// LeftDragEnded. Cancel may be delivered instead of completing a gesture.
//
// # Event Ordering
//
// For one left-button gesture the delegate sees either
//
//	LeftDown, LeftUp
//
// or, once the pointer travels farther than Config.DragThreshold,
//
//	LeftDown, LeftDragBegan, LeftDragChanged..., LeftDragEnded, LeftUp
//
// Cancel replaces everything after LeftDown, including LeftUp. A press
// while a gesture is in progress is ignored.
//
// # Click Counting
//
// Each press carries a click count in Event.Count. Presses within
// Config.DoubleClickTime and Config.DoubleClickDistance of the previous
// press increase the count, wrapping back to 1 after a triple click.
//
// # Generic Delegates
//
// Delegates receive a caller-chosen value with every callback, usually the
// document being edited:
//
//	m := mouse.New(mouse.DefaultConfig())
//	mouse.Dispatch(m, event, tool, doc)
//
// Mouse is not safe for concurrent use. It is driven from a single event
// loop.
package mouse

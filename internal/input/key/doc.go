// Package key provides keyboard event types for the canvas tools.
//
// This package defines the types the tools and the host exchange:
//
//   - Key: identifies a keyboard key (editing keys, arrows, or a rune)
//   - Modifier: the held modifier keys (Shift, Ctrl, Alt, Meta)
//   - Event: a single key press with its modifiers
//   - HotKey: a key plus an exact modifier set, parsed from strings like
//     "Ctrl+Z" or "Shift+Tab"
//
// Arrow keys carry a design-space direction (see Key.Direction) so that
// tools can turn them into nudges without a lookup table of their own.
package key

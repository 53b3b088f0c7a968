package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptyHotKey   = errors.New("empty hotkey specification")
	ErrInvalidHotKey = errors.New("invalid hotkey specification")
)

// HotKey is a key combined with an exact set of modifiers.
type HotKey struct {
	Mods Modifier
	Key  Key
	Rune rune
}

// NewHotKey returns a hotkey for a special key.
func NewHotKey(mods Modifier, k Key) HotKey {
	return HotKey{Mods: mods, Key: k}
}

// Matches reports whether e is this key with exactly these modifiers.
// Letters match regardless of case, so "Ctrl+Shift+Z" matches a terminal
// that reports either 'z' or 'Z'.
func (h HotKey) Matches(e Event) bool {
	if e.Modifiers != h.Mods || e.Key != h.Key {
		return false
	}
	if h.Key != KeyRune {
		return true
	}
	return unicode.ToLower(e.Rune) == unicode.ToLower(h.Rune)
}

// String returns the canonical specification, e.g. "Ctrl+Shift+Z".
func (h HotKey) String() string {
	name := h.Key.String()
	if h.Key == KeyRune {
		name = strings.ToUpper(string(h.Rune))
	}
	if h.Mods.IsEmpty() {
		return name
	}
	return h.Mods.String() + "+" + name
}

// ParseHotKey parses a specification like "Tab", "Shift+Tab" or "Ctrl+Z".
// Modifier names and key names are case-insensitive.
func ParseHotKey(spec string) (HotKey, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return HotKey{}, ErrEmptyHotKey
	}

	parts := strings.Split(spec, "+")
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return HotKey{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidHotKey, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return HotKey{}, fmt.Errorf("%w: missing key in %q", ErrInvalidHotKey, spec)
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return HotKey{Mods: mods, Key: k}, nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return HotKey{}, fmt.Errorf("%w: unknown key %q", ErrInvalidHotKey, keyPart)
	}
	return HotKey{Mods: mods, Key: KeyRune, Rune: unicode.ToLower(runes[0])}, nil
}

// MustParseHotKey parses a hotkey and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseHotKey(spec string) HotKey {
	h, err := ParseHotKey(spec)
	if err != nil {
		panic("invalid hotkey specification: " + spec + ": " + err.Error())
	}
	return h
}

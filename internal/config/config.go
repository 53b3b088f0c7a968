package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/contour/internal/engine/history"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/input/mouse"
	"github.com/dshills/contour/internal/logger"
	"github.com/dshills/contour/internal/tool"
)

// Config is the editor configuration.
type Config struct {
	Mouse   MouseConfig   `toml:"mouse"`
	Select  SelectConfig  `toml:"select"`
	Marquee MarqueeConfig `toml:"marquee"`
	Keys    KeysConfig    `toml:"keys"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// MouseConfig holds gesture recognition settings.
type MouseConfig struct {
	// DoubleClickMS is the maximum time between presses of a double click.
	DoubleClickMS int `toml:"double_click_ms"`

	// DoubleClickDistance is the maximum pointer travel between presses of
	// a double click, in screen units.
	DoubleClickDistance float64 `toml:"double_click_distance"`

	// DragThreshold is how far the pointer must travel before a press
	// becomes a drag.
	DragThreshold float64 `toml:"drag_threshold"`
}

// SelectConfig holds selection tool settings.
type SelectConfig struct {
	// PrimaryModifier is the modifier that scales nudges by 100 ("meta" or "ctrl").
	PrimaryModifier string `toml:"primary_modifier"`

	// HitTolerance is the hit radius in screen units.
	HitTolerance float64 `toml:"hit_tolerance"`
}

// MarqueeConfig holds the rectangle selection colors.
type MarqueeConfig struct {
	Fill   string `toml:"fill"`
	Stroke string `toml:"stroke"`
}

// KeysConfig holds editor hotkeys.
type KeysConfig struct {
	Undo string `toml:"undo"`
	Redo string `toml:"redo"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	// MaxEntries is the number of undo steps kept.
	MaxEntries int `toml:"max_entries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level logged.
	Level string `toml:"level"`

	// File is the log file path. Empty discards log output.
	File string `toml:"file"`

	// DisabledTags suppresses messages from the named subsystems.
	DisabledTags []string `toml:"disabled_tags"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mouse: MouseConfig{
			DoubleClickMS:       400,
			DoubleClickDistance: 4,
			DragThreshold:       2,
		},
		Select: SelectConfig{
			PrimaryModifier: "meta",
			HitTolerance:    6,
		},
		Marquee: MarqueeConfig{
			Fill:   "#DDDDDD55",
			Stroke: "#538BBB",
		},
		Keys: KeysConfig{
			Undo: "Ctrl+Z",
			Redo: "Ctrl+Shift+Z",
		},
		History: HistoryConfig{
			MaxEntries: 256,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and validates the configuration file at path. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("config file %s not found, using defaults", path)
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults. source names the data in
// error messages. Parse does not validate.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, parseError(source, err)
	}
	return cfg, nil
}

func parseError(source string, err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return &ParseError{Path: source, Line: row, Column: col, Message: derr.Error(), Err: err}
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) {
		return &ParseError{Path: source, Message: serr.String(), Err: fmt.Errorf("%w: %w", ErrUnknownKey, err)}
	}
	return &ParseError{Path: source, Message: err.Error(), Err: err}
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every setting and returns all problems found.
func (c Config) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if c.Mouse.DoubleClickMS <= 0 {
		check(invalid("mouse.double_click_ms", c.Mouse.DoubleClickMS, "must be positive"))
	}
	if c.Mouse.DoubleClickDistance < 0 {
		check(invalid("mouse.double_click_distance", c.Mouse.DoubleClickDistance, "must not be negative"))
	}
	if c.Mouse.DragThreshold < 0 {
		check(invalid("mouse.drag_threshold", c.Mouse.DragThreshold, "must not be negative"))
	}

	if _, err := parsePrimary(c.Select.PrimaryModifier); err != nil {
		check(err)
	}
	if c.Select.HitTolerance <= 0 {
		check(invalid("select.hit_tolerance", c.Select.HitTolerance, "must be positive"))
	}

	if _, err := ParseColor(c.Marquee.Fill); err != nil {
		check(invalid("marquee.fill", c.Marquee.Fill, err.Error()))
	}
	if _, err := ParseColor(c.Marquee.Stroke); err != nil {
		check(invalid("marquee.stroke", c.Marquee.Stroke, err.Error()))
	}

	if _, err := key.ParseHotKey(c.Keys.Undo); err != nil {
		check(invalid("keys.undo", c.Keys.Undo, err.Error()))
	}
	if _, err := key.ParseHotKey(c.Keys.Redo); err != nil {
		check(invalid("keys.redo", c.Keys.Redo, err.Error()))
	}

	if c.History.MaxEntries <= 0 {
		check(invalid("history.max_entries", c.History.MaxEntries, "must be positive"))
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		check(invalid("log.level", c.Log.Level, "want debug, info, warn or error"))
	}

	return errors.Join(errs...)
}

func parsePrimary(name string) (key.Modifier, error) {
	switch mod := key.ModifierFromName(name); mod {
	case key.ModMeta, key.ModCtrl:
		return mod, nil
	default:
		return key.ModNone, invalid("select.primary_modifier", name, "want meta or ctrl")
	}
}

// MouseSettings returns the gesture dispatcher configuration.
func (c Config) MouseSettings() mouse.Config {
	return mouse.Config{
		DoubleClickTime:     time.Duration(c.Mouse.DoubleClickMS) * time.Millisecond,
		DoubleClickDistance: c.Mouse.DoubleClickDistance,
		DragThreshold:       c.Mouse.DragThreshold,
	}
}

// ToolSettings returns the tool configuration. Settings that do not parse
// keep their defaults; call Validate to detect them.
func (c Config) ToolSettings() tool.Config {
	cfg := tool.DefaultConfig()
	if mod, err := parsePrimary(c.Select.PrimaryModifier); err == nil {
		cfg.PrimaryModifier = mod
	}
	if col, err := ParseColor(c.Marquee.Fill); err == nil {
		cfg.MarqueeFill = col
	}
	if col, err := ParseColor(c.Marquee.Stroke); err == nil {
		cfg.MarqueeStroke = col
	}
	return cfg
}

// UndoKey returns the undo hotkey, falling back to Ctrl+Z.
func (c Config) UndoKey() key.HotKey {
	if h, err := key.ParseHotKey(c.Keys.Undo); err == nil {
		return h
	}
	return key.MustParseHotKey(Default().Keys.Undo)
}

// RedoKey returns the redo hotkey, falling back to Ctrl+Shift+Z.
func (c Config) RedoKey() key.HotKey {
	if h, err := key.ParseHotKey(c.Keys.Redo); err == nil {
		return h
	}
	return key.MustParseHotKey(Default().Keys.Redo)
}

// HistoryLimit returns the number of undo steps to keep.
func (c Config) HistoryLimit() int {
	if c.History.MaxEntries <= 0 {
		return history.DefaultMaxEntries
	}
	return c.History.MaxEntries
}

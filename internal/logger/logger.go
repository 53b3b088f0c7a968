// Package logger provides the process-wide structured logger.
//
// Until Init is called every message is discarded, so packages may log
// freely without configuring anything, and tests stay quiet.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// TagKey is the attribute key used to label messages by subsystem.
const TagKey = "tag"

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	initOnce      sync.Once
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum level to log ("debug", "info", "warn", "error").
	Level string

	// DisabledTags drops messages whose tag attribute is in the list.
	DisabledTags []string
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a text logger writing to output. It does not touch the
// process-wide logger.
func New(cfg Config, level slog.Leveler, output io.Writer) *slog.Logger {
	if output == nil {
		output = io.Discard
	}
	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	var handler slog.Handler = slog.NewTextHandler(output, &opts)
	if len(cfg.DisabledTags) > 0 {
		handler = newTagFilter(handler, cfg.DisabledTags)
	}
	return slog.New(handler)
}

// Init configures the process-wide logger. Only the first call has effect;
// use SetLevel to change the level afterwards.
func Init(cfg Config, output io.Writer) {
	initOnce.Do(func() {
		level, _ := ParseLevel(cfg.Level)
		logLevel.Set(level)
		l := New(cfg, logLevel, output)

		mu.Lock()
		defaultLogger = l
		mu.Unlock()

		l.Info("Logger initialized", slog.String("level", level.String()))
	})
}

// SetLevel changes the minimum level of the process-wide logger.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// Get retrieves the configured logger instance, or a discarding logger if
// Init has not been called.
func Get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
	}
	return defaultLogger
}

// WithTag returns the process-wide logger with a tag attribute attached.
func WithTag(tag string) *slog.Logger {
	return Get().With(TagKey, tag)
}

// logAtLevel logs a formatted record, attributing it to the wrapper's caller.
func logAtLevel(level slog.Level, format string, args ...any) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) {
	logAtLevel(slog.LevelDebug, format, args...)
}

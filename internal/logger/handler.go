package logger

import (
	"context"
	"log/slog"
	"strings"
)

// tagFilter drops records carrying a disabled tag, whether the tag was
// attached with Logger.With or passed with the record itself.
type tagFilter struct {
	base     slog.Handler
	disabled map[string]struct{}
	tag      string // tag attached via WithAttrs, lower-cased
}

func newTagFilter(base slog.Handler, tags []string) *tagFilter {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}
	return &tagFilter{base: base, disabled: set}
}

func (h *tagFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *tagFilter) Handle(ctx context.Context, r slog.Record) error {
	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == TagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})
	if _, found := h.disabled[tag]; found && tag != "" {
		return nil
	}
	return h.base.Handle(ctx, r)
}

func (h *tagFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &tagFilter{base: h.base.WithAttrs(attrs), disabled: h.disabled, tag: h.tag}
	for _, a := range attrs {
		if a.Key == TagKey {
			next.tag = strings.ToLower(a.Value.String())
		}
	}
	return next
}

func (h *tagFilter) WithGroup(name string) slog.Handler {
	return &tagFilter{base: h.base.WithGroup(name), disabled: h.disabled, tag: h.tag}
}

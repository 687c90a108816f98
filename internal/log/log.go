// Package log owns the process-wide structured logger. Solver internals log
// under a "section" attribute; only sections listed here emit below Warn, so
// tracing one phase does not drown the output in the others.
package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

var enabledSections = []string{
	"inference",
	"fixation",
}

var level = &slog.LevelVar{}

// SetLevel changes the level of DefaultLogger and every logger derived from it.
func SetLevel(l slog.Level) {
	level.Set(l)
}

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = slog.New(&sectionHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

var _ slog.Handler = &sectionHandler{}

// sectionHandler suppresses sub-Warn records that belong to no enabled
// section. The section can arrive either as a record attribute or, the common
// case, via DefaultLogger.With("section", ...), which lands in WithAttrs.
type sectionHandler struct {
	underlying slog.Handler
	enabled    bool // a With-derived logger with an enabled section
}

func (h sectionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.underlying.Enabled(ctx, level)
}

func sectionEnabled(value string) bool {
	return slices.ContainsFunc(enabledSections, func(section string) bool {
		return strings.HasPrefix(value, section)
	})
}

func (h sectionHandler) Handle(ctx context.Context, record slog.Record) error {
	// warnings and errors always pass
	if record.Level >= slog.LevelWarn {
		return h.underlying.Handle(ctx, record)
	}
	want := h.enabled
	record.Attrs(func(attr slog.Attr) bool {
		want = want || attr.Key == "section" && sectionEnabled(attr.Value.String())
		return !want
	})
	if !want {
		return nil
	}
	return h.underlying.Handle(ctx, record)
}

func (h sectionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	enabled := h.enabled
	for _, attr := range attrs {
		if attr.Key == "section" && sectionEnabled(attr.Value.String()) {
			enabled = true
		}
	}
	return &sectionHandler{
		underlying: h.underlying.WithAttrs(attrs),
		enabled:    enabled,
	}
}

func (h sectionHandler) WithGroup(name string) slog.Handler {
	return &sectionHandler{
		underlying: h.underlying.WithGroup(name),
		enabled:    h.enabled,
	}
}

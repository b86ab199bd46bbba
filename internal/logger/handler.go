package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // slog attribute carrying a DebugTagf tag

// filterSet is one filtering dimension (tags, packages or files). Disabled
// entries always drop; a non-empty enabled list drops everything else.
type filterSet struct {
	enabled  map[string]struct{}
	disabled map[string]struct{}
}

func newFilterSet(enabled, disabled []string) filterSet {
	return filterSet{enabled: sliceToSet(enabled), disabled: sliceToSet(disabled)}
}

func (f filterSet) String() string {
	return fmt.Sprintf("+%d/-%d", len(f.enabled), len(f.disabled))
}

// allows reports whether a record with key passes. A record without the
// attribute (key == "") only fails when an enabled list restricts it and
// strict is set.
func (f filterSet) allows(key string, strict bool) bool {
	if key == "" {
		return !(strict && f.enabled != nil)
	}
	key = strings.ToLower(key)
	if _, off := f.disabled[key]; off {
		return false
	}
	if f.enabled == nil {
		return true
	}
	_, on := f.enabled[key]
	return on
}

// trace writes filter diagnostics to stderr when SetDebugFilter is on.
func trace(format string, args ...interface{}) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+format+"\n", args...)
	}
}

// filteringHandler drops records by tag, source package and source file
// before handing them to the base handler.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// source returns the package directory and file name a record came from.
func source(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func recordTag(r slog.Record) string {
	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	return tag
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}
	pkg, file := source(r)
	tag := recordTag(r)
	trace("level=%s msg=%q pkg=%q file=%q tag=%q", r.Level, r.Message, pkg, file, tag)

	switch {
	case !h.cfg.packages.allows(pkg, false):
		trace("dropped: package %q", pkg)
		return nil
	case !h.cfg.files.allows(file, false):
		trace("dropped: file %q", file)
		return nil
	case !h.cfg.tags.allows(tag, true):
		trace("dropped: tag %q", tag)
		return nil
	}
	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}

package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // attribute matched by the tag filters

// filter is an allow list and a deny list of lowercase names. A nil allow
// list admits everything; the deny list wins.
type filter struct {
	enabled  map[string]struct{}
	disabled map[string]struct{}
}

func newFilter(enabled, disabled []string) filter {
	return filter{enabled: sliceToSet(enabled), disabled: sliceToSet(disabled)}
}

func (f filter) active() bool {
	return f.enabled != nil || f.disabled != nil
}

func (f filter) allows(name string) bool {
	name = strings.ToLower(name)
	if _, denied := f.disabled[name]; denied {
		return false
	}
	if f.enabled == nil {
		return true
	}
	_, ok := f.enabled[name]
	return ok
}

// filteringHandler drops records by tag, source package or source file
// before handing the rest to base.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || h.keep(r) {
		return h.base.Handle(ctx, r)
	}
	return nil
}

// keep applies the package, file and tag filters to r. Records without a
// tag only pass when no tag allow list is set.
func (h *filteringHandler) keep(r slog.Record) bool {
	if h.cfg.packages.active() || h.cfg.files.active() {
		if pkg, file := recordSource(r); file != "" {
			if !h.cfg.packages.allows(pkg) || !h.cfg.files.allows(file) {
				return false
			}
		}
	}

	tag, tagged := "", false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag, tagged = a.Value.String(), true
			return false
		}
		return true
	})
	if !tagged {
		return h.cfg.tags.enabled == nil
	}
	return h.cfg.tags.allows(tag)
}

// recordSource returns the directory name and base file name of the code
// that logged r, or empty strings when r carries no caller.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}

package core

import (
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/markdown"
)

// Options configure a Composer.
type Options struct {
	MaxHistory      int             // Undo steps kept; non-positive selects the default
	SnapGraphemes   bool            // Widen toggled ranges to whole grapheme clusters
	SystemClipboard bool            // Mirror copies to the OS clipboard
	Limits          markdown.Limits // Parser bounds; zero fields select the defaults
	Events          *event.Manager  // Shared event bus; a private one is created when nil
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewDefaultConfig())
}

// OptionsFromConfig maps the loaded configuration onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxHistory:      cfg.Composer.MaxHistory,
		SnapGraphemes:   cfg.Composer.SnapGraphemes,
		SystemClipboard: cfg.Composer.SystemClipboard,
		Limits:          cfg.Limits(),
	}
}

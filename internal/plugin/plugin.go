// Package plugin defines how compiled-in extensions hook into a composing
// session: they read the text, listen to events and register commands.
package plugin

import (
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/event"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// ComposerAPI defines the methods plugins can use to interact with the
// session. It is deliberately read-mostly.
type ComposerAPI interface {
	// Text returns a copy of the current formatted text.
	Text() entity.FormattedText
	// Markdown returns the current text serialized as markdown.
	Markdown() string
	// SessionID identifies the session, as carried by events.
	SessionID() string

	SubscribeEvent(eventType event.Type, handler event.Handler)

	// RegisterCommand exposes cmdFunc under name. Names are unique.
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// SetStatusMessage reports a result to the user.
	SetStatusMessage(format string, args ...interface{})

	// GetPluginConfigValue reads key from the [plugins.<name>] config table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register commands here.
	Initialize(api ComposerAPI) error

	// Shutdown is called once when the session ends.
	Shutdown() error
}

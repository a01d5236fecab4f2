// Package app wires a composing session to its configuration, plugins,
// commands and terminal preview.
package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/plugin"
	"github.com/bethropolis/quill/internal/preview"
	"github.com/bethropolis/quill/internal/theme"
)

// App encapsulates a session and the components built around it.
type App struct {
	cfg           *config.Config
	composer      *core.Composer
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	composerAPI   plugin.ComposerAPI
	commands      map[string]plugin.CommandFunc
	highlighter   *highlighter.Highlighter
	activeTheme   *theme.Theme

	statusMessage string
}

// NewApp creates a session configured by cfg and initializes the built-in
// plugins against it. A nil cfg selects the defaults.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	eventManager := event.NewManager()
	opts := core.OptionsFromConfig(cfg)
	opts.Events = eventManager

	appInstance := &App{
		cfg:           cfg,
		composer:      core.New(opts),
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		commands:      make(map[string]plugin.CommandFunc),
		highlighter:   highlighter.NewHighlighter(),
		activeTheme:   resolveTheme(cfg),
	}
	appInstance.composerAPI = newComposerAPI(appInstance)

	eventManager.Subscribe(event.TypeParseFailed, appInstance.handleParseFailedForStatus)

	registerAppCommands(appInstance)
	if err := registerPlugins(appInstance.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := appInstance.pluginManager.InitializePlugins(appInstance.composerAPI); err != nil {
		appInstance.Close()
		return nil, fmt.Errorf("plugin initialization failed: %w", err)
	}
	logger.Debugf("App: session %s ready", appInstance.composer.ID())
	return appInstance, nil
}

// resolveTheme loads the configured preview theme, falling back to the
// built-in one.
func resolveTheme(cfg *config.Config) *theme.Theme {
	themesDir := ""
	if p := config.DefaultPath(); p != "" {
		themesDir = filepath.Join(filepath.Dir(p), config.ThemesDirName)
	}
	th, err := theme.Resolve(cfg.Preview.ThemeFile, themesDir)
	if err != nil {
		logger.Warnf("App: %v; using built-in theme", err)
		return theme.Default()
	}
	return th
}

// Composer returns the session.
func (a *App) Composer() *core.Composer {
	return a.composer
}

// Theme returns the preview theme.
func (a *App) Theme() *theme.Theme {
	return a.activeTheme
}

// Plugin returns the initialized plugin called name.
func (a *App) Plugin(name string) (plugin.Plugin, bool) {
	return a.pluginManager.GetPlugin(name)
}

// SetStatusMessage records a message for the user.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusMessage = fmt.Sprintf(format, args...)
	logger.DebugTagf("status", "Status: %s", a.statusMessage)
}

// StatusMessage returns the last status message.
func (a *App) StatusMessage() string {
	return a.statusMessage
}

// registerCommand adds a command. Names are unique across the app and its
// plugins.
func (a *App) registerCommand(name string, fn plugin.CommandFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("invalid command registration")
	}
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command %q: %w", name, plugin.ErrDuplicate)
	}
	a.commands[name] = fn
	logger.DebugTagf("command", "Registered command: %s", name)
	return nil
}

// Commands lists the registered command names, sorted.
func (a *App) Commands() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteCommand runs the named command with args.
func (a *App) ExecuteCommand(name string, args []string) error {
	fn, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (available: %s)", name, strings.Join(a.Commands(), ", "))
	}
	logger.DebugTagf("command", "Executing command: %s %v", name, args)
	if err := fn(args); err != nil {
		return fmt.Errorf("command %s: %w", name, err)
	}
	return nil
}

// Preview draws the session's display form on t until the user quits. The
// current status message, if any, fills the status bar.
func (a *App) Preview(t *preview.TUI) {
	if a.statusMessage != "" {
		t.StatusBar().SetMessage("%s", a.statusMessage)
	}
	r := preview.NewRenderer(a.activeTheme, a.highlighter)
	t.Show(r, a.composer.Display())
}

// Close shuts the plugins down and releases the highlighter.
func (a *App) Close() {
	a.pluginManager.ShutdownPlugins()
	a.highlighter.Close()
}

func (a *App) handleParseFailedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.ParseFailedData); ok && data.SessionID == a.composer.ID() {
		a.SetStatusMessage("Markdown taken literally: %s at %d", data.Message, data.Offset)
	}
	return false
}

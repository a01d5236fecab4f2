package app

import (
	"github.com/bethropolis/quill/internal/entity"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/plugin"
)

// Ensure appComposerAPI implements the plugin.ComposerAPI interface.
var _ plugin.ComposerAPI = (*appComposerAPI)(nil)

// appComposerAPI provides the concrete implementation of plugin.ComposerAPI.
type appComposerAPI struct {
	app *App // Reference back to the main application
}

func newComposerAPI(app *App) *appComposerAPI {
	return &appComposerAPI{app: app}
}

func (api *appComposerAPI) Text() entity.FormattedText {
	return api.app.composer.Text()
}

func (api *appComposerAPI) Markdown() string {
	return api.app.composer.Markdown()
}

func (api *appComposerAPI) SessionID() string {
	return api.app.composer.ID()
}

func (api *appComposerAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appComposerAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.registerCommand(name, cmdFunc)
}

func (api *appComposerAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

func (api *appComposerAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}

// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/toggle"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI exposes the app to plugins. Plugins run inside event
// handlers, where the app lock is already held, so nothing here locks.
type appEditorAPI struct {
	*App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{App: app}
}

func (api *appEditorAPI) Runs() runs.Sequence {
	return api.editor.Runs()
}

func (api *appEditorAPI) Text() string {
	return api.editor.Text()
}

func (api *appEditorAPI) CaretOffset() int {
	return api.editor.CaretOffset()
}

func (api *appEditorAPI) ToggleStyle(tag runs.Tag) (toggle.Result, error) {
	res, err := api.editor.ToggleStyle(tag)
	if err == nil {
		api.requestRedraw()
	}
	return res, err
}

func (api *appEditorAPI) QueryStyle(tag runs.Tag) (runs.Coverage, error) {
	return api.editor.QueryStyle(tag)
}

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) bool {
	return api.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID {
	return api.eventManager.Subscribe(eventType, handler)
}

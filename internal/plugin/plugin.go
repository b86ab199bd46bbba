// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/toggle"
)

// EditorAPI is what plugins may use of the editor. Methods are called from
// event handlers on the app's input goroutine and must not block.
type EditorAPI interface {
	// --- Document (read-only) ---
	Runs() runs.Sequence
	Text() string
	CaretOffset() int

	// --- Styles ---
	ToggleStyle(tag runs.Tag) (toggle.Result, error)
	QueryStyle(tag runs.Tag) (runs.Coverage, error)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{}) bool
	SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetTheme() *theme.Theme
	SetTheme(name string) error
	ListThemes() []string
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}

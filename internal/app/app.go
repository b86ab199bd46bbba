// internal/app/app.go
package app

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/bethropolis/tidemark/plugins/stylestats"
	"github.com/gdamore/tcell/v2"
)

var _ theme.ThemeAPI = (*App)(nil)

// App encapsulates the core components and main loop of the editor.
type App struct {
	// mu serializes key handling and drawing; the editor is single-threaded.
	mu sync.Mutex

	cfg            *config.Config
	tuiManager     *tui.TUI
	editor         *core.Editor
	clipboard      *clipboard.Manager
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	themeManager   *theme.Manager
	pluginManager  *plugin.Manager

	scrollY int

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// NewApp creates an application editing seq. A nil screen opens the real
// terminal; a nil cfg uses the defaults.
func NewApp(cfg *config.Config, seq runs.Sequence, screen tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	inputProcessor, err := input.NewInputProcessor(cfg.Keys.Toggle)
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}

	themeManager := theme.NewManager(cfg.Editor.ThemesDir)
	if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
		logger.Warnf("App: %v, keeping %s", err, themeManager.Current().Name)
	}

	defStyle := themeManager.Current().GetStyle("Default")
	var tuiManager *tui.TUI
	if screen == nil {
		tuiManager, err = tui.New(defStyle)
	} else {
		tuiManager, err = tui.NewWithScreen(screen, defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	editor := core.NewEditor(seq)
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		editor:         editor,
		clipboard:      clipboard.NewManager(editor, cfg.Editor.SystemClipboard),
		inputProcessor: inputProcessor,
		statusBar:      statusbar.New(statusBarConfig(themeManager.Current())),
		eventManager:   eventManager,
		themeManager:   themeManager,
		pluginManager:  plugin.NewManager(),
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}
	a.statusBar.SetThemeName(themeManager.Current().Name)
	a.subscribe()

	if err := a.pluginManager.Register(stylestats.New()); err != nil {
		logger.Warnf("App: failed to register StyleStats plugin: %v", err)
	}
	a.pluginManager.InitializePlugins(newEditorAPI(a))

	a.updateStatusBarContent()
	return a, nil
}

// Editor exposes the editing session, mainly for tests and main.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// EventManager returns the app's event bus.
func (a *App) EventManager() *event.Manager {
	return a.eventManager
}

// Run starts the application's main event and drawing loops and returns
// once the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.SetStatusMessage("tidemark - Ctrl+B/T/U toggle styles | F2 theme | F3 stats | Ctrl+Q quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop polls the terminal until the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.HandleKey(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// Quit stops Run. It is safe to call more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// --- theme.ThemeAPI ---

// GetTheme returns the active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme switches the active theme by name and restyles the status bar.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusBarConfig(current))
	a.statusBar.SetThemeName(current.Name)
	a.tuiManager.SetDefaultStyle(current.GetStyle("Default"))
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: current.Name})
	a.requestRedraw()
	return nil
}

func (a *App) ListThemes() []string {
	return a.themeManager.ListThemes()
}

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

func statusBarConfig(t *theme.Theme) statusbar.Config {
	return statusbar.Config{
		StyleDefault:   t.GetStyle("StatusBar"),
		StyleTags:      t.GetStyle("StatusBarTags"),
		StylePending:   t.GetStyle("Anchor"),
		StyleMessage:   t.GetStyle("StatusBarMessage"),
		MessageTimeout: config.MessageTimeout,
	}
}

package app

import (
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/tui"
)

// drawEditor clears the screen and redraws the document and status bar.
func (a *App) drawEditor() {
	a.mu.Lock()
	defer a.mu.Unlock()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := height - a.cfg.Editor.StatusBarHeight

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), ViewHeight: %d", width, height, viewHeight)

	a.updateStatusBarContent()
	a.tuiManager.Clear()

	v := a.view()
	v.ScrollY = tui.ScrollFor(v, width, viewHeight)
	a.scrollY = v.ScrollY
	x, y, visible := tui.DrawDocument(screen, v, activeTheme, width, viewHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.PlaceCursor(x, y, visible)
	a.tuiManager.Show()
}

func (a *App) view() tui.View {
	v := tui.View{
		Runs:     a.editor.Runs(),
		Caret:    a.editor.CaretOffset(),
		ScrollY:  a.scrollY,
		TabWidth: a.cfg.Editor.TabWidth,
	}
	v.SelStart, v.SelEnd, v.HasSelection = a.editor.GetSelection()
	return v
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	selected := 0
	if start, end, ok := a.editor.GetSelection(); ok {
		selected = end - start
	}
	a.statusBar.SetStyleInfo(a.editor.ActiveStyles(), a.editor.CaretInAnchor())
	a.statusBar.SetCaretInfo(a.editor.CaretOffset(), a.editor.Runs().Len(), selected)
}

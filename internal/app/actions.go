package app

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// HandleKey applies one key event to the editor and reports whether the
// screen needs a redraw. KeyPressed subscribers see the event first and may
// consume it.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev}) {
		return true
	}
	return a.handleAction(a.inputProcessor.ProcessEvent(ev))
}

// handleAction runs one decoded action. Caller holds a.mu.
func (a *App) handleAction(ae input.ActionEvent) bool {
	ed := a.editor
	switch ae.Action {
	case input.ActionQuit:
		a.Quit()
		return false
	case input.ActionCancel:
		if !ed.HasSelection() {
			return false
		}
		ed.ClearSelection()

	case input.ActionMoveLeft, input.ActionMoveRight, input.ActionMoveHome, input.ActionMoveEnd:
		ed.ClearSelection()
		a.move(ae.Action)
	case input.ActionSelectLeft, input.ActionSelectRight, input.ActionSelectHome, input.ActionSelectEnd:
		ed.StartOrUpdateSelection()
		a.move(ae.Action)
		ed.UpdateSelectionEnd()
	case input.ActionSelectAll:
		ed.SelectAll()

	case input.ActionInsertRune:
		if err := ed.InsertText(string(ae.Rune)); err != nil {
			logger.Warnf("App: insert %q: %v", ae.Rune, err)
		}
	case input.ActionInsertNewLine:
		if err := ed.InsertText("\n"); err != nil {
			logger.Warnf("App: insert newline: %v", err)
		}
	case input.ActionDeleteCharBackward:
		ed.DeleteBackward()
	case input.ActionDeleteCharForward:
		ed.DeleteForward()

	case input.ActionCopy:
		if a.clipboard.Copy() {
			a.SetStatusMessage("Copied")
		}
	case input.ActionCut:
		a.clipboard.Cut()
	case input.ActionPaste:
		if _, err := a.clipboard.Paste(); err != nil {
			a.SetStatusMessage("Paste failed: %v", err)
		}

	case input.ActionToggleStyle:
		if _, err := ed.ToggleStyle(ae.Tag); err != nil {
			a.SetStatusMessage("Cannot toggle %s: %v", ae.Tag, err)
		}
	case input.ActionCycleTheme:
		if err := theme.Cycle(a); err != nil {
			logger.Warnf("App: cycle theme: %v", err)
		}

	default:
		logger.DebugTagf("input", "App: unhandled key action %v", ae.Action)
		return false
	}
	return true
}

func (a *App) move(action input.Action) {
	switch action {
	case input.ActionMoveLeft, input.ActionSelectLeft:
		a.editor.MoveCaret(-1)
	case input.ActionMoveRight, input.ActionSelectRight:
		a.editor.MoveCaret(1)
	case input.ActionMoveHome, input.ActionSelectHome:
		a.editor.MoveCaretHome()
	case input.ActionMoveEnd, input.ActionSelectEnd:
		a.editor.MoveCaretEnd()
	}
}

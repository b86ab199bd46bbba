package app

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
)

// subscribe wires the status bar to editor events.
func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeCaretMoved, a.handleCaretMovedForStatus)
	a.eventManager.Subscribe(event.TypeSequenceChanged, a.handleSequenceChangedForStatus)
	a.eventManager.Subscribe(event.TypeStyleToggled, a.handleStyleToggled)
}

func (a *App) handleCaretMovedForStatus(e event.Event) bool {
	if _, ok := e.Data.(event.CaretMovedData); ok {
		a.updateStatusBarContent()
	}
	return false
}

func (a *App) handleSequenceChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.SequenceChangedData); ok {
		logger.DebugTagf("app", "App: runs [%d,%d) replaced by [%d,%d)",
			data.Change.Start, data.Change.OldEnd, data.Change.Start, data.Change.NewEnd)
		a.updateStatusBarContent()
	}
	return false
}

func (a *App) handleStyleToggled(e event.Event) bool {
	data, ok := e.Data.(event.StyleToggledData)
	if !ok {
		logger.Warnf("App: StyleToggled event with unexpected data type: %T", e.Data)
		return false
	}
	logger.DebugTagf("app", "App: %s %q, anchor=%t", data.Result.Action, data.Tag, data.Result.Anchor)
	a.updateStatusBarContent()
	return false
}

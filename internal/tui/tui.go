// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI owns the tcell screen the document and status bar are drawn on.
type TUI struct {
	screen tcell.Screen
}

// New opens the real terminal.
func New(defStyle tcell.Style) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, defStyle)
}

// NewWithScreen initializes s, which may be a tcell.SimulationScreen.
func NewWithScreen(s tcell.Screen, defStyle tcell.Style) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(defStyle)
	s.SetCursorStyle(tcell.CursorStyleBlinkingBar)
	return &TUI{screen: s}, nil
}

// SetDefaultStyle changes the style of cleared cells, e.g. after a theme switch.
func (t *TUI) SetDefaultStyle(style tcell.Style) {
	t.screen.SetStyle(style)
}

// PlaceCursor shows the terminal cursor at a cell, or hides it.
func (t *TUI) PlaceCursor(x, y int, visible bool) {
	if !visible {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}

func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

func (t *TUI) Clear() {
	t.screen.Clear()
}

func (t *TUI) Show() {
	t.screen.Show()
}

func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access for drawing.
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}

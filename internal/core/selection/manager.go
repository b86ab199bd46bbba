package selection

import (
	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager tracks the text selection as document offsets.
type Manager struct {
	editor EditorInterface

	selecting bool
	anchor    int // where the selection started
	focus     int // follows the caret
}

// EditorInterface defines what the selection manager needs from editor.
type EditorInterface interface {
	CaretOffset() int
}

// NewManager creates a new selection manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// HasSelection reports a selection covering at least one character.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.anchor != m.focus
}

// GetSelection returns the selection in document order.
func (m *Manager) GetSelection() (start, end int, ok bool) {
	if !m.HasSelection() {
		return 0, 0, false
	}
	start, end = m.anchor, m.focus
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// Endpoints returns the selection as the user made it; anchor may be after focus.
func (m *Manager) Endpoints() (anchor, focus int, ok bool) {
	if !m.HasSelection() {
		return 0, 0, false
	}
	return m.anchor, m.focus, true
}

// ClearSelection drops the selection.
func (m *Manager) ClearSelection() {
	if m.selecting {
		logger.DebugTagf("core", "Selection Manager: Cleared")
	}
	m.selecting = false
	m.anchor, m.focus = 0, 0
}

// StartOrUpdateSelection anchors a selection at the caret if none is active.
// Call it before a selecting caret move, then UpdateSelectionEnd after.
func (m *Manager) StartOrUpdateSelection() {
	caret := m.editor.CaretOffset()
	if !m.selecting {
		m.anchor = caret
		m.selecting = true
		logger.DebugTagf("core", "Selection Manager: Started at %d", m.anchor)
	}
	m.focus = caret
}

// UpdateSelectionEnd moves the focus to the caret.
func (m *Manager) UpdateSelectionEnd() {
	if m.selecting {
		m.focus = m.editor.CaretOffset()
		logger.DebugTagf("core", "Selection Manager: Updated end to %d", m.focus)
	}
}

// Select sets both ends explicitly.
func (m *Manager) Select(anchor, focus int) {
	m.selecting = true
	m.anchor, m.focus = anchor, focus
}

// IsSelecting returns the raw selecting flag state.
func (m *Manager) IsSelecting() bool {
	return m.selecting
}

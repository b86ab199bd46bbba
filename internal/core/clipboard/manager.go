package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager handles copy, cut and paste. Text goes to the system clipboard when
// enabled and available, and always to an internal register used as fallback.
type Manager struct {
	editor   EditorInterface
	register string
	system   bool
}

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	SelectedText() (string, bool)
	DeleteSelection() bool
	InsertText(text string) error
}

// NewManager creates a new clipboard manager
func NewManager(editor EditorInterface, useSystem bool) *Manager {
	if useSystem && sysclip.Unsupported {
		logger.Infof("ClipboardManager: system clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Manager{
		editor: editor,
		system: useSystem,
	}
}

// Copy puts the selected text on the clipboard. It reports false when nothing is selected.
func (m *Manager) Copy() bool {
	text, ok := m.editor.SelectedText()
	if !ok {
		return false
	}
	m.write(text)
	logger.Debugf("ClipboardManager: Copied %d bytes", len(text))
	return true
}

// Cut copies the selection and deletes it.
func (m *Manager) Cut() bool {
	if !m.Copy() {
		return false
	}
	return m.editor.DeleteSelection()
}

// Paste inserts the clipboard text at the caret, replacing any selection.
func (m *Manager) Paste() (bool, error) {
	text := m.read()
	if text == "" {
		return false, nil
	}
	if err := m.editor.InsertText(text); err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	logger.Debugf("ClipboardManager: Pasted %d bytes", len(text))
	return true, nil
}

func (m *Manager) write(text string) {
	m.register = text
	if !m.system {
		return
	}
	if err := sysclip.WriteAll(text); err != nil {
		logger.Warnf("ClipboardManager: system clipboard write failed: %v", err)
	}
}

func (m *Manager) read() string {
	if m.system {
		text, err := sysclip.ReadAll()
		if err == nil {
			return text
		}
		logger.Warnf("ClipboardManager: system clipboard read failed, using register: %v", err)
	}
	return m.register
}

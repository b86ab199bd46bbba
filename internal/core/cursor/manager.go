package cursor

import (
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/utils"
)

// Editor is what the cursor manager reads from the editor.
type Editor interface {
	Text() string
	CaretOffset() int
}

// Manager computes caret destinations in document offsets (runes). It never
// moves the caret itself; the editor applies the offsets it returns, so that
// the caret's run position stays owned by one place.
type Manager struct {
	editor Editor
}

// NewManager creates a new cursor manager
func NewManager(editor Editor) *Manager {
	return &Manager{editor: editor}
}

// Clamp limits an offset to the document and snaps it to a grapheme boundary.
func (m *Manager) Clamp(offset int) int {
	text := m.editor.Text()
	if offset < 0 {
		return 0
	}
	if n := utf8.RuneCountInString(text); offset > n {
		return n
	}
	return utils.SnapToGrapheme(text, offset)
}

// Move returns the offset delta grapheme clusters away from the caret.
func (m *Manager) Move(delta int) int {
	text := m.editor.Text()
	offset := m.editor.CaretOffset()
	for ; delta > 0; delta-- {
		offset = utils.NextGrapheme(text, offset)
	}
	for ; delta < 0; delta++ {
		offset = utils.PrevGrapheme(text, offset)
	}
	return offset
}

// LineStart returns the offset just after the previous newline.
func (m *Manager) LineStart() int {
	runes := []rune(m.editor.Text())
	i := m.editor.CaretOffset()
	if i > len(runes) {
		i = len(runes)
	}
	for i > 0 && runes[i-1] != '\n' {
		i--
	}
	return i
}

// LineEnd returns the offset of the next newline, or the document end.
func (m *Manager) LineEnd() int {
	runes := []rune(m.editor.Text())
	i := m.editor.CaretOffset()
	if i < 0 {
		i = 0
	}
	for i < len(runes) && runes[i] != '\n' {
		i++
	}
	return i
}

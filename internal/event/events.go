// internal/event/events.go
package event

import (
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/toggle"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeSequenceChanged // Runs replaced by an edit or a toggle
	TypeCaretMoved      // Caret position changed
	TypeStyleToggled    // A style tag was toggled over a range or at the caret

	// Input events
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypeSequenceChanged:
		return "SequenceChanged"
	case TypeCaretMoved:
		return "CaretMoved"
	case TypeStyleToggled:
		return "StyleToggled"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SequenceChangedData carries both versions of the document and the window of
// runs that differs, so a renderer can reconcile only that part.
type SequenceChangedData struct {
	Old    runs.Sequence
	New    runs.Sequence
	Change runs.Change
}

// CaretMovedData contains the new caret position.
type CaretMovedData struct {
	Position runs.Position
	Offset   int
}

// StyleToggledData describes a completed toggle.
type StyleToggledData struct {
	Tag    runs.Tag
	Result toggle.Result
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

type AppQuitData struct{}

type AppReadyData struct{}

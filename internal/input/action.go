// internal/input/action.go
package input

import "github.com/bethropolis/tidemark/internal/runs"

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionCancel // Esc: drop the selection

	// --- Caret movement ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Selection ---
	ActionSelectLeft
	ActionSelectRight
	ActionSelectHome
	ActionSelectEnd
	ActionSelectAll

	// --- Text manipulation ---
	ActionInsertRune // Requires Rune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// --- Clipboard ---
	ActionCopy
	ActionCut
	ActionPaste

	// --- Styles and themes ---
	ActionToggleStyle // Requires Tag
	ActionCycleTheme
)

var actionNames = map[Action]string{
	ActionUnknown:            "Unknown",
	ActionQuit:               "Quit",
	ActionCancel:             "Cancel",
	ActionMoveLeft:           "MoveLeft",
	ActionMoveRight:          "MoveRight",
	ActionMoveHome:           "MoveHome",
	ActionMoveEnd:            "MoveEnd",
	ActionSelectLeft:         "SelectLeft",
	ActionSelectRight:        "SelectRight",
	ActionSelectHome:         "SelectHome",
	ActionSelectEnd:          "SelectEnd",
	ActionSelectAll:          "SelectAll",
	ActionInsertRune:         "InsertRune",
	ActionInsertNewLine:      "InsertNewLine",
	ActionDeleteCharForward:  "DeleteCharForward",
	ActionDeleteCharBackward: "DeleteCharBackward",
	ActionCopy:               "Copy",
	ActionCut:                "Cut",
	ActionPaste:              "Paste",
	ActionToggleStyle:        "ToggleStyle",
	ActionCycleTheme:         "CycleTheme",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune     // ActionInsertRune
	Tag    runs.Tag // ActionToggleStyle
}

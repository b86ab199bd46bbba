// internal/input/keymap.go
package input

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific keys to editor actions.
type Keymap map[tcell.Key]Action

// TagKeymap maps Ctrl+letter keys to the style tag they toggle.
type TagKeymap map[tcell.Key]runs.Tag

// ModKeymap maps keys combined with modifiers (Shift for selection moves).
type ModKeymap map[tcell.ModMask]Keymap

// ReservedCtrlLetters cannot be bound to tags: they carry editor commands, or
// the terminal reports them as another key (Ctrl+H backspace, Ctrl+I tab,
// Ctrl+M enter).
const ReservedCtrlLetters = "acxvqhim"

// DefaultTagBindings are used when the configuration binds nothing.
var DefaultTagBindings = map[string]string{
	"b": "bold",
	"t": "italic",
	"u": "underline",
	"g": "highlight",
}

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
	tagKeymap TagKeymap
}

// NewInputProcessor creates a processor with the default bindings plus one
// Ctrl+letter binding per entry of tagBindings (letter -> tag). A nil map
// selects DefaultTagBindings.
func NewInputProcessor(tagBindings map[string]string) (*InputProcessor, error) {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
		tagKeymap: make(TagKeymap),
	}
	p.loadDefaultBindings()
	if tagBindings == nil {
		tagBindings = DefaultTagBindings
	}
	for letter, tag := range tagBindings {
		if err := p.BindTag(letter, runs.Tag(tag)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyF2] = ActionCycleTheme
	p.keymap[tcell.KeyCtrlA] = ActionSelectAll
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste
	p.keymap[tcell.KeyCtrlQ] = ActionQuit

	shiftMap := make(Keymap)
	shiftMap[tcell.KeyLeft] = ActionSelectLeft
	shiftMap[tcell.KeyRight] = ActionSelectRight
	shiftMap[tcell.KeyHome] = ActionSelectHome
	shiftMap[tcell.KeyEnd] = ActionSelectEnd
	p.modKeymap[tcell.ModShift] = shiftMap
}

// BindTag makes Ctrl+letter toggle tag.
func (p *InputProcessor) BindTag(letter string, tag runs.Tag) error {
	letter = strings.ToLower(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return fmt.Errorf("key binding %q: want a single letter a-z", letter)
	}
	if tag == "" || strings.ContainsAny(string(tag), " \t\n") {
		return fmt.Errorf("key binding %q: invalid style tag %q", letter, tag)
	}
	if strings.Contains(ReservedCtrlLetters, letter) {
		return fmt.Errorf("key binding %q: Ctrl+%s is reserved", letter, strings.ToUpper(letter))
	}
	key := tcell.KeyCtrlA + tcell.Key(letter[0]-'a')
	if prev, ok := p.tagKeymap[key]; ok && prev != tag {
		logger.Warnf("InputProcessor: Ctrl+%s rebound from %q to %q", strings.ToUpper(letter), prev, tag)
	}
	p.tagKeymap[key] = tag
	return nil
}

// TagBindings returns the tag bound to each Ctrl+letter, keyed by lower-case letter.
func (p *InputProcessor) TagBindings() map[string]runs.Tag {
	out := make(map[string]runs.Tag, len(p.tagKeymap))
	for key, tag := range p.tagKeymap {
		out[string(rune('a'+int(key-tcell.KeyCtrlA)))] = tag
	}
	return out
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl+letter keys already imply Ctrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
		if tag, ok := p.tagKeymap[key]; ok {
			return ActionEvent{Action: ActionToggleStyle, Tag: tag}
		}
	}

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}

// internal/core/editor.go
package core

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/core/cursor"
	"github.com/bethropolis/tidemark/internal/core/selection"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/locate"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/toggle"
	"github.com/bethropolis/tidemark/internal/utils"
)

// Editor is one editing session over a run sequence. It owns the document,
// the caret and the selection, and is the only place that replaces the
// sequence. It is not safe for concurrent use; the app serializes calls.
type Editor struct {
	seq   runs.Sequence
	caret runs.Position

	cursor       *cursor.Manager
	selection    *selection.Manager
	eventManager *event.Manager
}

// NewEditor creates a new Editor over seq with the caret at the start.
func NewEditor(seq runs.Sequence) *Editor {
	e := &Editor{seq: seq.Normalize()}
	e.cursor = cursor.NewManager(e)
	e.selection = selection.NewManager(e)
	return e
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// Runs returns the current document. Callers must not modify it.
func (e *Editor) Runs() runs.Sequence {
	return e.seq
}

func (e *Editor) Text() string {
	return e.seq.Text()
}

// Caret returns the caret position; it may sit inside an anchor run.
func (e *Editor) Caret() runs.Position {
	return e.caret
}

// CaretOffset returns the caret as a document offset.
func (e *Editor) CaretOffset() int {
	off, err := e.seq.OffsetOf(e.caret)
	if err != nil {
		logger.Warnf("Editor: caret %s outside document: %v", e.caret, err)
		return 0
	}
	return off
}

// SetCaret places the caret at an exact position.
func (e *Editor) SetCaret(p runs.Position) error {
	if !e.seq.Contains(p) {
		return fmt.Errorf("set caret: %w: %s", runs.ErrInvalidPosition, p)
	}
	e.caret = p
	e.dispatchCaret()
	return nil
}

// SetCaretOffset moves the caret to a document offset. Moving the caret away
// discards any pending anchor run.
func (e *Editor) SetCaretOffset(offset int) {
	offset = e.cursor.Clamp(offset)
	next := e.seq
	if hasAnchor(next) {
		next = next.Normalize()
	}
	e.replace(next, next.PositionAt(offset, runs.BiasBackward))
}

// MoveCaret moves the caret by delta grapheme clusters.
func (e *Editor) MoveCaret(delta int) {
	e.SetCaretOffset(e.cursor.Move(delta))
}

func (e *Editor) MoveCaretHome() {
	e.SetCaretOffset(e.cursor.LineStart())
}

func (e *Editor) MoveCaretEnd() {
	e.SetCaretOffset(e.cursor.LineEnd())
}

// --- Selection ---

// StartOrUpdateSelection anchors a selection at the caret before a selecting move.
func (e *Editor) StartOrUpdateSelection() {
	e.selection.StartOrUpdateSelection()
}

// UpdateSelectionEnd moves the selection focus to the caret after a selecting move.
func (e *Editor) UpdateSelectionEnd() {
	e.selection.UpdateSelectionEnd()
}

func (e *Editor) ClearSelection() {
	e.selection.ClearSelection()
}

func (e *Editor) HasSelection() bool {
	return e.selection.HasSelection()
}

// GetSelection returns the selected document offsets in order.
func (e *Editor) GetSelection() (start, end int, ok bool) {
	return e.selection.GetSelection()
}

// SelectAll selects the whole document and puts the caret at its end.
func (e *Editor) SelectAll() {
	n := e.seq.Len()
	e.SetCaretOffset(n)
	e.selection.Select(0, n)
}

// SelectedText returns the text under the selection.
func (e *Editor) SelectedText() (string, bool) {
	start, end, ok := e.GetSelection()
	if !ok {
		return "", false
	}
	runes := []rune(e.Text())
	return string(runes[start:end]), true
}

// hostSelection expresses the live selection the way a host
// surface reports it to the locator.
func (e *Editor) hostSelection() (locate.Selection, bool) {
	anchor, focus, ok := e.selection.Endpoints()
	if !ok {
		return locate.Selection{}, false
	}
	return locate.Selection{
		Anchor: locate.AtOffset(e.seq, anchor),
		Focus:  locate.AtOffset(e.seq, focus),
	}, true
}

// --- Styles ---

// ToggleStyle toggles tag over the selection, or at the caret when nothing is
// selected. On error the document is unchanged.
func (e *Editor) ToggleStyle(tag runs.Tag) (toggle.Result, error) {
	var (
		res toggle.Result
		err error
	)
	sel, selecting := e.hostSelection()
	if selecting {
		res, err = toggle.ToggleSelection(e.seq, sel, tag)
	} else {
		res, err = toggle.Toggle(e.seq, runs.CaretAt(e.caret), tag)
	}
	if err != nil {
		logger.Warnf("Editor: toggle %q failed: %v", tag, err)
		return res, err
	}

	caret := res.Selection.Start
	if selecting {
		caret = res.Runs.PositionAt(e.CaretOffset(), runs.BiasBackward)
	}
	e.replace(res.Runs, caret)
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeStyleToggled, event.StyleToggledData{Tag: tag, Result: res})
	}
	return res, nil
}

// QueryStyle reports the coverage of tag over the selection, or at the caret.
func (e *Editor) QueryStyle(tag runs.Tag) (runs.Coverage, error) {
	if sel, ok := e.hostSelection(); ok {
		return toggle.QuerySelection(e.seq, sel, tag)
	}
	return toggle.Query(e.seq, runs.CaretAt(e.caret), tag)
}

// CaretInAnchor reports whether the caret sits in an anchor run, i.e. a caret
// toggle is waiting for the next typed character.
func (e *Editor) CaretInAnchor() bool {
	return len(e.seq) > 0 && e.seq.Contains(e.caret) && e.seq[e.caret.Run].Placeholder
}

// ActiveStyles returns the style set the next typed character would get.
func (e *Editor) ActiveStyles() runs.Set {
	return e.seq.StylesAt(e.caret)
}

// --- Editing ---

// InsertText types text at the caret, replacing the selection if any.
func (e *Editor) InsertText(text string) error {
	if text == "" {
		return nil
	}
	e.DeleteSelection()
	next, caret, err := e.seq.InsertText(e.caret, text)
	if err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	e.replace(next, caret)
	return nil
}

// DeleteSelection removes the selected text. It reports whether anything was deleted.
func (e *Editor) DeleteSelection() bool {
	start, end, ok := e.GetSelection()
	if !ok {
		return false
	}
	e.selection.ClearSelection()
	e.deleteRange(start, end)
	return true
}

// DeleteBackward removes the selection, a pending anchor, or the grapheme
// cluster before the caret.
func (e *Editor) DeleteBackward() {
	if e.DeleteSelection() || e.discardCaretAnchor() {
		return
	}
	off := e.CaretOffset()
	if off == 0 {
		return
	}
	e.deleteRange(utils.PrevGrapheme(e.Text(), off), off)
}

// DeleteForward removes the selection, a pending anchor, or the grapheme
// cluster after the caret.
func (e *Editor) DeleteForward() {
	if e.DeleteSelection() || e.discardCaretAnchor() {
		return
	}
	off := e.CaretOffset()
	if off >= e.seq.Len() {
		return
	}
	e.deleteRange(off, utils.NextGrapheme(e.Text(), off))
}

func (e *Editor) deleteRange(start, end int) {
	e.replace(e.seq.DeleteRange(start, end))
}

// discardCaretAnchor drops the anchor run the caret sits in, undoing a caret toggle.
func (e *Editor) discardCaretAnchor() bool {
	if !e.CaretInAnchor() {
		return false
	}
	off := e.CaretOffset()
	next := e.seq.Normalize()
	e.replace(next, next.PositionAt(off, runs.BiasBackward))
	return true
}

func hasAnchor(seq runs.Sequence) bool {
	for _, r := range seq {
		if r.Placeholder {
			return true
		}
	}
	return false
}

// replace installs a new document and caret, announcing the changed window of
// runs and the caret move.
func (e *Editor) replace(next runs.Sequence, caret runs.Position) {
	if err := next.Assert(); err != nil {
		logger.Errorf("Editor: installing non-canonical document %s: %v", next, err)
	}
	prev := e.seq
	e.seq, e.caret = next, caret
	if change, ok := runs.Diff(prev, next); ok && e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeSequenceChanged, event.SequenceChangedData{Old: prev, New: next, Change: change})
	}
	e.dispatchCaret()
}

func (e *Editor) dispatchCaret() {
	if e.eventManager == nil {
		return
	}
	e.eventManager.Dispatch(event.TypeCaretMoved, event.CaretMovedData{Position: e.caret, Offset: e.CaretOffset()})
}

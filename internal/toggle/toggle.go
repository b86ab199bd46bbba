// Package toggle flips one style tag over a range of a run sequence.
//
// Every operation is a pure transformation: the input sequence is never
// modified and a failed toggle returns no partial result.
package toggle

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/locate"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
)

const logTag = "toggle"

var ErrEmptyTag = errors.New("toggle: empty style tag")

// Action is what a toggle did to the tag.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
)

func (a Action) String() string {
	if a == ActionRemove {
		return "remove"
	}
	return "add"
}

// Result is the outcome of a toggle.
type Result struct {
	Runs runs.Sequence
	// Selection is where the host should put its selection afterwards. For a
	// caret toggle it is a caret inside the anchor run when one was created.
	Selection runs.Range
	Action    Action
	// Anchor is set when a placeholder run was inserted at the caret.
	Anchor bool
}

// Query reports the coverage of tag over rng.
func Query(seq runs.Sequence, rng runs.Range, tag runs.Tag) (runs.Coverage, error) {
	if tag == "" {
		return runs.CoverageAbsent, ErrEmptyTag
	}
	return seq.Query(rng, tag)
}

// Toggle flips tag over rng. When every run under rng already carries the tag
// it is removed, otherwise it is added to all of them; mixed coverage counts
// as absent. A zero-length range is handled as a caret.
func Toggle(seq runs.Sequence, rng runs.Range, tag runs.Tag) (Result, error) {
	if tag == "" {
		return Result{}, ErrEmptyTag
	}
	start, err := seq.OffsetOf(rng.Start)
	if err != nil {
		return Result{}, fmt.Errorf("toggle %q: %w", tag, err)
	}
	end, err := seq.OffsetOf(rng.End)
	if err != nil {
		return Result{}, fmt.Errorf("toggle %q: %w", tag, err)
	}
	if start > end {
		start, end = end, start
		rng.Start, rng.End = rng.End, rng.Start
	}
	if start == end {
		return toggleCaret(seq, rng.Start, tag)
	}

	coverage, err := seq.Query(rng, tag)
	if err != nil {
		return Result{}, fmt.Errorf("toggle %q: %w", tag, err)
	}
	action := ActionAdd
	if coverage == runs.CoveragePresent {
		action = ActionRemove
	}

	out := seq.Normalize()
	first := out.SplitAtOffset(start)
	last := out.SplitAtOffset(end)
	for i := first; i < last; i++ {
		if action == ActionRemove {
			out[i].Styles = out[i].Styles.Without(tag)
		} else {
			out[i].Styles = out[i].Styles.With(tag)
		}
	}
	out.MergeSpan(first-1, last)

	if err := out.Assert(); err != nil {
		logger.Errorf("toggle %q over [%d,%d) produced %s: %v", tag, start, end, out, err)
		return Result{}, err
	}
	logger.DebugTagf(logTag, "%s %q over [%d,%d): %d runs -> %d runs", action, tag, start, end, len(seq), len(out))
	return Result{
		Runs: out,
		Selection: runs.Range{
			Start: out.PositionAt(start, runs.BiasForward),
			End:   out.PositionAt(end, runs.BiasBackward),
		},
		Action: action,
	}, nil
}

// ToggleSelection resolves a host selection and toggles tag over it. If either
// endpoint cannot be resolved nothing is changed and the error wraps
// locate.ErrUnresolvableSelection.
func ToggleSelection(seq runs.Sequence, sel locate.Selection, tag runs.Tag) (Result, error) {
	loc, err := locate.Locate(seq, sel)
	if err != nil {
		logger.Warnf("toggle %q abandoned: %v", tag, err)
		return Result{}, err
	}
	return Toggle(seq, loc.Range, tag)
}

// QuerySelection resolves a host selection and reports the coverage of tag.
func QuerySelection(seq runs.Sequence, sel locate.Selection, tag runs.Tag) (runs.Coverage, error) {
	loc, err := locate.Locate(seq, sel)
	if err != nil {
		return runs.CoverageAbsent, err
	}
	return Query(seq, loc.Range, tag)
}

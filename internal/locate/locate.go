// Package locate resolves a host selection, given as two endpoints that may be
// in either order, onto a normalized range of a run sequence.
package locate

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/utils"
)

// NoRun marks an endpoint that the host could not tie to a text run, for
// example a selection that ends on a non-text element of its surface.
const NoRun = -1

var ErrUnresolvableSelection = errors.New("locate: selection endpoint is not a text run")

// Endpoint is one end of a host selection: a run index and a rune offset in that run.
type Endpoint struct {
	Run    int
	Offset int
}

// Selection is what the host reports. Anchor is where the selection started,
// Focus where it currently ends; Anchor may come after Focus.
type Selection struct {
	Anchor Endpoint
	Focus  Endpoint
}

// Located is a resolved selection in document order.
type Located struct {
	Range runs.Range
	// Backward is set when the host's anchor came after its focus.
	Backward bool
}

// Locate resolves sel against seq. Offsets past either end of a run are
// clamped and offsets inside a grapheme cluster snap to its start. An endpoint
// that names no run fails with ErrUnresolvableSelection.
func Locate(seq runs.Sequence, sel Selection) (Located, error) {
	a, err := resolve(seq, sel.Anchor)
	if err != nil {
		return Located{}, fmt.Errorf("anchor: %w", err)
	}
	f, err := resolve(seq, sel.Focus)
	if err != nil {
		return Located{}, fmt.Errorf("focus: %w", err)
	}
	if backward(seq, a, f) {
		return Located{Range: runs.Range{Start: f, End: a}, Backward: true}, nil
	}
	return Located{Range: runs.Range{Start: a, End: f}}, nil
}

// Caret resolves a single endpoint as a zero-length range.
func Caret(seq runs.Sequence, ep Endpoint) (runs.Range, error) {
	p, err := resolve(seq, ep)
	if err != nil {
		return runs.Range{}, err
	}
	return runs.CaretAt(p), nil
}

// AtOffset builds an endpoint for a document offset, on the side of a run
// boundary where a caret would sit.
func AtOffset(seq runs.Sequence, offset int) Endpoint {
	p := seq.PositionAt(offset, runs.BiasBackward)
	return Endpoint{Run: p.Run, Offset: p.Offset}
}

func resolve(seq runs.Sequence, ep Endpoint) (runs.Position, error) {
	if len(seq) == 0 {
		if ep.Run == 0 {
			return runs.Position{}, nil
		}
		return runs.Position{}, fmt.Errorf("%w: run %d in empty document", ErrUnresolvableSelection, ep.Run)
	}
	if ep.Run == NoRun || ep.Run < 0 || ep.Run >= len(seq) {
		return runs.Position{}, fmt.Errorf("%w: run %d", ErrUnresolvableSelection, ep.Run)
	}
	r := seq[ep.Run]
	off := ep.Offset
	if off < 0 {
		off = 0
	}
	if l := r.Len(); off > l {
		off = l
	}
	off = utils.SnapToGrapheme(r.Text, off)
	return runs.Position{Run: ep.Run, Offset: off}, nil
}

// backward compares by document offset, so the end of one run and the start
// of the next count as the same point.
func backward(seq runs.Sequence, a, f runs.Position) bool {
	ao, _ := seq.OffsetOf(a)
	fo, _ := seq.OffsetOf(f)
	if ao != fo {
		return ao > fo
	}
	return runs.Compare(a, f) > 0
}

package runs

import "fmt"

// Position addresses a point inside a run: Offset runes from the run's start.
// In an empty sequence the only valid position is the zero value.
type Position struct {
	Run    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Run, p.Offset)
}

// Compare orders positions by run index, then offset.
func Compare(a, b Position) int {
	switch {
	case a.Run < b.Run:
		return -1
	case a.Run > b.Run:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// Range is a span of the document with Start <= End in document order.
type Range struct {
	Start Position
	End   Position
}

// IsCaret reports a zero-length range, an insertion point rather than a span.
func (r Range) IsCaret() bool {
	return r.Start == r.End
}

// CaretAt returns the zero-length range at p.
func CaretAt(p Position) Range {
	return Range{Start: p, End: p}
}

// Bias picks a side when a document offset falls on a run boundary.
type Bias int

const (
	// BiasBackward resolves a boundary to the end of the preceding run.
	BiasBackward Bias = iota
	// BiasForward resolves a boundary to the start of the following run.
	BiasForward
)

// Contains reports whether p addresses a real point of s.
func (s Sequence) Contains(p Position) bool {
	if len(s) == 0 {
		return p == Position{}
	}
	if p.Run < 0 || p.Run >= len(s) {
		return false
	}
	return p.Offset >= 0 && p.Offset <= s[p.Run].Len()
}

// OffsetOf converts a position into a document offset in runes.
func (s Sequence) OffsetOf(p Position) (int, error) {
	if !s.Contains(p) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPosition, p)
	}
	acc := 0
	for i := 0; i < p.Run; i++ {
		acc += s[i].Len()
	}
	return acc + p.Offset, nil
}

// PositionAt converts a document offset into a position. Offsets outside the
// document are clamped to its ends.
func (s Sequence) PositionAt(offset int, bias Bias) Position {
	if len(s) == 0 || offset <= 0 {
		return Position{}
	}
	acc := 0
	for i, r := range s {
		l := r.Len()
		switch bias {
		case BiasForward:
			if offset < acc+l || (l == 0 && offset == acc) {
				return Position{Run: i, Offset: offset - acc}
			}
		default:
			if offset > acc && offset <= acc+l {
				return Position{Run: i, Offset: offset - acc}
			}
		}
		acc += l
	}
	last := len(s) - 1
	return Position{Run: last, Offset: s[last].Len()}
}

// Enclosing returns the run a caret at p belongs to. A caret at the very start
// of a text run (other than the first) belongs to the end of the previous run,
// so typed text continues the preceding style. A caret inside an anchor stays put.
func (s Sequence) Enclosing(p Position) Position {
	if !s.Contains(p) || len(s) == 0 {
		return p
	}
	if p.Offset == 0 && p.Run > 0 && !s[p.Run].Placeholder {
		prev := p.Run - 1
		return Position{Run: prev, Offset: s[prev].Len()}
	}
	return p
}

// StylesAt returns the style context of a caret at p.
func (s Sequence) StylesAt(p Position) Set {
	if len(s) == 0 || !s.Contains(p) {
		return Set{}
	}
	return s[s.Enclosing(p).Run].Styles
}

package runs

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/utils"
)

// InsertText types text at a caret. The text joins the run enclosing the caret,
// so text typed into an anchor turns it into a real run carrying the anchor's styles.
// It returns the new sequence and the caret after the inserted text.
func (s Sequence) InsertText(p Position, text string) (Sequence, Position, error) {
	if !s.Contains(p) {
		return s, p, fmt.Errorf("insert: %w: %s", ErrInvalidPosition, p)
	}
	if text == "" {
		return s, p, nil
	}
	n := utf8.RuneCountInString(text)
	if len(s) == 0 {
		return Sequence{{Text: text}}, Position{Run: 0, Offset: n}, nil
	}

	e := s.Enclosing(p)
	out := s.Clone()
	r := out[e.Run]
	left, right := utils.SplitAtRune(r.Text, e.Offset)
	out[e.Run] = Run{Text: left + text + right, Styles: r.Styles}
	if r.Placeholder {
		out.MergeIfAdjacentEqual(e.Run)
	}
	return out, Position{Run: e.Run, Offset: e.Offset + n}, nil
}

// DeleteRange removes the runes in [start, end) (document offsets, clamped).
// Emptied runs and stale anchors are dropped and neighbours re-merged.
// The returned caret sits where the deleted text was, at the end of the preceding run.
func (s Sequence) DeleteRange(start, end int) (Sequence, Position) {
	if start > end {
		start, end = end, start
	}
	total := s.Len()
	start = clamp(start, 0, total)
	end = clamp(end, 0, total)
	if start == end {
		return s, s.PositionAt(start, BiasBackward)
	}

	out := make(Sequence, 0, len(s))
	acc := 0
	for _, r := range s {
		l := r.Len()
		lo := clamp(start-acc, 0, l)
		hi := clamp(end-acc, 0, l)
		if lo < hi {
			head, _ := utils.SplitAtRune(r.Text, lo)
			_, tail := utils.SplitAtRune(r.Text, hi)
			r = Run{Text: head + tail, Styles: r.Styles}
		}
		out = append(out, r)
		acc += l
	}
	out = out.Normalize()
	return out, out.PositionAt(start, BiasBackward)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Change is the window of runs that differs between two sequences:
// prev[Start:OldEnd] was replaced by next[Start:NewEnd].
type Change struct {
	Start  int
	OldEnd int
	NewEnd int
}

// Diff finds the changed window between two sequences by trimming their common
// prefix and suffix. ok is false when they are identical. Hosts use it to
// reconcile only the affected part of their rendering.
func Diff(prev, next Sequence) (Change, bool) {
	prefix := 0
	for prefix < len(prev) && prefix < len(next) && runsEqual(prev[prefix], next[prefix]) {
		prefix++
	}
	if prefix == len(prev) && prefix == len(next) {
		return Change{}, false
	}
	oi, ni := len(prev), len(next)
	for oi > prefix && ni > prefix && runsEqual(prev[oi-1], next[ni-1]) {
		oi--
		ni--
	}
	return Change{Start: prefix, OldEnd: oi, NewEnd: ni}, true
}

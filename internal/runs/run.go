// Package runs models a document as a flat sequence of styled text runs.
package runs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/utils"
)

// Run is a contiguous span of text sharing one exact set of style tags.
type Run struct {
	Text   string
	Styles Set
	// Placeholder marks a caret anchor: a run with no text yet that carries a
	// style context forward for the next inserted characters.
	Placeholder bool
}

// Len returns the run length in runes.
func (r Run) Len() int {
	return utf8.RuneCountInString(r.Text)
}

func (r Run) String() string {
	if r.Placeholder {
		return fmt.Sprintf("<anchor {%s}>", r.Styles)
	}
	return fmt.Sprintf("%q{%s}", r.Text, r.Styles)
}

func runsEqual(a, b Run) bool {
	return a.Text == b.Text && a.Placeholder == b.Placeholder && a.Styles.Equal(b.Styles)
}

// Sequence is the ordered list of runs making up a document.
//
// Mutating methods always build a fresh backing array, so a Sequence value
// handed out earlier (to an event subscriber, say) never changes under its holder.
type Sequence []Run

// New returns a sequence holding the given runs as-is.
func New(runs ...Run) Sequence {
	out := make(Sequence, len(runs))
	copy(out, runs)
	return out
}

// Plain returns a single unstyled run, or an empty sequence for empty text.
func Plain(text string) Sequence {
	if text == "" {
		return Sequence{}
	}
	return Sequence{{Text: text}}
}

// Clone returns a copy with its own backing array.
func (s Sequence) Clone() Sequence {
	return New(s...)
}

// Text concatenates the text of all runs.
func (s Sequence) Text() string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the document length in runes.
func (s Sequence) Len() int {
	n := 0
	for _, r := range s {
		n += r.Len()
	}
	return n
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// SplitRunAt divides run i at a rune offset into two runs with the same
// styles. Splitting at 0 or at the run's end is unnecessary and does nothing.
func (s *Sequence) SplitRunAt(i, offset int) (left, right Run, ok bool) {
	seq := *s
	if i < 0 || i >= len(seq) {
		return Run{}, Run{}, false
	}
	r := seq[i]
	if offset <= 0 || offset >= r.Len() {
		return Run{}, Run{}, false
	}
	lt, rt := utils.SplitAtRune(r.Text, offset)
	left = Run{Text: lt, Styles: r.Styles}
	right = Run{Text: rt, Styles: r.Styles}

	out := make(Sequence, 0, len(seq)+1)
	out = append(out, seq[:i]...)
	out = append(out, left, right)
	out = append(out, seq[i+1:]...)
	*s = out
	return left, right, true
}

// SplitAtOffset makes sure a run boundary exists at a document offset and
// returns the index of the run starting there (len(s) at the document end).
func (s *Sequence) SplitAtOffset(offset int) int {
	acc := 0
	for i, r := range *s {
		if offset == acc {
			return i
		}
		l := r.Len()
		if offset < acc+l {
			s.SplitRunAt(i, offset-acc)
			return i + 1
		}
		acc += l
	}
	return len(*s)
}

// MergeIfAdjacentEqual joins runs i and i+1 when their style sets are equal.
// An anchor merged with a text run stops being a placeholder.
func (s *Sequence) MergeIfAdjacentEqual(i int) bool {
	seq := *s
	if i < 0 || i+1 >= len(seq) {
		return false
	}
	a, b := seq[i], seq[i+1]
	if !a.Styles.Equal(b.Styles) {
		return false
	}
	merged := Run{Text: a.Text + b.Text, Styles: a.Styles}
	merged.Placeholder = merged.Text == "" && (a.Placeholder || b.Placeholder)

	out := make(Sequence, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	out = append(out, merged)
	out = append(out, seq[i+2:]...)
	*s = out
	return true
}

// MergeSpan applies MergeIfAdjacentEqual left to right to every pair (i, i+1)
// with from <= i < to, so a merge pass can be limited to the edited region.
func (s *Sequence) MergeSpan(from, to int) {
	if from < 0 {
		from = 0
	}
	i := from
	for i < to && i+1 < len(*s) {
		if s.MergeIfAdjacentEqual(i) {
			to--
			continue
		}
		i++
	}
}

// Normalize returns a copy without placeholders or empty runs, fully merged.
func (s Sequence) Normalize() Sequence {
	out := make(Sequence, 0, len(s))
	for _, r := range s {
		if r.Placeholder || r.Text == "" {
			continue
		}
		out = append(out, Run{Text: r.Text, Styles: r.Styles})
	}
	out.MergeSpan(0, len(out))
	return out
}

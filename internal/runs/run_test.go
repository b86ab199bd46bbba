package runs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(text string, tags ...Tag) Run {
	return Run{Text: text, Styles: NewSet(tags...)}
}

func anchor(tags ...Tag) Run {
	return Run{Styles: NewSet(tags...), Placeholder: true}
}

func expectRuns(t *testing.T, label string, got, want Sequence) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("%s: unexpected runs (-want +got):\n%s", label, diff)
	}
}

func TestSetIsImmutable(t *testing.T) {
	base := NewSet("bold")
	withHL := base.With("highlight")
	if base.Contains("highlight") {
		t.Fatalf("With mutated the receiver: %v", base)
	}
	if !withHL.Contains("bold") || !withHL.Contains("highlight") {
		t.Fatalf("unexpected set after With: %v", withHL)
	}
	if got := withHL.Without("bold"); got.Contains("bold") || !withHL.Contains("bold") {
		t.Fatalf("Without misbehaved: got %v, receiver %v", got, withHL)
	}
	if !NewSet().Toggle("bold").Equal(base) {
		t.Fatalf("Toggle on empty set should add the tag")
	}
	if !base.Toggle("bold").IsEmpty() {
		t.Fatalf("Toggle on present tag should remove it")
	}
}

func TestParseSetCollapsesDuplicatesAndWhitespace(t *testing.T) {
	s := ParseSet("  bold highlight\tbold  ")
	if s.Len() != 2 {
		t.Fatalf("expected 2 tags, got %d (%v)", s.Len(), s)
	}
	if got := s.String(); got != "bold highlight" {
		t.Fatalf("unexpected class list: %q", got)
	}
	if !NewSet("", " ").IsEmpty() {
		t.Fatalf("blank tags should be ignored")
	}
	if !(Set{}).Equal(NewSet()) {
		t.Fatalf("zero Set should equal an empty set")
	}
}

func TestSplitRunAt(t *testing.T) {
	seq := New(run("hello", "bold"))
	left, right, ok := seq.SplitRunAt(0, 2)
	if !ok {
		t.Fatalf("expected interior split to succeed")
	}
	if left.Text != "he" || right.Text != "llo" {
		t.Fatalf("unexpected halves: %q %q", left.Text, right.Text)
	}
	expectRuns(t, "split", seq, Sequence{run("he", "bold"), run("llo", "bold")})

	for _, off := range []int{0, 2} {
		before := seq.Clone()
		if _, _, ok := seq.SplitRunAt(0, off); ok {
			t.Fatalf("split at boundary %d should be a no-op", off)
		}
		expectRuns(t, "boundary split", seq, before)
	}
	if _, _, ok := seq.SplitRunAt(7, 1); ok {
		t.Fatalf("split of a missing run should fail")
	}
}

func TestSplitRunAtCountsRunes(t *testing.T) {
	seq := New(run("héllo"))
	seq.SplitRunAt(0, 2)
	expectRuns(t, "rune split", seq, Sequence{run("hé"), run("llo")})
}

func TestSplitDoesNotAliasCallerSequence(t *testing.T) {
	orig := New(run("abcd"), run("ef", "bold"))
	work := orig
	work.SplitRunAt(0, 2)
	expectRuns(t, "original untouched", orig, Sequence{run("abcd"), run("ef", "bold")})
}

func TestMergeIfAdjacentEqual(t *testing.T) {
	seq := New(run("ab", "bold"), run("cd", "bold"), run("ef"))
	if !seq.MergeIfAdjacentEqual(0) {
		t.Fatalf("expected equal neighbours to merge")
	}
	expectRuns(t, "merge", seq, Sequence{run("abcd", "bold"), run("ef")})
	if seq.MergeIfAdjacentEqual(0) {
		t.Fatalf("different style sets must not merge")
	}
	if seq.MergeIfAdjacentEqual(1) {
		t.Fatalf("last run has no right neighbour")
	}
}

func TestMergeAnchorIntoTextClearsPlaceholder(t *testing.T) {
	seq := New(anchor("bold"), run("x", "bold"))
	seq.MergeIfAdjacentEqual(0)
	expectRuns(t, "anchor merge", seq, Sequence{run("x", "bold")})
}

func TestMergeSpanCollapsesChains(t *testing.T) {
	seq := New(run("a"), run("b"), run("c"), run("d", "bold"), run("e", "bold"))
	seq.MergeSpan(0, 2)
	expectRuns(t, "limited span", seq, Sequence{run("abc"), run("d", "bold"), run("e", "bold")})
	seq.MergeSpan(-1, len(seq))
	expectRuns(t, "full span", seq, Sequence{run("abc"), run("de", "bold")})
}

func TestNormalizeDropsAnchorsAndEmptyRuns(t *testing.T) {
	seq := New(run("he"), anchor("bold"), run(""), run("llo"))
	expectRuns(t, "normalize", seq.Normalize(), Sequence{run("hello")})
}

func TestQueryTriState(t *testing.T) {
	seq := New(run("ab", "bold"), run("cd"))
	all := Range{Start: Position{0, 0}, End: Position{1, 2}}
	tests := []struct {
		name string
		rng  Range
		want Coverage
	}{
		{"spanning both", all, CoverageMixed},
		{"bold only", Range{Start: Position{0, 0}, End: Position{0, 2}}, CoveragePresent},
		{"plain only", Range{Start: Position{1, 0}, End: Position{1, 2}}, CoverageAbsent},
		{"boundary end does not touch next run", Range{Start: Position{0, 1}, End: Position{1, 0}}, CoveragePresent},
		{"reversed range", Range{Start: Position{1, 2}, End: Position{0, 0}}, CoverageMixed},
		{"caret in bold", CaretAt(Position{0, 1}), CoveragePresent},
		{"caret at start of plain run continues bold", CaretAt(Position{1, 0}), CoveragePresent},
		{"caret inside plain", CaretAt(Position{1, 1}), CoverageAbsent},
	}
	for _, tt := range tests {
		got, err := seq.Query(tt.rng, "bold")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestQueryIgnoresAnchors(t *testing.T) {
	seq := New(run("ab", "bold"), anchor(), run("cd", "italic", "bold"))
	got, err := seq.Query(Range{Start: Position{0, 0}, End: Position{2, 2}}, "bold")
	if err != nil {
		t.Fatal(err)
	}
	if got != CoveragePresent {
		t.Fatalf("expected anchors to be skipped, got %v", got)
	}
}

func TestQueryRejectsInvalidPositions(t *testing.T) {
	seq := New(run("ab"))
	_, err := seq.Query(Range{Start: Position{0, 0}, End: Position{0, 3}}, "bold")
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestPositionAtBias(t *testing.T) {
	seq := New(run("ab", "bold"), run("cd"))
	if got := seq.PositionAt(2, BiasBackward); got != (Position{0, 2}) {
		t.Fatalf("backward boundary: got %v", got)
	}
	if got := seq.PositionAt(2, BiasForward); got != (Position{1, 0}) {
		t.Fatalf("forward boundary: got %v", got)
	}
	if got := seq.PositionAt(99, BiasForward); got != (Position{1, 2}) {
		t.Fatalf("clamped end: got %v", got)
	}
	if got := (Sequence{}).PositionAt(3, BiasBackward); got != (Position{}) {
		t.Fatalf("empty sequence: got %v", got)
	}
	off, err := seq.OffsetOf(Position{1, 1})
	if err != nil || off != 3 {
		t.Fatalf("OffsetOf: got %d, %v", off, err)
	}
}

func TestEnclosingKeepsAnchorCaret(t *testing.T) {
	seq := New(run("he"), anchor("bold"), run("llo"))
	if got := seq.Enclosing(Position{1, 0}); got != (Position{1, 0}) {
		t.Fatalf("caret inside anchor moved to %v", got)
	}
	if got := seq.Enclosing(Position{2, 0}); got != (Position{1, 0}) {
		t.Fatalf("caret after anchor should belong to it, got %v", got)
	}
	if !seq.StylesAt(Position{2, 0}).Equal(NewSet("bold")) {
		t.Fatalf("unexpected style context %v", seq.StylesAt(Position{2, 0}))
	}
}

func TestValidate(t *testing.T) {
	good := New(run("he"), anchor("bold"), run("llo"))
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
	bad := []Sequence{
		{run("ab"), run("cd")},
		{run("ab"), run("", "bold")},
		{{Text: "x", Placeholder: true}},
	}
	for i, seq := range bad {
		if err := seq.Validate(); !errors.Is(err, ErrInvariantViolation) {
			t.Errorf("case %d: expected invariant violation, got %v", i, err)
		}
	}
}

func TestAssertPanicsWithDebugAssertions(t *testing.T) {
	SetDebugAssertions(true)
	defer SetDebugAssertions(false)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Assert to panic")
		}
	}()
	_ = Sequence{run("a"), run("b")}.Assert()
}

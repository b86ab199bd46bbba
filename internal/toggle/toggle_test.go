package toggle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bethropolis/tidemark/internal/locate"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/google/go-cmp/cmp"
)

func run(text string, tags ...runs.Tag) runs.Run {
	return runs.Run{Text: text, Styles: runs.NewSet(tags...)}
}

func anchor(tags ...runs.Tag) runs.Run {
	return runs.Run{Styles: runs.NewSet(tags...), Placeholder: true}
}

// span builds the range covering document offsets [a, b).
func span(seq runs.Sequence, a, b int) runs.Range {
	return runs.Range{
		Start: seq.PositionAt(a, runs.BiasForward),
		End:   seq.PositionAt(b, runs.BiasBackward),
	}
}

func mustToggle(t *testing.T, seq runs.Sequence, rng runs.Range, tag runs.Tag) Result {
	t.Helper()
	res, err := Toggle(seq, rng, tag)
	if err != nil {
		t.Fatalf("toggle %q over %v failed: %v", tag, rng, err)
	}
	return res
}

func expectRuns(t *testing.T, got, want runs.Sequence) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected runs (-want +got):\n%s", diff)
	}
}

func TestToggleFullCoverage(t *testing.T) {
	seq := runs.Plain("hello world")
	res := mustToggle(t, seq, span(seq, 0, 11), "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("hello world", "bold")})
	if res.Action != ActionAdd {
		t.Fatalf("expected add, got %v", res.Action)
	}
	want := runs.Range{Start: runs.Position{}, End: runs.Position{Run: 0, Offset: 11}}
	if res.Selection != want {
		t.Fatalf("unexpected selection %v", res.Selection)
	}
}

func TestTogglePartialRangeAdd(t *testing.T) {
	seq := runs.Plain("hello world")
	res := mustToggle(t, seq, span(seq, 0, 5), "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("hello", "bold"), run(" world")})
}

func TestToggleRemoveLeavesBareText(t *testing.T) {
	seq := runs.New(run("hello", "bold"))
	res := mustToggle(t, seq, span(seq, 0, 5), "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("hello")})
	if res.Action != ActionRemove {
		t.Fatalf("expected remove, got %v", res.Action)
	}
	if !res.Runs[0].Styles.IsEmpty() {
		t.Fatalf("expected an empty style set, got {%s}", res.Runs[0].Styles)
	}
}

func TestToggleRemoveInsideLargerRun(t *testing.T) {
	seq := runs.New(run("hello world", "bold"))
	res := mustToggle(t, seq, span(seq, 2, 7), "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("he", "bold"), run("llo w"), run("orld", "bold")})
}

func TestToggleKeepsOtherTags(t *testing.T) {
	seq := runs.New(run("ab", "italic"), run("cd", "bold", "italic"))
	res := mustToggle(t, seq, span(seq, 0, 4), "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("abcd", "bold", "italic")})

	res = mustToggle(t, res.Runs, span(res.Runs, 1, 3), "italic")
	expectRuns(t, res.Runs, runs.Sequence{
		run("a", "bold", "italic"),
		run("bc", "bold"),
		run("d", "bold", "italic"),
	})
}

func TestMixedCoverageQueriesMixedAndAdds(t *testing.T) {
	seq := runs.New(run("ab", "bold"), run("cd"))
	rng := span(seq, 0, 4)
	cov, err := Query(seq, rng, "bold")
	if err != nil {
		t.Fatal(err)
	}
	if cov != runs.CoverageMixed {
		t.Fatalf("expected mixed, got %v", cov)
	}
	res := mustToggle(t, seq, rng, "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("abcd", "bold")})
	if res.Action != ActionAdd {
		t.Fatalf("mixed coverage should add, got %v", res.Action)
	}
}

func TestCaretMidRunSplit(t *testing.T) {
	seq := runs.Plain("hello")
	res := mustToggle(t, seq, runs.CaretAt(runs.Position{Run: 0, Offset: 2}), "bold")
	expectRuns(t, res.Runs, runs.Sequence{run("he"), anchor("bold"), run("llo")})
	if !res.Anchor {
		t.Fatalf("expected an anchor run")
	}
	if res.Selection != runs.CaretAt(runs.Position{Run: 1, Offset: 0}) {
		t.Fatalf("caret should sit in the anchor, got %v", res.Selection)
	}

	typed, caret, err := res.Runs.InsertText(res.Selection.Start, "X")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, typed, runs.Sequence{run("he"), run("X", "bold"), run("llo")})
	if caret != (runs.Position{Run: 1, Offset: 1}) {
		t.Fatalf("unexpected caret after typing %v", caret)
	}
}

func TestCaretAtRunEndTurnsStyleOff(t *testing.T) {
	seq := runs.New(run("ab", "bold"), run("cd"))
	res := mustToggle(t, seq, runs.CaretAt(runs.Position{Run: 0, Offset: 2}), "bold")
	if res.Action != ActionRemove {
		t.Fatalf("caret continuing bold should remove, got %v", res.Action)
	}
	expectRuns(t, res.Runs, runs.Sequence{run("ab", "bold"), anchor(), run("cd")})

	typed, _, err := res.Runs.InsertText(res.Selection.Start, "X")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, typed, runs.Sequence{run("ab", "bold"), run("Xcd")})
}

func TestCaretInsideAnchorReplacesIt(t *testing.T) {
	seq := runs.New(run("he"), anchor("bold"), run("llo"))
	res := mustToggle(t, seq, runs.CaretAt(runs.Position{Run: 1}), "italic")
	expectRuns(t, res.Runs, runs.Sequence{run("he"), anchor("bold", "italic"), run("llo")})
}

func TestCaretInEmptyDocument(t *testing.T) {
	res := mustToggle(t, runs.Sequence{}, runs.CaretAt(runs.Position{}), "bold")
	expectRuns(t, res.Runs, runs.Sequence{anchor("bold")})
	if res.Selection != runs.CaretAt(runs.Position{}) {
		t.Fatalf("unexpected caret %v", res.Selection)
	}

	res = mustToggle(t, res.Runs, res.Selection, "bold")
	if len(res.Runs) != 0 || res.Anchor {
		t.Fatalf("toggling the anchor off should leave an empty document, got %v", res.Runs)
	}
}

func TestCaretOnEmptiedRunIsTopLevel(t *testing.T) {
	seq := runs.Sequence{run("ab", "italic"), run("", "italic")}
	res := mustToggle(t, seq, runs.CaretAt(runs.Position{Run: 1}), "bold")
	if res.Action != ActionAdd {
		t.Fatalf("expected add, got %v", res.Action)
	}
	expectRuns(t, res.Runs, runs.Sequence{run("ab", "italic"), anchor("bold")})
}

func TestZeroLengthRangeAcrossBoundaryIsCaret(t *testing.T) {
	seq := runs.New(run("ab", "bold"), run("cd"))
	rng := runs.Range{Start: runs.Position{Run: 1, Offset: 0}, End: runs.Position{Run: 0, Offset: 2}}
	res := mustToggle(t, seq, rng, "italic")
	if !res.Anchor || !res.Selection.IsCaret() {
		t.Fatalf("expected a caret toggle, got %+v", res)
	}
}

func TestUnresolvableSelectionLeavesSequenceUntouched(t *testing.T) {
	seq := runs.New(run("ab", "bold"), run("cd"))
	before := seq.Clone()
	sel := locate.Selection{
		Anchor: locate.Endpoint{Run: 0, Offset: 1},
		Focus:  locate.Endpoint{Run: locate.NoRun},
	}
	res, err := ToggleSelection(seq, sel, "bold")
	if !errors.Is(err, locate.ErrUnresolvableSelection) {
		t.Fatalf("expected ErrUnresolvableSelection, got %v", err)
	}
	if res.Runs != nil {
		t.Fatalf("expected no result, got %v", res.Runs)
	}
	expectRuns(t, seq, before)
}

func TestToggleSelectionBackward(t *testing.T) {
	seq := runs.Plain("hello world")
	sel := locate.Selection{
		Anchor: locate.Endpoint{Run: 0, Offset: 11},
		Focus:  locate.Endpoint{Run: 0, Offset: 6},
	}
	res, err := ToggleSelection(seq, sel, "bold")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, res.Runs, runs.Sequence{run("hello "), run("world", "bold")})

	after := locate.Selection{
		Anchor: locate.Endpoint{Run: 1, Offset: 5},
		Focus:  locate.Endpoint{Run: 0, Offset: 6},
	}
	cov, err := QuerySelection(res.Runs, after, "bold")
	if err != nil {
		t.Fatal(err)
	}
	if cov != runs.CoveragePresent {
		t.Fatalf("expected present, got %v", cov)
	}
}

func TestToggleRejectsBadInput(t *testing.T) {
	seq := runs.Plain("abc")
	if _, err := Toggle(seq, span(seq, 0, 2), ""); !errors.Is(err, ErrEmptyTag) {
		t.Fatalf("expected ErrEmptyTag, got %v", err)
	}
	bad := runs.Range{End: runs.Position{Run: 0, Offset: 9}}
	if _, err := Toggle(seq, bad, "bold"); !errors.Is(err, runs.ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	seq := runs.New(run("hello ", "italic"), run("world"))
	before := seq.Clone()
	mustToggle(t, seq, span(seq, 3, 8), "bold")
	mustToggle(t, seq, runs.CaretAt(runs.Position{Run: 0, Offset: 3}), "bold")
	expectRuns(t, seq, before)
}

// TestToggleProperties exercises every range of a small document and checks
// the properties any toggle must keep.
func TestToggleProperties(t *testing.T) {
	seq := runs.New(run("ab"), run("cd", "bold"), run("ef", "bold", "italic"))
	n := seq.Len()
	for _, tag := range []runs.Tag{"bold", "italic", "underline"} {
		for a := 0; a <= n; a++ {
			for b := a; b <= n; b++ {
				t.Run(fmt.Sprintf("%s/%d-%d", tag, a, b), func(t *testing.T) {
					rng := span(seq, a, b)
					before, err := Query(seq, rng, tag)
					if err != nil {
						t.Fatal(err)
					}
					res := mustToggle(t, seq, rng, tag)

					if got := res.Runs.Text(); got != seq.Text() {
						t.Fatalf("text changed: %q -> %q", seq.Text(), got)
					}
					if err := res.Runs.Validate(); err != nil {
						t.Fatalf("result not maximally merged: %v (%s)", err, res.Runs)
					}

					if a < b {
						after, err := Query(res.Runs, res.Selection, tag)
						if err != nil {
							t.Fatal(err)
						}
						want := runs.CoveragePresent
						if res.Action == ActionRemove {
							want = runs.CoverageAbsent
						}
						if after != want {
							t.Fatalf("after %v coverage is %v, want %v", res.Action, after, want)
						}
					}

					if before == runs.CoverageMixed {
						return
					}
					again := mustToggle(t, res.Runs, res.Selection, tag)
					expectRuns(t, again.Runs, seq)
				})
			}
		}
	}
}

package runs

import (
	"errors"
	"testing"
)

func TestInsertTextContinuesPrecedingStyle(t *testing.T) {
	seq := New(run("ab", "bold"), run("cd"))
	got, caret, err := seq.InsertText(Position{Run: 1, Offset: 0}, "X")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, "insert at boundary", got, Sequence{run("abX", "bold"), run("cd")})
	if caret != (Position{Run: 0, Offset: 3}) {
		t.Fatalf("unexpected caret %v", caret)
	}
	expectRuns(t, "input untouched", seq, Sequence{run("ab", "bold"), run("cd")})
}

func TestInsertTextMaterialisesAnchor(t *testing.T) {
	seq := New(run("he"), anchor("bold"), run("llo"))
	got, caret, err := seq.InsertText(Position{Run: 1, Offset: 0}, "XY")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, "typed into anchor", got, Sequence{run("he"), run("XY", "bold"), run("llo")})
	if caret != (Position{Run: 1, Offset: 2}) {
		t.Fatalf("unexpected caret %v", caret)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("result not canonical: %v", err)
	}
}

func TestInsertTextIntoEmptyDocument(t *testing.T) {
	got, caret, err := Sequence{}.InsertText(Position{}, "hi")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, "empty insert", got, Sequence{run("hi")})
	if caret != (Position{Run: 0, Offset: 2}) {
		t.Fatalf("unexpected caret %v", caret)
	}
}

func TestInsertTextRejectsInvalidPosition(t *testing.T) {
	_, _, err := New(run("ab")).InsertText(Position{Run: 3}, "x")
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestDeleteRangeRemergesNeighbours(t *testing.T) {
	seq := New(run("ab", "bold"), run("cd"), run("ef", "bold"))
	got, caret := seq.DeleteRange(5, 1)
	expectRuns(t, "delete", got, Sequence{run("af", "bold")})
	if caret != (Position{Run: 0, Offset: 1}) {
		t.Fatalf("unexpected caret %v", caret)
	}
	if got.Text() != "af" {
		t.Fatalf("unexpected text %q", got.Text())
	}
}

func TestDeleteRangeDropsStaleAnchors(t *testing.T) {
	seq := New(run("he"), anchor("bold"), run("llo"))
	got, _ := seq.DeleteRange(4, 5)
	expectRuns(t, "delete", got, Sequence{run("hell")})
}

func TestDeleteRangeEmptyIsNoop(t *testing.T) {
	seq := New(run("abc"))
	got, caret := seq.DeleteRange(2, 2)
	expectRuns(t, "noop", got, seq)
	if caret != (Position{Run: 0, Offset: 2}) {
		t.Fatalf("unexpected caret %v", caret)
	}
}

func TestDiff(t *testing.T) {
	prev := New(run("a"), run("b", "bold"), run("c"))
	next := New(run("a"), run("B", "bold"), run("c"))
	ch, ok := Diff(prev, next)
	if !ok {
		t.Fatalf("expected a change")
	}
	if ch != (Change{Start: 1, OldEnd: 2, NewEnd: 2}) {
		t.Fatalf("unexpected change %+v", ch)
	}
	if _, ok := Diff(prev, prev.Clone()); ok {
		t.Fatalf("identical sequences should not differ")
	}

	grown := New(run("a"), run("b", "bold"), anchor("italic"), run("c"))
	ch, _ = Diff(prev, grown)
	if ch != (Change{Start: 2, OldEnd: 2, NewEnd: 3}) {
		t.Fatalf("unexpected insertion change %+v", ch)
	}
}

func TestInsertTextIntoAnchorJoinsEqualFollowingRun(t *testing.T) {
	seq := New(run("ab", "bold"), anchor(), run("cd"))
	if err := seq.Validate(); err != nil {
		t.Fatalf("anchor matching the following run should be valid: %v", err)
	}
	got, caret, err := seq.InsertText(Position{Run: 1, Offset: 0}, "X")
	if err != nil {
		t.Fatal(err)
	}
	expectRuns(t, "typed into anchor", got, Sequence{run("ab", "bold"), run("Xcd")})
	if caret != (Position{Run: 1, Offset: 1}) {
		t.Fatalf("unexpected caret %v", caret)
	}
}

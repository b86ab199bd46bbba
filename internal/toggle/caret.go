package toggle

import (
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
)

// toggleCaret flips tag in the style context at a caret. Nothing is styled
// yet, so the result only decides which run the next typed character joins:
// an existing run whose styles already match, or a new anchor run.
func toggleCaret(seq runs.Sequence, p runs.Position, tag runs.Tag) (Result, error) {
	offset, err := seq.OffsetOf(p)
	if err != nil {
		return Result{}, err
	}

	var current runs.Set
	if len(seq) > 0 && seq[p.Run].Text == "" && !seq[p.Run].Placeholder {
		// Text was deleted out from under the caret; treat it as outside any run.
		logger.Warnf("caret toggle %q on emptied run %d, treating caret as top level", tag, p.Run)
	} else {
		current = seq.StylesAt(p)
	}

	action := ActionAdd
	if current.Contains(tag) {
		action = ActionRemove
	}
	target := current.Toggle(tag)

	work := seq.Normalize()
	caret, anchored := placeAnchor(&work, offset, target)

	if err := work.Assert(); err != nil {
		logger.Errorf("caret toggle %q at %d produced %s: %v", tag, offset, work, err)
		return Result{}, err
	}
	logger.DebugTagf(logTag, "%s %q at caret %d: context {%s} -> {%s}, anchor=%t", action, tag, offset, current, target, anchored)
	return Result{
		Runs:      work,
		Selection: runs.CaretAt(caret),
		Action:    action,
		Anchor:    anchored,
	}, nil
}

// placeAnchor finds or creates the run that text typed at offset should join
// so that it carries exactly target. work must be normalized.
func placeAnchor(work *runs.Sequence, offset int, target runs.Set) (runs.Position, bool) {
	seq := *work
	if len(seq) == 0 && target.IsEmpty() {
		return runs.Position{}, false
	}

	acc := 0
	for i, r := range seq {
		l := r.Len()
		if offset > acc && offset < acc+l {
			if r.Styles.Equal(target) {
				return runs.Position{Run: i, Offset: offset - acc}, false
			}
			work.SplitRunAt(i, offset-acc)
			insertAnchor(work, i+1, target)
			return runs.Position{Run: i + 1}, true
		}
		acc += l
	}

	b := work.SplitAtOffset(offset)
	seq = *work
	if b > 0 && seq[b-1].Styles.Equal(target) {
		return runs.Position{Run: b - 1, Offset: seq[b-1].Len()}, false
	}
	if b == 0 && len(seq) > 0 && seq[0].Styles.Equal(target) {
		return runs.Position{}, false
	}
	insertAnchor(work, b, target)
	return runs.Position{Run: b}, true
}

func insertAnchor(work *runs.Sequence, at int, styles runs.Set) {
	seq := *work
	out := make(runs.Sequence, 0, len(seq)+1)
	out = append(out, seq[:at]...)
	out = append(out, runs.Run{Styles: styles, Placeholder: true})
	out = append(out, seq[at:]...)
	*work = out
}

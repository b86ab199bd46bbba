package runs

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrInvalidPosition    = errors.New("runs: position outside the sequence")
	ErrInvariantViolation = errors.New("runs: invariant violation")
)

var debugAssertions atomic.Bool

// SetDebugAssertions makes Assert panic instead of returning an error.
func SetDebugAssertions(enabled bool) {
	debugAssertions.Store(enabled)
}

// Validate checks that adjacent runs never share a style set, that only
// anchors have empty text, and that anchors carry no text. An anchor may share
// its set with the run after it: that is how a caret at the start of a run
// picks up the run's style instead of the preceding one.
func (s Sequence) Validate() error {
	for i, r := range s {
		if r.Placeholder && r.Text != "" {
			return fmt.Errorf("%w: anchor run %d carries text %q", ErrInvariantViolation, i, r.Text)
		}
		if !r.Placeholder && r.Text == "" {
			return fmt.Errorf("%w: run %d has empty text", ErrInvariantViolation, i)
		}
		if i > 0 && !s[i-1].Placeholder && s[i-1].Styles.Equal(r.Styles) {
			return fmt.Errorf("%w: runs %d and %d share style set {%s}", ErrInvariantViolation, i-1, i, r.Styles)
		}
	}
	return nil
}

// Assert validates s; with debug assertions on, a violation panics.
func (s Sequence) Assert() error {
	err := s.Validate()
	if err != nil && debugAssertions.Load() {
		panic(err)
	}
	return err
}

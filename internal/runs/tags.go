package runs

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Tag names one style dimension ("bold", "highlight"). The core never interprets it.
type Tag string

// Set is an unordered set of tags. The zero value is the empty set.
//
// A Set is immutable: With, Without and Toggle return new sets, so runs can
// share one freely.
type Set struct {
	inner map[Tag]struct{}
}

// NewSet builds a set from tags, ignoring blanks and duplicates.
func NewSet(tags ...Tag) Set {
	s := Set{inner: make(map[Tag]struct{}, len(tags))}
	for _, t := range tags {
		t = Tag(strings.TrimSpace(string(t)))
		if t == "" {
			continue
		}
		s.inner[t] = struct{}{}
	}
	return s
}

// ParseSet reads a whitespace separated class list such as "bold  highlight".
func ParseSet(classList string) Set {
	fields := strings.Fields(classList)
	tags := make([]Tag, len(fields))
	for i, f := range fields {
		tags[i] = Tag(f)
	}
	return NewSet(tags...)
}

func (s Set) Contains(t Tag) bool {
	_, ok := s.inner[t]
	return ok
}

func (s Set) Len() int {
	return len(s.inner)
}

func (s Set) IsEmpty() bool {
	return len(s.inner) == 0
}

// With returns s plus t.
func (s Set) With(t Tag) Set {
	if t == "" || s.Contains(t) {
		return s
	}
	inner := maps.Clone(s.inner)
	if inner == nil {
		inner = make(map[Tag]struct{}, 1)
	}
	inner[t] = struct{}{}
	return Set{inner: inner}
}

// Without returns s minus t.
func (s Set) Without(t Tag) Set {
	if !s.Contains(t) {
		return s
	}
	inner := maps.Clone(s.inner)
	delete(inner, t)
	return Set{inner: inner}
}

// Toggle flips membership of t.
func (s Set) Toggle(t Tag) Set {
	if s.Contains(t) {
		return s.Without(t)
	}
	return s.With(t)
}

// Equal reports whether both sets hold exactly the same tags.
func (s Set) Equal(o Set) bool {
	if len(s.inner) != len(o.inner) {
		return false
	}
	for t := range s.inner {
		if !o.Contains(t) {
			return false
		}
	}
	return true
}

// Tags returns the members in sorted order.
func (s Set) Tags() []Tag {
	out := make([]Tag, 0, len(s.inner))
	for t := range s.inner {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// String renders the set as a sorted, space separated class list.
func (s Set) String() string {
	tags := s.Tags()
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

package runs

// Coverage is the tri-state answer to "does this range carry the tag".
type Coverage int

const (
	CoverageAbsent Coverage = iota
	CoveragePresent
	CoverageMixed
)

func (c Coverage) String() string {
	switch c {
	case CoveragePresent:
		return "present"
	case CoverageMixed:
		return "mixed"
	default:
		return "absent"
	}
}

// Query reports whether tag applies to every run touched by rng (present), to
// none of them (absent) or only to some (mixed). A run is touched when it
// shares at least one character with the range; anchors never are.
// For a caret the answer is the style context at the caret.
func (s Sequence) Query(rng Range, tag Tag) (Coverage, error) {
	start, err := s.OffsetOf(rng.Start)
	if err != nil {
		return CoverageAbsent, err
	}
	end, err := s.OffsetOf(rng.End)
	if err != nil {
		return CoverageAbsent, err
	}
	if start > end {
		start, end = end, start
	}
	if start == end {
		if s.StylesAt(rng.Start).Contains(tag) {
			return CoveragePresent, nil
		}
		return CoverageAbsent, nil
	}

	touched, tagged := 0, 0
	acc := 0
	for _, r := range s {
		l := r.Len()
		if l > 0 && acc < end && acc+l > start {
			touched++
			if r.Styles.Contains(tag) {
				tagged++
			}
		}
		acc += l
	}
	switch {
	case tagged == 0:
		return CoverageAbsent, nil
	case tagged == touched:
		return CoveragePresent, nil
	default:
		return CoverageMixed, nil
	}
}

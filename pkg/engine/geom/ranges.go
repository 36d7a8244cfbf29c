package geom

import "fmt"

// IntRange is a half-open interval [Min, Max).
type IntRange struct {
	Min, Max int
}

// Length returns the number of integers in the range.
func (r IntRange) Length() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min
}

// Empty reports whether the range contains no integers.
func (r IntRange) Empty() bool {
	return r.Max <= r.Min
}

// Contains reports whether i lies in the range.
func (r IntRange) Contains(i int) bool {
	return i >= r.Min && i < r.Max
}

// Covers reports whether o lies entirely inside r.
func (r IntRange) Covers(o IntRange) bool {
	return o.Min >= r.Min && o.Max <= r.Max
}

// Intersect returns the common part of two ranges, empty if they do not overlap.
func (r IntRange) Intersect(o IntRange) IntRange {
	out := IntRange{max(r.Min, o.Min), min(r.Max, o.Max)}
	if out.Max < out.Min {
		out.Max = out.Min
	}
	return out
}

// Shift moves the range by n.
func (r IntRange) Shift(n int) IntRange {
	return IntRange{r.Min + n, r.Max + n}
}

func (r IntRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Min, r.Max)
}

// RangeSet holds side requirement ranges: each range independently demands that
// at least one of its positions ends up open. Only minimal ranges are kept; a range
// covering an existing one adds nothing, and an existing range covering a new one
// is superseded by it.
type RangeSet struct {
	ranges []IntRange
}

// Add records a requirement range. Empty ranges are ignored.
func (s *RangeSet) Add(r IntRange) {
	if r.Empty() {
		return
	}
	for _, existing := range s.ranges {
		if r.Covers(existing) {
			return
		}
	}
	kept := s.ranges[:0]
	for _, existing := range s.ranges {
		if !existing.Covers(r) {
			kept = append(kept, existing)
		}
	}
	s.ranges = append(kept, r)
}

// Ranges returns a copy of the stored ranges in insertion order.
func (s *RangeSet) Ranges() []IntRange {
	out := make([]IntRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len returns the number of stored ranges.
func (s *RangeSet) Len() int {
	return len(s.ranges)
}

// Clear drops every stored range.
func (s *RangeSet) Clear() {
	s.ranges = nil
}

package pipeline

import (
	"strconv"
	"strings"
)

// Priority orders pipeline steps. It is a variable length tuple compared
// element by element, with missing trailing elements counting as zero, so
// (1) and (1, 0) are equal and (1) comes before (1, 2). The Invalid priority
// sorts before every other one.
type Priority struct {
	path  []int
	valid bool
}

// Invalid is the priority of steps that were never given one.
var Invalid = Priority{}

// P creates a priority from its elements.
func P(path ...int) Priority {
	return Priority{path: append([]int(nil), path...), valid: true}
}

// Valid reports whether p is a real priority.
func (p Priority) Valid() bool {
	return p.valid
}

// Len returns the number of elements.
func (p Priority) Len() int {
	return len(p.path)
}

// At returns element i, or zero past the end.
func (p Priority) At(i int) int {
	if i < 0 || i >= len(p.path) {
		return 0
	}
	return p.path[i]
}

// Push returns a priority one level deeper, with n appended.
func (p Priority) Push(n int) Priority {
	out := append(append([]int(nil), p.path...), n)
	return Priority{path: out, valid: true}
}

// Compare returns -1, 0 or 1 as p sorts before, with, or after o. Invalid
// sorts before any valid priority; two invalid priorities compare equal.
func (p Priority) Compare(o Priority) int {
	switch {
	case !p.valid && !o.valid:
		return 0
	case !p.valid:
		return -1
	case !o.valid:
		return 1
	}
	for i := 0; i < max(len(p.path), len(o.path)); i++ {
		a, b := p.At(i), o.At(i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// Less reports whether p sorts strictly before o. Invalid priorities are
// never less than each other.
func (p Priority) Less(o Priority) bool {
	return p.Compare(o) < 0
}

// Equal reports whether p and o sort together.
func (p Priority) Equal(o Priority) bool {
	return p.Compare(o) == 0
}

func (p Priority) String() string {
	if !p.valid {
		return "Invalid"
	}
	parts := make([]string, len(p.path))
	for i, n := range p.path {
		parts[i] = strconv.Itoa(n)
	}
	return "(" + strings.Join(parts, ".") + ")"
}

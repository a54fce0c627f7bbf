package source

import (
	"fmt"
)

// Position is a zero-based line/column coordinate.
// Column counts Unicode scalar values from the start of the line, not bytes.
type Position struct {
	Line   uint32
	Column uint32
}

// Compare orders positions lexicographically by line, then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

func (p Position) Less(other Position) bool {
	return p.Compare(other) < 0
}

// String печатает позицию в 1-based виде "line:col" для людей.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Range is a half-open span [Start, End) over source text.
type Range struct {
	Start Position
	End   Position // не включительно
}

// NewRange builds a Range and panics if start is after end.
func NewRange(start, end Position) Range {
	if end.Less(start) {
		panic(fmt.Errorf("invalid range: start %s is after end %s", start, end))
	}
	return Range{Start: start, End: end}
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

// Contains reports whether p lies inside the half-open range.
func (r Range) Contains(p Position) bool {
	return r.Start.Compare(p) <= 0 && p.Less(r.End)
}

// Cover returns the smallest range containing both r and other.
func (r Range) Cover(other Range) Range {
	if other.Start.Less(r.Start) {
		r.Start = other.Start
	}
	if r.End.Less(other.End) {
		r.End = other.End
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

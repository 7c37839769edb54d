package buffer

import "fmt"

// Range represents a span between two positions.
// Start is inclusive, End is exclusive, and Start <= End in document order.
// A zero-width range is a plain cursor.
type Range struct {
	Start Position // Inclusive start position
	End   Position // Exclusive end position
}

// NewRange creates a Range from start and end positions.
// It panics if start is after end or either position is negative.
func NewRange(start, end Position) Range {
	r := Range{Start: start, End: end}
	MustBeValid(r)
	return r
}

// CursorRange returns the zero-width range at p.
func CursorRange(p Position) Range {
	return NewRange(p, p)
}

// RangeFromSelection returns the ordered range covered by a directional
// anchor/head pair. Backward selections normalize to the same range as the
// equivalent forward selection.
func RangeFromSelection(anchor, head Position) Range {
	if head.Before(anchor) {
		return NewRange(head, anchor)
	}
	return NewRange(anchor, head)
}

// MustBeValid panics if r violates the Range contract.
func MustBeValid(r Range) {
	if !r.Start.IsValid() || !r.End.IsValid() {
		panic(fmt.Sprintf("buffer: negative position in range %s", r))
	}
	if r.Start.After(r.End) {
		panic(fmt.Sprintf("buffer: range start after end %s", r))
	}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start.String(), r.End.String())
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end and neither position is negative.
func (r Range) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid() && r.Start.Compare(r.End) <= 0
}

// Contains returns true if the given position is within the range.
func (r Range) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// IsSingleLine returns true if the range spans only one row.
func (r Range) IsSingleLine() bool {
	return r.Start.Row == r.End.Row
}

// RowCount returns the number of rows the range touches, counting the end
// row even when End sits at column 0.
func (r Range) RowCount() int {
	return r.End.Row - r.Start.Row + 1
}

package buffer

import "fmt"

// Position represents a row and column location in a line-addressed buffer.
// Both Row and Column are 0-indexed.
// Column is measured in runes from the start of the row.
type Position struct {
	Row    int // 0-indexed row number
	Column int // 0-indexed column (rune offset within row)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Row == 0 && p.Column == 0
}

// IsValid returns true if neither coordinate is negative.
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Column >= 0
}

// LineStart returns the position at column 0 of p's row.
func (p Position) LineStart() Position {
	return Position{Row: p.Row}
}

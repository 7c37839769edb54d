package buffer

import (
	"fmt"
	"unicode/utf8"
)

// Shift returns p moved by rowDelta rows and columnDelta columns.
// It panics if the result would have a negative coordinate.
func Shift(p Position, rowDelta, columnDelta int) Position {
	next := Position{Row: p.Row + rowDelta, Column: p.Column + columnDelta}
	if !next.IsValid() {
		panic(fmt.Sprintf("buffer: shift %s by (%d,%d) leaves the document", p, rowDelta, columnDelta))
	}
	return next
}

// OffsetColumn returns p moved delta columns along its row.
func OffsetColumn(p Position, delta int) Position {
	return Shift(p, 0, delta)
}

// ColumnWidth returns the number of columns s occupies when inserted on a
// single row. Columns are runes.
func ColumnWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// EndOf returns the position just past s when s is inserted at p.
// Newlines in s advance the row and restart the column.
func EndOf(p Position, s string) Position {
	row, col := p.Row, p.Column
	for _, r := range s {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return Position{Row: row, Column: col}
}

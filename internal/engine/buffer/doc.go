// Package buffer provides the position and range value types shared by the
// document store and every toolbar command handler.
//
// The package provides:
//
//   - Position: a row/column location, both 0-indexed, column in runes
//   - Range: an ordered pair of positions (Start <= End)
//   - Selection: an anchor/head pair that remembers its direction
//   - Shift and OffsetColumn: the position translator used by handlers
//
// All types are immutable values. Constructors and translator functions panic
// when given arguments that violate their contract (a range whose start is
// after its end, a translation to a negative row or column). Those are caller
// bugs, and clamping them would hide the bug.
//
// Basic usage:
//
//	p := buffer.Position{Row: 2, Column: 4}
//	r := buffer.NewRange(p, buffer.Position{Row: 3, Column: 0})
//
//	// Place the cursor just after a two-rune marker inserted at p.
//	next := buffer.OffsetColumn(p, buffer.ColumnWidth("**"))
package buffer

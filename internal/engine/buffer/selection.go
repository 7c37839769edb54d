package buffer

import "fmt"

// Selection represents a directional selection.
// Anchor is where the selection started; Head is the cursor (where typing occurs).
// When Anchor == Head, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position
	Head   Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Position) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// IsForward returns true if the selection extends forward (head >= anchor).
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// Range returns the selection as an ordered range.
func (s Selection) Range() Range {
	return RangeFromSelection(s.Anchor, s.Head)
}

// Cursor returns the head position.
func (s Selection) Cursor() Position {
	return s.Head
}

// Collapse returns a cursor selection at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// MoveTo returns a cursor selection at p.
func (s Selection) MoveTo(p Position) Selection {
	return NewCursorSelection(p)
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection{%s -> %s}", s.Anchor, s.Head)
}

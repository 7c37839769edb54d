// Package document provides an in-memory text buffer that implements the
// editing capability toolbar commands operate against.
//
// A Document stores its text as rows of runes, so columns are rune offsets.
// It tracks a single directional selection (anchor and head); a collapsed
// selection is a plain cursor. Every mutation bumps the revision and fires
// the registered change listeners after the document lock is released.
//
// Positions passed in from callers are clamped into the document, the way an
// editor widget clamps a cursor request past the end of a row.
//
// Basic usage:
//
//	doc := document.New("# Title\n\nbody")
//	doc.SetSelection(buffer.NewSelection(
//	    buffer.Position{Row: 2, Column: 0},
//	    buffer.Position{Row: 2, Column: 4},
//	))
//	doc.InsertAtCursor("text") // replaces "body"
package document

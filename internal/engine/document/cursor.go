package document

import "github.com/dshills/mdplus/internal/engine/buffer"

// Cursor returns the cursor (selection head).
func (d *Document) Cursor() buffer.Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sel.Head
}

// Selection returns the directional selection.
func (d *Document) Selection() buffer.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sel
}

// SelectionRange returns the selection as an ordered range.
// A document without a selection returns the zero-width range at the cursor.
func (d *Document) SelectionRange() buffer.Range {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sel.Range()
}

// HasSelection returns true if the selection has extent.
func (d *Document) HasSelection() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.sel.IsEmpty()
}

// SetSelection sets the selection after clamping both ends into the document.
func (d *Document) SetSelection(sel buffer.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sel = buffer.NewSelection(d.clampPos(sel.Anchor), d.clampPos(sel.Head))
}

// SetCursor moves the cursor to p and clears the selection.
func (d *Document) SetCursor(p buffer.Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sel = buffer.NewCursorSelection(d.clampPos(p))
}

// ClearSelection collapses the selection onto the cursor.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sel = d.sel.Collapse()
}

// NavigateToLineStart moves the cursor to column 0 of row.
// This addresses the hard row, never a visually wrapped segment.
func (d *Document) NavigateToLineStart(row int) {
	d.SetCursor(buffer.Position{Row: row})
}

// NavigateToLineEnd moves the cursor past the last rune of row.
func (d *Document) NavigateToLineEnd(row int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.clampPos(buffer.Position{Row: row})
	p.Column = len(d.lines[p.Row])
	d.sel = buffer.NewCursorSelection(p)
}

// NavigateUp moves the cursor n rows up, keeping its column where the
// target row is long enough.
func (d *Document) NavigateUp(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	head := d.sel.Head
	d.sel = buffer.NewCursorSelection(d.clampPos(buffer.Position{Row: head.Row - n, Column: head.Column}))
}

// NavigateLineEnd moves the cursor to the end of its current row.
func (d *Document) NavigateLineEnd() {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := d.sel.Head.Row
	d.sel = buffer.NewCursorSelection(buffer.Position{Row: row, Column: len(d.lines[row])})
}

// GotoLine moves the cursor to the start of the 1-based line n.
func (d *Document) GotoLine(n int) {
	d.SetCursor(buffer.Position{Row: n - 1})
}

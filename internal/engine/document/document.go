package document

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/mdplus/internal/engine/buffer"
)

// ChangeEvent describes one applied mutation.
type ChangeEvent struct {
	// DocumentID identifies the document that changed.
	DocumentID uuid.UUID
	// Revision is the document revision after the change.
	Revision uint64
	// Range is the replaced range, in coordinates before the change.
	Range buffer.Range
	// Text is the inserted text.
	Text string
}

// ChangeListener is called after a mutation has been applied.
type ChangeListener func(ChangeEvent)

// Document is an in-memory, line-addressed text buffer.
// All methods are safe for concurrent use.
type Document struct {
	mu        sync.RWMutex
	id        uuid.UUID
	lines     [][]rune
	sel       buffer.Selection
	revision  uint64
	listeners map[int]ChangeListener
	nextID    int
}

// Option configures a Document.
type Option func(*Document)

// WithID sets the document identity reported in change events.
func WithID(id uuid.UUID) Option {
	return func(d *Document) {
		d.id = id
	}
}

// New creates a document holding text with the cursor at (0:0).
// CRLF and CR line endings are normalized to LF.
func New(text string, opts ...Option) *Document {
	d := &Document{
		id:        uuid.New(),
		lines:     splitLines(normalizeLineEndings(text)),
		listeners: make(map[int]ChangeListener),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the document identity.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Revision returns the number of mutations applied so far.
func (d *Document) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// OnChange registers a listener and returns a function that removes it.
func (d *Document) OnChange(fn ChangeListener) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners[id] = fn

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

// Read Operations

// Text returns the full document content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	parts := make([]string, len(d.lines))
	for i, line := range d.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// LineCount returns the number of rows. An empty document has one row.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// LineText returns the text of a row, or "" when row is out of range.
func (d *Document) LineText(row int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return string(d.lines[row])
}

// LineLen returns the rune length of a row, or 0 when row is out of range.
func (d *Document) LineLen(row int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return len(d.lines[row])
}

// Contains reports whether p addresses an existing row and column.
func (d *Document) Contains(p buffer.Position) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return p.IsValid() && p.Row < len(d.lines) && p.Column <= len(d.lines[p.Row])
}

// TextInRange returns the text covered by r after clamping it into the document.
func (d *Document) TextInRange(r buffer.Range) string {
	buffer.MustBeValid(r)

	d.mu.RLock()
	defer d.mu.RUnlock()

	start, end := d.clampPos(r.Start), d.clampPos(r.End)
	if start.Row == end.Row {
		return string(d.lines[start.Row][start.Column:end.Column])
	}

	var sb strings.Builder
	sb.WriteString(string(d.lines[start.Row][start.Column:]))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(string(d.lines[row]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(d.lines[end.Row][:end.Column]))
	return sb.String()
}

// Write Operations

// ReplaceRange replaces the text in r with text. The cursor moves to the end
// of the inserted text and the selection is cleared.
func (d *Document) ReplaceRange(r buffer.Range, text string) {
	buffer.MustBeValid(r)

	d.mu.Lock()
	ev, changed := d.replaceLocked(r, text)
	listeners := d.listenersLocked()
	d.mu.Unlock()

	if changed {
		notify(listeners, ev)
	}
}

// InsertAtCursor inserts text at the cursor. An active selection is replaced.
func (d *Document) InsertAtCursor(text string) {
	d.mu.Lock()
	ev, changed := d.replaceLocked(d.sel.Range(), text)
	listeners := d.listenersLocked()
	d.mu.Unlock()

	if changed {
		notify(listeners, ev)
	}
}

// replaceLocked applies one replacement. Caller must hold the write lock.
func (d *Document) replaceLocked(r buffer.Range, text string) (ChangeEvent, bool) {
	start, end := d.clampPos(r.Start), d.clampPos(r.End)
	text = normalizeLineEndings(text)

	if start == end && text == "" {
		d.sel = buffer.NewCursorSelection(start)
		return ChangeEvent{}, false
	}

	head := d.lines[start.Row][:start.Column]
	tail := d.lines[end.Row][end.Column:]

	inserted := splitLines(text)
	replacement := make([][]rune, len(inserted))
	for i, line := range inserted {
		replacement[i] = append([]rune(nil), line...)
	}
	last := len(replacement) - 1
	cursor := buffer.Position{Row: start.Row + last, Column: len(replacement[last])}
	if last == 0 {
		cursor.Column += len(head)
	}
	replacement[0] = append(append([]rune(nil), head...), replacement[0]...)
	replacement[last] = append(replacement[last], tail...)

	lines := make([][]rune, 0, len(d.lines)-(end.Row-start.Row)+last)
	lines = append(lines, d.lines[:start.Row]...)
	lines = append(lines, replacement...)
	lines = append(lines, d.lines[end.Row+1:]...)
	d.lines = lines

	d.sel = buffer.NewCursorSelection(cursor)
	d.revision++

	return ChangeEvent{
		DocumentID: d.id,
		Revision:   d.revision,
		Range:      buffer.Range{Start: start, End: end},
		Text:       text,
	}, true
}

func (d *Document) listenersLocked() []ChangeListener {
	if len(d.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]ChangeListener, len(ids))
	for i, id := range ids {
		out[i] = d.listeners[id]
	}
	return out
}

func notify(listeners []ChangeListener, ev ChangeEvent) {
	for _, fn := range listeners {
		fn(ev)
	}
}

// clampPos moves p into the document. Caller must hold a lock.
func (d *Document) clampPos(p buffer.Position) buffer.Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= len(d.lines) {
		p.Row = len(d.lines) - 1
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := len(d.lines[p.Row]); p.Column > n {
		p.Column = n
	}
	return p
}

func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}

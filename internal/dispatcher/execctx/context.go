// Package execctx provides the execution context for toolbar command handlers.
package execctx

import (
	"github.com/dshills/mdplus/internal/engine/buffer"
)

// TextBuffer is the editing capability handlers operate against.
// It is implemented by document.Document and by any editor widget adapter.
type TextBuffer interface {
	// Read operations
	Cursor() buffer.Position
	SelectionRange() buffer.Range
	TextInRange(r buffer.Range) string

	// Write operations
	ReplaceRange(r buffer.Range, text string)
	InsertAtCursor(text string)

	// Cursor and selection
	SetCursor(p buffer.Position)
	ClearSelection()

	// Navigation
	NavigateToLineStart(row int)
	NavigateToLineEnd(row int)
	NavigateUp(n int)
	NavigateLineEnd()
	GotoLine(n int) // 1-based
}

// ExecutionContext provides context for command execution.
//
// Cursor and Selection are captured from the buffer when the context is
// built. Handlers read them from here rather than querying the buffer, so
// every handler sees the state the command was issued against.
type ExecutionContext struct {
	// Buffer is the text buffer being edited.
	Buffer TextBuffer

	// Cursor is the cursor position at dispatch time.
	Cursor buffer.Position

	// Selection is the ordered selection range at dispatch time.
	// It is zero-width at Cursor when nothing is selected.
	Selection buffer.Range

	// ReadOnly rejects mutating commands.
	ReadOnly bool
}

// New creates a new, empty execution context.
func New() *ExecutionContext {
	return &ExecutionContext{}
}

// FromBuffer creates an execution context capturing buf's current cursor and selection.
func FromBuffer(buf TextBuffer) *ExecutionContext {
	ctx := New()
	if buf != nil {
		ctx.Buffer = buf
		ctx.Cursor = buf.Cursor()
		ctx.Selection = buf.SelectionRange()
	}
	return ctx
}

// WithBuffer returns the context with the buffer set.
func (ctx *ExecutionContext) WithBuffer(buf TextBuffer) *ExecutionContext {
	ctx.Buffer = buf
	return ctx
}

// WithCursor returns the context with the cursor set.
func (ctx *ExecutionContext) WithCursor(p buffer.Position) *ExecutionContext {
	ctx.Cursor = p
	return ctx
}

// WithSelection returns the context with the selection set.
func (ctx *ExecutionContext) WithSelection(r buffer.Range) *ExecutionContext {
	buffer.MustBeValid(r)
	ctx.Selection = r
	return ctx
}

// WithReadOnly returns the context with read-only mode set.
func (ctx *ExecutionContext) WithReadOnly(readOnly bool) *ExecutionContext {
	ctx.ReadOnly = readOnly
	return ctx
}

// HasSelection returns true if the captured selection has extent.
func (ctx *ExecutionContext) HasSelection() bool {
	return !ctx.Selection.IsEmpty()
}

// SelectedText returns the text of the captured selection.
func (ctx *ExecutionContext) SelectedText() string {
	if ctx.Buffer == nil || ctx.Selection.IsEmpty() {
		return ""
	}
	return ctx.Buffer.TextInRange(ctx.Selection)
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Buffer == nil {
		return ErrMissingBuffer
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.ReadOnly {
		return ErrReadOnly
	}
	return nil
}

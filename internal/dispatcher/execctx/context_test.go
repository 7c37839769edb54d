package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/engine/buffer"
	"github.com/dshills/mdplus/internal/engine/document"
)

func TestNew(t *testing.T) {
	ctx := execctx.New()

	if ctx.HasSelection() {
		t.Error("expected no selection")
	}
	if !errors.Is(ctx.Validate(), execctx.ErrMissingBuffer) {
		t.Errorf("expected ErrMissingBuffer, got %v", ctx.Validate())
	}
}

func TestFromBufferCapturesState(t *testing.T) {
	doc := document.New("hello world")
	doc.SetSelection(buffer.NewSelection(
		buffer.Position{Row: 0, Column: 11},
		buffer.Position{Row: 0, Column: 6},
	))

	ctx := execctx.FromBuffer(doc)

	if ctx.Cursor != (buffer.Position{Row: 0, Column: 6}) {
		t.Errorf("expected cursor (0:6), got %s", ctx.Cursor)
	}
	if !ctx.HasSelection() {
		t.Fatal("expected a selection")
	}
	if got := ctx.SelectedText(); got != "world" {
		t.Errorf("expected selected text 'world', got %q", got)
	}

	// The captured state does not follow later buffer changes.
	doc.SetCursor(buffer.Position{})
	if ctx.Cursor.Column != 6 {
		t.Errorf("captured cursor changed to %s", ctx.Cursor)
	}
}

func TestFromBufferNil(t *testing.T) {
	ctx := execctx.FromBuffer(nil)
	if ctx.Buffer != nil {
		t.Error("expected nil buffer")
	}
	if ctx.SelectedText() != "" {
		t.Error("expected empty selected text")
	}
}

func TestValidateForEdit(t *testing.T) {
	ctx := execctx.FromBuffer(document.New(""))

	if err := ctx.ValidateForEdit(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	ctx.WithReadOnly(true)
	if err := ctx.ValidateForEdit(); !errors.Is(err, execctx.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestWithSelectionPanicsOnReversedRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	execctx.New().WithSelection(buffer.Range{
		Start: buffer.Position{Row: 1},
		End:   buffer.Position{Row: 0},
	})
}

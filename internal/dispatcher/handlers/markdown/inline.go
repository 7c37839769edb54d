package markdown

import (
	"fmt"
	"strings"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/engine/buffer"
)

// InlineHandler handles edits that stay within the existing lines:
// headings, emphasis, list prefixes, links, images and tokens.
type InlineHandler struct{}

// NewInlineHandler creates a new inline handler.
func NewInlineHandler() *InlineHandler {
	return &InlineHandler{}
}

// Namespace returns the markdown namespace.
func (h *InlineHandler) Namespace() string {
	return command.Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *InlineHandler) CanHandle(actionName string) bool {
	switch actionName {
	case command.ActionHeading, command.ActionInlineWrap, command.ActionListPrefix,
		command.ActionLink, command.ActionImage, command.ActionToken:
		return true
	}
	return false
}

// HandleAction processes an inline command.
func (h *InlineHandler) HandleAction(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	switch c := cmd.(type) {
	case command.Heading:
		return h.Heading(ctx, c.Level)
	case command.InlineWrap:
		return h.Wrap(ctx, c.Modifier)
	case command.ListPrefix:
		return h.List(ctx, c.Prefix)
	case command.Link:
		return h.Link(ctx, c.SampleText, c.SampleURL)
	case command.Image:
		return h.Image(ctx, c.SampleText, c.SampleURL)
	case command.Token:
		return h.Token(ctx, c)
	}
	return handler.Errorf("unknown inline action: %s", cmd.Action())
}

// Heading prefixes the cursor's line with level "#" characters and a space.
// The cursor keeps its place in the line text. The selection is untouched.
//
// Panics if level is outside 1..6.
func (h *InlineHandler) Heading(ctx *execctx.ExecutionContext, level int) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if level < command.MinHeadingLevel || level > command.MaxHeadingLevel {
		panic(fmt.Sprintf("markdown: heading level %d outside %d..%d",
			level, command.MinHeadingLevel, command.MaxHeadingLevel))
	}

	buf := ctx.Buffer
	prefix := strings.Repeat("#", level) + " "
	lineStart := ctx.Cursor.LineStart()
	target := buffer.OffsetColumn(ctx.Cursor, buffer.ColumnWidth(prefix))

	buf.NavigateToLineStart(ctx.Cursor.Row)
	buf.InsertAtCursor(prefix)
	buf.SetCursor(target)

	return handler.Success().
		WithEdit(buffer.CursorRange(lineStart), prefix).
		WithCursor(target)
}

// Wrap surrounds the selection with modifier on both sides. The cursor lands
// just inside the opening modifier, whichever way the selection was made, and
// the selection is cleared. An empty selection yields an empty pair with the
// cursor between the halves.
func (h *InlineHandler) Wrap(ctx *execctx.ExecutionContext, modifier string) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	buf := ctx.Buffer
	sel := ctx.Selection
	wrapped := modifier + ctx.SelectedText() + modifier
	target := buffer.OffsetColumn(sel.Start, buffer.ColumnWidth(modifier))

	buf.ReplaceRange(sel, wrapped)
	buf.SetCursor(target)
	buf.ClearSelection()

	return handler.Success().
		WithEdit(sel, wrapped).
		WithCursor(target)
}

// List prefixes every line the selection touches, from its first row through
// its last row inclusive. Without a selection only the cursor's line is
// prefixed. The cursor shifts right by the prefix width.
func (h *InlineHandler) List(ctx *execctx.ExecutionContext, prefix string) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	buf := ctx.Buffer
	sel := ctx.Selection
	target := buffer.OffsetColumn(ctx.Cursor, buffer.ColumnWidth(prefix))

	result := handler.Success()
	// GotoLine is 1-based: line i is row i-1.
	for i := sel.Start.Row + 1; i < sel.End.Row+2; i++ {
		buf.GotoLine(i)
		buf.InsertAtCursor(prefix)
		result = result.WithEdit(buffer.CursorRange(buffer.Position{Row: i - 1}), prefix)
	}
	buf.SetCursor(target)

	return result.WithCursor(target)
}

// Link replaces the selection with [text](url), where text is the trimmed
// selection or sampleText when the selection is blank.
func (h *InlineHandler) Link(ctx *execctx.ExecutionContext, sampleText, url string) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	sel := ctx.Selection
	md := "[" + linkText(ctx, sampleText) + "](" + url + ")"
	target := buffer.EndOf(sel.Start, md)

	ctx.Buffer.ReplaceRange(sel, md)

	return handler.Success().
		WithEdit(sel, md).
		WithCursor(target)
}

// Image inserts ![text](url) at the cursor. The text follows the same rule
// as Link, but the selection is left in the document: it collapses onto the
// cursor and the image goes in at that point.
func (h *InlineHandler) Image(ctx *execctx.ExecutionContext, sampleText, url string) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	md := "![" + linkText(ctx, sampleText) + "](" + url + ")"
	return insertAtPoint(ctx, md)
}

// Token inserts the normalized token text at the cursor without consuming
// the selection. A blank value is a no-op that leaves the buffer untouched.
func (h *InlineHandler) Token(ctx *execctx.ExecutionContext, tok command.Token) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if strings.TrimSpace(tok.Value) == "" {
		return handler.NoOpWithMessage("empty token")
	}

	text, err := tok.Text()
	if err != nil {
		return handler.Error(fmt.Errorf("markdown: normalize token %q: %w", tok.Value, err))
	}
	if text == "" {
		return handler.NoOpWithMessage("token normalized to nothing")
	}

	return insertAtPoint(ctx, text)
}

// insertAtPoint collapses any selection onto the cursor and inserts text
// there, leaving the selected text in place.
func insertAtPoint(ctx *execctx.ExecutionContext, text string) handler.Result {
	at := ctx.Cursor
	target := buffer.EndOf(at, text)

	ctx.Buffer.ClearSelection()
	ctx.Buffer.InsertAtCursor(text)

	return handler.Success().
		WithEdit(buffer.CursorRange(at), text).
		WithCursor(target)
}

func linkText(ctx *execctx.ExecutionContext, sample string) string {
	if text := strings.TrimSpace(ctx.SelectedText()); text != "" {
		return text
	}
	return sample
}

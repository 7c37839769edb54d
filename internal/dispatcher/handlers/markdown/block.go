package markdown

import (
	"strings"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/engine/buffer"
)

const (
	fence = "```"
	rule  = "---"
)

// BlockHandler handles standalone blocks: horizontal rules, code fences,
// language fences and tables.
type BlockHandler struct{}

// NewBlockHandler creates a new block handler.
func NewBlockHandler() *BlockHandler {
	return &BlockHandler{}
}

// Namespace returns the markdown namespace.
func (h *BlockHandler) Namespace() string {
	return command.Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *BlockHandler) CanHandle(actionName string) bool {
	switch actionName {
	case command.ActionHorizontalRule, command.ActionCodeBlock,
		command.ActionFencedBlock, command.ActionTable:
		return true
	}
	return false
}

// HandleAction processes a block command.
func (h *BlockHandler) HandleAction(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	switch c := cmd.(type) {
	case command.HorizontalRule:
		return h.HorizontalRule(ctx)
	case command.CodeBlock:
		return h.CodeBlock(ctx)
	case command.FencedBlock:
		return h.FencedBlock(ctx, c.Language, c.Sample)
	case command.Table:
		return h.Table(ctx, c.Sample)
	}
	return handler.Errorf("unknown block action: %s", cmd.Action())
}

// HorizontalRule inserts a --- block. The selection is not consumed; away from
// column 0 the rule follows the line the selection starts on.
func (h *BlockHandler) HorizontalRule(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	result, end := insertBlock(ctx.Buffer, ctx.Cursor, ctx.Selection.Start.Row, rule, handler.Success())
	return result.WithCursor(end)
}

// CodeBlock moves the trimmed selection into a bare code fence and leaves the
// cursor at the end of the fenced content.
func (h *BlockHandler) CodeBlock(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	code := strings.TrimSpace(ctx.SelectedText())
	result, at := consumeSelection(ctx)
	result, end := insertBlock(ctx.Buffer, at, at.Row, fence+"\n"+code+"\n"+fence, result)

	// Two lines up from the end is the last line of code.
	ctx.Buffer.NavigateUp(2)
	ctx.Buffer.NavigateLineEnd()
	target := buffer.OffsetColumn(buffer.Shift(end, -2, 0), buffer.ColumnWidth(lastLine(code)))

	return result.WithCursor(target)
}

// FencedBlock moves the trimmed selection into a fence tagged with language.
// A blank selection is replaced by sample.
func (h *BlockHandler) FencedBlock(ctx *execctx.ExecutionContext, language, sample string) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	body := strings.TrimSpace(ctx.SelectedText())
	if body == "" {
		body = sample
	}
	result, at := consumeSelection(ctx)
	result, end := insertBlock(ctx.Buffer, at, at.Row, fence+language+"\n"+body+"\n"+fence, result)

	return result.WithCursor(end)
}

// Table deletes the selection and inserts sample as a block.
func (h *BlockHandler) Table(ctx *execctx.ExecutionContext, sample string) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	result, at := consumeSelection(ctx)
	result, end := insertBlock(ctx.Buffer, at, at.Row, sample, result)

	return result.WithCursor(end)
}

// consumeSelection deletes the captured selection and returns where the
// cursor now sits.
func consumeSelection(ctx *execctx.ExecutionContext) (handler.Result, buffer.Position) {
	result := handler.Success()
	if !ctx.HasSelection() {
		return result, ctx.Cursor
	}
	ctx.Buffer.ReplaceRange(ctx.Selection, "")
	return result.WithEdit(ctx.Selection, ""), ctx.Selection.Start
}

// insertBlock writes body as a standalone block for a cursor at p and returns
// the position just past the inserted text. At column 0 the block goes in at
// p; otherwise it goes after the end of row.
func insertBlock(buf execctx.TextBuffer, p buffer.Position, row int, body string, result handler.Result) (handler.Result, buffer.Position) {
	var text string
	if p.Column == 0 {
		buf.ClearSelection()
		text = "\n" + body + "\n"
	} else {
		buf.NavigateToLineEnd(row)
		text = "\n\n" + body + "\n"
	}

	at := buf.Cursor()
	buf.InsertAtCursor(text)

	return result.WithEdit(buffer.CursorRange(at), text), buffer.EndOf(at, text)
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

package markdown_test

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/engine/buffer"
	"github.com/dshills/mdplus/internal/engine/document"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Table))

// parse parses src the way a GFM previewer would.
func parse(src string) ast.Node {
	return md.Parser().Parse(text.NewReader([]byte(src)))
}

// nodesOf returns every node of kind in document order.
func nodesOf(root ast.Node, kind ast.NodeKind) []ast.Node {
	var out []ast.Node
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == kind {
			out = append(out, n)
		}
		return ast.WalkContinue, nil
	})
	return out
}

// blockContent returns the raw lines of a block node.
func blockContent(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

// newDoc creates a document with the given selection.
func newDoc(src string, anchor, head buffer.Position) *document.Document {
	doc := document.New(src)
	doc.SetSelection(buffer.NewSelection(anchor, head))
	return doc
}

func pos(row, col int) buffer.Position {
	return buffer.Position{Row: row, Column: col}
}

// checkCursor verifies the document cursor matches the result and lies in the document.
func checkCursor(t *testing.T, doc *document.Document, want buffer.Position) {
	t.Helper()
	if got := doc.Cursor(); got != want {
		t.Errorf("cursor = %s, want %s", got, want)
	}
	if !doc.Contains(doc.Cursor()) {
		t.Errorf("cursor %s outside document", doc.Cursor())
	}
	if doc.HasSelection() {
		t.Errorf("expected selection to be cleared, got %s", doc.Selection())
	}
}

func ctxFor(doc *document.Document) *execctx.ExecutionContext {
	return execctx.FromBuffer(doc)
}

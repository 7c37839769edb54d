package markdown_test

import (
	"errors"
	"testing"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/dispatcher/handlers/markdown"
	"github.com/dshills/mdplus/internal/engine/buffer"
	"github.com/dshills/mdplus/internal/engine/document"
)

type unknownCommand struct{}

func (unknownCommand) Action() string  { return "markdown.unknown" }
func (unknownCommand) Validate() error { return nil }

func TestCombinedCanHandle(t *testing.T) {
	h := markdown.NewHandler()

	if h.Namespace() != command.Namespace {
		t.Errorf("namespace = %q, want %q", h.Namespace(), command.Namespace)
	}

	actions := []string{
		command.ActionHeading, command.ActionInlineWrap, command.ActionHorizontalRule,
		command.ActionListPrefix, command.ActionLink, command.ActionImage,
		command.ActionCodeBlock, command.ActionFencedBlock, command.ActionTable,
		command.ActionToken,
	}
	for _, action := range actions {
		if !h.CanHandle(action) {
			t.Errorf("expected CanHandle(%q)", action)
		}
	}
	if h.CanHandle("markdown.unknown") {
		t.Error("expected unknown action to be rejected")
	}
}

func newDispatcher(doc *document.Document) *dispatcher.Dispatcher {
	d := dispatcher.NewWithDefaults()
	d.SetBuffer(doc)
	d.RegisterNamespace(command.Namespace, markdown.NewHandler())
	return d
}

func TestDispatchEveryCommand(t *testing.T) {
	tests := []struct {
		name     string
		cmd      command.Command
		expected string
	}{
		{"heading", command.Heading{Level: 3}, "### word"},
		{"wrap", command.InlineWrap{Modifier: "**"}, "**word**"},
		{"horizontal rule", command.HorizontalRule{}, "word\n\n---\n"},
		{"list", command.ListPrefix{Prefix: "- "}, "- word"},
		{"link", command.Link{SampleText: "link", SampleURL: "http://example.com"}, "[word](http://example.com)"},
		{"image", command.Image{SampleText: "image", SampleURL: "http://example.com/a.png"}, "word![word](http://example.com/a.png)"},
		{"code block", command.CodeBlock{}, "\n```\nword\n```\n"},
		{"fenced block", command.FencedBlock{Language: "katex", Sample: "x"}, "\n```katex\nword\n```\n"},
		{"table", command.Table{Sample: "| a |\n| - |"}, "\n| a |\n| - |\n"},
		{"token", command.Token{Value: "smile", Normalize: command.Emoji}, "word:smile:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc("word", pos(0, 0), pos(0, 4))

			result := newDispatcher(doc).Dispatch(tt.cmd)
			if result.Status != handler.StatusOK {
				t.Fatalf("status = %v (%v)", result.Status, result.Error)
			}
			if got := doc.Text(); got != tt.expected {
				t.Errorf("text = %q, want %q", got, tt.expected)
			}
			if !result.HasCursor {
				t.Error("expected result to record the cursor")
			}
			if result.Cursor != doc.Cursor() {
				t.Errorf("result cursor = %s, document cursor = %s", result.Cursor, doc.Cursor())
			}
			if !doc.Contains(doc.Cursor()) {
				t.Errorf("cursor %s outside document", doc.Cursor())
			}
		})
	}
}

func TestDispatchInvalidHeadingRecovered(t *testing.T) {
	doc := document.New("Title")

	result := newDispatcher(doc).Dispatch(command.Heading{Level: 9})

	if result.Status != handler.StatusError {
		t.Fatalf("status = %v, want error", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
	if doc.Text() != "Title" {
		t.Errorf("expected buffer untouched, got %q", doc.Text())
	}
}

func TestDispatchUnknownMarkdownAction(t *testing.T) {
	doc := document.New("")

	result := newDispatcher(doc).Dispatch(unknownCommand{})

	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}
}

func TestHandleActionTypeMismatch(t *testing.T) {
	// A command claiming a known action name but of a foreign type.
	h := markdown.NewHandler()
	doc := document.New("")

	result := h.HandleAction(impostor{}, ctxFor(doc))
	if result.Status != handler.StatusError {
		t.Errorf("status = %v, want error", result.Status)
	}
}

type impostor struct{}

func (impostor) Action() string  { return command.ActionHeading }
func (impostor) Validate() error { return nil }

func TestSequentialCommandsComposeOnSameBuffer(t *testing.T) {
	doc := document.New("Title\nbody")
	doc.SetCursor(pos(0, 0))
	d := newDispatcher(doc)

	d.Dispatch(command.Heading{Level: 1})
	doc.SetSelection(buffer.NewSelection(pos(1, 0), pos(1, 4)))
	d.Dispatch(command.InlineWrap{Modifier: "*"})

	want := "# Title\n*body*"
	if got := doc.Text(); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

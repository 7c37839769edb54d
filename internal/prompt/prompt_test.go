package prompt

import (
	"errors"
	"testing"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/dispatcher/handlers/markdown"
	"github.com/dshills/mdplus/internal/engine/buffer"
	"github.com/dshills/mdplus/internal/engine/document"
)

type recordingDispatcher struct {
	cmds []command.Command
}

func (r *recordingDispatcher) Dispatch(cmd command.Command) handler.Result {
	r.cmds = append(r.cmds, cmd)
	return handler.Success()
}

func TestCommand(t *testing.T) {
	p := New("emoji", "Emoji", command.Emoji)

	tests := []struct {
		in    string
		value string
		ok    bool
	}{
		{"smile", "smile", true},
		{"  :smile:  ", ":smile:", true},
		{"", "", false},
		{" \t\n", "", false},
		// Decomposed e + combining acute becomes the composed rune.
		{"cafe\u0301", "caf\u00e9", true},
	}

	for _, tt := range tests {
		cmd, ok := p.Command(tt.in)
		if ok != tt.ok {
			t.Errorf("Command(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if cmd.Value != tt.value {
			t.Errorf("Command(%q) value = %q, want %q", tt.in, cmd.Value, tt.value)
		}
		if ok && cmd.Action() != "markdown.token.emoji" {
			t.Errorf("Command(%q) action = %q", tt.in, cmd.Action())
		}
	}
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	p := New("emoji", "Emoji", command.Emoji)
	d := &recordingDispatcher{}

	result := p.Submit(d, "   ")

	if result.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", result.Status)
	}
	if len(d.cmds) != 0 {
		t.Errorf("expected nothing dispatched, got %d commands", len(d.cmds))
	}
}

func TestSubmitInsertsToken(t *testing.T) {
	tests := []struct {
		name      string
		normalize command.Normalizer
		value     string
		expected  string
	}{
		{"emoji bare", command.Emoji, "smile", "Hello :smile:"},
		{"emoji wrapped", command.Emoji, ":smile:", "Hello :smile:"},
		{"icon", command.Icon, "fa-star", "Hello :fa-star:"},
		{"icon without prefix", command.Icon, "star", "Hello :fa-star:"},
		{"verbatim", nil, "raw", "Hello raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New("Hello ")
			doc.SetCursor(buffer.Position{Column: 6})

			d := dispatcher.NewWithDefaults()
			d.SetBuffer(doc)
			d.RegisterNamespace(command.Namespace, markdown.NewHandler())

			p := New("token", "Token", tt.normalize)
			p.Register(d)

			result := p.Submit(d, tt.value)
			if result.Status != handler.StatusOK {
				t.Fatalf("status = %v (%v)", result.Status, result.Error)
			}
			if got := doc.Text(); got != tt.expected {
				t.Errorf("text = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSubmitRoutesThroughRegistry(t *testing.T) {
	doc := document.New("")
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.SetBuffer(doc)
	d.RegisterNamespace(command.Namespace, markdown.NewHandler())

	emoji := New("emoji", "Emoji", command.Emoji)
	icon := New("fa", "Icon", command.Icon)

	// The namespace handler does not accept prompt actions.
	if r := emoji.Submit(d, "smile"); !errors.Is(r.Error, dispatcher.ErrNoHandler) {
		t.Fatalf("expected ErrNoHandler before registration, got %v", r.Error)
	}

	emoji.Register(d)
	icon.Register(d)

	emoji.Submit(d, "smile")
	emoji.Submit(d, "tada")
	icon.Submit(d, "bolt")

	if got := doc.Text(); got != ":smile::tada::fa-bolt:" {
		t.Errorf("text = %q", got)
	}

	metrics := d.Metrics()
	if stats := metrics.ActionStats("markdown.token.emoji"); stats == nil || stats.DispatchCount != 2 {
		t.Errorf("emoji stats = %+v, want 2 dispatches", stats)
	}
	if stats := metrics.ActionStats("markdown.token.fa"); stats == nil || stats.DispatchCount != 1 {
		t.Errorf("fa stats = %+v, want 1 dispatch", stats)
	}
}

func TestHandleUsesPromptNormalizer(t *testing.T) {
	doc := document.New("foo bar")
	doc.SetSelection(buffer.NewSelection(buffer.Position{}, buffer.Position{Column: 3}))

	p := New("fa", "Icon", command.Icon)
	// The command's own normalizer is ignored in favor of the prompt's.
	result := p.Handle(command.Token{Value: "star", Normalize: command.Emoji, Prompt: "fa"}, execctx.FromBuffer(doc))
	if !result.IsOK() {
		t.Fatalf("unexpected result: %v", result.Error)
	}
	if got := doc.Text(); got != "foo:fa-star: bar" {
		t.Errorf("text = %q", got)
	}

	if r := p.Handle(command.HorizontalRule{}, execctx.FromBuffer(doc)); r.Status != handler.StatusError {
		t.Errorf("status = %v, want error for a foreign command", r.Status)
	}
}

func TestCanHandle(t *testing.T) {
	p := New("emoji", "Emoji", command.Emoji)

	if p.Action() != "markdown.token.emoji" {
		t.Errorf("Action() = %q", p.Action())
	}
	if !p.CanHandle("markdown.token.emoji") || p.CanHandle("markdown.token") || p.CanHandle("markdown.token.fa") {
		t.Error("expected CanHandle to accept only the prompt's own action")
	}
}

// Package prompt implements two-step token insertion: a toolbar control asks
// for free-form input, and submitting it inserts a normalized token.
//
// Each prompt is also the dispatcher handler for its own token action,
// markdown.token.<key>, so prompts are registered on the dispatcher and
// their insertions are counted per prompt.
package prompt

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/dispatcher/handlers/markdown"
)

// Dispatcher executes commands against the active buffer.
type Dispatcher interface {
	Dispatch(cmd command.Command) handler.Result
}

// Registrar installs handlers for exact action names.
type Registrar interface {
	RegisterHandler(actionName string, h handler.Handler)
}

var tokens = markdown.NewInlineHandler()

// Prompt is a pending token insert waiting for user input.
type Prompt struct {
	// Key identifies the prompt (e.g. "emoji").
	Key string

	// Label is shown to the user when asking for input.
	Label string

	// Normalize turns the submitted value into the token text.
	// A nil Normalize inserts the value unchanged.
	Normalize command.Normalizer
}

// New creates a prompt.
func New(key, label string, normalize command.Normalizer) *Prompt {
	return &Prompt{Key: key, Label: label, Normalize: normalize}
}

// Action returns the action name the prompt's tokens are dispatched under.
func (p *Prompt) Action() string {
	return command.PromptAction(p.Key)
}

// Register installs p as the handler for its action.
func (p *Prompt) Register(r Registrar) {
	r.RegisterHandler(p.Action(), p)
}

// Command builds the token command for value without dispatching it.
// ok is false when value is blank after trimming.
func (p *Prompt) Command(value string) (cmd command.Token, ok bool) {
	value = norm.NFC.String(strings.TrimSpace(value))
	if value == "" {
		return command.Token{}, false
	}
	return command.Token{Value: value, Normalize: p.Normalize, Prompt: p.Key}, true
}

// Submit inserts the token for value at the cursor. Blank input is discarded
// as a no-op without touching the buffer.
func (p *Prompt) Submit(d Dispatcher, value string) handler.Result {
	cmd, ok := p.Command(value)
	if !ok {
		return handler.NoOpWithMessage("empty " + p.Key + " input")
	}
	return d.Dispatch(cmd)
}

// Handle inserts a submitted token using p's normalizer.
func (p *Prompt) Handle(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	tok, ok := cmd.(command.Token)
	if !ok {
		return handler.Errorf("prompt %s: unexpected command %s", p.Key, cmd.Action())
	}
	tok.Normalize = p.Normalize
	return tokens.Token(ctx, tok)
}

// CanHandle reports whether actionName is p's token action.
func (p *Prompt) CanHandle(actionName string) bool {
	return actionName == p.Action()
}

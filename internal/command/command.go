package command

import (
	"errors"
	"fmt"
)

// Action names routed by the dispatcher.
const (
	Namespace = "markdown"

	ActionHeading        = "markdown.heading"
	ActionInlineWrap     = "markdown.wrap"
	ActionHorizontalRule = "markdown.horizontalRule"
	ActionListPrefix     = "markdown.list"
	ActionLink           = "markdown.link"
	ActionImage          = "markdown.image"
	ActionCodeBlock      = "markdown.codeBlock"
	ActionFencedBlock    = "markdown.fencedBlock"
	ActionTable          = "markdown.table"
	ActionToken          = "markdown.token"
)

// Heading level bounds.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Descriptor validation errors.
var (
	// ErrInvalidLevel indicates a heading level outside 1..6.
	ErrInvalidLevel = errors.New("command: heading level must be between 1 and 6")

	// ErrEmptyModifier indicates an inline wrap without a modifier.
	ErrEmptyModifier = errors.New("command: wrap modifier is empty")

	// ErrEmptyPrefix indicates a list command without a prefix.
	ErrEmptyPrefix = errors.New("command: list prefix is empty")

	// ErrEmptySample indicates a table command without a sample.
	ErrEmptySample = errors.New("command: table sample is empty")
)

// Command is a descriptor for one toolbar transformation.
type Command interface {
	// Action returns the dispatcher action name.
	Action() string

	// Validate reports parameters the handler would reject.
	Validate() error
}

// Heading inserts a level-N ATX heading prefix.
type Heading struct {
	Level int
}

// Action implements Command.
func (Heading) Action() string { return ActionHeading }

// Validate implements Command.
func (c Heading) Validate() error {
	if c.Level < MinHeadingLevel || c.Level > MaxHeadingLevel {
		return fmt.Errorf("%w: got %d", ErrInvalidLevel, c.Level)
	}
	return nil
}

// InlineWrap surrounds the selection with Modifier on both sides.
type InlineWrap struct {
	Modifier string
}

// Action implements Command.
func (InlineWrap) Action() string { return ActionInlineWrap }

// Validate implements Command.
func (c InlineWrap) Validate() error {
	if c.Modifier == "" {
		return ErrEmptyModifier
	}
	return nil
}

// HorizontalRule inserts a thematic break block.
type HorizontalRule struct{}

// Action implements Command.
func (HorizontalRule) Action() string { return ActionHorizontalRule }

// Validate implements Command.
func (HorizontalRule) Validate() error { return nil }

// ListPrefix prefixes every row the selection touches.
type ListPrefix struct {
	Prefix string
}

// Action implements Command.
func (ListPrefix) Action() string { return ActionListPrefix }

// Validate implements Command.
func (c ListPrefix) Validate() error {
	if c.Prefix == "" {
		return ErrEmptyPrefix
	}
	return nil
}

// Link replaces the selection with an inline link.
// SampleText is used when the selection is blank.
type Link struct {
	SampleText string
	SampleURL  string
}

// Action implements Command.
func (Link) Action() string { return ActionLink }

// Validate implements Command.
func (Link) Validate() error { return nil }

// Image inserts an inline image at the cursor.
// SampleText is used when the selection is blank.
type Image struct {
	SampleText string
	SampleURL  string
}

// Action implements Command.
func (Image) Action() string { return ActionImage }

// Validate implements Command.
func (Image) Validate() error { return nil }

// CodeBlock fences the selection and leaves the caret inside the fence.
type CodeBlock struct{}

// Action implements Command.
func (CodeBlock) Action() string { return ActionCodeBlock }

// Validate implements Command.
func (CodeBlock) Validate() error { return nil }

// FencedBlock fences the selection, or Sample when the selection is blank,
// under a language tag such as "katex" or "mermaid".
type FencedBlock struct {
	Language string
	Sample   string
}

// Action implements Command.
func (FencedBlock) Action() string { return ActionFencedBlock }

// Validate implements Command.
func (FencedBlock) Validate() error { return nil }

// Table replaces the selection with a sample table block.
type Table struct {
	Sample string
}

// Action implements Command.
func (Table) Action() string { return ActionTable }

// Validate implements Command.
func (c Table) Validate() error {
	if c.Sample == "" {
		return ErrEmptySample
	}
	return nil
}

// Token inserts Normalize(Value) at the cursor.
// A nil Normalize inserts Value unchanged. Tokens submitted through a prompt
// carry its key and are dispatched under PromptAction(Prompt).
type Token struct {
	Value     string
	Normalize Normalizer
	Prompt    string
}

// Action implements Command.
func (c Token) Action() string {
	if c.Prompt == "" {
		return ActionToken
	}
	return PromptAction(c.Prompt)
}

// PromptAction returns the action name for tokens submitted through the
// prompt with the given key.
func PromptAction(key string) string {
	return ActionToken + "." + key
}

// Validate implements Command.
func (Token) Validate() error { return nil }

// Text returns the token text to insert.
func (c Token) Text() (string, error) {
	if c.Normalize == nil {
		return c.Value, nil
	}
	return c.Normalize.Normalize(c.Value)
}

package config

import (
	"time"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level"`
}

// EditorConfig holds settings for the buffer the toolbar edits.
type EditorConfig struct {
	// ReadOnly cancels every toolbar command.
	ReadOnly bool `toml:"readOnly" yaml:"readOnly"`

	// ChangeDebounce is the quiet period before change subscribers run.
	ChangeDebounce Duration `toml:"changeDebounce" yaml:"changeDebounce"`

	// RecoverPanics turns handler panics into error results.
	RecoverPanics bool `toml:"recoverPanics" yaml:"recoverPanics"`
}

// ToolbarConfig controls which controls are offered.
type ToolbarConfig struct {
	// Hidden lists control ids left off the toolbar.
	Hidden []string `toml:"hidden" yaml:"hidden"`
}

// HeadingsConfig lists the heading levels offered as "h1".."h6".
type HeadingsConfig struct {
	Levels []int `toml:"levels" yaml:"levels"`
}

// StyleConfig is an inline wrap control such as bold or italic.
type StyleConfig struct {
	ID       string `toml:"id" yaml:"id"`
	Modifier string `toml:"modifier" yaml:"modifier"`
}

// ListConfig is a line prefix control such as a bullet or quote.
type ListConfig struct {
	ID     string `toml:"id" yaml:"id"`
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// ToggleConfig is a control without parameters.
type ToggleConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// SampleConfig is a link or image control with its placeholder text.
type SampleConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Text    string `toml:"text" yaml:"text"`
	URL     string `toml:"url" yaml:"url"`
}

// FenceConfig is a fenced block control. An empty ID disables it.
type FenceConfig struct {
	ID       string `toml:"id" yaml:"id"`
	Language string `toml:"language" yaml:"language"`
	Sample   string `toml:"sample" yaml:"sample"`
}

// TableConfig is the table control.
type TableConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Sample  string `toml:"sample" yaml:"sample"`
}

// Prompt kinds.
const (
	PromptEmoji  = "emoji"
	PromptIcon   = "icon"
	PromptScript = "script"
)

// PromptConfig is a prompted token insert.
type PromptConfig struct {
	Key   string `toml:"key" yaml:"key"`
	Label string `toml:"label" yaml:"label"`

	// Kind selects the normalizer: "emoji", "icon" or "script".
	Kind string `toml:"kind" yaml:"kind"`

	// Script and Function name the Lua normalizer for kind "script".
	// Relative script paths resolve against the config file's directory.
	Script   string `toml:"script" yaml:"script"`
	Function string `toml:"function" yaml:"function"`

	// Timeout bounds one script call. Zero uses the runtime default.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Duration is a time.Duration written as a Go duration string ("300ms").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

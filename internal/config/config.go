package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/config/loader"
)

// DefaultChangeDebounce is the stock quiet period before change subscribers run.
const DefaultChangeDebounce = 300 * time.Millisecond

// Config is the typed toolbar configuration.
type Config struct {
	Logging        LoggingConfig  `toml:"logging" yaml:"logging"`
	Editor         EditorConfig   `toml:"editor" yaml:"editor"`
	Toolbar        ToolbarConfig  `toml:"toolbar" yaml:"toolbar"`
	Headings       HeadingsConfig `toml:"headings" yaml:"headings"`
	Styles         []StyleConfig  `toml:"styles" yaml:"styles"`
	Lists          []ListConfig   `toml:"lists" yaml:"lists"`
	HorizontalRule ToggleConfig   `toml:"horizontalRule" yaml:"horizontalRule"`
	Link           SampleConfig   `toml:"link" yaml:"link"`
	Image          SampleConfig   `toml:"image" yaml:"image"`
	Code           ToggleConfig   `toml:"code" yaml:"code"`
	Math           FenceConfig    `toml:"math" yaml:"math"`
	Diagrams       []FenceConfig  `toml:"diagrams" yaml:"diagrams"`
	Table          TableConfig    `toml:"table" yaml:"table"`
	Prompts        []PromptConfig `toml:"prompts" yaml:"prompts"`

	// dir is the directory of the file the config was loaded from.
	dir string
}

// Default returns the stock toolbar.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Editor: EditorConfig{
			ChangeDebounce: Duration(DefaultChangeDebounce),
			RecoverPanics:  true,
		},
		Headings: HeadingsConfig{Levels: []int{1, 2, 3, 4, 5, 6}},
		Styles: []StyleConfig{
			{ID: "bold", Modifier: "**"},
			{ID: "italic", Modifier: "*"},
			{ID: "strikethrough", Modifier: "~~"},
		},
		Lists: []ListConfig{
			{ID: "ul", Prefix: "- "},
			{ID: "ol", Prefix: "1. "},
			{ID: "task", Prefix: "- [ ] "},
			{ID: "quote", Prefix: "> "},
		},
		HorizontalRule: ToggleConfig{Enabled: true},
		Link:           SampleConfig{Enabled: true, Text: "link", URL: "http://example.com"},
		Image:          SampleConfig{Enabled: true, Text: "image", URL: "http://example.com/image.png"},
		Code:           ToggleConfig{Enabled: true},
		Math:           FenceConfig{ID: "math", Language: "katex", Sample: `E = mc^2`},
		Diagrams: []FenceConfig{
			{ID: "flowchart", Language: "mermaid", Sample: "graph TD\n  A[Start] --> B{Is it?}\n  B -->|Yes| C[OK]\n  B -->|No| D[End]"},
			{ID: "sequence", Language: "mermaid", Sample: "sequenceDiagram\n  Alice->>John: Hello John\n  John-->>Alice: Hi Alice"},
			{ID: "gantt", Language: "mermaid", Sample: "gantt\n  dateFormat YYYY-MM-DD\n  title Plan\n  section Work\n  Draft :a1, 2024-01-01, 3d\n  Review :after a1, 2d"},
		},
		Table: TableConfig{
			Enabled: true,
			Sample:  "| Column 1 | Column 2 |\n| -------- | -------- |\n| Text     | Text     |",
		},
		Prompts: []PromptConfig{
			{Key: "emoji", Label: "Emoji shortcode", Kind: PromptEmoji},
			{Key: "fa", Label: "Font Awesome icon", Kind: PromptIcon},
		},
	}
}

// Load returns the defaults overlaid with the file at path and then with
// MDPLUS_ environment overrides, validated. An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(loader.DefaultFS(), path, loader.NewEnvLoader(loader.EnvPrefix))
}

func load(fs loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	var raw map[string]any
	if path != "" {
		l, err := loader.ForPath(fs, path)
		if err != nil {
			return nil, err
		}
		raw, err = l.Load()
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}

	if env != nil {
		overrides, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		raw = loader.DeepMerge(raw, overrides)
	}

	cfg, err := FromMap(raw)
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg.dir = filepath.Dir(path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap overlays raw settings on the defaults. Maps merge key by key;
// lists replace the default list.
func FromMap(raw map[string]any) (*Config, error) {
	base, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	data, err := toml.Marshal(loader.DeepMerge(base, raw))
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return cfg, nil
}

func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	m := make(map[string]any)
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// Dir returns the directory of the loaded config file, or "".
func (c *Config) Dir() string {
	return c.dir
}

// ScriptPath resolves a prompt's script path against Dir.
func (c *Config) ScriptPath(p PromptConfig) string {
	if p.Script == "" || filepath.IsAbs(p.Script) || c.dir == "" {
		return p.Script
	}
	return filepath.Join(c.dir, p.Script)
}

// Prompt returns the prompt with the given key.
func (c *Config) Prompt(key string) (PromptConfig, bool) {
	for _, p := range c.Prompts {
		if p.Key == key {
			return p, true
		}
	}
	return PromptConfig{}, false
}

// Validate reports every invalid setting. The returned error joins one
// *ValidationError per problem and matches ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any, code ValidationErrorCode, err error) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code, Err: err})
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level, ErrCodeInvalidEnum, nil)
	}

	if c.Editor.ChangeDebounce < 0 {
		add("editor.changeDebounce", "must not be negative", c.Editor.ChangeDebounce, ErrCodeOutOfRange, nil)
	}

	seen := make(map[string]string)
	for _, e := range c.entries() {
		if e.ID == "" {
			add(e.path, "control id is required", e.ID, ErrCodeRequiredMissing, nil)
			continue
		}
		if first, dup := seen[e.ID]; dup {
			add(e.path, "duplicate control id, first defined at "+first, e.ID, ErrCodeDuplicateID, nil)
			continue
		}
		seen[e.ID] = e.path
		if err := e.Command.Validate(); err != nil {
			add(e.path, err.Error(), e.ID, ErrCodeInvalidCommand, err)
		}
	}

	for i, id := range c.Toolbar.Hidden {
		if _, ok := seen[id]; !ok {
			add(indexPath("toolbar.hidden", i), "unknown control id", id, ErrCodeUnknownControl, nil)
		}
	}

	keys := make(map[string]bool)
	for i, p := range c.Prompts {
		path := indexPath("prompts", i)
		if p.Key == "" {
			add(path+".key", "prompt key is required", p.Key, ErrCodeRequiredMissing, nil)
		} else if keys[p.Key] {
			add(path+".key", "duplicate prompt key", p.Key, ErrCodeDuplicateID, nil)
		}
		keys[p.Key] = true

		switch p.Kind {
		case PromptEmoji, PromptIcon:
		case PromptScript:
			if p.Function == "" {
				add(path+".function", "script prompts need a function", p.Function, ErrCodeRequiredMissing, nil)
			}
			if p.Script == "" {
				add(path+".script", "script prompts need a script", p.Script, ErrCodeRequiredMissing, nil)
			} else if _, err := os.Stat(c.ScriptPath(p)); err != nil {
				add(path+".script", "cannot read Lua script", c.ScriptPath(p), ErrCodeScriptMissing, err)
			}
		default:
			add(path+".kind", "must be emoji, icon or script", p.Kind, ErrCodeInvalidEnum, nil)
		}
	}

	return errors.Join(errs...)
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// Control is one toolbar button and the command it dispatches.
type Control struct {
	ID      string
	Command command.Command
}

// Controls enumerates the visible toolbar controls in toolbar order.
func (c *Config) Controls() []Control {
	hidden := make(map[string]bool, len(c.Toolbar.Hidden))
	for _, id := range c.Toolbar.Hidden {
		hidden[id] = true
	}

	entries := c.entries()
	controls := make([]Control, 0, len(entries))
	for _, e := range entries {
		if !hidden[e.ID] {
			controls = append(controls, e.Control)
		}
	}
	return controls
}

// Control returns the visible control with the given id.
func (c *Config) Control(id string) (Control, bool) {
	for _, ctl := range c.Controls() {
		if ctl.ID == id {
			return ctl, true
		}
	}
	return Control{}, false
}

type entry struct {
	Control
	path string
}

// entries lists every configured control with its setting path.
func (c *Config) entries() []entry {
	var out []entry
	push := func(path, id string, cmd command.Command) {
		out = append(out, entry{Control: Control{ID: id, Command: cmd}, path: path})
	}

	for i, level := range c.Headings.Levels {
		push(indexPath("headings.levels", i), "h"+strconv.Itoa(level), command.Heading{Level: level})
	}
	for i, s := range c.Styles {
		push(indexPath("styles", i), s.ID, command.InlineWrap{Modifier: s.Modifier})
	}
	for i, l := range c.Lists {
		push(indexPath("lists", i), l.ID, command.ListPrefix{Prefix: l.Prefix})
	}
	if c.HorizontalRule.Enabled {
		push("horizontalRule", "hr", command.HorizontalRule{})
	}
	if c.Link.Enabled {
		push("link", "link", command.Link{SampleText: c.Link.Text, SampleURL: c.Link.URL})
	}
	if c.Image.Enabled {
		push("image", "image", command.Image{SampleText: c.Image.Text, SampleURL: c.Image.URL})
	}
	if c.Code.Enabled {
		push("code", "code", command.CodeBlock{})
	}
	if c.Math.ID != "" {
		push("math", c.Math.ID, command.FencedBlock{Language: c.Math.Language, Sample: c.Math.Sample})
	}
	for i, d := range c.Diagrams {
		push(indexPath("diagrams", i), d.ID, command.FencedBlock{Language: d.Language, Sample: d.Sample})
	}
	if c.Table.Enabled {
		push("table", "table", command.Table{Sample: c.Table.Sample})
	}

	return out
}

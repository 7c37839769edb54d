// Package main is the entry point for the mdplus toolbar CLI.
//
// mdplus reads a Markdown document, applies toolbar clicks and prompt
// submissions to it in order, and prints the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
	"golang.org/x/term"

	"github.com/dshills/mdplus/internal/app"
	"github.com/dshills/mdplus/internal/config"
	"github.com/dshills/mdplus/internal/config/loader"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/engine/buffer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// step is one toolbar action given on the command line.
type step struct {
	kind  string // "click" or "prompt"
	id    string
	value string
}

// stepList collects -click and -prompt flags in command line order.
type stepList struct {
	steps *[]step
	kind  string
}

func (s stepList) String() string { return "" }

func (s stepList) Set(v string) error {
	st := step{kind: s.kind, id: v}
	if s.kind == "prompt" {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("prompt must be key=value, got %q", v)
		}
		st.id, st.value = key, value
	}
	*s.steps = append(*s.steps, st)
	return nil
}

type options struct {
	configPath string
	cursor     string
	selection  string
	logLevel   string
	readOnly   bool
	jsonOut    bool
	list       bool
	version    bool
	steps      []step
	file       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("mdplus", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.cursor, "cursor", "", "Cursor position as ROW:COL (0-based)")
	fs.StringVar(&opts.selection, "select", "", "Selection as ROW:COL-ROW:COL (anchor-head)")
	fs.Var(stepList{&opts.steps, "click"}, "click", "Activate a toolbar control (repeatable)")
	fs.Var(stepList{&opts.steps, "prompt"}, "prompt", "Submit a prompt as key=value (repeatable)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.readOnly, "readonly", false, "Cancel every command")
	fs.BoolVar(&opts.jsonOut, "json", false, "Print a JSON report instead of the document")
	fs.BoolVar(&opts.list, "list", false, "List controls and prompts and exit")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "mdplus - Markdown toolbar commands\n\n")
		fmt.Fprintf(stderr, "Usage: mdplus [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  mdplus -select 0:0-0:5 -click bold notes.md\n")
		fmt.Fprintf(stderr, "  echo Title | mdplus -click h1\n")
		fmt.Fprintf(stderr, "  mdplus -cursor 2:0 -prompt emoji=smile -json notes.md\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
	}

	if fs.NArg() > 1 {
		return nil, errors.New("at most one file may be given")
	}
	opts.file = fs.Arg(0)
	if opts.configPath == "" {
		opts.configPath = os.Getenv(loader.EnvPrefix + "CONFIG")
	}

	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "mdplus %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.readOnly {
		cfg.Editor.ReadOnly = true
	}
	// Subscribers are not waiting in a one-shot run.
	cfg.Editor.ChangeDebounce = 0

	text, err := readDocument(opts.file, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Output: stderr,
		Prefix: "mdplus",
	})

	toolbar, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: opts.configPath,
		Text:       text,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer toolbar.Close()

	if opts.list {
		return list(toolbar, opts.jsonOut, stdout)
	}

	if err := placeCursor(toolbar, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	results := make([]handler.Result, len(opts.steps))
	failed := false
	for i, st := range opts.steps {
		if st.kind == "click" {
			results[i] = toolbar.Click(st.id)
		} else {
			results[i] = toolbar.Submit(st.id, st.value)
		}
		if results[i].IsError() {
			failed = true
			logger.Error("%s %s: %v", st.kind, st.id, results[i].Error)
		}
	}

	if opts.jsonOut {
		out, err := report(toolbar, opts.steps, results)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, out)
	} else {
		fmt.Fprint(stdout, toolbar.Document().Text())
	}

	if failed {
		return 1
	}
	return 0
}

// readDocument reads file, or stdin when it is piped, or returns "".
func readDocument(file string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	}

	if stdin == nil {
		return "", nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func placeCursor(toolbar *app.Toolbar, opts *options) error {
	doc := toolbar.Document()

	if opts.cursor != "" {
		p, err := parsePosition(opts.cursor)
		if err != nil {
			return fmt.Errorf("-cursor: %w", err)
		}
		doc.SetCursor(p)
	}

	if opts.selection != "" {
		anchor, head, ok := strings.Cut(opts.selection, "-")
		if !ok {
			return fmt.Errorf("-select: want ROW:COL-ROW:COL, got %q", opts.selection)
		}
		a, err := parsePosition(anchor)
		if err != nil {
			return fmt.Errorf("-select: %w", err)
		}
		h, err := parsePosition(head)
		if err != nil {
			return fmt.Errorf("-select: %w", err)
		}
		doc.SetSelection(buffer.NewSelection(a, h))
	}

	return nil
}

// parsePosition parses "ROW:COL".
func parsePosition(s string) (buffer.Position, error) {
	r, c, ok := strings.Cut(s, ":")
	if !ok {
		return buffer.Position{}, fmt.Errorf("want ROW:COL, got %q", s)
	}
	row, err := strconv.Atoi(r)
	if err != nil || row < 0 {
		return buffer.Position{}, fmt.Errorf("invalid row %q", r)
	}
	col, err := strconv.Atoi(c)
	if err != nil || col < 0 {
		return buffer.Position{}, fmt.Errorf("invalid column %q", c)
	}
	return buffer.Position{Row: row, Column: col}, nil
}

func list(toolbar *app.Toolbar, jsonOut bool, stdout io.Writer) int {
	if !jsonOut {
		for _, c := range toolbar.Controls() {
			fmt.Fprintf(stdout, "%-14s %s\n", c.ID, c.Command.Action())
		}
		for _, p := range toolbar.Prompts() {
			fmt.Fprintf(stdout, "%-14s prompt: %s\n", p.Key, p.Label)
		}
		return 0
	}

	out := `{"controls":[],"prompts":[]}`
	var err error
	for i, c := range toolbar.Controls() {
		out, err = sjson.Set(out, fmt.Sprintf("controls.%d", i), map[string]string{
			"id":     c.ID,
			"action": c.Command.Action(),
		})
		if err != nil {
			return 1
		}
	}
	for i, p := range toolbar.Prompts() {
		out, err = sjson.Set(out, fmt.Sprintf("prompts.%d", i), map[string]string{
			"key":   p.Key,
			"label": p.Label,
		})
		if err != nil {
			return 1
		}
	}
	fmt.Fprintln(stdout, out)
	return 0
}

// field is one sjson path and its value.
type field struct {
	path  string
	value any
}

// report builds the -json output document.
func report(toolbar *app.Toolbar, steps []step, results []handler.Result) (string, error) {
	doc := toolbar.Document()
	cursor := doc.Cursor()
	snap := toolbar.Dispatcher().Metrics().Snapshot()

	fields := []field{
		{"documentId", doc.ID().String()},
		{"revision", doc.Revision()},
		{"text", doc.Text()},
		{"cursor.row", cursor.Row},
		{"cursor.column", cursor.Column},
		{"steps", []any{}},
		{"metrics.dispatches", snap.TotalDispatches},
		{"metrics.errors", snap.TotalErrors},
		{"metrics.noops", snap.TotalNoOps},
		{"metrics.cancelled", snap.TotalCancelled},
	}

	for i, st := range steps {
		r := results[i]
		prefix := fmt.Sprintf("steps.%d.", i)
		fields = append(fields,
			field{prefix + "kind", st.kind},
			field{prefix + "id", st.id},
			field{prefix + "status", r.Status.String()},
		)
		if r.Error != nil {
			fields = append(fields, field{prefix + "error", r.Error.Error()})
		}
		if r.Message != "" {
			fields = append(fields, field{prefix + "message", r.Message})
		}
	}

	out := "{}"
	for _, f := range fields {
		var err error
		if out, err = sjson.Set(out, f.path, f.value); err != nil {
			return "", fmt.Errorf("building report: %w", err)
		}
	}
	return out, nil
}

// Package app wires the Markdown toolbar together: configuration, the
// document buffer, the command dispatcher, prompts and change notification.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/mdplus/internal/command"
	"github.com/dshills/mdplus/internal/config"
	"github.com/dshills/mdplus/internal/config/watcher"
	"github.com/dshills/mdplus/internal/dispatcher"
	"github.com/dshills/mdplus/internal/dispatcher/execctx"
	"github.com/dshills/mdplus/internal/dispatcher/handler"
	"github.com/dshills/mdplus/internal/dispatcher/handlers/markdown"
	"github.com/dshills/mdplus/internal/engine/document"
	"github.com/dshills/mdplus/internal/plugin/lua"
	"github.com/dshills/mdplus/internal/prompt"
)

// Options configures the toolbar.
type Options struct {
	// Config is the toolbar configuration. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is the file Config was loaded from, used by WatchConfig.
	ConfigPath string

	// Text is the initial document content.
	Text string

	// Logger receives toolbar logs. Nil logs to stderr at the configured level.
	Logger *Logger
}

// Toolbar is a set of formatting controls bound to one document.
type Toolbar struct {
	mu sync.RWMutex

	cfg        *config.Config
	configPath string

	doc        *document.Document
	dispatcher *dispatcher.Dispatcher

	controls []config.Control
	byID     map[string]config.Control
	prompts  []*prompt.Prompt
	byKey    map[string]*prompt.Prompt
	scripts  []*lua.Normalizer

	notifier    *ChangeNotifier
	unsubscribe func()
	watcher     *watcher.Watcher

	logger *Logger
	closed bool
}

// New creates a toolbar for a new document holding opts.Text.
func New(opts Options) (*Toolbar, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewOperationError("validate", "config", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(DefaultLoggerConfig())
		logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}

	t := &Toolbar{
		configPath: opts.ConfigPath,
		doc:        document.New(opts.Text),
		logger:     logger,
		notifier:   NewChangeNotifier(cfg.Editor.ChangeDebounce.Std()),
	}

	t.dispatcher = dispatcher.New(dispatcher.DefaultConfig().
		WithMetrics().
		WithPanicRecovery(cfg.Editor.RecoverPanics).
		WithReadOnly(cfg.Editor.ReadOnly))
	t.dispatcher.SetBuffer(t.doc)
	t.dispatcher.RegisterNamespace(command.Namespace, markdown.NewHandler())
	t.registerHooks()

	if err := t.apply(cfg); err != nil {
		return nil, err
	}

	t.unsubscribe = t.doc.OnChange(t.notifier.Notify)

	t.logger.WithComponent("toolbar").Debug("ready with %d controls and %d prompts", len(t.controls), len(t.prompts))
	return t, nil
}

func (t *Toolbar) registerHooks() {
	t.dispatcher.RegisterPreHook(dispatcher.NewReadOnlyHook())

	logHook := dispatcher.NewLoggingHook(t.logger.WithComponent("dispatcher").Debug)
	t.dispatcher.RegisterPreHook(logHook)
	t.dispatcher.RegisterPostHook(logHook)

	errLog := t.logger.WithComponent("dispatcher")
	t.dispatcher.RegisterPostHook(dispatcher.NewPostDispatchFunc("errors", dispatcher.PriorityUser,
		func(cmd command.Command, _ *execctx.ExecutionContext, result *handler.Result) {
			if !result.IsError() {
				return
			}
			errLog.Warn("%s failed: %v", cmd.Action(), result.Error)
			if stack := result.GetDataString("stack"); stack != "" {
				errLog.Debug("%s panic stack:\n%s", cmd.Action(), stack)
			}
		}))
}

// apply installs cfg's controls and prompts. Lua prompts are loaded before
// anything is swapped, so a failure leaves the toolbar unchanged.
func (t *Toolbar) apply(cfg *config.Config) error {
	prompts, scripts, err := t.buildPrompts(cfg)
	if err != nil {
		return err
	}

	controls := cfg.Controls()
	byID := make(map[string]config.Control, len(controls))
	for _, c := range controls {
		byID[c.ID] = c
	}
	byKey := make(map[string]*prompt.Prompt, len(prompts))
	for _, p := range prompts {
		byKey[p.Key] = p
	}

	t.mu.Lock()
	old := t.scripts
	t.cfg = cfg
	t.controls, t.byID = controls, byID
	t.prompts, t.byKey = prompts, byKey
	t.scripts = scripts
	t.mu.Unlock()

	t.registerPrompts(prompts)
	t.dispatcher.SetReadOnly(cfg.Editor.ReadOnly)
	t.notifier.SetDelay(cfg.Editor.ChangeDebounce.Std())
	closeScripts(old)
	return nil
}

// registerPrompts installs each prompt as the handler for its token action
// and drops the actions of prompts no longer configured.
func (t *Toolbar) registerPrompts(prompts []*prompt.Prompt) {
	active := make(map[string]bool, len(prompts))
	for _, p := range prompts {
		p.Register(t.dispatcher)
		active[p.Action()] = true
	}
	for _, name := range t.dispatcher.Registry().List(command.ActionToken + ".") {
		if !active[name] {
			t.dispatcher.UnregisterHandler(name)
		}
	}
}

func (t *Toolbar) buildPrompts(cfg *config.Config) ([]*prompt.Prompt, []*lua.Normalizer, error) {
	var (
		prompts []*prompt.Prompt
		scripts []*lua.Normalizer
	)
	luaLog := t.logger.WithComponent("lua")

	for _, pc := range cfg.Prompts {
		var normalize command.Normalizer
		switch pc.Kind {
		case config.PromptEmoji:
			normalize = command.Emoji
		case config.PromptIcon:
			normalize = command.Icon
		case config.PromptScript:
			opts := []lua.StateOption{
				lua.WithPrintFunc(func(s string) { luaLog.Debug("%s: %s", pc.Key, s) }),
			}
			if pc.Timeout > 0 {
				opts = append(opts, lua.WithExecutionTimeout(pc.Timeout.Std()))
			}
			n, err := lua.LoadNormalizer(cfg.ScriptPath(pc), pc.Function, opts...)
			if err != nil {
				closeScripts(scripts)
				return nil, nil, NewOperationError("load prompt", pc.Key, err)
			}
			scripts = append(scripts, n)
			normalize = n
		default:
			closeScripts(scripts)
			return nil, nil, NewOperationError("load prompt", pc.Key, fmt.Errorf("unknown kind %q", pc.Kind))
		}

		label := pc.Label
		if label == "" {
			label = pc.Key
		}
		prompts = append(prompts, prompt.New(pc.Key, label, normalize))
	}

	return prompts, scripts, nil
}

func closeScripts(scripts []*lua.Normalizer) {
	for _, n := range scripts {
		_ = n.Close()
	}
}

// Click activates the control with the given id.
func (t *Toolbar) Click(id string) handler.Result {
	t.mu.RLock()
	closed := t.closed
	ctl, ok := t.byID[id]
	t.mu.RUnlock()

	switch {
	case closed:
		return handler.Error(NewOperationError("click", id, ErrClosed))
	case !ok:
		return handler.Error(NewOperationError("click", id, ErrUnknownControl))
	}
	return t.dispatcher.Dispatch(ctl.Command)
}

// Submit completes the prompt with the given key using value.
// Blank values are a no-op.
func (t *Toolbar) Submit(key, value string) handler.Result {
	t.mu.RLock()
	closed := t.closed
	p, ok := t.byKey[key]
	t.mu.RUnlock()

	switch {
	case closed:
		return handler.Error(NewOperationError("submit", key, ErrClosed))
	case !ok:
		return handler.Error(NewOperationError("submit", key, ErrUnknownPrompt))
	}
	return p.Submit(t.dispatcher, value)
}

// Document returns the document the toolbar edits.
func (t *Toolbar) Document() *document.Document {
	return t.doc
}

// Dispatcher returns the command dispatcher.
func (t *Toolbar) Dispatcher() *dispatcher.Dispatcher {
	return t.dispatcher
}

// Config returns the active configuration.
func (t *Toolbar) Config() *config.Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cfg
}

// Controls returns the toolbar controls in display order.
func (t *Toolbar) Controls() []config.Control {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]config.Control(nil), t.controls...)
}

// Prompts returns the configured prompts in display order.
func (t *Toolbar) Prompts() []*prompt.Prompt {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*prompt.Prompt(nil), t.prompts...)
}

// Subscribe registers fn for debounced document change notifications.
func (t *Toolbar) Subscribe(fn func(Change)) (unsubscribe func()) {
	return t.notifier.Subscribe(fn)
}

// Reload validates cfg and swaps it in. Panic recovery keeps the setting
// the toolbar was created with.
func (t *Toolbar) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return NewOperationError("reload", "config", err)
	}
	if err := t.apply(cfg); err != nil {
		return err
	}
	t.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	t.logger.WithComponent("toolbar").Info("configuration reloaded")
	return nil
}

// WatchConfig reloads the configuration whenever its file changes, until
// ctx is done or the toolbar is closed.
func (t *Toolbar) WatchConfig(ctx context.Context) error {
	if t.configPath == "" {
		return ErrNoConfigPath
	}

	log := t.logger.WithComponent("config").WithField("path", t.configPath)
	w, err := config.Watch(ctx, t.configPath, func(cfg *config.Config, err error) {
		if err == nil {
			err = t.Reload(cfg)
		}
		if err != nil {
			log.Warn("reload failed: %v", err)
		}
	})
	if err != nil {
		return NewOperationError("watch", t.configPath, err)
	}

	t.mu.Lock()
	prev := t.watcher
	t.watcher = w
	t.mu.Unlock()
	if prev != nil {
		_ = prev.Stop()
	}
	return nil
}

// Close stops watching, drops pending change notifications and releases
// the Lua states.
func (t *Toolbar) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	w := t.watcher
	scripts := t.scripts
	t.watcher, t.scripts = nil, nil
	t.mu.Unlock()

	var err error
	if w != nil {
		err = w.Stop()
	}
	t.unsubscribe()
	t.notifier.Close()
	closeScripts(scripts)
	return err
}

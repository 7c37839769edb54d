package config

import (
	"context"

	"github.com/dshills/mdplus/internal/config/watcher"
)

// Watch reloads the config file at path after every settled change and
// hands the result to fn, until ctx is done or the returned watcher is
// stopped. A failed reload calls fn with a nil config and the error.
func Watch(ctx context.Context, path string, fn func(*Config, error)) (*watcher.Watcher, error) {
	w, err := watcher.New()
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(ev watcher.Event) {
		switch ev.Op {
		case watcher.OpRemove, watcher.OpRename:
			// wait for the file to come back
			return
		}
		fn(Load(path))
	})
	w.Start(ctx)

	return w, nil
}

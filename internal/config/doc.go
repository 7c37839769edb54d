// Package config provides the typed toolbar configuration for mdplus.
//
// A Config describes which toolbar controls exist and what each one
// dispatches: heading levels, inline styles, list prefixes, link and image
// samples, code, math and diagram fences, the table sample, and the
// prompted token inserts.
//
// # Layers
//
// Settings are merged with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← MDPLUS_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Default()
//	└─────────────────────────────┘
//
// Tables merge key by key. Lists such as styles or prompts replace the
// list of the layer below.
//
// # Sub-packages
//
//   - loader: file and environment loading into maps
//   - watcher: fsnotify based file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load("mdplus.toml")
//	if err != nil {
//	    return err
//	}
//	for _, ctl := range cfg.Controls() {
//	    fmt.Println(ctl.ID, ctl.Command.Action())
//	}
//
// Validation errors are joined; each one is a *ValidationError:
//
//	var verr *config.ValidationError
//	if errors.As(err, &verr) {
//	    log.Printf("%s: %s", verr.Path, verr.Code)
//	}
package config

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-window-recorder/internal/util"
)

// Watcher reloads the configuration file when it changes on disk and
// publishes complete replacement Config values. Consumers apply a published
// value on their own goroutine; nothing is mutated in place.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	updates chan Config
}

// NewWatcher starts watching the directory containing path. Watching the
// directory rather than the file survives editors that replace the file on
// save.
func NewWatcher(path string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		path:    abs,
		updates: make(chan Config, 1),
	}

	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(w.path)
			if err != nil {
				util.LogWarnf("ignoring config change, reload failed: %v", err)
				continue
			}

			// Keep only the newest pending update
			select {
			case w.updates <- cfg:
			default:
				select {
				case <-w.updates:
				default:
				}
				w.updates <- cfg
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("config watcher error: " + err.Error())
		}
	}
}

// Updates returns the channel of reloaded configurations.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

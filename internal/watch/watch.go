// Package watch reports edits to configuration files so a running
// program can reload them.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/boxsim/internal/config"
)

// Debounce is the quiet period after the last event before a change is
// reported. A truncate followed by a write arrives as a single event.
const Debounce = 100 * time.Millisecond

// Watcher watches the directories of a set of yaml files and sends the
// path of each file that changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches files. Editors often replace a file instead of
// writing it, so the parent directory is watched and events are filtered
// by name.
func NewWatcher(files ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		dirs[dir] = true
	}

	watcher := &Watcher{
		watcher: w,
		files:   watched,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the
// background loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	pending := make(map[string]bool)
	timer := time.NewTimer(Debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] || !isConfigFile(name) {
				continue
			}
			pending[name] = true
			timer.Reset(Debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			for name := range pending {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			clear(pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Configs turns file events into reloaded configurations. Each reload
// reads the changed file over a copy of base. Both channels close when
// the watcher does.
func Configs(w *Watcher, base *config.Config) (<-chan *config.Config, <-chan error) {
	configs := make(chan *config.Config, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(configs)
		defer close(errs)

		events, watchErrs := w.Events, w.Errors
		for events != nil || watchErrs != nil {
			select {
			case path, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				cfg := base.Clone()
				if err := config.LoadInto(path, cfg); err != nil {
					errs <- err
					continue
				}
				if err := cfg.Validate(); err != nil {
					errs <- err
					continue
				}
				configs <- cfg
			case err, ok := <-watchErrs:
				if !ok {
					watchErrs = nil
					continue
				}
				errs <- err
			}
		}
	}()
	return configs, errs
}

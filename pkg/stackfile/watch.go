package stackfile

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher holds the latest definition loaded from a stackfile and reloads it
// when the file changes on disk.
type Watcher struct {
	path     string
	logger   *log.Logger
	load     func(string) (*Definition, error)
	reloadMu sync.Mutex // serializes Reload so current never goes backwards
	mu       sync.RWMutex
	current  *Definition
	onChange []func(*Definition)
}

// NewWatcher performs the initial load of path. A nil logger uses
// log.Default().
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	def, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, logger: logger, load: Load, current: def}, nil
}

// Current returns the most recently loaded definition.
func (w *Watcher) Current() *Definition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers fn to run after every successful reload.
func (w *Watcher) OnChange(fn func(*Definition)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Reload re-reads the file immediately. On error the previous definition is
// kept and no callbacks run. Concurrent calls run one at a time, so Current
// reflects the reload that finished last. Callbacks must not call Reload.
func (w *Watcher) Reload() (*Definition, error) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	def, err := w.load(w.path)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.current = def
	callbacks := make([]func(*Definition), len(w.onChange))
	copy(callbacks, w.onChange)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(def)
	}
	return def, nil
}

// Watch reloads the stackfile whenever it is written, created or renamed
// into place. The parent directory is watched so editors that save by
// replacing the file are picked up. Call the returned stop function to
// release the watcher.
func (w *Watcher) Watch() (stop func(), err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("stackfile watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("stackfile watcher add %s: %w", dir, err)
	}
	target := filepath.Clean(w.path)

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		defer fw.Close()
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if _, err := w.Reload(); err != nil {
					w.logger.Warn("stackfile reload failed, keeping previous definition", "path", w.path, "err", err)
					continue
				}
				w.logger.Debug("stackfile reloaded", "path", w.path)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("stackfile watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}, nil
}

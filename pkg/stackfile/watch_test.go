package stackfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	writeFile(t, path, "layers:\n  - name: a\n")

	w, err := NewWatcher(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	if got := len(w.Current().Layers); got != 1 {
		t.Fatalf("initial layers = %d, want 1", got)
	}

	var seen *Definition
	w.OnChange(func(d *Definition) { seen = d })

	writeFile(t, path, "layers:\n  - name: a\n  - name: b\n    above: [a]\n")
	if _, err := w.Reload(); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if seen == nil || len(seen.Layers) != 2 {
		t.Errorf("OnChange saw %+v, want 2 layers", seen)
	}
	if got := len(w.Current().Layers); got != 2 {
		t.Errorf("Current() layers = %d, want 2", got)
	}

	// A broken file keeps the previous definition.
	writeFile(t, path, "layers: [")
	if _, err := w.Reload(); err == nil {
		t.Error("Reload() of broken file error = nil")
	}
	if got := len(w.Current().Layers); got != 2 {
		t.Errorf("Current() after failed reload = %d layers, want 2", got)
	}
}

func TestWatcherReloadSerialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	writeFile(t, path, "layers:\n  - name: a\n")
	w, err := NewWatcher(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}

	older := &Definition{Layers: []LayerDef{{Name: "older"}}}
	newer := &Definition{Layers: []LayerDef{{Name: "newer"}}}
	release := make(chan struct{})
	started := make(chan string, 2)
	calls := 0
	w.load = func(string) (*Definition, error) {
		calls++
		if calls == 1 {
			started <- "first"
			<-release
			return older, nil
		}
		started <- "second"
		return newer, nil
	}

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		w.Reload()
	}()
	if got := <-started; got != "first" {
		t.Fatalf("started %q, want first", got)
	}

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		w.Reload()
	}()

	select {
	case <-started:
		t.Fatal("second Reload loaded while the first was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-firstDone
	<-started
	<-secondDone

	if got := w.Current(); got != newer {
		t.Errorf("Current() = %+v, want the definition from the last reload", got)
	}
}

func TestWatcherMissingFile(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope.toml"), nil); err == nil {
		t.Error("NewWatcher() error = nil for missing file")
	}
}

func TestWatcherWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.json")
	writeFile(t, path, `{"layers":[{"name":"a"}]}`)

	w, err := NewWatcher(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}

	changed := make(chan *Definition, 8)
	w.OnChange(func(d *Definition) { changed <- d })

	stop, err := w.Watch()
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer stop()

	writeFile(t, path, `{"layers":[{"name":"a"},{"name":"b","above":["a"]}]}`)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case d := <-changed:
			if len(d.Layers) == 2 {
				stop()
				stop() // idempotent
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

package api

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of writes terraform makes when persisting state.
const DefaultDebounce = 300 * time.Millisecond

// StateWatcher calls OnChange after the watched terraform state file is written.
type StateWatcher struct {
	watcher   *fsnotify.Watcher
	statePath string
	onChange  func()
	debounce  time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}

	// runMu serializes callbacks; running tracks the ones Close must wait for.
	runMu   sync.Mutex
	running sync.WaitGroup
}

// NewStateWatcher starts watching statePath. fsnotify watches directories, so the
// file does not need to exist yet.
func NewStateWatcher(statePath string, debounce time.Duration, onChange func()) (*StateWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(statePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	sw := &StateWatcher{
		watcher:   watcher,
		statePath: filepath.Clean(statePath),
		onChange:  onChange,
		debounce:  debounce,
		done:      make(chan struct{}),
	}
	go sw.watch()

	return sw, nil
}

func (sw *StateWatcher) watch() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != sw.statePath {
				continue
			}
			slog.Info("Terraform state change detected", "file", event.Name, "op", event.Op)
			sw.schedule()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("State watcher error", "error", err)
		}
	}
}

// schedule (re)arms the debounce timer.
func (sw *StateWatcher) schedule() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.closed {
		return
	}
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(sw.debounce, sw.fire)
}

// fire runs the callback unless the watcher has closed. A timer that fires while
// an earlier callback is still running waits for it.
func (sw *StateWatcher) fire() {
	sw.mu.Lock()
	if sw.closed {
		sw.mu.Unlock()
		return
	}
	sw.running.Add(1)
	sw.mu.Unlock()
	defer sw.running.Done()

	sw.runMu.Lock()
	defer sw.runMu.Unlock()
	sw.onChange()
}

// Close stops watching, cancels any pending callback and waits for running ones.
func (sw *StateWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done

	sw.mu.Lock()
	sw.closed = true
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.mu.Unlock()

	sw.running.Wait()
	return err
}

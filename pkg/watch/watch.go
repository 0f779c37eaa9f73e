// Package watch reports changes to source files so the CLI can rebuild.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls onChange once per settled modification of a watched file.
type Watcher struct {
	backend

	mu       sync.Mutex
	paths    map[string]bool
	timers   map[string]*time.Timer
	onChange func(path string)
	delay    time.Duration
}

func New(onChange func(path string), debounce time.Duration) (*Watcher, error) {
	w := &Watcher{
		paths:    make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		onChange: onChange,
		delay:    debounce,
	}
	if err := w.backend.init(); err != nil {
		return nil, err
	}
	return w, nil
}

// Add starts watching path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.backend.add(abs); err != nil {
		return err
	}
	w.mu.Lock()
	w.paths[abs] = true
	w.mu.Unlock()
	return nil
}

// Run delivers change notifications until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	err := w.backend.run(ctx, w.changed)
	w.mu.Lock()
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
	w.mu.Unlock()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (w *Watcher) Close() error { return w.backend.close() }

func (w *Watcher) watched(abs string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paths[abs]
}

func (w *Watcher) changed(abs string) {
	if !w.watched(abs) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[abs]; ok {
		t.Stop()
	}
	w.timers[abs] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.timers, abs)
		w.mu.Unlock()
		w.onChange(abs)
	})
}

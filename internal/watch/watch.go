// Package watch reports changes to a single file, such as a layout
// description the query service serves from.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long events must settle before callbacks run.
const DefaultDelay = 100 * time.Millisecond

// File watches one file. Editors often replace a file instead of writing it
// in place, so the containing directory is watched and events are filtered
// by base name.
type File struct {
	path     string
	delay    time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	onChange []func(path string)
	timer    *time.Timer
	ctx      context.Context
	cancel   context.CancelFunc
	errChan  chan error
}

// New creates a watcher for path. A delay <= 0 uses DefaultDelay.
func New(path string, delay time.Duration) *File {
	if delay <= 0 {
		delay = DefaultDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &File{
		path:    path,
		delay:   delay,
		errChan: make(chan error, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// OnChange registers a callback invoked after the file was written or
// recreated. Callbacks run on a timer goroutine, one change at a time.
func (f *File) OnChange(cb func(path string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = append(f.onChange, cb)
}

// Start begins watching.
func (f *File) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	f.watcher = watcher

	go f.loop()
	return nil
}

func (f *File) loop() {
	base := filepath.Base(f.path)
	for {
		select {
		case <-f.ctx.Done():
			return

		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			f.schedule()

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			select {
			case f.errChan <- err:
			default:
			}
		}
	}
}

func (f *File) schedule() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.delay, f.fire)
}

func (f *File) fire() {
	if f.ctx.Err() != nil {
		return
	}
	f.mu.Lock()
	cbs := append([]func(string){}, f.onChange...)
	f.mu.Unlock()
	for _, cb := range cbs {
		cb(f.path)
	}
}

// Errors returns a channel for receiving errors that occur during watching.
func (f *File) Errors() <-chan error {
	return f.errChan
}

// Close stops the watcher and releases resources.
func (f *File) Close() error {
	f.cancel()
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()
	if f.watcher != nil {
		return f.watcher.Close()
	}
	return nil
}

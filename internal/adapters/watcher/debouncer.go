package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the default time window for coalescing manifest
// change events. Editors often produce several events per save.
const DefaultDebounceWindow = 250 * time.Millisecond

// Debouncer coalesces rapid change events into single callback firings.
type Debouncer struct {
	mu       sync.Mutex
	pending  int
	timer    *time.Timer
	window   time.Duration
	callback func()
}

// NewDebouncer creates a debouncer with the given window and callback.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Add records a change event and (re)starts the debounce window.
func (d *Debouncer) Add() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending++
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.pending == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}
	d.pending = 0
	d.timer = nil
	d.mu.Unlock()

	d.callback()
}

// Flush fires immediately if events are pending. Used on shutdown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	hadPending := d.pending > 0
	d.pending = 0
	d.mu.Unlock()

	if hadPending {
		d.callback()
	}
}

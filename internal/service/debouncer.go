package service

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending call per key. Scheduling a key again
// replaces its pending call and restarts the delay.
type Debouncer struct {
	mu      sync.Mutex
	pending map[string]*debounced
}

type debounced struct {
	timer *time.Timer
	fn    func()
}

func NewDebouncer() *Debouncer {
	return &Debouncer{pending: make(map[string]*debounced)}
}

func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	call := &debounced{fn: fn}
	call.timer = time.AfterFunc(delay, func() { d.fire(key, call) })
	d.pending[key] = call
}

func (d *Debouncer) fire(key string, call *debounced) {
	d.mu.Lock()
	if d.pending[key] != call {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()
	call.fn()
}

// Cancel drops the pending call for key and reports whether there was one.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	call, ok := d.pending[key]
	if !ok {
		return false
	}
	call.timer.Stop()
	delete(d.pending, key)
	return true
}

// Flush runs every pending call now, on the caller's goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	calls := make([]*debounced, 0, len(d.pending))
	for key, call := range d.pending {
		// a timer that already fired finds its entry gone and skips the call
		call.timer.Stop()
		calls = append(calls, call)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, call := range calls {
		call.fn()
	}
}

func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

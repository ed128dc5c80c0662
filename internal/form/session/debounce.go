// internal/form/session/debounce.go
package session

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of writes per key into one trailing call.
// Every Schedule within the window replaces the pending function and
// restarts the timer, so the last value always wins and the settled value
// is guaranteed to run, at the latest via Flush.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]func()
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		timers:  map[string]*time.Timer{},
		pending: map[string]func(){},
	}
}

// Schedule queues fn to run after the trailing window, replacing any
// pending fn for the same key.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[key] = fn
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.window, func() {
		d.fire(key)
	})
}

func (d *Debouncer) fire(key string) {
	d.mu.Lock()
	fn := d.pending[key]
	delete(d.pending, key)
	delete(d.timers, key)
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs any pending fn for the key immediately.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.mu.Unlock()
	d.fire(key)
}

// Cancel drops any pending fn for the key without running it.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	delete(d.pending, key)
	delete(d.timers, key)
}

// FlushAll drains every pending write, for shutdown.
func (d *Debouncer) FlushAll() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	for _, t := range d.timers {
		t.Stop()
	}
	d.mu.Unlock()

	for _, k := range keys {
		d.fire(k)
	}
}

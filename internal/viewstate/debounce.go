// Package viewstate holds the stateful glue between user input and the
// data access layer: debounced search, grid query state with stale-response
// protection, and the dashboard's parallel load.
package viewstate

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet window applied to search input.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid updates into a single delivery once the input
// has been quiet for the window. Only the latest value is ever delivered.
type Debouncer[T any] struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	out     chan T
	stopped bool
}

// NewDebouncer builds a debouncer. A window <= 0 selects DefaultDebounce.
func NewDebouncer[T any](window time.Duration) *Debouncer[T] {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer[T]{window: window, out: make(chan T, 1)}
}

// Set records a new value and restarts the quiet window.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.stopped {
			return
		}
		// Replace any undelivered value so a slow consumer still sees
		// the newest one.
		select {
		case <-d.out:
		default:
		}
		d.out <- v
	})
}

// C delivers settled values.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop cancels any pending delivery. Further Set calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

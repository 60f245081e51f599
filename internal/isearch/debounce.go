package isearch

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet window used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer reports a value only after it stopped changing for a quiet window.
type Debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	onSettle func(string)

	timer      *time.Timer
	gen        uint64
	pending    string
	hasPending bool
	firing     bool
	settled    string
	hasSettled bool
	stopped    bool
}

// NewDebouncer creates a debouncer. onSettle runs on the timer goroutine.
func NewDebouncer(window time.Duration, onSettle func(string)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window, onSettle: onSettle}
}

// Window returns the quiet window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Push records a new raw value and restarts the quiet window.
func (d *Debouncer) Push(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	d.pending = raw
	d.hasPending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// Flush settles the pending value immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.mu.Unlock()
	d.fire(gen)
}

// Cancel drops the pending value without settling it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.hasPending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Stop cancels any pending value and disables the debouncer for good.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.hasPending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a value is waiting to settle or being delivered.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending || d.firing
}

// Settled returns the last settled value. ok is false before the first
// settle, which is distinct from a settled empty string.
func (d *Debouncer) Settled() (value string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled, d.hasSettled
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || !d.hasPending {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.hasPending = false
	d.settled, d.hasSettled = value, true
	d.firing = true
	fn := d.onSettle
	d.mu.Unlock()

	if fn != nil {
		fn(value)
	}

	d.mu.Lock()
	d.firing = false
	d.mu.Unlock()
}

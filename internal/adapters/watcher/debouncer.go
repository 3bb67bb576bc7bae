package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// State is the regeneration state of a Debouncer.
type State int

const (
	// StateIdle means no changes are waiting.
	StateIdle State = iota
	// StatePending means changes arrived and the quiet window is running.
	StatePending
	// StateRegenerating means the callback is running.
	StateRegenerating
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateRegenerating:
		return "regenerating"
	default:
		return "unknown"
	}
}

// Debouncer coalesces rapid file system events into single regeneration
// passes. At most one callback runs at a time; events that arrive while it
// runs are batched into exactly one follow-up pass.
type Debouncer struct {
	mu       sync.Mutex
	state    State
	dirty    bool
	stopped  bool
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
	running  sync.WaitGroup
}

// NewDebouncer creates a new debouncer with the given quiet window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[unique.Make(path)] = struct{}{}

	if d.state == StateRegenerating {
		d.dirty = true
		return
	}

	d.state = StatePending
	d.arm()
}

// State returns the current state.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// arm restarts the quiet window. Callers must hold mu.
func (d *Debouncer) arm() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the quiet window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil

	// Flush or Stop may have raced with the timer.
	if d.stopped || d.state != StatePending {
		d.mu.Unlock()
		return
	}

	paths := d.drain()
	if len(paths) == 0 {
		d.state = StateIdle
		d.mu.Unlock()
		return
	}
	d.state = StateRegenerating
	d.running.Add(1)
	d.mu.Unlock()

	go d.run(paths)
}

// run invokes the callback and settles the next state.
func (d *Debouncer) run(paths []string) {
	defer d.running.Done()

	if d.callback != nil {
		d.callback(paths)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = StateIdle
	if d.dirty && !d.stopped {
		d.dirty = false
		d.state = StatePending
		d.arm()
	}
}

// drain empties the pending set into a sorted slice. Callers must hold mu.
func (d *Debouncer) drain() []string {
	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	slices.Sort(paths)
	return paths
}

// Flush immediately runs the callback with all pending paths and blocks until
// it completes. If a pass is already running the pending paths are left for
// its follow-up.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.state == StateRegenerating {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}

	paths := d.drain()
	if len(paths) == 0 {
		d.state = StateIdle
		d.mu.Unlock()
		return
	}
	d.state = StateRegenerating
	d.running.Add(1)
	d.mu.Unlock()

	d.run(paths)
}

// Stop cancels any pending window and waits for a running callback to finish.
// Events added after Stop are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[unique.Handle[string]]struct{})
	d.mu.Unlock()

	d.running.Wait()
}

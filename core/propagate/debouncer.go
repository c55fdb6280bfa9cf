// ABOUTME: Debounced propagation of canonical values to the rendering subsystem
// ABOUTME: Calls inside the quiet window coalesce into one delivery of the latest value

package propagate

import (
	"sync"
	"time"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// DefaultWindow is the quiet period after the last Schedule call before the
// pending value is delivered.
const DefaultWindow = 800 * time.Millisecond

// Debouncer holds the most recently scheduled value and delivers it to its
// sink once no new value has arrived for the length of the window. Scheduling
// replaces the pending task; earlier values are dropped, never queued.
type Debouncer struct {
	window time.Duration
	sink   interfaces.Renderer
	logger interfaces.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending canonical.Value
	seq     uint64
}

// NewDebouncer creates a debouncer delivering to sink. A non-positive window
// selects DefaultWindow.
func NewDebouncer(sink interfaces.Renderer, logger interfaces.Logger, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		window: window,
		sink:   sink,
		logger: logger,
	}
}

// Window returns the quiet period.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Schedule flags the sink as loading and (re)starts the quiet window with v as
// the value to deliver.
func (d *Debouncer) Schedule(v canonical.Value) {
	d.sink.SetLoading(true)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = v
	d.timer = time.AfterFunc(d.window, func() { d.fire(seq) })
}

// Cancel drops the pending value without delivering it. It reports whether
// anything was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.takeLocked() != nil
}

// Flush delivers the pending value immediately. It reports whether anything
// was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	task := d.takeLocked()
	d.mu.Unlock()

	if task == nil {
		return false
	}
	d.deliver(task.value)
	return true
}

// Pending reports whether a value is waiting for its window to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

type pendingTask struct {
	value canonical.Value
}

// takeLocked stops the timer and returns the pending value, or nil if there
// was none. Bumping seq invalidates a callback that already fired and is
// waiting on the lock.
func (d *Debouncer) takeLocked() *pendingTask {
	if d.timer == nil {
		return nil
	}
	d.timer.Stop()
	task := &pendingTask{value: d.pending}
	d.timer = nil
	d.pending = nil
	d.seq++
	return task
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.timer == nil {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.timer = nil
	d.pending = nil
	d.mu.Unlock()

	d.deliver(v)
}

func (d *Debouncer) deliver(v canonical.Value) {
	out, err := canonical.MarshalIndent(v)
	if err != nil {
		d.logger.Error("Failed to encode value for renderer", map[string]interface{}{
			"error": err.Error(),
		})
		d.sink.SetLoading(false)
		return
	}
	d.sink.SetCanonicalContent(string(out))
}

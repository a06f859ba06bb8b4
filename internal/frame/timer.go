package frame

import (
	"sync"
	"time"
)

// Timer emulates a refresh signal with one-shot timers, one per Request.
// Callbacks run on timer goroutines, one at a time: a callback that fires
// while another is still running waits for it.
type Timer struct {
	interval time.Duration
	run      sync.Mutex // held while a callback runs

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
	closed bool
	wg     sync.WaitGroup
}

// NewTimer returns a Timer firing interval after each Request.
func NewTimer(interval time.Duration) *Timer {
	return &Timer{
		interval: interval,
		timers:   make(map[Handle]*time.Timer),
	}
}

// Request schedules cb to run after the interval. After Close it returns a
// handle that never fires.
func (t *Timer) Request(cb Callback) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	id := t.next
	if t.closed {
		return id
	}

	t.wg.Add(1)
	t.timers[id] = time.AfterFunc(t.interval, func() {
		defer t.wg.Done()
		t.run.Lock()
		defer t.run.Unlock()

		// Checked after acquiring run so a Cancel issued while this frame
		// waited still wins.
		t.mu.Lock()
		_, live := t.timers[id]
		delete(t.timers, id)
		t.mu.Unlock()
		if live {
			cb(time.Now())
		}
	})
	return id
}

// Cancel stops the frame identified by id if it has not started yet.
func (t *Timer) Cancel(id Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked(id)
}

func (t *Timer) cancelLocked(id Handle) {
	tm, ok := t.timers[id]
	if !ok {
		return
	}
	delete(t.timers, id)
	if tm.Stop() {
		t.wg.Done()
	}
}

// Close cancels every pending frame and waits for a running callback to
// return. Requests made after Close never fire.
func (t *Timer) Close() {
	t.mu.Lock()
	t.closed = true
	for id := range t.timers {
		t.cancelLocked(id)
	}
	t.mu.Unlock()

	t.wg.Wait()
}

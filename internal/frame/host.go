package frame

import (
	"sync"
	"time"
)

// Host is a Scheduler driven by the host's own refresh loop: the host calls
// Pump once per refresh and Pump runs whatever callback is pending.
type Host struct {
	mu      sync.Mutex
	next    Handle
	pending Handle
	cb      Callback
}

// NewHost returns a Host with nothing pending.
func NewHost() *Host {
	return &Host{}
}

// Request replaces any pending callback with cb.
func (h *Host) Request(cb Callback) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.pending = h.next
	h.cb = cb
	return h.pending
}

// Cancel drops the pending callback if it is still the one identified by id.
func (h *Host) Cancel(id Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == id {
		h.pending = 0
		h.cb = nil
	}
}

// Pump runs the pending callback, if any, and reports whether one ran.
// Callbacks requested during Pump run on the next Pump.
func (h *Host) Pump(now time.Time) bool {
	h.mu.Lock()
	cb := h.cb
	h.pending = 0
	h.cb = nil
	h.mu.Unlock()

	if cb == nil {
		return false
	}
	cb(now)
	return true
}

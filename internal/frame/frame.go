// Package frame schedules per-refresh callbacks.
//
// A Scheduler runs at most one pending callback per Request. Callers that
// want continuous animation request the next frame from inside the current
// one, so callbacks never overlap.
package frame

import "time"

// FallbackInterval is the period used when no native refresh signal exists.
const FallbackInterval = time.Second / 60

// Handle identifies a requested frame. The zero Handle is never issued.
type Handle uint64

// Callback receives the time at which the frame is being run.
type Callback func(now time.Time)

// Scheduler requests and cancels frame callbacks.
type Scheduler interface {
	Request(cb Callback) Handle
	Cancel(h Handle)
}

// Select picks the native scheduler when the host provides one and the
// timer emulation otherwise. It is meant to be called once at startup.
func Select(native Scheduler) Scheduler {
	if native != nil {
		return native
	}
	return NewTimer(FallbackInterval)
}

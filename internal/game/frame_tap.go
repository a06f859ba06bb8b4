package game

import "sync"

// frameSample is what the loop records about one frame.
type frameSample struct {
	dt    float64 // seconds since the previous frame
	alive int     // live particles after the frame
}

// frameTap records the last N frames into a ring buffer so the overlay and
// the periodic log can summarise recent timing.
type frameTap struct {
	buffer    []frameSample
	nextIndex int
	count     int
	mu        sync.RWMutex
}

func newFrameTap(ringSize int) *frameTap {
	return &frameTap{
		buffer: make([]frameSample, ringSize),
	}
}

func (t *frameTap) record(s frameSample) {
	t.mu.Lock()
	t.buffer[t.nextIndex] = s
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.count < len(t.buffer) {
		t.count++
	}
	t.mu.Unlock()
}

// snapshot returns up to the last n samples, most recent last.
func (t *frameTap) snapshot(n int) []frameSample {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.count {
		n = t.count
	}
	out := make([]frameSample, n)
	// Walk backwards from nextIndex - 1, filling from the end
	idx := t.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		out[i] = t.buffer[idx]
		idx--
	}
	return out
}

func (t *frameTap) size() int {
	return len(t.buffer)
}

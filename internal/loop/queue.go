// Package loop schedules per-frame callbacks. A FrameQueue collects callbacks
// requested for the next frame and a host (the Bubble Tea tick or a headless
// loop) pumps it once per frame.
package loop

import "sync"

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// FrameQueue is a requestAnimationFrame-style callback queue.
// Safe for concurrent use; callbacks run on the goroutine that calls Pump.
type FrameQueue struct {
	mu      sync.Mutex
	next    Handle
	order   []Handle
	pending map[Handle]func()
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		pending: make(map[Handle]func()),
	}
}

// Request queues fn to run on the next Pump.
func (q *FrameQueue) Request(fn func()) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	h := q.next
	q.pending[h] = fn
	q.order = append(q.order, h)
	return h
}

// Cancel removes a pending callback. Cancelling a handle that already ran or
// was never issued does nothing.
func (q *FrameQueue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

// Pump runs every callback that was pending when it was called, in request
// order, and returns how many ran. Callbacks requested during the pump wait
// for the next one; callbacks cancelled during the pump are skipped.
func (q *FrameQueue) Pump() int {
	q.mu.Lock()
	batch := q.order
	q.order = nil
	q.mu.Unlock()

	ran := 0
	for _, h := range batch {
		q.mu.Lock()
		fn, ok := q.pending[h]
		delete(q.pending, h)
		q.mu.Unlock()

		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next Pump.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

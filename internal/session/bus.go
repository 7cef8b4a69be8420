// Package session owns the lifecycle of a Road Rush session: the game, the
// runner stepping it, the listeners attached to the input bus and the
// recording of the inputs it received.
package session

import (
	"sync"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Listener receives key events published on a Bus.
type Listener func(core.KeyEvent)

// Bus fans key events out to subscribed listeners.
// Thread-safe for concurrent access.
type Bus struct {
	mu        sync.RWMutex
	next      int
	order     []int
	listeners map[int]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[int]Listener),
	}
}

// Subscribe attaches fn and returns a function that detaches it.
// The returned function is safe to call more than once.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.listeners[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.listeners, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish delivers ev to every listener in subscription order.
// Listeners run on the caller's goroutine.
func (b *Bus) Publish(ev core.KeyEvent) {
	b.mu.RLock()
	fns := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of attached listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

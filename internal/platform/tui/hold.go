package tui

import (
	"time"

	"github.com/vovakirdan/roadrush/internal/core"
)

// HoldTracker turns the key presses a terminal reports into key-down and
// key-up events. Terminals only send repeated presses while a key is held, so
// a release is assumed once the repeats stop for longer than the release
// delay, or as soon as the opposite direction is pressed.
type HoldTracker struct {
	releaseAfter time.Duration
	held         core.Action
	lastSeen     time.Time
}

// NewHoldTracker creates a tracker with the given release delay.
func NewHoldTracker(releaseAfter time.Duration) *HoldTracker {
	return &HoldTracker{releaseAfter: releaseAfter}
}

// Press records a press of a at now and returns the events it produces.
// Repeats of the held key produce nothing.
func (h *HoldTracker) Press(a core.Action, now time.Time) []core.KeyEvent {
	if a == h.held {
		h.lastSeen = now
		return nil
	}

	var events []core.KeyEvent
	if h.held != core.ActionNone {
		events = append(events, core.Release(h.held))
	}
	h.held = a
	h.lastSeen = now
	return append(events, core.Press(a))
}

// Expire returns a release event if the held key has not repeated within the
// release delay.
func (h *HoldTracker) Expire(now time.Time) []core.KeyEvent {
	if h.held == core.ActionNone || now.Sub(h.lastSeen) < h.releaseAfter {
		return nil
	}
	return h.Reset()
}

// Reset releases the held key, if any.
func (h *HoldTracker) Reset() []core.KeyEvent {
	if h.held == core.ActionNone {
		return nil
	}
	ev := core.Release(h.held)
	h.held = core.ActionNone
	return []core.KeyEvent{ev}
}

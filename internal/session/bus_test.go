package session

import (
	"testing"

	"github.com/vovakirdan/roadrush/internal/core"
)

func TestBusPublishInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(func(core.KeyEvent) { got = append(got, "a") })
	b.Subscribe(func(core.KeyEvent) { got = append(got, "b") })

	b.Publish(core.Press(core.ActionLeft))

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("delivery order = %v, expected [a b]", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	unsub := b.Subscribe(func(core.KeyEvent) { calls++ })
	other := 0
	b.Subscribe(func(core.KeyEvent) { other++ })

	b.Publish(core.Press(core.ActionRight))
	unsub()
	unsub() // idempotent
	b.Publish(core.Press(core.ActionRight))

	if calls != 1 {
		t.Errorf("detached listener called %d times, expected 1", calls)
	}
	if other != 2 {
		t.Errorf("remaining listener called %d times, expected 2", other)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", b.Len())
	}
}

func TestBusUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	var unsub func()
	calls := 0
	unsub = b.Subscribe(func(core.KeyEvent) {
		calls++
		unsub()
	})

	b.Publish(core.Press(core.ActionLeft))
	b.Publish(core.Press(core.ActionLeft))

	if calls != 1 {
		t.Errorf("self-detaching listener called %d times, expected 1", calls)
	}
}

func TestRecorderStampsFrames(t *testing.T) {
	frame := 0
	r := NewRecorder(func() int { return frame })

	r.Handle(core.Press(core.ActionRight))
	frame = 12
	r.Handle(core.Release(core.ActionRight))
	r.Handle(core.Press(core.ActionPause)) // not a steering event

	want := []Input{
		{Frame: 0, Action: core.ActionRight, Pressed: true},
		{Frame: 12, Action: core.ActionRight, Pressed: false},
	}
	got := r.Inputs()
	if len(got) != len(want) {
		t.Fatalf("Inputs() = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("input %d = %+v, expected %+v", i, got[i], want[i])
		}
	}

	got[0].Frame = 99
	if r.Inputs()[0].Frame != 0 {
		t.Error("Inputs() should return a copy")
	}
}

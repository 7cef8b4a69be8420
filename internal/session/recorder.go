package session

import (
	"sync"
	"time"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Input is one steering event stamped with the number of frames that had
// completed when it arrived.
type Input struct {
	Frame   int
	Action  core.Action
	Pressed bool
}

// Recording is everything needed to replay a session: the seed, the field it
// was played on and the inputs it received.
type Recording struct {
	ID          string
	Seed        int64
	FieldWidth  float64
	FieldHeight float64
	Config      string // config.Config.Fingerprint of the rules it was played with
	Frames      int    // Frames simulated when the session ended
	GameOver    bool   // Whether it ended in a crash
	Inputs      []Input
	CreatedAt   time.Time
}

// RunSaver persists finished recordings.
// This allows sessions to be saved without depending on the storage package.
type RunSaver interface {
	SaveRun(rec Recording) error
}

// Recorder collects the steering events of one session.
type Recorder struct {
	frames func() int

	mu     sync.Mutex
	inputs []Input
}

// NewRecorder creates a recorder that stamps events using frames.
func NewRecorder(frames func() int) *Recorder {
	return &Recorder{frames: frames}
}

// Handle records steering events and ignores everything else.
func (r *Recorder) Handle(ev core.KeyEvent) {
	if ev.Action != core.ActionLeft && ev.Action != core.ActionRight {
		return
	}
	in := Input{
		Frame:   r.frames(),
		Action:  ev.Action,
		Pressed: ev.Pressed,
	}

	r.mu.Lock()
	r.inputs = append(r.inputs, in)
	r.mu.Unlock()
}

// Inputs returns a copy of the recorded inputs.
func (r *Recorder) Inputs() []Input {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Input, len(r.inputs))
	copy(out, r.inputs)
	return out
}

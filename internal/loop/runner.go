package loop

import (
	"sync"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Stepper is a game that can be advanced one frame at a time.
type Stepper interface {
	Step() core.StepResult
}

// Runner drives one game through a FrameQueue: every frame steps the game and
// requests the next frame, until the game ends or the runner is stopped.
type Runner struct {
	queue      *FrameQueue
	game       Stepper
	onGameOver func(core.GameState)

	// stepMu is held while a frame steps the game, so Stop can wait for it.
	stepMu sync.Mutex

	mu      sync.Mutex
	pending Handle
	running bool
	done    bool // game over observed; OnGameOver already fired
}

// NewRunner creates a runner. onGameOver may be nil; otherwise it is called
// once, on the pumping goroutine, with the final state.
func NewRunner(queue *FrameQueue, game Stepper, onGameOver func(core.GameState)) *Runner {
	return &Runner{
		queue:      queue,
		game:       game,
		onGameOver: onGameOver,
	}
}

// Start requests the first frame. It does nothing if the runner is already
// running or its game has ended.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running || r.done {
		return
	}
	r.running = true
	r.pending = r.queue.Request(r.frame)
}

// Stop cancels the pending frame, if any. If a frame is stepping on another
// goroutine, Stop returns once that step has finished; no step starts after.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.pending != 0 {
		r.queue.Cancel(r.pending)
		r.pending = 0
	}
	r.running = false
	r.mu.Unlock()

	r.stepMu.Lock()
	r.stepMu.Unlock()
}

// Running reports whether a frame is scheduled.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Done reports whether the game has ended.
func (r *Runner) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Runner) frame() {
	r.stepMu.Lock()

	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		r.stepMu.Unlock()
		return
	}
	r.pending = 0
	r.mu.Unlock()

	res := r.game.Step()

	r.mu.Lock()
	if !r.running {
		// Stopped from another goroutine mid-step.
		r.mu.Unlock()
		r.stepMu.Unlock()
		return
	}
	r.pending = r.queue.Request(r.frame)

	fire := false
	if res.State.GameOver {
		r.queue.Cancel(r.pending)
		r.pending = 0
		r.running = false
		fire = !r.done
		r.done = true
	}
	r.mu.Unlock()
	r.stepMu.Unlock()

	if fire && r.onGameOver != nil {
		r.onGameOver(res.State)
	}
}

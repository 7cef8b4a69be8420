package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/games/roadrush"
	"github.com/vovakirdan/roadrush/internal/loop"
)

// Session is one game from start to game over (or until it is replaced).
type Session struct {
	ID        string
	Seed      int64
	Game      *roadrush.Game
	Runner    *loop.Runner
	StartedAt time.Time

	rules    string // Fingerprint of the config the game runs with
	recorder *Recorder
	detach   []func()
	saved    bool
}

// Options configure a Manager.
type Options struct {
	Config config.Config
	Bus    *Bus
	Queue  *loop.FrameQueue
	Deps   roadrush.Deps

	// Saver receives the recording of every session that ran at least one
	// frame. Optional, can be nil.
	Saver RunSaver

	// OnGameOver is called once per session, on the pumping goroutine.
	OnGameOver func(s *Session, final core.GameState)

	Logger *log.Logger
}

// Manager keeps at most one session active. Starting a session stops the
// previous one: its runner is cancelled and its listeners are detached.
type Manager struct {
	opts   Options
	logger *log.Logger

	mu     sync.Mutex
	active *Session
}

// NewManager creates a session manager. A nil Bus or Queue is replaced with a
// fresh one.
func NewManager(opts Options) *Manager {
	if opts.Bus == nil {
		opts.Bus = NewBus()
	}
	if opts.Queue == nil {
		opts.Queue = loop.NewFrameQueue()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{opts: opts, logger: logger}
}

// Bus returns the input bus sessions subscribe to.
func (m *Manager) Bus() *Bus {
	return m.opts.Bus
}

// Queue returns the frame queue sessions are scheduled on.
func (m *Manager) Queue() *loop.FrameQueue {
	return m.opts.Queue
}

// Start ends the active session, if any, and starts a new one with seed.
func (m *Manager) Start(seed int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	cfg := m.opts.Config
	game := roadrush.New(cfg, seed, m.opts.Deps)
	s := &Session{
		ID:        uuid.NewString(),
		Seed:      seed,
		Game:      game,
		StartedAt: time.Now(),
		rules:     cfg.Fingerprint(),
		recorder:  NewRecorder(game.Frames),
	}

	controls := roadrush.NewControls(game, cfg.Player.Speed)
	s.detach = append(s.detach,
		m.opts.Bus.Subscribe(controls.Handle),
		m.opts.Bus.Subscribe(s.recorder.Handle),
	)

	s.Runner = loop.NewRunner(m.opts.Queue, game, func(final core.GameState) {
		m.logger.Info("game over", "session", s.ID, "score", final.Score, "frames", final.Frames)
		m.mu.Lock()
		m.save(s)
		m.mu.Unlock()
		if m.opts.OnGameOver != nil {
			m.opts.OnGameOver(s, final)
		}
	})

	m.active = s
	m.logger.Debug("session started", "session", s.ID, "seed", seed)
	s.Runner.Start()
	return s
}

// Active returns the active session, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Stop ends the active session, if any. It is safe to call from a goroutine
// other than the one pumping the queue: a frame in progress finishes before
// the session is saved.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	s := m.active
	if s == nil {
		return
	}
	m.active = nil

	s.Runner.Stop()
	for _, fn := range s.detach {
		fn()
	}
	s.detach = nil
	m.save(s)
	m.logger.Debug("session stopped", "session", s.ID, "frames", s.Game.Frames())
}

// save hands the session's recording to the saver once. Callers hold m.mu.
// Failures are logged; a lost recording never interrupts play.
func (m *Manager) save(s *Session) {
	if m.opts.Saver == nil || s.saved || s.Game.Frames() == 0 {
		return
	}
	s.saved = true

	rec := s.Recording()
	if err := m.opts.Saver.SaveRun(rec); err != nil {
		m.logger.Warn("failed to save run", "session", s.ID, "error", err)
		return
	}
	m.logger.Debug("run saved", "session", s.ID, "inputs", len(rec.Inputs))
}

// Recording returns the session's recording so far.
func (s *Session) Recording() Recording {
	field := s.Game.Field()
	st := s.Game.State()
	return Recording{
		ID:          s.ID,
		Seed:        s.Seed,
		FieldWidth:  field.Width,
		FieldHeight: field.Height,
		Config:      s.rules,
		Frames:      st.Frames,
		GameOver:    st.GameOver,
		Inputs:      s.recorder.Inputs(),
		CreatedAt:   s.StartedAt,
	}
}

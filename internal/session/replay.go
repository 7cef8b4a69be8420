package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/games/roadrush"
)

// ErrReplayDiverged is returned when a replayed run does not end the way the
// recording says it did.
var ErrReplayDiverged = errors.New("session: replay diverged")

// ErrConfigChanged accompanies ErrReplayDiverged when the run was recorded
// under different rules than the ones it is replayed with.
var ErrConfigChanged = errors.New("config changed since the run was recorded")

// Script returns the events to publish before the next frame is stepped,
// given the number of frames completed so far.
type Script func(frame int) []core.KeyEvent

// Simulate runs a headless session until the game ends or maxFrames frames
// have been simulated, and returns the finished session.
func Simulate(cfg config.Config, seed int64, maxFrames int, script Script, deps roadrush.Deps) *Session {
	m := NewManager(Options{Config: cfg, Deps: deps})
	s := m.Start(seed)

	for s.Game.Frames() < maxFrames && !s.Runner.Done() {
		if script != nil {
			for _, ev := range script(s.Game.Frames()) {
				m.Bus().Publish(ev)
			}
		}
		if m.Queue().Pump() == 0 {
			break
		}
	}

	m.Stop()
	return s
}

// Replay re-simulates rec and checks that it ends after the same number of
// frames with the same outcome. cfg must be the configuration the run was
// played with; the field size is taken from the recording.
func Replay(cfg config.Config, rec Recording) (core.GameState, error) {
	if rec.FieldWidth > 0 && rec.FieldHeight > 0 {
		cfg.Field.Width = rec.FieldWidth
		cfg.Field.Height = rec.FieldHeight
	}
	if err := cfg.Validate(); err != nil {
		return core.GameState{}, fmt.Errorf("session: replay %s: %w", rec.ID, err)
	}

	next := 0
	script := func(frame int) []core.KeyEvent {
		var out []core.KeyEvent
		for next < len(rec.Inputs) && rec.Inputs[next].Frame <= frame {
			in := rec.Inputs[next]
			out = append(out, core.KeyEvent{Action: in.Action, Pressed: in.Pressed})
			next++
		}
		return out
	}

	s := Simulate(cfg, rec.Seed, rec.Frames, script, roadrush.Deps{})
	st := s.Game.State()
	if st.Frames != rec.Frames || st.GameOver != rec.GameOver {
		if now := cfg.Fingerprint(); rec.Config != "" && rec.Config != now {
			return st, fmt.Errorf("%w: %w: run %s recorded with config %s, replayed with %s",
				ErrReplayDiverged, ErrConfigChanged, rec.ID, rec.Config, now)
		}
		return st, fmt.Errorf("%w: run %s recorded %d frames (game over %t), replayed %d (game over %t)",
			ErrReplayDiverged, rec.ID, rec.Frames, rec.GameOver, st.Frames, st.GameOver)
	}
	return st, nil
}

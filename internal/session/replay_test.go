package session

import (
	"errors"
	"testing"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/games/roadrush"
)

func TestSimulateStopsAtMaxFrames(t *testing.T) {
	s := Simulate(tallConfig(), 1, 900, nil, roadrush.Deps{})

	st := s.Game.State()
	if st.Frames != 900 || st.Score != 90 || st.GameOver {
		t.Errorf("state = %+v, expected 900 frames, score 90", st)
	}
	if n := s.Game.Obstacles().Spawned(); n != 10 {
		t.Errorf("spawned = %d, expected 10", n)
	}
}

func TestSimulateStopsAtGameOver(t *testing.T) {
	hold := func(frame int) []core.KeyEvent {
		if frame == 0 {
			return []core.KeyEvent{core.Press(core.ActionLeft)}
		}
		return nil
	}
	s := Simulate(config.Default(), 9, 100000, hold, roadrush.Deps{})

	if !s.Game.State().GameOver {
		t.Fatal("holding left forever should eventually crash")
	}
	if s.Game.Player().X != 40 {
		t.Errorf("player x = %v, expected clamp at 40", s.Game.Player().X)
	}
}

func recordRun(t *testing.T, seed int64) Recording {
	t.Helper()
	saver := &memSaver{}
	m := NewManager(Options{Config: config.Default(), Saver: saver})
	s := m.Start(seed)

	for i := 0; i < 100000 && !s.Runner.Done(); i++ {
		switch i % 150 {
		case 10:
			m.Bus().Publish(core.Press(core.ActionRight))
		case 60:
			m.Bus().Publish(core.Release(core.ActionRight))
		case 80:
			m.Bus().Publish(core.Press(core.ActionLeft))
		case 120:
			m.Bus().Publish(core.Release(core.ActionLeft))
		}
		m.Queue().Pump()
	}
	m.Stop()

	if len(saver.runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(saver.runs))
	}
	return saver.runs[0]
}

func TestReplayMatchesRecording(t *testing.T) {
	for _, seed := range []int64{1, 2, 77} {
		rec := recordRun(t, seed)
		st, err := Replay(config.Default(), rec)
		if err != nil {
			t.Errorf("seed %d: %v", seed, err)
			continue
		}
		if st.Frames != rec.Frames || st.GameOver != rec.GameOver {
			t.Errorf("seed %d: replayed %+v, recorded %d frames", seed, st, rec.Frames)
		}
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	rec := recordRun(t, 5)
	rec.Seed++ // a different obstacle sequence

	_, err := Replay(config.Default(), rec)
	if rec.Frames > 90 && !errors.Is(err, ErrReplayDiverged) {
		t.Errorf("expected ErrReplayDiverged, got %v", err)
	}
}

func TestReplayRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Score.FramesPerPoint = 0
	_, err := Replay(cfg, Recording{ID: "x", Frames: 10})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
}

func TestRecordingCarriesConfigFingerprint(t *testing.T) {
	rec := recordRun(t, 3)
	if want := config.Default().Fingerprint(); rec.Config != want {
		t.Errorf("recording config = %q, expected %q", rec.Config, want)
	}
}

func TestReplayNamesConfigChange(t *testing.T) {
	rec := recordRun(t, 1)

	cfg := config.Default()
	cfg.Obstacles.SpawnEvery = 45
	cfg.Obstacles.Speed = 3

	_, err := Replay(cfg, rec)
	if !errors.Is(err, ErrReplayDiverged) {
		t.Fatalf("expected ErrReplayDiverged, got %v", err)
	}
	if !errors.Is(err, ErrConfigChanged) {
		t.Errorf("divergence under changed rules should wrap ErrConfigChanged, got %v", err)
	}
}

func TestReplayIgnoresCosmeticConfig(t *testing.T) {
	rec := recordRun(t, 2)

	cfg := config.Default()
	cfg.Player.Sprite = "/tmp/car.txt"
	cfg.Background.Tile = "/tmp/road.txt"
	cfg.Audio.Volume = 0.8
	cfg.Input.ReleaseAfterMS = 300

	if _, err := Replay(cfg, rec); err != nil {
		t.Errorf("cosmetic changes should not affect replay: %v", err)
	}
}

func TestDivergenceWithoutConfigChange(t *testing.T) {
	rec := recordRun(t, 5)
	rec.Frames += 7
	rec.GameOver = true

	_, err := Replay(config.Default(), rec)
	if !errors.Is(err, ErrReplayDiverged) {
		t.Fatalf("expected ErrReplayDiverged, got %v", err)
	}
	if errors.Is(err, ErrConfigChanged) {
		t.Errorf("same rules should not report a config change: %v", err)
	}
}

// Package audio plays the game's sound cues through the system speaker.
package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
)

const (
	sampleRate = beep.SampleRate(48000)

	crashDuration = 600 * time.Millisecond
)

// SoundManager plays cues on a shared mixer. Until Initialize succeeds every
// Play is a silent no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	crash       *beep.Buffer // nil plays the synthesized crash
	initialized bool
	logger      *log.Logger
}

var _ core.Audio = (*SoundManager)(nil)

// NewSoundManager creates a sound manager for the given audio settings.
// The configured crash sound, if any, is decoded immediately; a file that
// cannot be decoded is logged and the synthesized crash is used instead.
func NewSoundManager(cfg config.AudioConfig, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: cfg.Volume,
		logger: logger,
	}
	if cfg.CrashSound != "" {
		if err := sm.LoadCrash(cfg.CrashSound); err != nil {
			logger.Warn("could not load crash sound", "path", cfg.CrashSound, "error", err)
		}
	}
	return sm
}

// Initialize sets up the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot initialize speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every playing sound.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// LoadCrash decodes a WAV file into memory and uses it as the crash cue.
func (sm *SoundManager) LoadCrash(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}

	format.SampleRate = sampleRate
	buf := beep.NewBuffer(format)
	buf.Append(s)

	sm.mu.Lock()
	sm.crash = buf
	sm.mu.Unlock()

	sm.logger.Debug("crash sound loaded", "path", path, "duration", format.SampleRate.D(buf.Len()))
	return nil
}

// Play starts a cue and returns immediately.
func (sm *SoundManager) Play(cue core.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := sm.streamFor(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// streamFor builds a fresh, volume-adjusted stream for a cue. Callers hold sm.mu.
func (sm *SoundManager) streamFor(cue core.Cue) beep.Streamer {
	switch cue {
	case core.CueCrash:
		var s beep.Streamer
		if sm.crash != nil {
			s = sm.crash.Streamer(0, sm.crash.Len())
		} else {
			s = beep.Take(sampleRate.N(crashDuration), NewCrashGenerator(sampleRate, time.Now().UnixNano()))
		}
		return newVolume(s, sm.volume)
	default:
		return nil
	}
}

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero or
// negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Nop discards every cue. Used for SSH sessions and headless runs.
type Nop struct{}

// Play does nothing.
func (Nop) Play(core.Cue) {}

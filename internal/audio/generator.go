package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// CrashGenerator synthesizes a crash: a noise burst over a falling rumble,
// with a fast attack and exponential decay.
type CrashGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrashGenerator creates a crash generator. The seed picks the noise.
func NewCrashGenerator(sr beep.SampleRate, seed int64) *CrashGenerator {
	return &CrashGenerator{sr: sr, seed: seed & 0x7fffffff}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 6)
		if attack := t / 0.005; attack < 1 {
			envelope *= attack
		}

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// Rumble falls from 120Hz toward 40Hz.
		freq := 40 + 80*math.Exp(-t*4)
		rumble := 0.5 * math.Sin(2*math.Pi*freq*t)

		sample := envelope * (0.6*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}

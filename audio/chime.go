// Package audio synthesises the collision chime. Playback is injected so
// the package works without an audio device.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/pthm-cable/orbits/config"
)

// PlayFunc starts playing streamers, e.g. speaker.Play.
type PlayFunc func(s ...beep.Streamer)

// Chime plays a short sine tone.
type Chime struct {
	SampleRate beep.SampleRate
	Frequency  float64
	Duration   time.Duration
	Volume     float64

	play PlayFunc
}

// NewChime creates a chime from cfg. A nil play disables sound.
func NewChime(cfg config.AudioConfig, play PlayFunc) *Chime {
	return &Chime{
		SampleRate: beep.SampleRate(cfg.SampleRate),
		Frequency:  cfg.Frequency,
		Duration:   time.Duration(cfg.DurationMs) * time.Millisecond,
		Volume:     cfg.Volume,
		play:       play,
	}
}

// Tone returns the chime as a finite stream: the sine scaled to Volume and
// faded out linearly over the last half.
func (c *Chime) Tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(c.SampleRate, c.Frequency)
	if err != nil {
		return nil, fmt.Errorf("creating tone: %w", err)
	}
	n := c.SampleRate.N(c.Duration)
	gain := &effects.Gain{Streamer: beep.Take(n, sine), Gain: c.Volume - 1}
	return &fadeOut{s: gain, total: n}, nil
}

// Play starts the chime. It does nothing on a nil Chime or without a
// player.
func (c *Chime) Play() {
	if c == nil || c.play == nil {
		return
	}
	tone, err := c.Tone()
	if err != nil {
		return
	}
	c.play(tone)
}

// fadeOut ramps the second half of a stream of total samples to silence.
type fadeOut struct {
	s     beep.Streamer
	total int
	pos   int
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	half := f.total / 2
	for i := 0; i < n; i++ {
		if p := f.pos + i; p > half && f.total > half {
			k := 1 - float64(p-half)/float64(f.total-half)
			samples[i][0] *= k
			samples[i][1] *= k
		}
	}
	f.pos += n
	return n, ok
}

func (f *fadeOut) Err() error { return f.s.Err() }

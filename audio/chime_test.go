package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/orbits/config"
)

func testAudioConfig() config.AudioConfig {
	return config.AudioConfig{
		Enabled:    true,
		SampleRate: 44100,
		Frequency:  660,
		DurationMs: 100,
		Volume:     0.5,
	}
}

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestToneLengthAndVolume(t *testing.T) {
	c := NewChime(testAudioConfig(), nil)
	tone, err := c.Tone()
	if err != nil {
		t.Fatal(err)
	}

	n, peak := drain(tone)
	if want := 4410; n != want {
		t.Errorf("tone has %d samples, want %d", n, want)
	}
	if peak > 0.5+1e-9 || peak < 0.4 {
		t.Errorf("peak amplitude = %g, want about 0.5", peak)
	}
}

func TestToneFadesOut(t *testing.T) {
	c := NewChime(testAudioConfig(), nil)
	tone, err := c.Tone()
	if err != nil {
		t.Fatal(err)
	}

	buf := make([][2]float64, 4410)
	got := 0
	for got < len(buf) {
		n, ok := tone.Stream(buf[got:])
		got += n
		if !ok {
			break
		}
	}

	var tail float64
	for _, smp := range buf[got-20 : got] {
		tail = math.Max(tail, math.Abs(smp[0]))
	}
	if tail > 0.01 {
		t.Errorf("tail amplitude = %g, want near silence", tail)
	}
}

func TestInvalidFrequency(t *testing.T) {
	cfg := testAudioConfig()
	cfg.Frequency = float64(cfg.SampleRate) // above Nyquist
	if _, err := NewChime(cfg, nil).Tone(); err == nil {
		t.Error("expected an error for a frequency above half the sample rate")
	}
}

func TestPlay(t *testing.T) {
	var played []beep.Streamer
	c := NewChime(testAudioConfig(), func(s ...beep.Streamer) { played = append(played, s...) })

	c.Play()
	if len(played) != 1 {
		t.Fatalf("played %d streams, want 1", len(played))
	}

	var nilChime *Chime
	nilChime.Play()
	NewChime(testAudioConfig(), nil).Play()
}

package telemetry

import "time"

// RateMeter measures simulated days advanced per wall-clock second over a
// rolling window of frames. Only measured time is used, never the target
// frame rate.
type RateMeter struct {
	times []time.Time
	days  []float64
	next  int
	count int
}

// NewRateMeter creates a meter averaging over window samples.
func NewRateMeter(window int) *RateMeter {
	if window < 2 {
		window = 2
	}
	return &RateMeter{
		times: make([]time.Time, window),
		days:  make([]float64, window),
	}
}

// Sample records the simulated time reached at wall time now.
func (m *RateMeter) Sample(now time.Time, simDays float64) {
	m.times[m.next] = now
	m.days[m.next] = simDays
	m.next = (m.next + 1) % len(m.times)
	if m.count < len(m.times) {
		m.count++
	}
}

// Reset discards all samples.
func (m *RateMeter) Reset() {
	m.next = 0
	m.count = 0
}

// DaysPerSecond returns the simulated days per wall second between the
// oldest and newest samples, or 0 with fewer than two samples.
func (m *RateMeter) DaysPerSecond() float64 {
	if m.count < 2 {
		return 0
	}
	newest := (m.next - 1 + len(m.times)) % len(m.times)
	oldest := (m.next - m.count + len(m.times)) % len(m.times)

	wall := m.times[newest].Sub(m.times[oldest]).Seconds()
	if wall <= 0 {
		return 0
	}
	return (m.days[newest] - m.days[oldest]) / wall
}

package telemetry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/physics"
)

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps int64
	dtDays      float64
	au          float64

	// Current window tracking
	windowStartStep int64

	// Energy at the first flush after a reset or placement; drift is
	// reported against it.
	baseline    float64
	hasBaseline bool

	// Event counters for current window
	placements int
	collisions int
	resets     int

	speeds []float64
}

// NewCollector creates a new stats collector.
// windowSteps: steps per window; dtDays: simulated days per step.
func NewCollector(windowSteps int, dtDays float64) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: int64(windowSteps),
		dtDays:      dtDays,
		au:          physics.AU,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventPlaced:
		c.placements++
		// New mass changes the system energy; take a fresh baseline.
		c.hasBaseline = false
	case EventCollision:
		c.collisions++
	case EventReset:
		c.resets++
		c.hasBaseline = false
		c.windowStartStep = 0
	}
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(step int64) bool {
	return step-c.windowStartStep >= c.windowSteps
}

// Flush produces a WindowStats from the current bodies and resets counters
// for the next window.
func (c *Collector) Flush(step int64, bodies []physics.Body, g float64) WindowStats {
	ke := physics.KineticEnergy(bodies)
	pe := physics.PotentialEnergy(bodies, g)
	total := ke + pe

	if !c.hasBaseline {
		c.baseline = total
		c.hasBaseline = true
	}
	var drift float64
	if c.baseline != 0 {
		drift = (total - c.baseline) / math.Abs(c.baseline)
	}

	p := physics.TotalMomentum(bodies)
	com, mass := physics.CenterOfMass(bodies)

	c.speeds = c.speeds[:0]
	for _, b := range bodies {
		c.speeds = append(c.speeds, r2.Norm(b.Vel))
	}
	speed := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   step,
		SimDays:         float64(step) * c.dtDays,

		BodyCount: len(bodies),
		TotalMass: mass,

		Placements: c.placements,
		Collisions: c.collisions,
		Resets:     c.resets,

		Kinetic:     ke,
		Potential:   pe,
		TotalEnergy: total,
		EnergyDrift: drift,
		MomentumX:   p.X,
		MomentumY:   p.Y,
		ComX:        com.X / c.au,
		ComY:        com.Y / c.au,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,
	}

	// Reset for next window
	c.windowStartStep = step
	c.placements = 0
	c.collisions = 0
	c.resets = 0

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int64 {
	return c.windowSteps
}

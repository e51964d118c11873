// Package telemetry provides window statistics, performance timing and CSV
// output for the simulation.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPlaced EventType = iota
	EventCollision
	EventReset
	EventCollisionsToggled
	EventPaused
	EventResumed
)

var eventNames = [...]string{
	EventPlaced:            "placed",
	EventCollision:         "collision",
	EventReset:             "reset",
	EventCollisionsToggled: "collisions_toggled",
	EventPaused:            "paused",
	EventResumed:           "resumed",
}

// String returns the event name used in logs and CSV output.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType `csv:"-"`
	Name    string    `csv:"event"`
	Step    int64     `csv:"step"`
	SimDays float64   `csv:"sim_days"`

	// Optional fields depending on event type
	EntityID uint32  `csv:"entity"`
	TargetID uint32  `csv:"target"`  // second body in a collision
	Value    float64 `csv:"value"`   // mass for placements, separation for collisions
	Flag     bool    `csv:"flag"`    // new state for toggles
}

func newEvent(t EventType, step int64, simDays float64) Event {
	return Event{Type: t, Name: t.String(), Step: step, SimDays: simDays}
}

// NewPlacedEvent creates a body placement event.
func NewPlacedEvent(step int64, simDays float64, entityID uint32, mass float64) Event {
	e := newEvent(EventPlaced, step, simDays)
	e.EntityID = entityID
	e.Value = mass
	return e
}

// NewCollisionEvent creates a collision event between two bodies.
func NewCollisionEvent(step int64, simDays float64, a, b uint32, distance float64) Event {
	e := newEvent(EventCollision, step, simDays)
	e.EntityID = a
	e.TargetID = b
	e.Value = distance
	return e
}

// NewResetEvent creates a reset event. removed is the number of bodies cleared.
func NewResetEvent(step int64, simDays float64, removed int) Event {
	e := newEvent(EventReset, step, simDays)
	e.Value = float64(removed)
	return e
}

// NewCollisionsToggledEvent records the new collision-halt setting.
func NewCollisionsToggledEvent(step int64, simDays float64, halt bool) Event {
	e := newEvent(EventCollisionsToggled, step, simDays)
	e.Flag = halt
	return e
}

// NewPauseEvent records a pause or resume.
func NewPauseEvent(step int64, simDays float64, paused bool) Event {
	t := EventResumed
	if paused {
		t = EventPaused
	}
	e := newEvent(t, step, simDays)
	e.Flag = paused
	return e
}

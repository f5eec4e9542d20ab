package timekeeper

import "time"

// State represents the current TimeKeeper mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventReset       EventType = "reset"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed time.Duration
	Display string
	At      time.Time
}

// Snapshot is a consistent view of the stopwatch at one instant.
type Snapshot struct {
	State   State
	Elapsed time.Duration
	At      time.Time
}

// Running reports whether the snapshot was taken while ticking.
func (snapshot Snapshot) Running() bool {
	return snapshot.State == StateRunning
}

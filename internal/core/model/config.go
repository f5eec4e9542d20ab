package model

import "time"

// Pulse identifies a haptic feedback pattern.
type Pulse string

const (
	PulseStart        Pulse = "start"
	PulseNotification Pulse = "notification"
)

// StopwatchConfig contains runtime settings for the TimeKeeper state machine.
type StopwatchConfig struct {
	TickInterval time.Duration
}

// RotaryConfig controls how rotary crown samples are coalesced.
type RotaryConfig struct {
	Threshold float64
	Debounce  time.Duration
}

// GestureConfig defines press and tap timing windows.
type GestureConfig struct {
	ShortPress      time.Duration
	LongPress       time.Duration
	DoubleTapWindow time.Duration
}

// DefaultStopwatchConfig returns the 10ms display refresh used by the face.
func DefaultStopwatchConfig() StopwatchConfig {
	return StopwatchConfig{TickInterval: 10 * time.Millisecond}
}

// DefaultRotaryConfig returns the crown threshold and debounce window.
func DefaultRotaryConfig() RotaryConfig {
	return RotaryConfig{
		Threshold: 24.0,
		Debounce:  500 * time.Millisecond,
	}
}

// DefaultGestureConfig returns press and tap windows.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		ShortPress:      500 * time.Millisecond,
		LongPress:       1500 * time.Millisecond,
		DoubleTapWindow: 300 * time.Millisecond,
	}
}

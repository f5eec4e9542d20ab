package platform

import (
	"sync"
	"time"

	"talkwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Toner plays a short tone without blocking.
type Toner interface {
	Tone(frequency float64, duration time.Duration)
}

type pattern struct {
	frequency float64
	duration  time.Duration
}

var pulsePatterns = map[model.Pulse]pattern{
	model.PulseStart:        {frequency: 880, duration: 40 * time.Millisecond},
	model.PulseNotification: {frequency: 660, duration: 60 * time.Millisecond},
}

const pulseGap = 80 * time.Millisecond

// Haptics renders pulses as audible clicks on hardware without a vibration
// motor. Consecutive pulses are spaced so a double pulse stays distinct.
type Haptics struct {
	mu      sync.Mutex
	toner   Toner
	clock   clockwork.Clock
	logger  *zap.SugaredLogger
	enabled bool
	nextAt  time.Time
}

// NewHaptics creates enabled haptics playing through toner.
func NewHaptics(toner Toner, clock clockwork.Clock, logger *zap.SugaredLogger) *Haptics {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Haptics{
		toner:   toner,
		clock:   clock,
		logger:  logger,
		enabled: true,
	}
}

// SetEnabled turns pulses on or off.
func (haptics *Haptics) SetEnabled(enabled bool) {
	haptics.mu.Lock()
	defer haptics.mu.Unlock()
	haptics.enabled = enabled
}

// Pulse schedules the pattern for kind after any pulse still playing.
func (haptics *Haptics) Pulse(kind model.Pulse) {
	shape, ok := pulsePatterns[kind]
	if !ok {
		return
	}

	haptics.mu.Lock()
	if !haptics.enabled || haptics.toner == nil {
		haptics.mu.Unlock()
		return
	}
	now := haptics.clock.Now()
	startAt := now
	if haptics.nextAt.After(now) {
		startAt = haptics.nextAt
	}
	haptics.nextAt = startAt.Add(shape.duration + pulseGap)
	toner := haptics.toner
	haptics.mu.Unlock()

	if haptics.logger != nil {
		haptics.logger.Debugw("Haptic pulse", "kind", kind, "delay", startAt.Sub(now).String())
	}

	if delay := startAt.Sub(now); delay > 0 {
		haptics.clock.AfterFunc(delay, func() {
			toner.Tone(shape.frequency, shape.duration)
		})
		return
	}
	toner.Tone(shape.frequency, shape.duration)
}

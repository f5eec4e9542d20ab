package rotary

import (
	"math"
	"sync"

	"talkwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
)

// Stats counts accumulator activity since creation.
type Stats struct {
	Samples  uint64
	Flushes  uint64
	Triggers uint64
}

// Accumulator turns absolute crown positions into signed deltas and, once
// the crown has been idle for the debounce window, raises the announce
// trigger if the coalesced rotation reached the threshold.
type Accumulator struct {
	mu           sync.Mutex
	config       model.RotaryConfig
	clock        clockwork.Clock
	announce     func()
	lastPosition float64
	cumulative   float64
	pending      clockwork.Timer
	generation   uint64
	stats        Stats
	closed       bool
}

// New creates an Accumulator at rest. announce is called from the flush
// timer goroutine.
func New(config model.RotaryConfig, clock clockwork.Clock, announce func()) *Accumulator {
	defaults := model.DefaultRotaryConfig()
	if config.Threshold <= 0 {
		config.Threshold = defaults.Threshold
	}
	if config.Debounce <= 0 {
		config.Debounce = defaults.Debounce
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Accumulator{
		config:   config,
		clock:    clock,
		announce: announce,
	}
}

// OnSample records a new absolute crown position and reschedules the flush.
func (accumulator *Accumulator) OnSample(position float64) {
	accumulator.mu.Lock()
	defer accumulator.mu.Unlock()
	if accumulator.closed {
		return
	}

	delta := position - accumulator.lastPosition
	accumulator.lastPosition = position
	accumulator.cumulative += delta
	accumulator.stats.Samples++

	if accumulator.pending != nil {
		accumulator.pending.Stop()
	}
	accumulator.generation++
	generation := accumulator.generation
	accumulator.pending = accumulator.clock.AfterFunc(accumulator.config.Debounce, func() {
		accumulator.flush(generation)
	})
}

// UpdateConfig replaces threshold and debounce for subsequent samples.
func (accumulator *Accumulator) UpdateConfig(config model.RotaryConfig) {
	defaults := model.DefaultRotaryConfig()
	if config.Threshold <= 0 {
		config.Threshold = defaults.Threshold
	}
	if config.Debounce <= 0 {
		config.Debounce = defaults.Debounce
	}
	accumulator.mu.Lock()
	accumulator.config = config
	accumulator.mu.Unlock()
}

// CumulativeDelta returns the signed rotation since the last flush.
func (accumulator *Accumulator) CumulativeDelta() float64 {
	accumulator.mu.Lock()
	defer accumulator.mu.Unlock()
	return accumulator.cumulative
}

// LastPosition returns the most recent absolute sample.
func (accumulator *Accumulator) LastPosition() float64 {
	accumulator.mu.Lock()
	defer accumulator.mu.Unlock()
	return accumulator.lastPosition
}

// Pending reports whether a flush is scheduled.
func (accumulator *Accumulator) Pending() bool {
	accumulator.mu.Lock()
	defer accumulator.mu.Unlock()
	return accumulator.pending != nil
}

// Stats returns activity counters.
func (accumulator *Accumulator) Stats() Stats {
	accumulator.mu.Lock()
	defer accumulator.mu.Unlock()
	return accumulator.stats
}

// Close cancels any pending flush and ignores further samples.
func (accumulator *Accumulator) Close() {
	accumulator.mu.Lock()
	defer accumulator.mu.Unlock()
	accumulator.closed = true
	if accumulator.pending != nil {
		accumulator.pending.Stop()
		accumulator.pending = nil
	}
	accumulator.generation++
}

func (accumulator *Accumulator) flush(generation uint64) {
	accumulator.mu.Lock()
	if generation != accumulator.generation {
		accumulator.mu.Unlock()
		return
	}
	fire := math.Abs(accumulator.cumulative) >= accumulator.config.Threshold
	accumulator.cumulative = 0
	accumulator.pending = nil
	if fire {
		accumulator.stats.Triggers++
	}
	announce := accumulator.announce
	accumulator.mu.Unlock()

	if fire && announce != nil {
		announce()
	}

	accumulator.mu.Lock()
	accumulator.stats.Flushes++
	accumulator.mu.Unlock()
}

package timekeeper

import (
	"sync"
	"time"

	"talkwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
)

// Haptics delivers tactile feedback for stopwatch transitions.
type Haptics interface {
	Pulse(kind model.Pulse)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	Clock   clockwork.Clock
	Haptics Haptics
}

// TimeKeeper is the start/stop/reset state machine that owns elapsed time.
// While running, elapsed is always derived from a fixed anchor so the
// periodic tick cannot accumulate interval error.
type TimeKeeper struct {
	mu      sync.Mutex
	config  model.StopwatchConfig
	clock   clockwork.Clock
	haptics Haptics
	state   State
	elapsed time.Duration
	anchor  time.Time
	events  []chan Event
	stopCh  chan struct{}
	closed  bool
}

// New creates a TimeKeeper at rest.
func New(config model.StopwatchConfig, options Config) *TimeKeeper {
	if config.TickInterval <= 0 {
		config.TickInterval = model.DefaultStopwatchConfig().TickInterval
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	return &TimeKeeper{
		config:  config,
		clock:   options.Clock,
		haptics: options.Haptics,
		state:   StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start anchors elapsed time to now and begins ticking. It is a no-op while
// already running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.closed || keeper.state == StateRunning {
		keeper.mu.Unlock()
		return
	}
	now := keeper.clock.Now()
	keeper.anchor = now.Add(-keeper.elapsed)
	keeper.state = StateRunning
	stopCh := make(chan struct{})
	keeper.stopCh = stopCh
	ticker := keeper.clock.NewTicker(keeper.config.TickInterval)

	keeper.emitLocked(Event{
		Type:    EventStateChange,
		State:   StateRunning,
		Elapsed: keeper.elapsed,
		Display: FormatDisplay(keeper.elapsed),
		At:      now,
	})
	keeper.mu.Unlock()

	keeper.pulse(model.PulseStart)
	go keeper.run(ticker, stopCh)
}

// Stop cancels ticking and freezes elapsed time. It is a no-op while idle.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state != StateRunning {
		return
	}
	now := keeper.stopLocked()

	keeper.emitLocked(Event{
		Type:    EventStateChange,
		State:   StateIdle,
		Elapsed: keeper.elapsed,
		Display: FormatDisplay(keeper.elapsed),
		At:      now,
	})
}

// Reset stops the stopwatch and zeroes elapsed time from either state.
func (keeper *TimeKeeper) Reset() {
	keeper.Stop()

	keeper.mu.Lock()
	keeper.elapsed = 0
	closed := keeper.closed
	keeper.emitLocked(Event{
		Type:    EventReset,
		State:   StateIdle,
		Display: FormatDisplay(0),
		At:      keeper.clock.Now(),
	})
	keeper.mu.Unlock()

	if closed {
		return
	}
	keeper.pulse(model.PulseNotification)
	keeper.pulse(model.PulseNotification)
}

// Close stops ticking and closes all observers. The TimeKeeper ignores
// further transitions.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	if keeper.state == StateRunning {
		keeper.stopLocked()
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Elapsed returns elapsed time as of now.
func (keeper *TimeKeeper) Elapsed() time.Duration {
	return keeper.Snapshot().Elapsed
}

// IsRunning reports whether the stopwatch is ticking.
func (keeper *TimeKeeper) IsRunning() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state == StateRunning
}

// Snapshot returns state and elapsed time sampled together.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	now := keeper.clock.Now()
	return Snapshot{
		State:   keeper.state,
		Elapsed: keeper.elapsedLocked(now),
		At:      now,
	}
}

// FormattedDisplay renders the current elapsed time as MM:SS.CC.
func (keeper *TimeKeeper) FormattedDisplay() string {
	return FormatDisplay(keeper.Elapsed())
}

// FormattedSpoken renders the current elapsed time as a spoken phrase.
func (keeper *TimeKeeper) FormattedSpoken() string {
	return FormatSpoken(keeper.Elapsed())
}

func (keeper *TimeKeeper) run(ticker clockwork.Ticker, stopCh chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			keeper.tick(stopCh)
		}
	}
}

func (keeper *TimeKeeper) tick(stopCh chan struct{}) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	// A tick that raced with Stop or a restart belongs to a dead run.
	if keeper.state != StateRunning || keeper.stopCh != stopCh {
		return
	}

	now := keeper.clock.Now()
	keeper.elapsed = keeper.elapsedLocked(now)
	keeper.emitLocked(Event{
		Type:    EventTick,
		State:   StateRunning,
		Elapsed: keeper.elapsed,
		Display: FormatDisplay(keeper.elapsed),
		At:      now,
	})
}

func (keeper *TimeKeeper) stopLocked() time.Time {
	now := keeper.clock.Now()
	keeper.elapsed = keeper.elapsedLocked(now)
	keeper.anchor = time.Time{}
	keeper.state = StateIdle
	close(keeper.stopCh)
	keeper.stopCh = nil
	return now
}

func (keeper *TimeKeeper) elapsedLocked(now time.Time) time.Duration {
	if keeper.state != StateRunning {
		return keeper.elapsed
	}
	elapsed := now.Sub(keeper.anchor)
	if elapsed < keeper.elapsed {
		return keeper.elapsed
	}
	return elapsed
}

func (keeper *TimeKeeper) pulse(kind model.Pulse) {
	if keeper.haptics != nil {
		keeper.haptics.Pulse(kind)
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

package gesture

import (
	"sync"
	"time"

	"talkwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
)

// Kind names a recognised gesture.
type Kind string

const (
	KindShortPress Kind = "long_press_short"
	KindLongPress  Kind = "long_press_long"
	KindDoubleTap  Kind = "double_tap"
)

// Handlers receives recognised gestures. Nil handlers are skipped.
type Handlers struct {
	OnStart     func()
	OnReset     func()
	OnDoubleTap func()
}

// Classifier turns raw press and release events into stopwatch gestures.
type Classifier struct {
	mu         sync.Mutex
	config     model.GestureConfig
	clock      clockwork.Clock
	handlers   Handlers
	pressing   bool
	pressedAt  time.Time
	longTimer  clockwork.Timer
	longFired  bool
	generation uint64
	tapPending bool
	lastTapAt  time.Time
}

// New creates a Classifier.
func New(config model.GestureConfig, clock clockwork.Clock, handlers Handlers) *Classifier {
	defaults := model.DefaultGestureConfig()
	if config.ShortPress <= 0 {
		config.ShortPress = defaults.ShortPress
	}
	if config.LongPress <= config.ShortPress {
		config.LongPress = config.ShortPress + defaults.LongPress - defaults.ShortPress
	}
	if config.DoubleTapWindow <= 0 {
		config.DoubleTapWindow = defaults.DoubleTapWindow
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Classifier{
		config:   config,
		clock:    clock,
		handlers: handlers,
	}
}

// Press records the pointer going down. The long press fires as soon as the
// hold window elapses.
func (classifier *Classifier) Press() {
	classifier.mu.Lock()
	defer classifier.mu.Unlock()
	if classifier.pressing {
		return
	}
	classifier.pressing = true
	classifier.pressedAt = classifier.clock.Now()
	classifier.longFired = false
	classifier.generation++
	generation := classifier.generation
	classifier.longTimer = classifier.clock.AfterFunc(classifier.config.LongPress, func() {
		classifier.holdElapsed(generation)
	})
}

// Release records the pointer going up and reports the gesture it completed.
func (classifier *Classifier) Release() (Kind, bool) {
	classifier.mu.Lock()
	if !classifier.pressing {
		classifier.mu.Unlock()
		return "", false
	}
	now := classifier.clock.Now()
	held := now.Sub(classifier.pressedAt)
	longFired := classifier.longFired
	classifier.endPressLocked()

	var kind Kind
	switch {
	case longFired:
		classifier.mu.Unlock()
		return "", false
	case held >= classifier.config.LongPress:
		kind = KindLongPress
		classifier.tapPending = false
	case held >= classifier.config.ShortPress:
		kind = KindShortPress
		classifier.tapPending = false
	case classifier.tapPending && now.Sub(classifier.lastTapAt) <= classifier.config.DoubleTapWindow:
		kind = KindDoubleTap
		classifier.tapPending = false
	default:
		classifier.tapPending = true
		classifier.lastTapAt = now
		classifier.mu.Unlock()
		return "", false
	}
	classifier.mu.Unlock()

	classifier.dispatch(kind)
	return kind, true
}

// Cancel abandons an in-progress press, for example when the pointer leaves
// the face.
func (classifier *Classifier) Cancel() {
	classifier.mu.Lock()
	defer classifier.mu.Unlock()
	if classifier.pressing {
		classifier.endPressLocked()
	}
	classifier.tapPending = false
}

func (classifier *Classifier) holdElapsed(generation uint64) {
	classifier.mu.Lock()
	if !classifier.pressing || generation != classifier.generation {
		classifier.mu.Unlock()
		return
	}
	classifier.longFired = true
	classifier.tapPending = false
	classifier.mu.Unlock()

	classifier.dispatch(KindLongPress)
}

func (classifier *Classifier) endPressLocked() {
	classifier.pressing = false
	classifier.generation++
	if classifier.longTimer != nil {
		classifier.longTimer.Stop()
		classifier.longTimer = nil
	}
}

func (classifier *Classifier) dispatch(kind Kind) {
	var handler func()
	switch kind {
	case KindShortPress:
		handler = classifier.handlers.OnStart
	case KindLongPress:
		handler = classifier.handlers.OnReset
	case KindDoubleTap:
		handler = classifier.handlers.OnDoubleTap
	}
	if handler != nil {
		handler()
	}
}

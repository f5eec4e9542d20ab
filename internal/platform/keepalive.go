package platform

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrInhibitUnsupported indicates the OS offers no way to stay awake.
	ErrInhibitUnsupported = errors.New("keep-alive unsupported")
	// ErrSessionInvalid indicates a released keep-alive session was reused.
	ErrSessionInvalid = errors.New("keep-alive session invalidated")
)

// KeepAliveState is the lifecycle of an extended runtime session.
type KeepAliveState string

const (
	KeepAliveIdle    KeepAliveState = "idle"
	KeepAliveRunning KeepAliveState = "running"
	KeepAliveInvalid KeepAliveState = "invalid"
)

// KeepAliveEvent reports a session transition. Events are informational.
type KeepAliveEvent struct {
	State KeepAliveState
	Err   error
	At    time.Time
}

// Inhibitor prevents the display from sleeping until release is called.
type Inhibitor interface {
	Inhibit(reason string) (release func() error, err error)
}

// KeepAlive keeps the watch face awake while it is visible. A session is
// acquired once and, after release, cannot be reused.
type KeepAlive struct {
	mu        sync.Mutex
	inhibitor Inhibitor
	reason    string
	state     KeepAliveState
	release   func() error
	events    chan KeepAliveEvent
}

// NewKeepAlive creates an idle session. A nil inhibitor selects the
// platform implementation.
func NewKeepAlive(inhibitor Inhibitor, reason string) *KeepAlive {
	if inhibitor == nil {
		inhibitor = newInhibitor()
	}
	return &KeepAlive{
		inhibitor: inhibitor,
		reason:    reason,
		state:     KeepAliveIdle,
		events:    make(chan KeepAliveEvent, 8),
	}
}

// Events returns session notifications. Slow readers miss events.
func (session *KeepAlive) Events() <-chan KeepAliveEvent {
	return session.events
}

// State returns the current lifecycle state.
func (session *KeepAlive) State() KeepAliveState {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// Acquire starts inhibiting sleep.
func (session *KeepAlive) Acquire() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	switch session.state {
	case KeepAliveRunning:
		return nil
	case KeepAliveInvalid:
		return ErrSessionInvalid
	}

	release, err := session.inhibitor.Inhibit(session.reason)
	if err != nil {
		session.state = KeepAliveInvalid
		session.notifyLocked(err)
		return fmt.Errorf("acquire keep-alive: %w", err)
	}
	session.release = release
	session.state = KeepAliveRunning
	session.notifyLocked(nil)
	return nil
}

// Release stops inhibiting sleep and invalidates the session.
func (session *KeepAlive) Release() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state == KeepAliveInvalid {
		return nil
	}

	var err error
	if session.release != nil {
		err = session.release()
		session.release = nil
	}
	session.state = KeepAliveInvalid
	session.notifyLocked(err)
	if err != nil {
		return fmt.Errorf("release keep-alive: %w", err)
	}
	return nil
}

func (session *KeepAlive) notifyLocked(err error) {
	select {
	case session.events <- KeepAliveEvent{State: session.state, Err: err, At: time.Now()}:
	default:
	}
}

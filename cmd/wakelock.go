package main

import (
	"sync"

	"talkwatch/internal/platform"

	"go.uber.org/zap"
)

const keepAliveReason = "stopwatch visible"

// wakeLock holds a keep-alive session while the face is on screen. Released
// sessions cannot be reused, so each acquisition opens a new one.
type wakeLock struct {
	mu      sync.Mutex
	logger  *zap.SugaredLogger
	enabled bool
	session *platform.KeepAlive
}

func newWakeLock(enabled bool, logger *zap.SugaredLogger) *wakeLock {
	return &wakeLock{enabled: enabled, logger: logger}
}

func (lock *wakeLock) Acquire() {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.enabled || lock.session != nil {
		return
	}

	session := platform.NewKeepAlive(nil, keepAliveReason)
	go lock.logEvents(session.Events())
	if err := session.Acquire(); err != nil {
		lock.logger.Warnw("Keep-alive unavailable", "error", err)
		return
	}
	lock.session = session
}

func (lock *wakeLock) Release() {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.session == nil {
		return
	}
	if err := lock.session.Release(); err != nil {
		lock.logger.Warnw("Keep-alive release failed", "error", err)
	}
	lock.session = nil
}

func (lock *wakeLock) SetEnabled(enabled bool) {
	lock.mu.Lock()
	lock.enabled = enabled
	lock.mu.Unlock()

	if enabled {
		lock.Acquire()
		return
	}
	lock.Release()
}

func (lock *wakeLock) logEvents(events <-chan platform.KeepAliveEvent) {
	for event := range events {
		if event.Err != nil {
			lock.logger.Debugw("Keep-alive session", "state", event.State, "error", event.Err)
		} else {
			lock.logger.Debugw("Keep-alive session", "state", event.State)
		}
		if event.State == platform.KeepAliveInvalid {
			return
		}
	}
}

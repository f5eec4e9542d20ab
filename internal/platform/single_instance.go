package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another stopwatch already holds the lock.
var ErrAlreadyRunning = errors.New("stopwatch already running")

const (
	minGuardPort = 20000
	maxGuardPort = 39999
)

// InstanceGuard holds the single-instance lock for one stopwatch per user
// session.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", GuardPort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// GuardPort returns the deterministic port used for appName.
func GuardPort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return minGuardPort + int(hash.Sum32()%uint32(maxGuardPort-minGuardPort+1))
}

package platform

import (
	"fmt"
	"syscall"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

type executionStateInhibitor struct{}

func newInhibitor() Inhibitor {
	return executionStateInhibitor{}
}

func (executionStateInhibitor) Inhibit(string) (func() error, error) {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	setState := kernel32.NewProc("SetThreadExecutionState")
	if err := setState.Find(); err != nil {
		return nil, fmt.Errorf("find SetThreadExecutionState: %w", ErrInhibitUnsupported)
	}

	result, _, err := setState.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired))
	if result == 0 {
		return nil, fmt.Errorf("set thread execution state: %w", err)
	}

	return func() error {
		result, _, err := setState.Call(uintptr(esContinuous))
		if result == 0 {
			return fmt.Errorf("clear thread execution state: %w", err)
		}
		return nil
	}, nil
}

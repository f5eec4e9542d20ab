//go:build linux || darwin

package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

type commandInhibitor struct {
	name string
	args func(reason string) []string
}

func (inhibitor commandInhibitor) Inhibit(reason string) (func() error, error) {
	path, err := exec.LookPath(inhibitor.name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inhibitor.name, ErrInhibitUnsupported)
	}

	cmd := exec.Command(path, inhibitor.args(reason)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", inhibitor.name, err)
	}

	return func() error {
		if err := cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
			_ = cmd.Process.Kill()
		}
		// The inhibitor exits non-zero when interrupted.
		_ = cmd.Wait()
		return nil
	}, nil
}

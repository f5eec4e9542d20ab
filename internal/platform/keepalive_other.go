//go:build !linux && !darwin && !windows

package platform

type unsupportedInhibitor struct{}

func newInhibitor() Inhibitor {
	return unsupportedInhibitor{}
}

func (unsupportedInhibitor) Inhibit(string) (func() error, error) {
	return nil, ErrInhibitUnsupported
}

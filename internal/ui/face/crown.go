package face

import "sync"

// defaultNotch is the scroll distance, in pixels, treated as one crown unit.
const defaultNotch = 4.0

// Crown integrates relative scroll deltas into an absolute crown position.
type Crown struct {
	mu       sync.Mutex
	notch    float64
	position float64
}

// NewCrown creates a crown at position zero. notch is the scroll distance
// per crown unit; non-positive values use the default.
func NewCrown(notch float64) *Crown {
	if notch <= 0 {
		notch = defaultNotch
	}
	return &Crown{notch: notch}
}

// Turn applies a scroll delta and returns the new absolute position.
func (crown *Crown) Turn(dx, dy float32) float64 {
	delta := float64(dy)
	if delta == 0 {
		delta = float64(dx)
	}
	crown.mu.Lock()
	defer crown.mu.Unlock()
	crown.position += delta / crown.notch
	return crown.position
}

// Position returns the absolute crown position.
func (crown *Crown) Position() float64 {
	crown.mu.Lock()
	defer crown.mu.Unlock()
	return crown.position
}

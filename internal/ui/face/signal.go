package face

import (
	"image/color"
	"time"
)

var (
	colorAtRest   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorRunning  = color.NRGBA{R: 64, G: 214, B: 92, A: 255}
	colorStopped  = color.NRGBA{R: 235, G: 72, B: 64, A: 255}
	colorBackdrop = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colorHint     = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
)

// Signal returns the display colour for a stopwatch state: white at zero,
// green while running and red when stopped with time on the clock.
func Signal(running bool, elapsed time.Duration) color.Color {
	switch {
	case elapsed == 0:
		return colorAtRest
	case running:
		return colorRunning
	default:
		return colorStopped
	}
}

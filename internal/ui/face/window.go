package face

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Config defines face visuals.
type Config struct {
	Title   string
	Compact bool
	Hint    string

	// HideOnClose keeps the face alive behind a tray menu. Without it the
	// face is the master window and closing it quits the app.
	HideOnClose bool
}

const (
	compactSide  = float32(220)
	expandedSide = float32(360)
)

// Window is the single stopwatch screen.
type Window struct {
	window     fyne.Window
	config     Config
	display    *canvas.Text
	hint       *canvas.Text
	background *canvas.Rectangle
	crown      *Crown
	onClosed   func()
}

// New creates the face window. Presses are forwarded to pointer and every
// crown movement reports the new absolute position to onCrown.
func New(app fyne.App, config Config, pointer Pointer, onCrown func(position float64)) *Window {
	if config.Title == "" {
		config.Title = "Stopwatch"
	}
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(colorBackdrop)

	display := canvas.NewText("00:00.00", colorAtRest)
	display.Alignment = fyne.TextAlignCenter
	display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	hint := canvas.NewText(config.Hint, colorHint)
	hint.Alignment = fyne.TextAlignCenter

	crown := NewCrown(0)
	input := newSurface(pointer, func(dx, dy float32) {
		position := crown.Turn(dx, dy)
		if onCrown != nil {
			onCrown(position)
		}
	})

	content := container.New(&faceLayout{}, display, hint)
	window.SetContent(container.NewStack(background, content, input))

	face := &Window{
		window:     window,
		config:     config,
		display:    display,
		hint:       hint,
		background: background,
		crown:      crown,
	}
	face.applySize()
	if config.HideOnClose {
		window.SetCloseIntercept(func() {
			window.Hide()
			face.notifyClosed()
		})
	} else {
		window.SetMaster()
		window.SetOnClosed(face.notifyClosed)
	}
	return face
}

// Show displays the face.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// ShowAndRun displays the face and runs the application loop.
func (face *Window) ShowAndRun() {
	face.window.ShowAndRun()
}

// SetOnClosed sets the handler run when the face is closed or hidden.
func (face *Window) SetOnClosed(handler func()) {
	face.onClosed = handler
}

// SetDisplay schedules a display refresh on the UI goroutine.
func (face *Window) SetDisplay(text string, running bool, elapsed time.Duration) {
	fyne.Do(func() {
		face.applyDisplay(text, Signal(running, elapsed))
	})
}

func (face *Window) notifyClosed() {
	if face.onClosed != nil {
		face.onClosed()
	}
}

// Close closes the face window.
func (face *Window) Close() {
	face.window.Close()
}

func (face *Window) applyDisplay(text string, signal color.Color) {
	if face.display.Text == text && face.display.Color == signal {
		return
	}
	face.display.Text = text
	face.display.Color = signal
	face.display.Refresh()
}

func (face *Window) applySize() {
	side := expandedSide
	if face.config.Compact {
		side = compactSide
	}
	face.display.TextSize = side / 6
	face.hint.TextSize = side / 22
	face.window.Resize(fyne.NewSize(side, side))
	face.window.SetFixedSize(true)
}

// faceLayout centres the display and keeps the hint along the bottom edge.
type faceLayout struct{}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	display := objects[0]
	hint := objects[1]

	pad := size.Height * 0.06
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	displaySize := display.MinSize()
	displayY := (size.Height - displaySize.Height) / 2
	if displayY < 0 {
		displayY = 0
	}
	display.Move(fyne.NewPos(pad, displayY))
	display.Resize(fyne.NewSize(availableWidth, displaySize.Height))

	hintSize := hint.MinSize()
	hintY := size.Height - pad - hintSize.Height
	if hintY < displayY+displaySize.Height {
		hintY = displayY + displaySize.Height
	}
	hint.Move(fyne.NewPos(pad, hintY))
	hint.Resize(fyne.NewSize(availableWidth, hintSize.Height))
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	displaySize := objects[0].MinSize()
	hintSize := objects[1].MinSize()

	width := displaySize.Width
	if hintSize.Width > width {
		width = hintSize.Width
	}
	return fyne.NewSize(width+20, displaySize.Height+hintSize.Height+20)
}

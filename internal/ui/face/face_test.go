package face

import (
	"testing"
	"time"

	"talkwatch/internal/core/gesture"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePointer struct {
	presses  int
	releases int
	cancels  int
}

func (pointer *fakePointer) Press() { pointer.presses++ }

func (pointer *fakePointer) Release() (gesture.Kind, bool) {
	pointer.releases++
	return "", false
}

func (pointer *fakePointer) Cancel() { pointer.cancels++ }

func TestSignal(t *testing.T) {
	assert.Equal(t, colorAtRest, Signal(false, 0))
	assert.Equal(t, colorAtRest, Signal(true, 0))
	assert.Equal(t, colorRunning, Signal(true, time.Second))
	assert.Equal(t, colorStopped, Signal(false, time.Second))
}

func TestCrown_IntegratesScrollIntoPosition(t *testing.T) {
	crown := NewCrown(2)

	assert.Equal(t, 5.0, crown.Turn(0, 10))
	assert.Equal(t, 2.0, crown.Turn(0, -6))
	assert.Equal(t, 3.0, crown.Turn(2, 0))
	assert.Equal(t, 3.0, crown.Position())

	assert.Equal(t, defaultNotch, NewCrown(0).notch)
}

func TestSurface_ForwardsPrimaryButtonOnly(t *testing.T) {
	pointer := &fakePointer{}
	layer := newSurface(pointer, nil)

	layer.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonSecondary})
	layer.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	layer.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	layer.MouseOut()

	assert.Equal(t, 1, pointer.presses)
	assert.Equal(t, 1, pointer.releases)
	assert.Equal(t, 1, pointer.cancels)
}

func TestWindow_ScrollReportsCrownPosition(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var positions []float64
	face := New(app, Config{Compact: true}, &fakePointer{}, func(position float64) {
		positions = append(positions, position)
	})

	stack, ok := face.window.Content().(*fyne.Container)
	require.True(t, ok)
	layer, ok := stack.Objects[2].(*surface)
	require.True(t, ok)

	layer.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 8}})
	layer.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 8}})

	assert.Equal(t, []float64{2, 4}, positions)
}

func TestWindow_ApplyDisplay(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	face := New(app, Config{}, &fakePointer{}, nil)

	face.applyDisplay("02:05.34", Signal(false, 125*time.Second))

	assert.Equal(t, "02:05.34", face.display.Text)
	assert.Equal(t, colorStopped, face.display.Color)
	assert.Equal(t, expandedSide/6, face.display.TextSize)
}

func TestFaceLayout_CentresDisplay(t *testing.T) {
	display := canvas.NewText("00:00.00", colorAtRest)
	display.TextSize = 30
	hint := canvas.NewText("hint", colorHint)

	(&faceLayout{}).Layout([]fyne.CanvasObject{display, hint}, fyne.NewSize(200, 200))

	assert.InDelta(t, (200-display.MinSize().Height)/2, display.Position().Y, 0.01)
	assert.Greater(t, hint.Position().Y, display.Position().Y)
}

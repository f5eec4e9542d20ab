package face

import (
	"image/color"

	"talkwatch/internal/core/gesture"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// Pointer receives raw press input from the surface.
type Pointer interface {
	Press()
	Release() (gesture.Kind, bool)
	Cancel()
}

// surface is a transparent layer over the face that captures presses,
// touches and scrolling.
type surface struct {
	widget.BaseWidget
	pointer  Pointer
	onScroll func(dx, dy float32)
}

var (
	_ desktop.Mouseable = (*surface)(nil)
	_ desktop.Hoverable = (*surface)(nil)
	_ mobile.Touchable  = (*surface)(nil)
	_ fyne.Scrollable   = (*surface)(nil)
)

func newSurface(pointer Pointer, onScroll func(dx, dy float32)) *surface {
	layer := &surface{pointer: pointer, onScroll: onScroll}
	layer.ExtendBaseWidget(layer)
	return layer
}

func (layer *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (layer *surface) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary && layer.pointer != nil {
		layer.pointer.Press()
	}
}

func (layer *surface) MouseUp(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary && layer.pointer != nil {
		layer.pointer.Release()
	}
}

func (layer *surface) MouseIn(*desktop.MouseEvent) {}

func (layer *surface) MouseMoved(*desktop.MouseEvent) {}

func (layer *surface) MouseOut() {
	if layer.pointer != nil {
		layer.pointer.Cancel()
	}
}

func (layer *surface) TouchDown(*mobile.TouchEvent) {
	if layer.pointer != nil {
		layer.pointer.Press()
	}
}

func (layer *surface) TouchUp(*mobile.TouchEvent) {
	if layer.pointer != nil {
		layer.pointer.Release()
	}
}

func (layer *surface) TouchCancel(*mobile.TouchEvent) {
	if layer.pointer != nil {
		layer.pointer.Cancel()
	}
}

func (layer *surface) Scrolled(event *fyne.ScrollEvent) {
	if layer.onScroll != nil {
		layer.onScroll(event.Scrolled.DX, event.Scrolled.DY)
	}
}

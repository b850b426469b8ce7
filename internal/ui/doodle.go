package ui

import (
	"image"
	"log"
	"sync"

	"DoodlePad/internal/export"
	"DoodlePad/internal/state"
	"DoodlePad/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// The host delivers a single pointer, so every gesture uses id 0.
const primaryPointer = 0

// DoodleWidget hosts a surface.Surface inside a fyne window. The raster
// generator keeps the surface sized to the widget in device pixels.
type DoodleWidget struct {
	widget.BaseWidget

	mu      sync.Mutex
	surface *surface.Surface
	raster  *canvas.Raster
	scale   float32 // device pixels per fyne unit
	dirty   bool

	statusBar *widget.Label
}

var _ fyne.Widget = (*DoodleWidget)(nil)
var _ fyne.Draggable = (*DoodleWidget)(nil)
var _ desktop.Mouseable = (*DoodleWidget)(nil)
var _ mobile.Touchable = (*DoodleWidget)(nil)

func NewDoodleWidget(opts surface.Options) *DoodleWidget {
	d := &DoodleWidget{
		surface:   surface.New(opts),
		scale:     1,
		statusBar: widget.NewLabel("Ready"),
	}
	d.surface.OnRedraw = func() { d.dirty = true }
	d.raster = canvas.NewRaster(d.draw)
	d.raster.ScaleMode = canvas.ImageScalePixels
	d.raster.SetMinSize(fyne.NewSize(300, 300))
	d.ExtendBaseWidget(d)
	return d
}

func (d *DoodleWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.raster)
}

// draw is the raster generator. w and h are in device pixels.
func (d *DoodleWidget) draw(w, h int) image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() { d.dirty = false }()

	if size := d.Size(); size.Width > 0 {
		d.scale = float32(w) / size.Width
	}
	if cw, ch := d.surface.Size(); cw != w || ch != h {
		if err := d.surface.Resize(w, h); err != nil {
			log.Printf("[CANVAS] resize: %v", err)
			return image.NewRGBA(image.Rect(0, 0, w, h))
		}
	}
	return d.surface.Render()
}

// with runs fn on the surface and schedules a repaint if the frame changed.
func (d *DoodleWidget) with(fn func(s *surface.Surface)) {
	d.mu.Lock()
	fn(d.surface)
	refresh := d.dirty
	d.dirty = false
	d.mu.Unlock()
	if refresh {
		d.raster.Refresh()
	}
}

func (d *DoodleWidget) sample(pos fyne.Position) surface.Sample {
	return surface.Sample{
		ID: primaryPointer,
		X:  float64(pos.X * d.scale),
		Y:  float64(pos.Y * d.scale),
	}
}

func (d *DoodleWidget) dispatch(action surface.Action, pos fyne.Position) {
	d.with(func(s *surface.Surface) {
		s.Dispatch(surface.Event{Action: action, Samples: []surface.Sample{d.sample(pos)}})
	})
}

func (d *DoodleWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		d.dispatch(surface.ActionDown, e.Position)
	}
}

func (d *DoodleWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		d.dispatch(surface.ActionUp, e.Position)
	}
}

func (d *DoodleWidget) Dragged(e *fyne.DragEvent) {
	d.dispatch(surface.ActionMove, e.Position)
}

// DragEnd commits the stroke when the release arrives without a MouseUp,
// which is the case for touch input. An extra up is a no-op.
func (d *DoodleWidget) DragEnd() {
	d.with(func(s *surface.Surface) {
		s.Dispatch(surface.Event{Action: surface.ActionUp, Samples: []surface.Sample{{ID: primaryPointer}}})
	})
}

func (d *DoodleWidget) TouchDown(e *mobile.TouchEvent) {
	d.dispatch(surface.ActionDown, e.Position)
}

func (d *DoodleWidget) TouchUp(e *mobile.TouchEvent) {
	d.dispatch(surface.ActionUp, e.Position)
}

func (d *DoodleWidget) TouchCancel(*mobile.TouchEvent) {
	d.with(func(s *surface.Surface) {
		s.Dispatch(surface.Event{Action: surface.ActionCancel})
	})
}

func (d *DoodleWidget) Clear() {
	d.with(func(s *surface.Surface) { s.Clear() })
}

func (d *DoodleWidget) SetColor(c state.ARGB) {
	d.with(func(s *surface.Surface) { s.SetColor(c) })
}

func (d *DoodleWidget) Color() (c state.ARGB) {
	d.with(func(s *surface.Surface) { c = s.Color() })
	return c
}

func (d *DoodleWidget) SetStrokeWidth(w float64) {
	d.with(func(s *surface.Surface) { s.SetWidth(w) })
}

func (d *DoodleWidget) StrokeWidth() (w float64) {
	d.with(func(s *surface.Surface) { w = s.Width() })
	return w
}

func (d *DoodleWidget) SetEraser(on bool) {
	d.with(func(s *surface.Surface) { s.SetEraser(on) })
}

func (d *DoodleWidget) Eraser() (on bool) {
	d.with(func(s *surface.Surface) { on = s.Eraser() })
	return on
}

// Save exports the drawing through o. The surface clears itself afterwards.
func (d *DoodleWidget) Save(o export.Opener) (name string, err error) {
	d.with(func(s *surface.Surface) { name, err = s.Export(o) })
	return name, err
}

// Snapshot returns the committed ink.
func (d *DoodleWidget) Snapshot() (img *image.RGBA) {
	d.with(func(s *surface.Surface) { img = s.Snapshot() })
	return img
}

func (d *DoodleWidget) StatusBar() *widget.Label { return d.statusBar }

func (d *DoodleWidget) SetStatus(text string) {
	log.Printf("[STATUS] %s", text)
	d.statusBar.SetText(text)
}

func (d *DoodleWidget) MouseIn(*desktop.MouseEvent)    {}
func (d *DoodleWidget) MouseOut()                      {}
func (d *DoodleWidget) MouseMoved(*desktop.MouseEvent) {}

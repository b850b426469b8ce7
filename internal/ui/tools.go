package ui

import (
	"fmt"
	"image/color"

	"DoodlePad/internal/export"
	"DoodlePad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.ARGB
	OnTapped func(state.ARGB)
}

func newColorSwatch(c state.ARGB, tapped func(state.ARGB)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

var palette = []state.ARGB{
	state.Black,
	state.NewARGB(255, 255, 0, 0),   // Red
	state.NewARGB(255, 0, 255, 0),   // Green
	state.NewARGB(255, 0, 0, 255),   // Blue
	state.NewARGB(255, 255, 255, 0), // Yellow
}

// colorPicker edits a colour channel by channel and previews the result.
type colorPicker struct {
	channels [4]*widget.Slider // alpha, red, green, blue
	preview  *canvas.Rectangle
}

func newColorPicker(initial state.ARGB) *colorPicker {
	p := &colorPicker{preview: canvas.NewRectangle(initial)}
	p.preview.SetMinSize(fyne.NewSize(200, 40))
	for i := range p.channels {
		s := widget.NewSlider(0, 255)
		s.Step = 1
		s.OnChanged = func(float64) { p.update() }
		p.channels[i] = s
	}
	p.Set(initial)
	return p
}

func (p *colorPicker) Set(c state.ARGB) {
	values := [4]uint8{c.A(), c.R(), c.G(), c.B()}
	for i, s := range p.channels {
		s.Value = float64(values[i])
		s.Refresh()
	}
	p.update()
}

func (p *colorPicker) Value() state.ARGB {
	var v [4]uint8
	for i, s := range p.channels {
		v[i] = uint8(s.Value)
	}
	return state.NewARGB(v[0], v[1], v[2], v[3])
}

func (p *colorPicker) update() {
	p.preview.FillColor = p.Value()
	p.preview.Refresh()
}

func (p *colorPicker) content() fyne.CanvasObject {
	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Alpha"), p.channels[0],
		widget.NewLabel("Red"), p.channels[1],
		widget.NewLabel("Green"), p.channels[2],
		widget.NewLabel("Blue"), p.channels[3],
	)
	return container.NewVBox(p.preview, form)
}

// widthPicker edits the stroke width and previews it as a line.
type widthPicker struct {
	slider  *widget.Slider
	label   *widget.Label
	preview *canvas.Line
}

func newWidthPicker(initial float64, ink state.ARGB) *widthPicker {
	p := &widthPicker{
		slider:  widget.NewSlider(1, 50),
		label:   widget.NewLabel(""),
		preview: canvas.NewLine(ink),
	}
	p.slider.Step = 1
	p.slider.OnChanged = func(float64) { p.update() }
	p.preview.Position1 = fyne.NewPos(10, 30)
	p.preview.Position2 = fyne.NewPos(190, 30)
	p.slider.Value = min(max(initial, 1), 50)
	p.update()
	return p
}

func (p *widthPicker) Value() float64 { return p.slider.Value }

func (p *widthPicker) update() {
	p.label.SetText(fmt.Sprintf("Width: %.0f", p.slider.Value))
	p.preview.StrokeWidth = float32(p.slider.Value)
	p.preview.Refresh()
}

func (p *widthPicker) content() fyne.CanvasObject {
	lane := container.NewWithoutLayout(p.preview)
	frame := container.New(layout.NewGridWrapLayout(fyne.NewSize(200, 60)), lane)
	return container.NewVBox(p.label, p.slider, frame)
}

func showColorDialog(d *DoodleWidget, win fyne.Window) {
	picker := newColorPicker(d.Color())
	dialog.ShowCustomConfirm("Pen color", "Set", "Cancel", picker.content(), func(ok bool) {
		if !ok {
			return
		}
		d.SetColor(picker.Value())
		d.SetStatus("Color Updated")
	}, win)
}

func showWidthDialog(d *DoodleWidget, win fyne.Window) {
	picker := newWidthPicker(d.StrokeWidth(), d.Color())
	dialog.ShowCustomConfirm("Stroke width", "Set", "Cancel", picker.content(), func(ok bool) {
		if ok {
			d.SetStrokeWidth(picker.Value())
		}
	}, win)
}

func setEraser(d *DoodleWidget, on bool) {
	d.SetEraser(on)
	if on {
		d.SetStatus("Eraser On")
	} else {
		d.SetStatus("Eraser Off")
	}
}

// --- The Main Toolbar ---
func NewToolbar(d *DoodleWidget, win fyne.Window, sink export.Opener) fyne.CanvasObject {
	// toolbar with built-in tooltips
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { showColorDialog(d, win) }),
		widget.NewToolbarAction(theme.MoreHorizontalIcon(), func() { showWidthDialog(d, win) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), d.Clear),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { saveDoodle(d, sink) }),
	)

	eraser := widget.NewCheck("Eraser", func(on bool) { setEraser(d, on) })
	eraser.Checked = d.Eraser()

	// --- Color Palette ---
	onColorTapped := func(c state.ARGB) {
		d.SetColor(c)
		d.SetStatus("Color Updated")
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		eraser,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		layout.NewSpacer(),
		d.StatusBar(),
	)
}

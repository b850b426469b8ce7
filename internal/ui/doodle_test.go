package ui

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"DoodlePad/internal/export"
	"DoodlePad/internal/state"
	"DoodlePad/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget(t *testing.T, size fyne.Size, pixels image.Point) *DoodleWidget {
	t.Helper()
	test.NewTempApp(t)
	d := NewDoodleWidget(surface.DefaultOptions())
	d.Resize(size)
	img := d.draw(pixels.X, pixels.Y)
	require.Equal(t, pixels, img.Bounds().Size())
	return d
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func isInk(c color.RGBA) bool {
	return c.R <= 64 && c.G <= 64 && c.B <= 64 && c.A >= 250
}

func assertBlank(t *testing.T, img *image.RGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R < 250 || c.G < 250 || c.B < 250 {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, c)
			}
		}
	}
}

type memFile struct {
	bytes.Buffer
	closed bool
}

func (m *memFile) Close() error {
	m.closed = true
	return nil
}

func TestMouseStrokeCommits(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(200, 100), image.Pt(200, 100))

	d.MouseDown(mouse(10, 50))
	d.Dragged(drag(150, 50))
	d.MouseUp(mouse(150, 50))
	d.DragEnd()

	img := d.Snapshot()
	assert.True(t, isInk(img.RGBAAt(80, 50)))
	assert.True(t, isInk(img.RGBAAt(145, 50)))
	assert.False(t, isInk(img.RGBAAt(80, 80)))
}

func TestSecondaryButtonIgnored(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))

	ev := mouse(50, 50)
	ev.Button = desktop.MouseButtonSecondary
	d.MouseDown(ev)
	d.MouseUp(ev)

	assertBlank(t, d.Snapshot())
}

func TestPositionsScaledToPixels(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 50), image.Pt(200, 100))

	d.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(25, 25)}})
	d.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(25, 25)}})

	img := d.Snapshot()
	assert.True(t, isInk(img.RGBAAt(50, 50)), "dot lands at the scaled position")
	assert.False(t, isInk(img.RGBAAt(25, 25)))
}

func TestTouchCancelDropsStroke(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))

	d.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	d.Dragged(drag(90, 90))
	assert.True(t, isInk(d.draw(100, 100).(*image.RGBA).RGBAAt(10, 10)), "stroke in flight is rendered")

	d.TouchCancel(nil)
	d.DragEnd()

	assertBlank(t, d.draw(100, 100).(*image.RGBA))
	assertBlank(t, d.Snapshot())
}

func TestDrawResizesSurface(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))
	d.MouseDown(mouse(20, 20))
	d.MouseUp(mouse(20, 20))
	require.True(t, isInk(d.Snapshot().RGBAAt(20, 20)))

	img := d.draw(160, 120)
	assert.Equal(t, image.Pt(160, 120), img.Bounds().Size())
	assertBlank(t, d.Snapshot())
}

func TestDragEndSchedulesRedraw(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))
	redraws := 0
	d.surface.OnRedraw = func() { redraws++ }

	d.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	d.Dragged(drag(60, 10))
	redraws = 0

	d.DragEnd()
	assert.Equal(t, 1, redraws, "commit repaints")
	assert.True(t, isInk(d.Snapshot().RGBAAt(35, 10)))

	d.DragEnd()
	assert.Equal(t, 1, redraws, "a second release changes nothing")
}

func TestEraserCheckSetsMode(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))
	bar := NewToolbar(d, test.NewTempWindow(t, widget.NewLabel("")), export.Dir{Root: t.TempDir()})

	checks := findObjects[*widget.Check](bar)
	require.Len(t, checks, 1)
	eraser := checks[0]
	assert.Equal(t, "Eraser", eraser.Text)
	assert.False(t, eraser.Checked)

	test.Tap(eraser)
	assert.True(t, d.Eraser())
	assert.Equal(t, "Eraser On", d.StatusBar().Text)

	test.Tap(eraser)
	assert.False(t, d.Eraser())
	assert.Equal(t, "Eraser Off", d.StatusBar().Text)
}

func TestSaveDoodle(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))
	d.MouseDown(mouse(50, 50))
	d.MouseUp(mouse(50, 50))

	var file memFile
	var got export.Request
	saveDoodle(d, export.OpenerFunc(func(req export.Request) (io.WriteCloser, error) {
		got = req
		return &file, nil
	}))

	assert.Equal(t, "Doodle saved", d.StatusBar().Text)
	assert.Equal(t, "image/jpeg", got.MIME)
	assert.True(t, file.closed)
	assert.NotZero(t, file.Len())
	assertBlank(t, d.Snapshot())
}

func TestSaveDoodleFailure(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))
	d.MouseDown(mouse(50, 50))
	d.MouseUp(mouse(50, 50))

	saveDoodle(d, export.OpenerFunc(func(export.Request) (io.WriteCloser, error) {
		return nil, errors.New("storage unavailable")
	}))

	assert.Equal(t, "Error with Doodle save", d.StatusBar().Text)
	assertBlank(t, d.Snapshot())
}

func TestColorPicker(t *testing.T) {
	test.NewTempApp(t)
	p := newColorPicker(state.ARGB(0xFF2060A0))
	assert.Equal(t, state.ARGB(0xFF2060A0), p.Value())
	assert.Equal(t, state.ARGB(0xFF2060A0), p.preview.FillColor)

	p.channels[0].SetValue(128)
	assert.Equal(t, state.ARGB(0x802060A0), p.Value())
	assert.Equal(t, state.ARGB(0x802060A0), p.preview.FillColor)
}

func TestWidthPicker(t *testing.T) {
	test.NewTempApp(t)
	p := newWidthPicker(10, state.Black)
	assert.Equal(t, 10.0, p.Value())
	assert.Equal(t, "Width: 10", p.label.Text)
	assert.Equal(t, float32(10), p.preview.StrokeWidth)

	p.slider.SetValue(25)
	assert.Equal(t, "Width: 25", p.label.Text)
	assert.Equal(t, float32(25), p.preview.StrokeWidth)

	assert.Equal(t, 50.0, newWidthPicker(100, state.Black).Value())
}

func TestPaletteSwatchSetsColor(t *testing.T) {
	d := newTestWidget(t, fyne.NewSize(100, 100), image.Pt(100, 100))
	bar := NewToolbar(d, test.NewTempWindow(t, widget.NewLabel("")), export.Dir{Root: t.TempDir()})

	swatches := findObjects[*colorSwatch](bar)
	require.Len(t, swatches, len(palette))

	test.Tap(swatches[1])
	assert.Equal(t, palette[1], d.Color())
	assert.Equal(t, "Color Updated", d.StatusBar().Text)

	d.MouseDown(mouse(50, 50))
	d.MouseUp(mouse(50, 50))
	c := d.Snapshot().RGBAAt(50, 50)
	assert.True(t, c.R >= 250 && c.G <= 5 && c.B <= 5, "pixel = %v", c)
}

// findObjects walks obj and its containers and returns every T in order.
func findObjects[T fyne.CanvasObject](obj fyne.CanvasObject) []T {
	var found []T
	if v, ok := obj.(T); ok {
		found = append(found, v)
	}
	if c, ok := obj.(*fyne.Container); ok {
		for _, child := range c.Objects {
			found = append(found, findObjects[T](child)...)
		}
	}
	return found
}

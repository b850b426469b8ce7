package state

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
)

type Point struct{ X, Y float64 }

// Mid returns the point halfway between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Segment is one quadratic piece of a smoothed stroke. It starts wherever
// the previous segment ended (or at the stroke start), bends towards Ctrl
// and ends at End.
type Segment struct {
	Ctrl Point
	End  Point
}

// Stroke is the in-flight path of one pressed pointer.
type Stroke struct {
	Pointer  int
	Start    Point
	Segments []Segment
	Last     Point // last sample accepted past the tolerance
}

// Bounds returns the integer bounding box of every point the stroke
// touches, grown by pad on each side.
func (s Stroke) Bounds(pad float64) image.Rectangle {
	minX, minY := s.Start.X, s.Start.Y
	maxX, maxY := minX, minY
	grow := func(p Point) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, seg := range s.Segments {
		grow(seg.Ctrl)
		grow(seg.End)
	}
	grow(s.Last)

	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}

func (s Stroke) clone() Stroke {
	c := s
	c.Segments = append([]Segment(nil), s.Segments...)
	return c
}

// ARGB is a colour packed as 0xAARRGGBB with straight (non-premultiplied)
// channels.
type ARGB uint32

const (
	Black ARGB = 0xFF000000
	White ARGB = 0xFFFFFFFF
)

func NewARGB(a, r, g, b uint8) ARGB {
	return ARGB(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c ARGB) A() uint8 { return uint8(c >> 24) }
func (c ARGB) R() uint8 { return uint8(c >> 16) }
func (c ARGB) G() uint8 { return uint8(c >> 8) }
func (c ARGB) B() uint8 { return uint8(c) }

func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c ARGB) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ARGBFromColor converts any color.Color to its packed straight-alpha form.
func ARGBFromColor(c color.Color) ARGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewARGB(n.A, n.R, n.G, n.B)
}

// ParseARGB accepts "#AARRGGBB", "#RRGGBB" (opaque) and the same forms
// prefixed with "0x" instead of "#".
func ParseARGB(s string) (ARGB, error) {
	hex := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	switch len(hex) {
	case 8:
		return ARGB(v), nil
	case 6:
		return ARGB(0xFF000000 | v), nil
	}
	return 0, fmt.Errorf("invalid colour %q: want #AARRGGBB or #RRGGBB", s)
}

// Style is the draw configuration applied to every stroke in flight and to
// every commit.
type Style struct {
	Color  ARGB
	Width  float64
	Eraser bool
}

// Effective returns the colour and width a stroke is actually painted with.
func (s Style) Effective(eraserColor ARGB, eraserWidth float64) (ARGB, float64) {
	if s.Eraser {
		return eraserColor, eraserWidth
	}
	return s.Color, s.Width
}

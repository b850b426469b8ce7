// Package surface turns pointer samples into smoothed ink on a persistent
// raster.
//
// A Surface keeps one in-progress stroke per pressed pointer. Moves that
// clear the tolerance append a quadratic segment bending through the previous
// sample and ending halfway to the new one; smaller moves are coalesced to
// suppress jitter. Releasing a pointer rasterises its stroke into the canvas
// and forgets it. Render composes the canvas with whatever is still in
// flight.
//
// A Surface is not safe for concurrent use. Hosts drive it from a single
// event loop.
package surface

import (
	"fmt"
	"image"

	"DoodlePad/internal/export"
	"DoodlePad/internal/state"

	"github.com/gogpu/gg"
)

const (
	DefaultTolerance   = 10
	DefaultWidth       = 10
	DefaultEraserWidth = 100
)

type Options struct {
	// Tolerance is the minimum movement along either axis, in pixels,
	// before a sample extends a stroke.
	Tolerance float64

	// Background fills the canvas on creation and clear. The eraser paints
	// with it too, blending over the ink, so it must be opaque for erasing
	// to restore the canvas.
	Background  state.ARGB
	Pen         state.Style
	EraserWidth float64

	Export export.Settings

	// ClearOnFailedExport keeps the "export ends the session" behaviour
	// even when the export failed.
	ClearOnFailedExport bool

	Clock state.Clock
}

func DefaultOptions() Options {
	return Options{
		Tolerance:           DefaultTolerance,
		Background:          state.White,
		Pen:                 state.Style{Color: state.Black, Width: DefaultWidth},
		EraserWidth:         DefaultEraserWidth,
		Export:              export.DefaultSettings(),
		ClearOnFailedExport: true,
	}
}

type Surface struct {
	opts    Options
	canvas  *gg.Context
	strokes *state.Tracker
	style   state.Style
	session *state.Session

	// OnRedraw is called whenever the next Render would differ from the
	// last one.
	OnRedraw func()
}

// New returns a surface without a canvas; call Resize once the viewport
// size is known.
func New(opts Options) *Surface {
	return &Surface{
		opts:    opts,
		strokes: state.NewTracker(),
		style:   opts.Pen,
		session: state.NewSession(opts.Clock.Now()),
	}
}

// Resize allocates a fresh canvas of the given pixel size filled with the
// background. Strokes in flight are dropped: their coordinates belong to
// the old viewport.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: dimensions must be positive", width, height)
	}
	if s.canvas != nil {
		_ = s.canvas.Close()
	}
	s.canvas = gg.NewContext(width, height)
	s.canvas.ClearWithColor(gg.FromColor(s.opts.Background))
	dropped := s.strokes.Reset()

	Logger().Info("canvas allocated",
		"session", s.session.ID, "width", width, "height", height, "dropped", dropped)
	s.redraw()
	return nil
}

// Size returns the canvas size in pixels, zero before the first Resize.
func (s *Surface) Size() (width, height int) {
	if s.canvas == nil {
		return 0, 0
	}
	return s.canvas.Width(), s.canvas.Height()
}

// PointerDown starts a stroke for id at (x, y). A stroke already in flight
// for id is replaced without being committed.
func (s *Surface) PointerDown(id int, x, y float64) {
	if s.strokes.Begin(id, state.Point{X: x, Y: y}) {
		Logger().Debug("stroke restarted", "session", s.session.ID, "pointer", id)
	}
}

// PointerMove feeds one sample for id and reports whether it extended the
// stroke. Samples for pointers that are not down are dropped.
func (s *Surface) PointerMove(id int, x, y float64) bool {
	appended, known := s.strokes.Extend(id, state.Point{X: x, Y: y}, s.opts.Tolerance)
	switch {
	case !known:
		Logger().Debug("sample dropped", "session", s.session.ID, "pointer", id)
	case appended:
		Logger().Debug("segment appended", "session", s.session.ID, "pointer", id, "x", x, "y", y)
	}
	return appended
}

// PointerUp commits the stroke of id to the canvas and forgets it. It
// reports false when id had no stroke.
func (s *Surface) PointerUp(id int) bool {
	st, ok := s.strokes.End(id)
	if !ok {
		return false
	}
	s.commit(st)
	return true
}

// Cancel drops every stroke in flight without committing any of them and
// returns how many were dropped.
func (s *Surface) Cancel() int {
	n := s.strokes.Reset()
	if n > 0 {
		Logger().Debug("strokes cancelled", "session", s.session.ID, "count", n)
		s.redraw()
	}
	return n
}

func (s *Surface) commit(st state.Stroke) {
	log := Logger().With("session", s.session.ID, "pointer", st.Pointer)
	if s.canvas == nil {
		log.Debug("stroke discarded", "reason", ErrNoCanvas)
		return
	}
	col, width := s.effective()
	bounds := st.Bounds(width/2 + 1)
	if !bounds.Overlaps(image.Rect(0, 0, s.canvas.Width(), s.canvas.Height())) {
		log.Debug("stroke outside canvas", "bounds", bounds)
		return
	}
	if err := paintStroke(s.canvas, st, col, width); err != nil {
		log.Warn("stroke commit failed", "err", err)
		return
	}
	n := s.session.Commit()
	log.Debug("stroke committed", "segments", len(st.Segments), "bounds", bounds, "commits", n)
}

// Render returns the canvas with every stroke in flight drawn on top, in
// ascending pointer order. Before the first Resize the image is empty.
func (s *Surface) Render() *image.RGBA {
	if s.canvas == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	w, h := s.canvas.Width(), s.canvas.Height()
	pm := gg.NewPixmap(w, h)
	copy(pm.Data(), s.canvas.ResizeTarget().Data())
	if s.strokes.Len() == 0 {
		return pm.ToImage()
	}

	frame := gg.NewContext(w, h, gg.WithPixmap(pm))
	defer frame.Close()
	col, width := s.effective()
	s.strokes.Each(func(st state.Stroke) {
		if err := paintStroke(frame, st, col, width); err != nil {
			Logger().Warn("stroke render failed", "session", s.session.ID, "pointer", st.Pointer, "err", err)
		}
	})
	return pm.ToImage()
}

// Snapshot returns a copy of the committed ink only.
func (s *Surface) Snapshot() *image.RGBA {
	if s.canvas == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return s.canvas.ResizeTarget().ToImage()
}

// Clear drops strokes in flight, refills the canvas with the background and
// starts a new session.
func (s *Surface) Clear() {
	dropped := s.strokes.Reset()
	if s.canvas != nil {
		s.canvas.ClearWithColor(gg.FromColor(s.opts.Background))
	}
	prev := s.session.ID
	s.session = state.NewSession(s.opts.Clock.Now())
	Logger().Info("canvas cleared", "session", prev, "next", s.session.ID, "dropped", dropped)
	s.redraw()
}

func (s *Surface) SetEraser(on bool)      { s.style.Eraser = on }
func (s *Surface) Eraser() bool           { return s.style.Eraser }
func (s *Surface) SetColor(c state.ARGB)  { s.style.Color = c }
func (s *Surface) Color() state.ARGB      { return s.style.Color }
func (s *Surface) SetWidth(w float64)     { s.style.Width = w }
func (s *Surface) Width() float64         { return s.style.Width }
func (s *Surface) Style() state.Style     { return s.style }
func (s *Surface) Options() Options       { return s.opts }
func (s *Surface) Session() state.Session { return *s.session }

// Active returns how many pointers currently have a stroke in flight.
func (s *Surface) Active() int { return s.strokes.Len() }

// Stroke returns a copy of the stroke in flight for id.
func (s *Surface) Stroke(id int) (state.Stroke, bool) {
	return s.strokes.Get(id)
}

func (s *Surface) effective() (state.ARGB, float64) {
	return s.style.Effective(s.opts.Background, s.opts.EraserWidth)
}

func (s *Surface) redraw() {
	if s.OnRedraw != nil {
		s.OnRedraw()
	}
}

// paintStroke draws st onto ctx. A stroke that never moved past the
// tolerance becomes a dot as wide as the pen.
func paintStroke(ctx *gg.Context, st state.Stroke, col state.ARGB, width float64) error {
	ctx.SetColor(col)
	if len(st.Segments) == 0 {
		ctx.DrawCircle(st.Start.X, st.Start.Y, width/2)
		return ctx.Fill()
	}

	ctx.SetLineWidth(width)
	ctx.SetLineCap(gg.LineCapRound)
	ctx.SetLineJoin(gg.LineJoinRound)
	ctx.MoveTo(st.Start.X, st.Start.Y)
	pen := st.Start
	for _, seg := range st.Segments {
		// a control point on the pen position degenerates the quad into a line
		if seg.Ctrl == pen {
			ctx.LineTo(seg.End.X, seg.End.Y)
		} else {
			ctx.QuadraticTo(seg.Ctrl.X, seg.Ctrl.Y, seg.End.X, seg.End.Y)
		}
		pen = seg.End
	}
	if st.Last != pen {
		ctx.LineTo(st.Last.X, st.Last.Y)
	}
	return ctx.Stroke()
}

package state

import (
	"maps"
	"slices"
)

// Tracker holds the active stroke of every pressed pointer. One map keyed by
// pointer id carries both the segments and the last sample, so the two can
// never disagree about which pointers are live.
type Tracker struct {
	strokes map[int]*Stroke
}

func NewTracker() *Tracker {
	return &Tracker{strokes: make(map[int]*Stroke)}
}

// Begin starts a fresh stroke for id at p. A stroke already held for id is
// replaced and the method reports true.
func (t *Tracker) Begin(id int, p Point) bool {
	_, replaced := t.strokes[id]
	t.strokes[id] = &Stroke{Pointer: id, Start: p, Last: p}
	return replaced
}

// Extend feeds one sample to the stroke of id. When the sample moved at
// least tolerance along either axis from the last accepted sample a
// quadratic segment is appended that bends through the last sample and ends
// halfway to p, and p becomes the last sample. Smaller moves are coalesced.
//
// known is false when id has no stroke; the sample is then dropped.
func (t *Tracker) Extend(id int, p Point, tolerance float64) (appended, known bool) {
	s, ok := t.strokes[id]
	if !ok {
		return false, false
	}
	dx := abs(p.X - s.Last.X)
	dy := abs(p.Y - s.Last.Y)
	if dx < tolerance && dy < tolerance {
		return false, true
	}
	s.Segments = append(s.Segments, Segment{Ctrl: s.Last, End: s.Last.Mid(p)})
	s.Last = p
	return true, true
}

// End removes and returns the stroke of id.
func (t *Tracker) End(id int) (Stroke, bool) {
	s, ok := t.strokes[id]
	if !ok {
		return Stroke{}, false
	}
	delete(t.strokes, id)
	return *s, true
}

// Get returns a copy of the stroke of id.
func (t *Tracker) Get(id int) (Stroke, bool) {
	s, ok := t.strokes[id]
	if !ok {
		return Stroke{}, false
	}
	return s.clone(), true
}

func (t *Tracker) Len() int {
	return len(t.strokes)
}

// IDs returns the live pointer ids in ascending order.
func (t *Tracker) IDs() []int {
	return slices.Sorted(maps.Keys(t.strokes))
}

// Each calls fn for every active stroke in ascending pointer order.
func (t *Tracker) Each(fn func(Stroke)) {
	for _, id := range t.IDs() {
		fn(*t.strokes[id])
	}
}

// Reset drops every active stroke and returns how many were dropped.
func (t *Tracker) Reset() int {
	n := len(t.strokes)
	clear(t.strokes)
	return n
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package surface

// Action is the kind of a pointer event delivered by the host.
type Action int

const (
	ActionDown        Action = iota // first pointer pressed
	ActionPointerDown               // additional pointer pressed
	ActionMove                      // one or more pointers moved
	ActionUp                        // last pointer released
	ActionPointerUp                 // a non-last pointer released
	ActionCancel                    // gesture aborted by the host
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionPointerDown:
		return "pointer-down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionPointerUp:
		return "pointer-up"
	case ActionCancel:
		return "cancel"
	}
	return "unknown"
}

// Sample is the position of one pointer within an event.
type Sample struct {
	ID   int
	X, Y float64
}

// Event is one batch from the host's input system. Down and up actions
// apply to Samples[Index]; a move carries a sample for every pointer that
// is down.
type Event struct {
	Action  Action
	Index   int
	Samples []Sample
}

func (e Event) actionSample() (Sample, bool) {
	if e.Index < 0 || e.Index >= len(e.Samples) {
		return Sample{}, false
	}
	return e.Samples[e.Index], true
}

// Dispatch routes ev to the pointer operations. It reports whether the
// frame changed, in which case OnRedraw has been called.
func (s *Surface) Dispatch(ev Event) bool {
	changed := false
	switch ev.Action {
	case ActionDown, ActionPointerDown:
		if p, ok := ev.actionSample(); ok {
			s.PointerDown(p.ID, p.X, p.Y)
			changed = true
		}
	case ActionMove:
		for _, p := range ev.Samples {
			if s.PointerMove(p.ID, p.X, p.Y) {
				changed = true
			}
		}
	case ActionUp, ActionPointerUp:
		if p, ok := ev.actionSample(); ok {
			changed = s.PointerUp(p.ID)
		}
	case ActionCancel:
		// Cancel redraws on its own
		return s.Cancel() > 0
	}
	if changed {
		s.redraw()
	}
	return changed
}

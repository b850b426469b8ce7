package state

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one drawing between two clears.
type Session struct {
	ID      string
	Started time.Time
	Commits uint64
}

func NewSession(now time.Time) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Started: now,
	}
}

// Commit records one stroke rasterised into the canvas and returns the
// running count.
func (s *Session) Commit() uint64 {
	s.Commits++
	return s.Commits
}

// Clock supplies wall time; tests swap it for a fixed one.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

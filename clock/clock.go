// Package clock supplies wall-clock time components to the word clock.
package clock

import (
	"time"
)

// Time is the hour (0-23), minute and second of a moment in local time.
type Time struct {
	Hour   int
	Minute int
	Second int
}

func FromTime(t time.Time) Time {
	return Time{t.Hour(), t.Minute(), t.Second()}
}

// Source reports the current local time. ok is false when no time is
// available yet; callers should skip the tick and ask again later.
type Source interface {
	Now() (t Time, ok bool)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() (Time, bool)

func (f SourceFunc) Now() (Time, bool) {
	return f()
}

// Fixed always returns the same time. Useful for tests and for holding the
// display still.
type Fixed Time

func (f Fixed) Now() (Time, bool) {
	return Time(f), true
}

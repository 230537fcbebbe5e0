package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct {
	clockwork.Clock
	loc *time.Location
}

// System returns a wall clock that reports times in loc.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{Clock: clockwork.NewRealClock(), loc: loc}
}

func (c systemClock) Now() time.Time {
	return c.Clock.Now().In(c.loc)
}

// Fake is a manually advanced clock. Channels returned by After fire when
// Set or Advance moves the clock past their deadline.
type Fake struct {
	*clockwork.FakeClock
}

func NewFake(now time.Time) *Fake {
	return &Fake{FakeClock: clockwork.NewFakeClockAt(now)}
}

// Set moves the clock to t. Moving backwards does not fire anything.
func (f *Fake) Set(t time.Time) {
	f.Advance(t.Sub(f.Now()))
}

// Date truncates t to midnight in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// At returns the given time of day on the calendar day of t.
func At(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Day returns the calendar date of t (as seen in t's location) as a UTC
// midnight value, the form stored in date columns.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

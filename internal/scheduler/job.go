package scheduler

import (
	"context"
	"time"
)

// DayPredicate reports whether a job may fire on the calendar day of t.
type DayPredicate func(t time.Time) bool

func Daily(time.Time) bool { return true }

func Weekdays(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

type RunFunc func(ctx context.Context, now time.Time) (any, error)

// Job fires at Hour:Minute, in the clock's location, on every day Days
// accepts.
type Job struct {
	Name   string
	Hour   int
	Minute int
	Days   DayPredicate
	Run    RunFunc
}

// NextFire returns the first fire time of job strictly after after.
func NextFire(job Job, after time.Time) time.Time {
	days := job.Days
	if days == nil {
		days = Daily
	}
	y, m, d := after.Date()
	for i := 0; i <= 7; i++ {
		candidate := time.Date(y, m, d+i, job.Hour, job.Minute, 0, 0, after.Location())
		if candidate.After(after) && days(candidate) {
			return candidate
		}
	}
	return time.Time{}
}

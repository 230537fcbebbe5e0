package clock_test

import (
	"testing"
	"time"

	"go-teamhub/internal/shared/clock"

	"github.com/stretchr/testify/assert"
)

func TestFake_AfterFiresOnAdvance(t *testing.T) {
	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	fc := clock.NewFake(start)

	ch := fc.After(5 * time.Minute)
	select {
	case <-ch:
		t.Fatal("fired before deadline")
	default:
	}

	fc.Advance(4 * time.Minute)
	select {
	case <-ch:
		t.Fatal("fired before deadline")
	default:
	}

	fc.Advance(time.Minute)
	select {
	case got := <-ch:
		assert.Equal(t, start.Add(5*time.Minute), got)
	default:
		t.Fatal("expected timer to fire")
	}
}

func TestFake_SetKeepsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	fc := clock.NewFake(time.Date(2026, 3, 3, 9, 0, 0, 0, loc))

	ch := fc.After(time.Hour)
	fc.Set(time.Date(2026, 3, 3, 10, 30, 0, 0, loc))

	select {
	case <-ch:
	default:
		t.Fatal("expected timer to fire")
	}
	assert.Equal(t, loc, fc.Now().Location())
	assert.Equal(t, 10, fc.Now().Hour())
}

func TestDateHelpers(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 3, 7, 18, 42, 11, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, loc), clock.Date(ts))
	assert.Equal(t, time.Date(2026, 3, 7, 9, 5, 0, 0, loc), clock.At(ts, 9, 5))
	assert.True(t, clock.IsWeekend(ts))
	assert.False(t, clock.IsWeekend(ts.AddDate(0, 0, 2)))
}

func TestDay_UsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 3, 7, 0, 20, 0, 0, loc) // 2026-03-06 18:50 UTC

	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), clock.Day(ts))
}

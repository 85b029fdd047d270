package timeutil

import (
	"testing"
	"time"
)

func TestStartAndEndOfDay(t *testing.T) {
	at := time.Date(2026, 3, 4, 13, 45, 12, 500, time.UTC)
	if got := StartOfDay(at); got.Format("2006-01-02 15:04:05") != "2026-03-04 00:00:00" {
		t.Fatalf("unexpected start of day: %s", got)
	}
	if got := EndOfDay(at); !got.Before(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end of day crossed into next day: %s", got)
	}
}

func TestStartOfWeekHonorsConvention(t *testing.T) {
	wednesday := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	monday := StartOfWeek(wednesday, time.Monday)
	if monday.Weekday() != time.Monday || monday.Day() != 2 {
		t.Fatalf("unexpected Monday-start week: %s", monday)
	}

	sunday := StartOfWeek(wednesday, time.Sunday)
	if sunday.Weekday() != time.Sunday || sunday.Day() != 1 {
		t.Fatalf("unexpected Sunday-start week: %s", sunday)
	}
}

func TestStartOfWeekOnWeekStartItself(t *testing.T) {
	monday := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	if got := StartOfWeek(monday, time.Monday); !got.Equal(StartOfDay(monday)) {
		t.Fatalf("week start shifted off its own day: %s", got)
	}
}

func TestMonthBounds(t *testing.T) {
	at := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	if got := StartOfMonth(at); got.Day() != 1 || got.Month() != time.February {
		t.Fatalf("unexpected start of month: %s", got)
	}
	if got := EndOfMonth(at); got.Day() != 28 {
		t.Fatalf("expected Feb 2026 to end on the 28th, got %s", got)
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	aStart := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	aEnd := aStart.Add(time.Hour)
	bStart := aStart.Add(30 * time.Minute)
	bEnd := bStart.Add(time.Hour)

	if !Overlaps(aStart, aEnd, bStart, bEnd) || !Overlaps(bStart, bEnd, aStart, aEnd) {
		t.Fatal("overlap must be symmetric")
	}
}

func TestOverlapsHalfOpenBoundary(t *testing.T) {
	ten := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	if Overlaps(ten.Add(-time.Hour), ten, ten, ten.Add(time.Hour)) {
		t.Fatal("tasks touching at an endpoint must not overlap")
	}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	if got := DurationMinutes(start, start.Add(90*time.Minute)); got != 90 {
		t.Fatalf("expected 90 minutes, got %d", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 4, 0, 1, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatal("expected same calendar day")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Fatal("expected different calendar days")
	}
}

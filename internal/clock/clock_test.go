package clock

import (
	"testing"
	"time"
)

func TestDayOfUsesFixedZone(t *testing.T) {
	// 2024-03-10 20:00 UTC is already 2024-03-11 05:00 in UTC+9.
	utc := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	if got := DayOf(utc); got != "2024-03-11" {
		t.Errorf("DayOf(%v) = %s, want 2024-03-11", utc, got)
	}

	// Just before the boundary it is still the 10th.
	utc = time.Date(2024, 3, 10, 14, 59, 0, 0, time.UTC)
	if got := DayOf(utc); got != "2024-03-10" {
		t.Errorf("DayOf(%v) = %s, want 2024-03-10", utc, got)
	}
}

func TestDayOfIgnoresSourceZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	instant := time.Date(2024, 6, 1, 23, 30, 0, 0, est) // 2024-06-02 13:30 JST
	if got := DayOf(instant); got != "2024-06-02" {
		t.Errorf("DayOf(%v) = %s, want 2024-06-02", instant, got)
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-01-31")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if d != "2024-01-31" {
		t.Errorf("ParseDay = %s, want 2024-01-31", d)
	}

	if _, err := ParseDay("31/01/2024"); err == nil {
		t.Error("ParseDay accepted a malformed date")
	}
	if _, err := ParseDay("2024-13-01"); err == nil {
		t.Error("ParseDay accepted month 13")
	}
}

func TestBefore(t *testing.T) {
	a, b := Day("2024-02-28"), Day("2024-03-01")
	if !a.Before(b) {
		t.Errorf("%s should be before %s", a, b)
	}
	if b.Before(a) {
		t.Errorf("%s should not be before %s", b, a)
	}
	if a.Before(a) {
		t.Error("a day should not be before itself")
	}
}

func TestNext(t *testing.T) {
	if got := Day("2024-02-28").Next(); got != "2024-02-29" {
		t.Errorf("Next = %s, want 2024-02-29 (leap year)", got)
	}
	if got := Day("2024-12-31").Next(); got != "2025-01-01" {
		t.Errorf("Next = %s, want 2025-01-01", got)
	}
}

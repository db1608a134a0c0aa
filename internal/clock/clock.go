package clock

import (
	"fmt"
	"time"
)

// JST is the fixed time zone every calendar-day computation uses. Task days
// and the last-access marker are always derived in this zone, regardless of
// where the process runs.
var JST = time.FixedZone("JST", 9*60*60)

const dayLayout = "2006-01-02"

// Day is a calendar date in the fixed zone, formatted YYYY-MM-DD.
// The zero value "" means "no day".
type Day string

// DayOf converts a timestamp to its calendar day in the fixed zone.
func DayOf(t time.Time) Day {
	return Day(t.In(JST).Format(dayLayout))
}

// Today returns the current day in the fixed zone.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	if _, err := time.ParseInLocation(dayLayout, s, JST); err != nil {
		return "", fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day(s), nil
}

// Before reports whether d is strictly earlier than other.
// ISO dates compare correctly as strings.
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool {
	return d == ""
}

// Start returns midnight of the day in the fixed zone.
func (d Day) Start() time.Time {
	t, _ := time.ParseInLocation(dayLayout, string(d), JST)
	return t
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return DayOf(d.Start().Add(24 * time.Hour))
}

func (d Day) String() string {
	return string(d)
}

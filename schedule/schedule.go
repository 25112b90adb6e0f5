// schedule/schedule.go - Weekly installment date arithmetic
//
// Everything here is a pure function of its inputs. The one subtlety is
// day anchoring: NextOccurrence and NthOccurrence preserve the caller's
// time-of-day (due dates carry the team's creation timestamp), while
// Dates truncates to midnight because reports compare at day granularity.
package schedule

import (
	"fmt"
	"time"
)

// ParseDay converts a weekday name ("Monday".."Sunday") to time.Weekday.
// Day names are the only weekday representation that crosses the API
// boundary; internally everything uses time.Weekday.
func ParseDay(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day name: %q", name)
}

// DayName returns the canonical name for d.
func DayName(d time.Weekday) string {
	return d.String()
}

// NextOccurrence returns the first date strictly after from that falls on
// day. If from itself falls on day, the result is a full week later,
// never the same day.
func NextOccurrence(from time.Time, day time.Weekday) time.Time {
	diff := (7 + int(day) - int(from.Weekday())) % 7
	if diff == 0 {
		diff = 7
	}
	return from.AddDate(0, 0, diff)
}

// NthOccurrence returns the due date of the n-th installment: the first
// occurrence of day after from, plus (n-1) weeks.
func NthOccurrence(from time.Time, day time.Weekday, n int) time.Time {
	first := NextOccurrence(from, day)
	return first.AddDate(0, 0, (n-1)*7)
}

// Dates returns the full installment schedule for a team: weeks entries,
// start + 7k days, each truncated to midnight in start's location.
func Dates(start time.Time, weeks int) []time.Time {
	if weeks <= 0 {
		return nil
	}
	first := Midnight(start)
	dates := make([]time.Time, weeks)
	for k := 0; k < weeks; k++ {
		dates[k] = first.AddDate(0, 0, 7*k)
	}
	return dates
}

// SnapToNext returns the earliest entry of the sorted schedule that is on
// or after candidate, comparing at day granularity. ok is false when
// candidate lies beyond the last scheduled date.
func SnapToNext(dates []time.Time, candidate time.Time) (time.Time, bool) {
	day := Midnight(candidate)
	for _, d := range dates {
		if !Midnight(d).Before(day) {
			return d, true
		}
	}
	return time.Time{}, false
}

// Midnight strips the time-of-day component, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EndOfDay returns the last instant of t's calendar date.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysBetween counts calendar days from a to b inclusive.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours()/24) + 1
}

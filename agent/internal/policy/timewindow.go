package policy

import (
	"fmt"
	"time"
)

// Window is a daily restriction window in minutes since midnight, both ends
// in [0, 1440). Start > End means the window spans midnight.
type Window struct {
	Start int
	End   int
}

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", v, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowOf builds a Window from a TimeRestriction's clock strings.
func WindowOf(tr TimeRestriction) (Window, error) {
	start, err := ParseClock(tr.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(tr.EndTime)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

// IsRestricted reports whether browsing is disallowed at the given minute of
// the day. A same-day window [s,e] with s <= e restricts s..e inclusive; a
// window with s > e spans midnight and restricts now >= s or now <= e.
// Start == End restricts the whole day.
func IsRestricted(now int, w Window, enabled bool) bool {
	if !enabled {
		return false
	}
	now = ((now % minutesPerDay) + minutesPerDay) % minutesPerDay
	if w.Start <= w.End {
		if w.Start == w.End {
			return true
		}
		return w.Start <= now && now <= w.End
	}
	return now >= w.Start || now <= w.End
}

// MinuteOfDay converts a wall-clock time to minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

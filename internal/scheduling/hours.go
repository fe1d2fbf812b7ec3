package scheduling

import (
	"fmt"
	"time"
)

// Clock is a time of day with minute precision, e.g. the 08:00 opening bell.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a "HH:MM" time of day.
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, fmt.Errorf("invalid clock value %q: out of range", s)
	}
	return c, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// sinceMidnight returns c as an offset from midnight.
func (c Clock) sinceMidnight() time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute
}

// BusinessHours is the bookable window, evaluated as civil time in a single
// reference zone regardless of where the appointment was entered. The window
// follows that zone's daylight saving rules.
type BusinessHours struct {
	Open     Clock
	Close    Clock
	Location *time.Location
}

// Contains reports whether the interval fits inside the window on a single
// civil day of the reference zone. An appointment that crosses midnight in
// the reference zone never fits, even when both endpoints read as in-hours.
func (h BusinessHours) Contains(iv Interval) bool {
	start := iv.Start.In(h.Location)
	end := iv.End.In(h.Location)

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}
	return wallOffset(start) >= h.Open.sinceMidnight() &&
		wallOffset(end) <= h.Close.sinceMidnight()
}

// wallOffset is the wall-clock reading of t as an offset from its midnight.
func wallOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

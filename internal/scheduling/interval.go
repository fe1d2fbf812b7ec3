package scheduling

import "time"

// Interval is a pair of absolute instants. The zone attached to either
// time.Time is presentation detail only; all comparisons happen on the
// absolute timeline.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval is well ordered. Zero-length intervals
// are not valid: an appointment must take time.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Conflicts reports whether two intervals collide. Genuine overlap collides,
// and so do touching endpoints: back-to-back appointments for the same
// customer are treated as a booking mistake, not a tight schedule.
func (iv Interval) Conflicts(other Interval) bool {
	return !iv.Start.After(other.End) && !other.Start.After(iv.End)
}

// Appointment is the read-only slice of an appointment the validator needs:
// identity, owning customer, and when it happens.
type Appointment struct {
	ID         int64
	CustomerID int64
	Interval
}

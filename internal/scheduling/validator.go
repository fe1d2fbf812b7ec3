// Package scheduling decides whether a proposed appointment interval may be
// booked. It is deliberately free of storage and transport concerns: callers
// hand it a candidate interval plus a snapshot of the relevant existing
// appointments and get back a verdict.
package scheduling

// RejectReason classifies why a candidate interval was refused.
type RejectReason string

const (
	ReasonNone                 RejectReason = ""
	ReasonInvalidOrdering      RejectReason = "invalid_ordering"
	ReasonOutsideBusinessHours RejectReason = "outside_business_hours"
	ReasonOverlap              RejectReason = "overlap"
)

// Decision is the validator's verdict. When the reason is ReasonOverlap,
// ConflictID names one appointment the candidate collides with so the caller
// can build a precise message.
type Decision struct {
	Allowed    bool
	Reason     RejectReason
	ConflictID int64
}

// Validator runs the booking checks in a fixed order: ordering, business
// hours, then per-customer overlap. The first failure wins; later checks
// assume the earlier ones passed.
type Validator struct {
	hours BusinessHours
}

func NewValidator(hours BusinessHours) *Validator {
	return &Validator{hours: hours}
}

// Hours exposes the configured window, mainly for error messages.
func (v *Validator) Hours() BusinessHours {
	return v.hours
}

// Validate checks a candidate interval for the given customer against a
// snapshot of existing appointments. excludeID names an appointment to ignore
// during overlap detection, so an update does not collide with its own stored
// interval; zero means exclude nothing. The snapshot may contain appointments
// of other customers; only the candidate's customer is consulted.
func (v *Validator) Validate(candidate Interval, customerID, excludeID int64, existing []Appointment) Decision {
	if !candidate.Valid() {
		return Decision{Reason: ReasonInvalidOrdering}
	}
	if !v.hours.Contains(candidate) {
		return Decision{Reason: ReasonOutsideBusinessHours}
	}
	for _, appt := range existing {
		if appt.CustomerID != customerID {
			continue
		}
		if excludeID != 0 && appt.ID == excludeID {
			continue
		}
		if candidate.Conflicts(appt.Interval) {
			return Decision{Reason: ReasonOverlap, ConflictID: appt.ID}
		}
	}
	return Decision{Allowed: true}
}

package scheduling

import (
	"testing"
	"time"
)

func newYorkValidator(t *testing.T) (*Validator, *time.Location) {
	t.Helper()
	loc, err := LoadZone("America/New_York")
	if err != nil {
		t.Fatalf("LoadZone: %v", err)
	}
	return NewValidator(BusinessHours{
		Open:     Clock{Hour: 8},
		Close:    Clock{Hour: 22},
		Location: loc,
	}), loc
}

func TestValidateOrdering(t *testing.T) {
	t.Parallel()

	validator, loc := newYorkValidator(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, time.June, 15, hour, minute, 0, 0, loc)
	}

	t.Run("start after end", func(t *testing.T) {
		t.Parallel()

		decision := validator.Validate(Interval{Start: at(11, 0), End: at(10, 0)}, 1, 0, nil)
		if decision.Allowed || decision.Reason != ReasonInvalidOrdering {
			t.Fatalf("expected invalid ordering, got %+v", decision)
		}
	})

	t.Run("zero length", func(t *testing.T) {
		t.Parallel()

		decision := validator.Validate(Interval{Start: at(10, 0), End: at(10, 0)}, 1, 0, nil)
		if decision.Allowed || decision.Reason != ReasonInvalidOrdering {
			t.Fatalf("expected invalid ordering, got %+v", decision)
		}
	})

	t.Run("ordering is judged on the instant not the wall clock", func(t *testing.T) {
		t.Parallel()

		tokyo, err := LoadZone("Asia/Tokyo")
		if err != nil {
			t.Fatalf("LoadZone: %v", err)
		}
		// 23:00 Tokyo is 10:00 New York the same instant-day; wall-clock
		// readings are misordered but the instants are not.
		start := time.Date(2026, time.June, 15, 23, 0, 0, 0, tokyo)
		end := time.Date(2026, time.June, 15, 11, 0, 0, 0, loc)
		decision := validator.Validate(Interval{Start: start, End: end}, 1, 0, nil)
		if !decision.Allowed {
			t.Fatalf("expected acceptance, got %+v", decision)
		}
	})
}

func TestValidateBusinessHours(t *testing.T) {
	t.Parallel()

	validator, loc := newYorkValidator(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, time.June, 15, hour, minute, 0, 0, loc)
	}

	cases := []struct {
		name    string
		iv      Interval
		allowed bool
	}{
		{name: "well inside", iv: Interval{Start: at(9, 0), End: at(17, 0)}, allowed: true},
		{name: "starts before opening", iv: Interval{Start: at(7, 59), End: at(9, 0)}, allowed: false},
		{name: "ends after closing", iv: Interval{Start: at(21, 0), End: at(22, 1)}, allowed: false},
		{name: "whole window", iv: Interval{Start: at(8, 0), End: at(22, 0)}, allowed: true},
		{
			name: "crosses midnight",
			iv: Interval{
				Start: at(21, 0),
				End:   time.Date(2026, time.June, 16, 1, 0, 0, 0, loc),
			},
			allowed: false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			decision := validator.Validate(tc.iv, 1, 0, nil)
			if decision.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%v, got %+v", tc.allowed, decision)
			}
			if !tc.allowed && decision.Reason != ReasonOutsideBusinessHours {
				t.Errorf("expected outside business hours, got %s", decision.Reason)
			}
		})
	}
}

func TestValidateOverlap(t *testing.T) {
	t.Parallel()

	validator, loc := newYorkValidator(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, time.June, 15, hour, minute, 0, 0, loc)
	}
	existing := []Appointment{
		{ID: 5, CustomerID: 1, Interval: Interval{Start: at(10, 0), End: at(11, 0)}},
		{ID: 9, CustomerID: 2, Interval: Interval{Start: at(13, 0), End: at(14, 0)}},
	}

	t.Run("partial overlap conflicts", func(t *testing.T) {
		t.Parallel()

		decision := validator.Validate(Interval{Start: at(10, 30), End: at(11, 30)}, 1, 0, existing)
		if decision.Allowed || decision.Reason != ReasonOverlap {
			t.Fatalf("expected overlap, got %+v", decision)
		}
		if decision.ConflictID != 5 {
			t.Errorf("expected conflict with appointment 5, got %d", decision.ConflictID)
		}
	})

	t.Run("touching boundary conflicts", func(t *testing.T) {
		t.Parallel()

		// New appointment starts exactly when appointment 5 ends.
		decision := validator.Validate(Interval{Start: at(11, 0), End: at(12, 0)}, 1, 0, existing)
		if decision.Allowed || decision.Reason != ReasonOverlap || decision.ConflictID != 5 {
			t.Fatalf("expected boundary touch to conflict with 5, got %+v", decision)
		}

		// And one that ends exactly when appointment 5 starts.
		decision = validator.Validate(Interval{Start: at(9, 0), End: at(10, 0)}, 1, 0, existing)
		if decision.Allowed || decision.Reason != ReasonOverlap || decision.ConflictID != 5 {
			t.Fatalf("expected boundary touch to conflict with 5, got %+v", decision)
		}
	})

	t.Run("conflict detection is symmetric", func(t *testing.T) {
		t.Parallel()

		a := Interval{Start: at(10, 0), End: at(11, 0)}
		b := Interval{Start: at(10, 30), End: at(11, 30)}
		if a.Conflicts(b) != b.Conflicts(a) {
			t.Error("expected Conflicts to be symmetric")
		}
	})

	t.Run("other customers do not interfere", func(t *testing.T) {
		t.Parallel()

		// Customer 1 books over customer 2's 13:00-14:00 slot.
		decision := validator.Validate(Interval{Start: at(13, 0), End: at(14, 0)}, 1, 0, existing)
		if !decision.Allowed {
			t.Fatalf("expected acceptance across customers, got %+v", decision)
		}
	})

	t.Run("free slot is accepted", func(t *testing.T) {
		t.Parallel()

		decision := validator.Validate(Interval{Start: at(15, 0), End: at(16, 0)}, 1, 0, existing)
		if !decision.Allowed {
			t.Fatalf("expected acceptance, got %+v", decision)
		}
	})
}

func TestValidateExcludeID(t *testing.T) {
	t.Parallel()

	validator, loc := newYorkValidator(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, time.June, 15, hour, minute, 0, 0, loc)
	}
	existing := []Appointment{
		{ID: 5, CustomerID: 1, Interval: Interval{Start: at(10, 0), End: at(11, 0)}},
	}
	candidate := Interval{Start: at(10, 15), End: at(11, 15)}

	t.Run("editing an appointment ignores its own slot", func(t *testing.T) {
		t.Parallel()

		decision := validator.Validate(candidate, 1, 5, existing)
		if !decision.Allowed {
			t.Fatalf("expected acceptance when excluding 5, got %+v", decision)
		}
	})

	t.Run("without exclusion the same move conflicts", func(t *testing.T) {
		t.Parallel()

		decision := validator.Validate(candidate, 1, 0, existing)
		if decision.Allowed || decision.Reason != ReasonOverlap || decision.ConflictID != 5 {
			t.Fatalf("expected conflict with 5, got %+v", decision)
		}
	})
}

// Walks one customer's day end to end the way the booking flow does.
func TestValidateCustomerDay(t *testing.T) {
	t.Parallel()

	validator, loc := newYorkValidator(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, time.June, 15, hour, minute, 0, 0, loc)
	}

	var existing []Appointment
	book := func(id int64, iv Interval) {
		t.Helper()
		decision := validator.Validate(iv, 3, 0, existing)
		if !decision.Allowed {
			t.Fatalf("expected booking %d to succeed, got %+v", id, decision)
		}
		existing = append(existing, Appointment{ID: id, CustomerID: 3, Interval: iv})
	}

	book(1, Interval{Start: at(9, 0), End: at(10, 0)})
	book(2, Interval{Start: at(11, 0), End: at(12, 0)})

	// The gap between them is an hour wide, but both boundaries touch.
	decision := validator.Validate(Interval{Start: at(10, 0), End: at(11, 0)}, 3, 0, existing)
	if decision.Allowed {
		t.Fatalf("expected the gap-filling slot to conflict, got %+v", decision)
	}

	// Shrunk by a minute on each side it fits.
	book(3, Interval{Start: at(10, 1), End: at(10, 59)})

	// Another customer can mirror the whole day.
	for _, appt := range existing {
		if d := validator.Validate(appt.Interval, 4, 0, existing); !d.Allowed {
			t.Fatalf("expected customer 4 to book %v freely, got %+v", appt.Interval, d)
		}
	}
}

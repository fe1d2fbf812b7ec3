package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownZone indicates a time zone identifier that is not present in the
// IANA database available to the process.
var ErrUnknownZone = errors.New("unknown time zone")

// LoadZone resolves an IANA zone identifier such as "America/New_York".
// Unknown or empty identifiers are reported as ErrUnknownZone; callers treat
// that as a configuration or input defect rather than inventing a fallback
// offset.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return loc, nil
}

// ToZone re-expresses an instant in the given zone. The instant itself is
// unchanged, only the wall-clock reading moves.
func ToZone(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// FromCivil interprets a wall-clock reading in the given zone and returns the
// instant it denotes.
func FromCivil(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

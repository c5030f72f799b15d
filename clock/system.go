package clock

import (
	"fmt"
	"time"
)

// DefaultZone is used when no zone is configured.
const DefaultZone = "Europe/Berlin"

// System reads the host clock in a fixed location.
type System struct {
	loc *time.Location
	now func() time.Time
}

func NewSystem(zone string) (*System, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("couldn't load zone %q: %w", zone, err)
	}
	return &System{loc, time.Now}, nil
}

func (s *System) Location() *time.Location {
	return s.loc
}

func (s *System) Now() (Time, bool) {
	return FromTime(s.now().In(s.loc)), true
}

package domain

import (
	"fmt"
	"time"

	_ "time/tzdata"
)

// DefaultLocation is the event's reference time zone.
const DefaultLocation = "America/New_York"

// LoadLocation resolves name, or DefaultLocation when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultLocation
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", name, err)
	}
	return loc, nil
}

package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// GuestOrderingConfigID is the document id of the singleton config record.
const GuestOrderingConfigID = "guestOrdering"

// GuestOrderingConfig is the admin-controlled guest ordering schedule. Hours
// are clock hours in the reference location. EndHour < StartHour means the
// window crosses midnight; EndHour == StartHour means the whole day.
type GuestOrderingConfig struct {
	Enabled   bool `json:"enabled"`
	DayOfWeek int  `json:"dayOfWeek"`
	StartHour int  `json:"startHour"`
	EndHour   int  `json:"endHour"`
}

// DefaultGuestOrderingConfig is Wednesday 22:00 to midnight.
func DefaultGuestOrderingConfig() GuestOrderingConfig {
	return GuestOrderingConfig{
		Enabled:   true,
		DayOfWeek: int(time.Wednesday),
		StartHour: 22,
		EndHour:   0,
	}
}

// ParseGuestOrderingConfig decodes a stored document. Missing fields, fields
// of the wrong type and out-of-range values fall back to the default for that
// field; a document that is not a JSON object yields the defaults.
func ParseGuestOrderingConfig(raw []byte) GuestOrderingConfig {
	cfg := DefaultGuestOrderingConfig()

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return cfg
	}

	if v, ok := doc["enabled"].(bool); ok {
		cfg.Enabled = v
	}
	if v, ok := intField(doc, "dayOfWeek", 0, 6); ok {
		cfg.DayOfWeek = v
	}
	if v, ok := intField(doc, "startHour", 0, 23); ok {
		cfg.StartHour = v
	}
	if v, ok := intField(doc, "endHour", 0, 23); ok {
		cfg.EndHour = v
	}
	return cfg
}

func intField(doc map[string]any, key string, lo, hi int) (int, bool) {
	f, ok := doc[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	n := int(f)
	if n < lo || n > hi {
		return 0, false
	}
	return n, true
}

// Validate is applied to admin writes; reads are coerced instead.
func (c GuestOrderingConfig) Validate() error {
	if c.DayOfWeek < 0 || c.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be 0-6", ErrValidation)
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("%w: startHour must be 0-23", ErrValidation)
	}
	if c.EndHour < 0 || c.EndHour > 23 {
		return fmt.Errorf("%w: endHour must be 0-23", ErrValidation)
	}
	return nil
}

func (c GuestOrderingConfig) Document() ([]byte, error) {
	return json.Marshal(c)
}

// IsWithinWindow reports whether guest ordering is open at now. The weekday
// and hour are taken from now in loc; the day check uses the current day, so
// 00:30 after a Wednesday 22-0 window is a Thursday and is outside it.
func IsWithinWindow(cfg GuestOrderingConfig, now time.Time, loc *time.Location) bool {
	if !cfg.Enabled {
		return false
	}
	if loc != nil {
		now = now.In(loc)
	}
	if int(now.Weekday()) != cfg.DayOfWeek {
		return false
	}

	hour := now.Hour()
	switch {
	case cfg.EndHour > cfg.StartHour:
		return hour >= cfg.StartHour && hour < cfg.EndHour
	case cfg.EndHour < cfg.StartHour:
		return hour >= cfg.StartHour || hour < cfg.EndHour
	default:
		return true
	}
}

// Describe renders the window for guest-facing messages, e.g.
// "Wednesday from 10:00 PM to 12:00 AM".
func (c GuestOrderingConfig) Describe() string {
	day := time.Weekday(c.DayOfWeek).String()
	if c.StartHour == c.EndHour {
		return day + " (all day)"
	}
	return fmt.Sprintf("%s from %s to %s", day, clockHour(c.StartHour), clockHour(c.EndHour))
}

func clockHour(h int) string {
	return time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("3:04 PM")
}

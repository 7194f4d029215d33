package domain

import (
	"fmt"
	"time"
)

// DefaultCooldown is the minimum gap between two orders from one guest.
const DefaultCooldown = 15 * time.Minute

// Cooldown is the per-guest cooldown state at a given instant.
type Cooldown struct {
	Eligible         bool `json:"eligible"`
	MinutesRemaining int  `json:"minutesRemaining"`
}

// CooldownStatus computes the cooldown anchored at the guest's last order. A
// nil lastOrder means the guest has never ordered. A lastOrder ahead of now
// (clock skew) counts as a full cooldown.
func CooldownStatus(lastOrder *time.Time, now time.Time, cooldown time.Duration) Cooldown {
	if lastOrder == nil {
		return Cooldown{Eligible: true}
	}
	elapsed := now.Sub(*lastOrder)
	if elapsed >= cooldown {
		return Cooldown{Eligible: true}
	}
	remaining := min(cooldown-elapsed, cooldown)
	minutes := int(remaining / time.Minute)
	if remaining%time.Minute != 0 {
		minutes++
	}
	return Cooldown{Eligible: false, MinutesRemaining: minutes}
}

type RejectionReason string

const (
	ReasonDisabled       RejectionReason = "guest_ordering_disabled"
	ReasonOutsideWindow  RejectionReason = "outside_window"
	ReasonCooldown       RejectionReason = "cooldown_active"
	ReasonEmptySelection RejectionReason = "empty_selection"
)

// Rejection is one failed gate with the message shown to the guest.
type Rejection struct {
	Reason  RejectionReason `json:"reason"`
	Message string          `json:"message"`
	// MinutesRemaining is only set on cooldown rejections.
	MinutesRemaining int `json:"minutesRemaining,omitempty"`
}

// EligibilityInput is everything the combined gate looks at.
type EligibilityInput struct {
	Config    GuestOrderingConfig
	Now       time.Time
	Location  *time.Location
	LastOrder *time.Time
	Cooldown  time.Duration

	// Selection is only checked when CheckSelection is set; eligibility
	// displays ask "may I order?" before anything is picked.
	Selection      []string
	CheckSelection bool
}

// Decision is the combined gate result.
type Decision struct {
	Allowed      bool        `json:"allowed"`
	Enabled      bool        `json:"enabled"`
	WithinWindow bool        `json:"withinWindow"`
	Window       string      `json:"window"`
	Cooldown     Cooldown    `json:"cooldown"`
	Rejections   []Rejection `json:"rejections,omitempty"`
}

// Err returns a *PolicyError when the decision is a rejection.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &PolicyError{Rejections: d.Rejections}
}

// Evaluate runs every gate in order: global switch, weekly window, cooldown,
// selection. Each failing gate contributes its own rejection.
func Evaluate(in EligibilityInput) Decision {
	cooldown := in.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	d := Decision{
		Enabled:      in.Config.Enabled,
		WithinWindow: IsWithinWindow(in.Config, in.Now, in.Location),
		Window:       in.Config.Describe(),
		Cooldown:     CooldownStatus(in.LastOrder, in.Now, cooldown),
	}

	if !d.Enabled {
		d.Rejections = append(d.Rejections, Rejection{
			Reason:  ReasonDisabled,
			Message: "Guest ordering is currently disabled.",
		})
	} else if !d.WithinWindow {
		d.Rejections = append(d.Rejections, Rejection{
			Reason:  ReasonOutsideWindow,
			Message: fmt.Sprintf("Guest ordering is only open on %s.", d.Window),
		})
	}

	if !d.Cooldown.Eligible {
		d.Rejections = append(d.Rejections, Rejection{
			Reason: ReasonCooldown,
			Message: fmt.Sprintf("You recently placed an order. You can order again in about %d minute(s).",
				d.Cooldown.MinutesRemaining),
			MinutesRemaining: d.Cooldown.MinutesRemaining,
		})
	}

	if in.CheckSelection && len(NormalizeOptions(in.Selection)) == 0 {
		d.Rejections = append(d.Rejections, Rejection{
			Reason:  ReasonEmptySelection,
			Message: "Please select at least one option.",
		})
	}

	d.Allowed = len(d.Rejections) == 0
	return d
}

package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMenu is the topping list used when the config does not name one.
var DefaultMenu = []string{"Plain", "Chocolate Chip", "Banana", "Blueberry"}

const (
	GuestDisplayName = "Guest"
	maxNameLength    = 100
	maxNotesLength   = 500
	maxOptions       = 20
)

// Order represents a pancake order on the board
type Order struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	SelectedOptions []string   `json:"selectedOptions"`
	Notes           string     `json:"notes,omitempty"`
	Status          Status     `json:"status"`
	Submitter       Submitter  `json:"submitter"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// NewOrder builds a Pending order. ID and CreatedAt are left for the store to
// assign at write time.
func NewOrder(name string, options []string, notes string, submitter Submitter, menu []string) (*Order, error) {
	order := &Order{
		Name:            strings.TrimSpace(name),
		SelectedOptions: NormalizeOptions(options),
		Notes:           strings.TrimSpace(notes),
		Status:          StatusPending,
		Submitter:       submitter,
	}

	if err := order.Validate(menu); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate applies business validation rules
func (o *Order) Validate(menu []string) error {
	if o.Name == "" || utf8.RuneCountInString(o.Name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrValidation, maxNameLength)
	}
	if len(o.SelectedOptions) == 0 {
		return fmt.Errorf("%w: select at least one option", ErrValidation)
	}
	if len(o.SelectedOptions) > maxOptions {
		return fmt.Errorf("%w: at most %d options", ErrValidation, maxOptions)
	}
	if len(menu) > 0 {
		for _, opt := range o.SelectedOptions {
			if !containsFold(menu, opt) {
				return fmt.Errorf("%w: %q is not on the menu", ErrValidation, opt)
			}
		}
	}
	if utf8.RuneCountInString(o.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrValidation, maxNotesLength)
	}
	return nil
}

// NormalizeOptions trims options and drops blanks and duplicates, keeping the
// first occurrence order.
func NormalizeOptions(options []string) []string {
	seen := make(map[string]bool, len(options))
	out := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || seen[opt] {
			continue
		}
		seen[opt] = true
		out = append(out, opt)
	}
	return out
}

// DisplayName picks the first non-empty candidate, falling back to "Guest".
func DisplayName(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return GuestDisplayName
}

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCooking, StatusDelayed, StatusDone, StatusCompleted},
	StatusCooking:   {StatusDelayed, StatusDone, StatusCompleted},
	StatusDelayed:   {StatusCooking, StatusDone, StatusCompleted},
	StatusDone:      {StatusCompleted},
	StatusCompleted: {},
}

// CanTransitionTo checks if the order can transition to the new status
func (o *Order) CanTransitionTo(newStatus Status) bool {
	for _, s := range validTransitions[o.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// StatusChange is the only mutation a transition performs: the status field,
// plus a store-assigned completion time on entry to completed.
type StatusChange struct {
	From     Status
	To       Status
	Complete bool
	// By names who made the change; it travels with events only.
	By string
}

// PlanTransition validates a move to newStatus. ok is false when the order is
// already in newStatus and nothing needs writing.
func (o *Order) PlanTransition(newStatus Status) (change StatusChange, ok bool, err error) {
	if o.Status == newStatus && !newStatus.IsTerminal() {
		return StatusChange{}, false, nil
	}
	if !o.CanTransitionTo(newStatus) {
		return StatusChange{}, false, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, newStatus)
	}
	return StatusChange{From: o.Status, To: newStatus, Complete: newStatus == StatusCompleted}, true, nil
}

// Apply mirrors a successful StatusChange onto the in-memory record.
func (o *Order) Apply(change StatusChange, completedAt time.Time) {
	o.Status = change.To
	if change.Complete {
		at := completedAt
		o.CompletedAt = &at
	}
}

// Wait is the time between creation and completion. ok is false for orders
// that are not completed yet.
func (o *Order) Wait() (time.Duration, bool) {
	if o.CompletedAt == nil || o.CreatedAt.IsZero() {
		return 0, false
	}
	return o.CompletedAt.Sub(o.CreatedAt), true
}

// StatusLog is one entry of an order's status history.
type StatusLog struct {
	Status    Status    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"strings"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidView             = errors.New("invalid board view")
	ErrSubmissionInFlight      = errors.New("a submission for this guest is already in progress")
	ErrStoreUnavailable        = errors.New("order store unavailable")
	ErrValidation              = errors.New("validation failed")
	ErrUserNotFound            = errors.New("user not found")
)

// PolicyError is returned when a guest is not allowed to submit right now.
// It is an expected outcome: nothing was written.
type PolicyError struct {
	Rejections []Rejection
}

func (e *PolicyError) Error() string {
	msgs := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		msgs = append(msgs, r.Message)
	}
	return strings.Join(msgs, " ")
}

// Primary is the first failing gate, in gate order.
func (e *PolicyError) Primary() Rejection {
	if len(e.Rejections) == 0 {
		return Rejection{}
	}
	return e.Rejections[0]
}

// MinutesRemaining is the cooldown left, or 0 when the cooldown passed.
func (e *PolicyError) MinutesRemaining() int {
	for _, r := range e.Rejections {
		if r.Reason == ReasonCooldown {
			return r.MinutesRemaining
		}
	}
	return 0
}

// Has reports whether the given gate failed.
func (e *PolicyError) Has(reason RejectionReason) bool {
	for _, r := range e.Rejections {
		if r.Reason == reason {
			return true
		}
	}
	return false
}

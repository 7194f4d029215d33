package domain

import "strings"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCooking   Status = "Cooking"
	StatusDelayed   Status = "Delayed"
	StatusDone      Status = "Done"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts the canonical spelling and a case-insensitive match of it.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusPending, StatusCooking, StatusDelayed, StatusDone, StatusCompleted} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// View names a status board. Each view shows a fixed, ordered set of buckets.
type View string

const (
	ViewKitchen View = "kitchen"
	ViewHome    View = "home"
)

var viewStatuses = map[View][]Status{
	ViewKitchen: {StatusPending, StatusCooking, StatusDelayed},
	ViewHome:    {StatusPending, StatusCooking, StatusDelayed, StatusDone},
}

// ParseView defaults to the kitchen view for an empty string.
func ParseView(s string) (View, error) {
	if s == "" {
		return ViewKitchen, nil
	}
	v := View(strings.ToLower(s))
	if _, ok := viewStatuses[v]; !ok {
		return "", ErrInvalidView
	}
	return v, nil
}

// Statuses returns a copy of the view's bucket order.
func (v View) Statuses() []Status {
	return append([]Status(nil), viewStatuses[v]...)
}

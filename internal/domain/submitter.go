package domain

import "fmt"

type SubmitterKind string

const (
	SubmitterNone      SubmitterKind = ""
	SubmitterAccount   SubmitterKind = "account"
	SubmitterAnonymous SubmitterKind = "device"
)

// Submitter identifies who placed an order: a signed-in account or an
// anonymous per-device id. The zero value means "unknown" and only occurs on
// admin-entered legacy records.
type Submitter struct {
	Kind SubmitterKind `json:"kind"`
	ID   string        `json:"id"`
}

func Account(id string) Submitter {
	return Submitter{Kind: SubmitterAccount, ID: id}
}

func AnonymousDevice(id string) Submitter {
	return Submitter{Kind: SubmitterAnonymous, ID: id}
}

func (s Submitter) IsZero() bool {
	return s.Kind == SubmitterNone || s.ID == ""
}

// Key is a stable map key for per-submitter state.
func (s Submitter) Key() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}

// Columns splits the submitter into the persisted user_id / customer_id pair.
func (s Submitter) Columns() (userID, customerID *string) {
	if s.IsZero() {
		return nil, nil
	}
	id := s.ID
	switch s.Kind {
	case SubmitterAccount:
		return &id, nil
	case SubmitterAnonymous:
		return nil, &id
	}
	return nil, nil
}

// SubmitterFromColumns is the inverse of Columns. An account id wins when a
// record carries both.
func SubmitterFromColumns(userID, customerID *string) Submitter {
	if userID != nil && *userID != "" {
		return Account(*userID)
	}
	if customerID != nil && *customerID != "" {
		return AnonymousDevice(*customerID)
	}
	return Submitter{}
}

// Actor is how the submitter appears in the status history of an order it
// created. Orders without a submitter were entered by staff.
func (s Submitter) Actor() string {
	if s.IsZero() {
		return "staff"
	}
	return s.Key()
}

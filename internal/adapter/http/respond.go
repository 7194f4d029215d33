package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/YelzhanWeb/pancakes/internal/domain"
)

const maxBodyBytes = 64 << 10

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`

	// Policy rejections only.
	Reason           domain.RejectionReason `json:"reason,omitempty"`
	Rejections       []domain.Rejection     `json:"rejections,omitempty"`
	MinutesRemaining int                    `json:"minutes_remaining,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps a service error onto a status code and body. Store
// failures never leak their cause to the client.
func respondError(w http.ResponseWriter, err error) {
	var policy *domain.PolicyError
	switch {
	case errors.As(err, &policy):
		primary := policy.Primary()
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:            primary.Message,
			Reason:           primary.Reason,
			Rejections:       policy.Rejections,
			MinutesRemaining: policy.MinutesRemaining(),
		})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidView):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "Your order is already being placed"})
	case errors.Is(err, domain.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Something went wrong. Please try again."})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// decodeJSON reads a single JSON object, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type AdminHandler struct {
	service interfaces.AdminService
	logger  logger.Logger
}

func NewAdminHandler(service interfaces.AdminService, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// GuestOrderingRequest requires every field so a partial body cannot silently
// reset the schedule.
type GuestOrderingRequest struct {
	Enabled   *bool `json:"enabled"`
	DayOfWeek *int  `json:"dayOfWeek"`
	StartHour *int  `json:"startHour"`
	EndHour   *int  `json:"endHour"`
}

func (req GuestOrderingRequest) validate() []ValidationError {
	var errs []ValidationError
	if req.Enabled == nil {
		errs = append(errs, ValidationError{Field: "enabled", Message: "enabled is required"})
	}
	if req.DayOfWeek == nil {
		errs = append(errs, ValidationError{Field: "dayOfWeek", Message: "dayOfWeek is required"})
	}
	if req.StartHour == nil {
		errs = append(errs, ValidationError{Field: "startHour", Message: "startHour is required"})
	}
	if req.EndHour == nil {
		errs = append(errs, ValidationError{Field: "endHour", Message: "endHour is required"})
	}
	return errs
}

func (h *AdminHandler) GuestOrderingConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GuestOrderingConfig(r.Context())
	if err != nil {
		h.logger.Error("config_load_failed", "Failed to load guest ordering config", middleware.GetReqID(r.Context()), nil, err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *AdminHandler) SetGuestOrderingConfig(w http.ResponseWriter, r *http.Request) {
	var req GuestOrderingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Errors: errs})
		return
	}

	cfg := domain.GuestOrderingConfig{
		Enabled:   *req.Enabled,
		DayOfWeek: *req.DayOfWeek,
		StartHour: *req.StartHour,
		EndHour:   *req.EndHour,
	}
	if err := h.service.SetGuestOrderingConfig(r.Context(), cfg); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *AdminHandler) Weeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.service.Weeks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weeks)
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.Analytics(r.Context(), r.URL.Query().Get("week"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		h.logger.Error("leaderboard_failed", "Failed to build leaderboard", middleware.GetReqID(r.Context()), nil, err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

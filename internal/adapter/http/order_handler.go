package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// EligibilityWatcher streams a guest's eligibility as it changes.
type EligibilityWatcher interface {
	Run(ctx context.Context, submitter domain.Submitter, emit func(domain.Decision)) error
}

type OrderHandler struct {
	service interfaces.OrderingService
	watcher EligibilityWatcher
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderingService, watcher EligibilityWatcher, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		watcher: watcher,
		logger:  logger,
	}
}

type CreateOrderRequest struct {
	Name            string   `json:"name"`
	SelectedOptions []string `json:"selectedOptions"`
	Notes           string   `json:"notes"`
}

func (h *OrderHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	decision, err := h.service.Eligibility(r.Context(), id.Submitter)
	if err != nil {
		h.logger.Error("eligibility_failed", "Failed to evaluate eligibility", middleware.GetReqID(r.Context()), nil, err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

// EligibilityStream pushes the guest's decision whenever it changes, so the
// order form can open and close without a reload.
func (h *OrderHandler) EligibilityStream(w http.ResponseWriter, r *http.Request) {
	stream, ok := newEventStream(w)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Streaming unsupported"})
		return
	}

	ctx := r.Context()
	id := IdentityFrom(ctx)
	updates := make(chan domain.Decision, 1)
	go func() {
		_ = h.watcher.Run(ctx, id.Submitter, func(d domain.Decision) {
			latest(updates, d)
		})
	}()

	ping := time.NewTicker(keepAlive)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-updates:
			if err := stream.Send("eligibility", d); err != nil {
				return
			}
		case <-ping.C:
			if err := stream.Ping(); err != nil {
				return
			}
		}
	}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())
	id := IdentityFrom(r.Context())

	var req CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	order, err := h.service.Submit(r.Context(), interfaces.SubmitOrderCommand{
		Submitter:       id.Submitter,
		Name:            req.Name,
		SelectedOptions: req.SelectedOptions,
		Notes:           req.Notes,
	})
	if err != nil {
		h.logger.Warn("order_rejected", "Order submission rejected", requestID, map[string]interface{}{
			"submitter": id.Submitter.Key(),
			"error":     err.Error(),
		})
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// CreateAdminOrder enters an order on a guest's behalf. Ordering policy does
// not apply.
func (h *OrderHandler) CreateAdminOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	order, err := h.service.SubmitAsAdmin(r.Context(), interfaces.SubmitOrderCommand{
		Name:            req.Name,
		SelectedOptions: req.SelectedOptions,
		Notes:           req.Notes,
	})
	if err != nil {
		h.logger.Error("admin_order_failed", "Failed to enter order", middleware.GetReqID(r.Context()), nil, err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:  "Validation failed",
				Errors: []ValidationError{{Field: "limit", Message: "limit must be a non-negative integer"}},
			})
			return
		}
		limit = n
	}

	orders, err := h.service.RecentOrders(r.Context(), id.Submitter, limit)
	if err != nil {
		h.logger.Error("recent_orders_failed", "Failed to load guest orders", middleware.GetReqID(r.Context()), nil, err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// latest replaces whatever is buffered in ch with v. ch must have capacity 1
// and a single sender.
func latest[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

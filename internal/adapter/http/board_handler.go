package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type BoardHandler struct {
	service interfaces.KitchenService
	logger  logger.Logger
}

func NewBoardHandler(service interfaces.KitchenService, logger logger.Logger) *BoardHandler {
	return &BoardHandler{
		service: service,
		logger:  logger,
	}
}

type AdvanceRequest struct {
	Status string `json:"status"`
}

func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	view, err := domain.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		respondError(w, err)
		return
	}

	board, err := h.service.Board(r.Context(), view)
	if err != nil {
		h.logger.Error("board_failed", "Failed to load board", middleware.GetReqID(r.Context()), map[string]interface{}{
			"view": view,
		}, err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Stream sends the full board on connect and again after every change.
func (h *BoardHandler) Stream(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())
	view, err := domain.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	updates := make(chan domain.Board, 1)
	unsubscribe, err := h.service.Watch(ctx, view, func(b domain.Board) {
		latest(updates, b)
	})
	if err != nil {
		h.logger.Error("board_watch_failed", "Failed to subscribe to board", requestID, map[string]interface{}{
			"view": view,
		}, err)
		respondError(w, err)
		return
	}
	defer unsubscribe()

	stream, ok := newEventStream(w)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Streaming unsupported"})
		return
	}

	h.logger.Debug("board_stream_opened", "Board stream opened", requestID, map[string]interface{}{
		"view": view,
	})

	ping := time.NewTicker(keepAlive)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case b := <-updates:
			if err := stream.Send("board", b); err != nil {
				return
			}
		case <-ping.C:
			if err := stream.Ping(); err != nil {
				return
			}
		}
	}
}

func (h *BoardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Validation failed",
			Errors: []ValidationError{{Field: "status", Message: "unknown status"}},
		})
		return
	}

	id := chi.URLParam(r, "id")
	actor := IdentityFrom(r.Context()).Submitter.Key()
	order, err := h.service.Advance(r.Context(), id, status, actor)
	h.respondChange(w, r, id, status, order, err)
}

// Remove takes an order off every board by completing it.
func (h *BoardHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := IdentityFrom(r.Context()).Submitter.Key()
	order, err := h.service.Remove(r.Context(), id, actor)
	h.respondChange(w, r, id, domain.StatusCompleted, order, err)
}

func (h *BoardHandler) respondChange(w http.ResponseWriter, r *http.Request, id string, status domain.Status, order *domain.Order, err error) {
	if err != nil {
		h.logger.Warn("status_change_failed", "Failed to change order status", middleware.GetReqID(r.Context()), map[string]interface{}{
			"order_id": id,
			"status":   status,
			"error":    err.Error(),
		})
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *BoardHandler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	history, err := h.service.History(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

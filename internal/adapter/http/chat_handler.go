package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type ChatHandler struct {
	service interfaces.ChatService
	logger  logger.Logger
}

func NewChatHandler(service interfaces.ChatService, logger logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

type PostChatRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.Recent(r.Context())
	if err != nil {
		h.logger.Error("chat_query_failed", "Failed to load chat", middleware.GetReqID(r.Context()), nil, err)
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	id := IdentityFrom(r.Context())

	var req PostChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	msg, err := h.service.Post(r.Context(), interfaces.PostChatCommand{
		Submitter: id.Submitter,
		Name:      req.Name,
		Text:      req.Text,
	})
	if err != nil {
		h.logger.Warn("chat_rejected", "Chat message rejected", middleware.GetReqID(r.Context()), map[string]interface{}{
			"submitter": id.Submitter.Key(),
			"error":     err.Error(),
		})
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// Stream sends the latest messages, oldest first, on every new post.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	updates := make(chan []*domain.ChatMessage, 1)
	unsubscribe, err := h.service.Watch(ctx, func(m []*domain.ChatMessage) {
		latest(updates, m)
	})
	if err != nil {
		h.logger.Error("chat_watch_failed", "Failed to subscribe to chat", middleware.GetReqID(ctx), nil, err)
		respondError(w, err)
		return
	}
	defer unsubscribe()

	stream, ok := newEventStream(w)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Streaming unsupported"})
		return
	}

	ping := time.NewTicker(keepAlive)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-updates:
			if err := stream.Send("chat", m); err != nil {
				return
			}
		case <-ping.C:
			if err := stream.Ping(); err != nil {
				return
			}
		}
	}
}

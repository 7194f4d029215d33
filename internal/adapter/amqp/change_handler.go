package amqp

import (
	"context"
	"encoding/json"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// Refresher is implemented by the live feed; Notify re-runs every
// subscription query.
type Refresher interface {
	Notify()
}

// ChangeHandler refreshes local subscriptions when another instance writes
// an order or posts to the chat.
type ChangeHandler struct {
	orders Refresher
	chat   Refresher
	origin string
	logger logger.Logger
}

// NewChangeHandler routes order events to orders and chat events to chat.
// chat may be nil.
func NewChangeHandler(orders, chat Refresher, origin string, logger logger.Logger) *ChangeHandler {
	return &ChangeHandler{
		orders: orders,
		chat:   chat,
		origin: origin,
		logger: logger,
	}
}

func (h *ChangeHandler) HandleChange(ctx context.Context, body []byte) error {
	var msg interfaces.OrderEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order event", "", nil, err)
		return err
	}

	// local writes have already refreshed the feed
	if msg.Origin == h.origin {
		return nil
	}

	h.logger.Debug("order_event_received", "Refreshing live feed", "", map[string]interface{}{
		"order_id": msg.OrderID,
		"kind":     msg.Kind,
		"origin":   msg.Origin,
	})
	if !msg.Kind.IsOrderEvent() {
		if h.chat != nil {
			h.chat.Notify()
		}
		return nil
	}
	h.orders.Notify()
	return nil
}

package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type NotificationHandler struct {
	notifier interfaces.Notifier
	logger   logger.Logger
}

// NewNotificationHandler forwards events to notifier; a nil notifier only
// logs them.
func NewNotificationHandler(notifier interfaces.Notifier, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.OrderEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}
	if !msg.Kind.IsOrderEvent() {
		return nil
	}

	h.logger.Info("notification_received", fmt.Sprintf("Order %s: %s", msg.OrderID, msg.Kind), "", map[string]interface{}{
		"order_id":   msg.OrderID,
		"old_status": msg.OldStatus,
		"new_status": msg.NewStatus,
		"changed_by": msg.ChangedBy,
	})

	if h.notifier == nil {
		return nil
	}
	if err := h.notifier.Notify(ctx, msg); err != nil {
		return fmt.Errorf("failed to notify kitchen: %w", err)
	}
	return nil
}

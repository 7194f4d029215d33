package interfaces

//go:generate mockgen -destination=mocks/mock_messaging.go . MessagePublisher,MessageConsumer,Notifier

import (
	"context"
	"time"

	"github.com/YelzhanWeb/pancakes/internal/domain"
)

type OrderEventKind string

const (
	EventOrderCreated  OrderEventKind = "order_created"
	EventStatusChanged OrderEventKind = "status_changed"

	// EventChatMessage only refreshes chat feeds; OrderID carries the
	// message id and Name the sender.
	EventChatMessage OrderEventKind = "chat_message"
)

// IsOrderEvent reports whether the event concerns an order.
func (k OrderEventKind) IsOrderEvent() bool {
	return k != EventChatMessage
}

// Сообщения RabbitMQ
type OrderEventMessage struct {
	Kind      OrderEventKind `json:"kind"`
	OrderID   string         `json:"order_id"`
	Name      string         `json:"name"`
	Options   []string       `json:"options,omitempty"`
	OldStatus domain.Status  `json:"old_status,omitempty"`
	NewStatus domain.Status  `json:"new_status"`
	ChangedBy string         `json:"changed_by,omitempty"`
	Origin    string         `json:"origin"`
	Timestamp time.Time      `json:"timestamp"`
}

// Интерфейсы Messaging (Adapter/RabbitMQ)
type MessagePublisher interface {
	PublishOrderEvent(ctx context.Context, msg OrderEventMessage) error
}

type MessageConsumer interface {
	// ConsumeChanges reads every order event through a transient queue.
	ConsumeChanges(ctx context.Context, handler OrderEventHandler) error
	// ConsumeNotifications reads order events through the durable
	// notification queue; failed deliveries are dead-lettered.
	ConsumeNotifications(ctx context.Context, handler OrderEventHandler) error
}

type OrderEventHandler func(ctx context.Context, body []byte) error

// Notifier pushes human-readable order updates to the kitchen.
type Notifier interface {
	Notify(ctx context.Context, msg OrderEventMessage) error
}

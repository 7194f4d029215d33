package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeOrderEvents fans every order event out to all bound queues.
	ExchangeOrderEvents = "order_events"

	NotificationsQueue    = "kitchen_notifications"
	NotificationsDLX      = "kitchen_notifications_dlq"
	NotificationsDLQQueue = "kitchen_notifications_dlq"
)

func declareEventsExchange(ch Channel) error {
	if err := ch.ExchangeDeclare(ExchangeOrderEvents, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}

// setupChangesQueue binds a server-named exclusive queue that disappears with
// the consumer; missed events only mean a missed refresh.
func setupChangesQueue(ch Channel) (string, error) {
	if err := declareEventsExchange(ch); err != nil {
		return "", err
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return "", fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", ExchangeOrderEvents, false, nil); err != nil {
		return "", fmt.Errorf("failed to bind queue: %w", err)
	}
	return q.Name, nil
}

// setupNotificationsQueue declares the durable notification queue and its
// dead letter exchange.
func setupNotificationsQueue(ch Channel) (string, error) {
	if err := declareEventsExchange(ch); err != nil {
		return "", err
	}

	if err := ch.ExchangeDeclare(NotificationsDLX, "fanout", true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("failed to declare DLQ exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(NotificationsDLQQueue, true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("failed to declare DLQ: %w", err)
	}

	if err := ch.QueueBind(NotificationsDLQQueue, "", NotificationsDLX, false, nil); err != nil {
		return "", fmt.Errorf("failed to bind DLQ: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange": NotificationsDLX,
	}
	q, err := ch.QueueDeclare(NotificationsQueue, true, false, false, false, args)
	if err != nil {
		return "", fmt.Errorf("failed to declare notifications queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", ExchangeOrderEvents, false, nil); err != nil {
		return "", fmt.Errorf("failed to bind notifications queue: %w", err)
	}
	return q.Name, nil
}

package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

const defaultReconnectDelay = 5 * time.Second

type consumer struct {
	conn           Connection
	prefetch       int
	logger         logger.Logger
	reconnectDelay time.Duration
}

func NewConsumer(conn Connection, prefetch int, logger logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, prefetch: prefetch, logger: logger, reconnectDelay: defaultReconnectDelay}
}

// ConsumeChanges auto-acks: a lost refresh is repaired by the next event.
func (c *consumer) ConsumeChanges(ctx context.Context, handler interfaces.OrderEventHandler) error {
	return c.run(ctx, "changes", setupChangesQueue, true, handler)
}

// ConsumeNotifications acks after the handler succeeds; failed deliveries go
// to the dead letter queue without requeue.
func (c *consumer) ConsumeNotifications(ctx context.Context, handler interfaces.OrderEventHandler) error {
	return c.run(ctx, "notifications", setupNotificationsQueue, false, handler)
}

type setupFunc func(ch Channel) (queue string, err error)

func (c *consumer) run(ctx context.Context, name string, setup setupFunc, autoAck bool, handler interfaces.OrderEventHandler) error {
	for {
		err := c.consume(ctx, setup, autoAck, handler)

		// Если контекст отменен - выходим
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Warn("rabbitmq_reconnect", "Consumer disconnected, reconnecting", "", map[string]interface{}{
			"consumer": name,
			"delay":    c.reconnectDelay.String(),
			"reason":   err.Error(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *consumer) consume(ctx context.Context, setup setupFunc, autoAck bool, handler interfaces.OrderEventHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	queue, err := setup(ch)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(queue, "", autoAck, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}
			c.deliver(ctx, msg, autoAck, handler)
		}
	}
}

func (c *consumer) deliver(ctx context.Context, msg amqp.Delivery, autoAck bool, handler interfaces.OrderEventHandler) {
	err := handler(ctx, msg.Body)
	if autoAck {
		if err != nil {
			c.logger.Warn("rabbitmq_handle_failed", "Order event dropped", "", map[string]interface{}{
				"message_id": msg.MessageId,
				"reason":     err.Error(),
			})
		}
		return
	}

	if err != nil {
		c.logger.Error("rabbitmq_handle_failed", "Order event sent to DLQ", "", map[string]interface{}{
			"message_id": msg.MessageId,
		}, err)
		// requeue=false отправляет в DLQ
		_ = msg.Nack(false, false)
		return
	}
	_ = msg.Ack(false)
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type binding struct {
	queue, key, exchange string
}

type fakeChannel struct {
	mu         sync.Mutex
	exchanges  map[string]string
	queues     map[string]amqp.Table
	bindings   []binding
	published  []amqp.Publishing
	consumed   string
	autoAck    bool
	deliveries chan amqp.Delivery
	closed     chan *amqp.Error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		exchanges:  make(map[string]string),
		queues:     make(map[string]amqp.Table),
		deliveries: make(chan amqp.Delivery, 8),
		closed:     make(chan *amqp.Error, 1),
	}
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges[name] = kind
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, args amqp.Table) (Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "" {
		name = "amq.gen-test"
	}
	f.queues[name] = args
	return Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings = append(f.bindings, binding{name, key, exchange})
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, _ string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if exchange != ExchangeOrderEvents {
		return errors.New("unexpected exchange")
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Consume(queue, _ string, autoAck, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumed = queue
	f.autoAck = autoAck
	return f.deliveries, nil
}

func (f *fakeChannel) Qos(int, int, bool) error { return nil }
func (f *fakeChannel) Close() error { return nil }
func (f *fakeChannel) NotifyClose() <-chan *amqp.Error { return f.closed }

type fakeConnection struct {
	ch *fakeChannel
}

func (c *fakeConnection) Channel() (Channel, error) { return c.ch, nil }
func (c *fakeConnection) Close() error { return nil }
func (c *fakeConnection) NotifyClose() <-chan *amqp.Error { return make(chan *amqp.Error) }
func (c *fakeConnection) IsClosed() bool { return false }

type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcknowledger) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.acked), len(a.nacked)
}

func TestPublisherPublishOrderEvent(t *testing.T) {
	ch := newFakeChannel()
	pub := NewPublisher(&fakeConnection{ch: ch})

	msg := interfaces.OrderEventMessage{
		Kind:      interfaces.EventStatusChanged,
		OrderID:   "o1",
		Name:      "Ann",
		OldStatus: domain.StatusPending,
		NewStatus: domain.StatusCooking,
		Origin:    "node-a",
		Timestamp: time.Date(2025, 10, 15, 22, 10, 0, 0, time.UTC),
	}
	require.NoError(t, pub.PublishOrderEvent(context.Background(), msg))

	assert.Equal(t, "fanout", ch.exchanges[ExchangeOrderEvents])
	require.Len(t, ch.published, 1)
	out := ch.published[0]
	assert.Equal(t, "application/json", out.ContentType)
	assert.Equal(t, "status_changed", out.Type)
	assert.Equal(t, amqp.Persistent, out.DeliveryMode)

	var decoded interfaces.OrderEventMessage
	require.NoError(t, json.Unmarshal(out.Body, &decoded))
	assert.Equal(t, msg, decoded)
}

func TestConsumeNotificationsAcksAndDeadLetters(t *testing.T) {
	ch := newFakeChannel()
	c := NewConsumer(&fakeConnection{ch: ch}, 1, logger.Nop())
	ack := &fakeAcknowledger{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.ConsumeNotifications(ctx, func(_ context.Context, body []byte) error {
			if string(body) == "bad" {
				return errors.New("cannot decode")
			}
			return nil
		})
	}()

	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("good")}
	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("bad")}

	require.Eventually(t, func() bool {
		acked, nacked := ack.counts()
		return acked == 1 && nacked == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
	assert.Equal(t, []bool{false}, ack.requeue)

	ch.mu.Lock()
	assert.Equal(t, NotificationsQueue, ch.consumed)
	assert.False(t, ch.autoAck)
	assert.Equal(t, NotificationsDLX, ch.queues[NotificationsQueue]["x-dead-letter-exchange"])
	assert.Contains(t, ch.bindings, binding{NotificationsQueue, "", ExchangeOrderEvents})
	assert.Contains(t, ch.bindings, binding{NotificationsDLQQueue, "", NotificationsDLX})
	ch.mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestConsumeChangesUsesTransientQueue(t *testing.T) {
	ch := newFakeChannel()
	c := NewConsumer(&fakeConnection{ch: ch}, 10, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 1)
	go func() {
		_ = c.ConsumeChanges(ctx, func(_ context.Context, body []byte) error {
			got <- string(body)
			return errors.New("ignored")
		})
	}()

	ch.deliveries <- amqp.Delivery{Body: []byte("event")}
	select {
	case body := <-got:
		assert.Equal(t, "event", body)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	assert.Equal(t, "amq.gen-test", ch.consumed)
	assert.True(t, ch.autoAck)
}

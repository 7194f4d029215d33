package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
	mock_interfaces "github.com/YelzhanWeb/pancakes/internal/interfaces/mocks"
)

type countingFeed struct {
	notified int
}

func (f *countingFeed) Notify() { f.notified++ }

func encode(t *testing.T, msg interfaces.OrderEventMessage) []byte {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return body
}

func TestChangeHandler(t *testing.T) {
	feed := &countingFeed{}
	h := NewChangeHandler(feed, nil, "node-a", logger.Nop())
	ctx := context.Background()

	require.NoError(t, h.HandleChange(ctx, encode(t, interfaces.OrderEventMessage{OrderID: "o1", Origin: "node-a"})))
	assert.Equal(t, 0, feed.notified, "own events are skipped")

	require.NoError(t, h.HandleChange(ctx, encode(t, interfaces.OrderEventMessage{OrderID: "o1", Origin: "node-b"})))
	assert.Equal(t, 1, feed.notified)

	assert.Error(t, h.HandleChange(ctx, []byte("{")))
	assert.Equal(t, 1, feed.notified)
}

func TestChangeHandlerRoutesChatEvents(t *testing.T) {
	orders, chat := &countingFeed{}, &countingFeed{}
	h := NewChangeHandler(orders, chat, "node-a", logger.Nop())
	ctx := context.Background()

	require.NoError(t, h.HandleChange(ctx, encode(t, interfaces.OrderEventMessage{
		Kind: interfaces.EventChatMessage, OrderID: "m1", Origin: "node-b",
	})))
	assert.Equal(t, 1, chat.notified)
	assert.Equal(t, 0, orders.notified)

	require.NoError(t, h.HandleChange(ctx, encode(t, interfaces.OrderEventMessage{
		Kind: interfaces.EventStatusChanged, OrderID: "o1", Origin: "node-b",
	})))
	assert.Equal(t, 1, chat.notified)
	assert.Equal(t, 1, orders.notified)

	// without a chat feed chat events are dropped
	h = NewChangeHandler(orders, nil, "node-a", logger.Nop())
	require.NoError(t, h.HandleChange(ctx, encode(t, interfaces.OrderEventMessage{
		Kind: interfaces.EventChatMessage, Origin: "node-b",
	})))
	assert.Equal(t, 1, orders.notified)
}

func TestNotificationHandlerSkipsChatEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock_interfaces.NewMockNotifier(ctrl)
	h := NewNotificationHandler(notifier, logger.Nop())

	err := h.HandleNotification(context.Background(), encode(t, interfaces.OrderEventMessage{
		Kind: interfaces.EventChatMessage, OrderID: "m1", Name: "Ann",
	}))
	assert.NoError(t, err)
}

func TestNotificationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock_interfaces.NewMockNotifier(ctrl)
	h := NewNotificationHandler(notifier, logger.Nop())
	ctx := context.Background()

	msg := interfaces.OrderEventMessage{
		Kind:      interfaces.EventStatusChanged,
		OrderID:   "o1",
		Name:      "Ann",
		OldStatus: domain.StatusPending,
		NewStatus: domain.StatusDone,
	}

	notifier.EXPECT().Notify(gomock.Any(), msg).Return(nil)
	require.NoError(t, h.HandleNotification(ctx, encode(t, msg)))

	notifier.EXPECT().Notify(gomock.Any(), msg).Return(errors.New("telegram down"))
	assert.Error(t, h.HandleNotification(ctx, encode(t, msg)))

	assert.Error(t, h.HandleNotification(ctx, []byte("not json")))
}

func TestNotificationHandlerWithoutNotifier(t *testing.T) {
	h := NewNotificationHandler(nil, logger.Nop())
	assert.NoError(t, h.HandleNotification(context.Background(), []byte(`{"kind":"order_created","order_id":"o1"}`)))
}

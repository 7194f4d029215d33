package feed

import (
	"context"
	"time"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// Store adds live subscriptions to an order repository. Every write through
// the Store wakes local subscriptions and is published as an order event so
// other instances can wake theirs; Notify is the hook for those remote events.
type Store struct {
	repo      interfaces.OrderRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	origin    string
	subs      *hub[[]*domain.Order]
}

// NewStore wraps repo. publisher may be nil for a single instance without a
// broker. origin tags published events so the instance can skip its own.
func NewStore(repo interfaces.OrderRepository, publisher interfaces.MessagePublisher, logger logger.Logger, origin string) *Store {
	return &Store{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		origin:    origin,
		subs:      newHub[[]*domain.Order](logger),
	}
}
func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) Create(ctx context.Context, order *domain.Order) error {
	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}
	s.Notify()
	s.publish(ctx, interfaces.OrderEventMessage{
		Kind:      interfaces.EventOrderCreated,
		OrderID:   order.ID,
		Name:      order.Name,
		Options:   order.SelectedOptions,
		NewStatus: order.Status,
		Timestamp: order.CreatedAt,
	})
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, id, change)
	if err != nil {
		return nil, err
	}
	s.Notify()
	s.publish(ctx, interfaces.OrderEventMessage{
		Kind:      interfaces.EventStatusChanged,
		OrderID:   order.ID,
		Name:      order.Name,
		Options:   order.SelectedOptions,
		OldStatus: change.From,
		NewStatus: order.Status,
		ChangedBy: change.By,
		Timestamp: time.Now().UTC(),
	})
	return order, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Store) History(ctx context.Context, id string) ([]domain.StatusLog, error) {
	return s.repo.History(ctx, id)
}

func (s *Store) Query(ctx context.Context, q interfaces.OrderQuery) ([]*domain.Order, error) {
	return s.repo.Query(ctx, q)
}

// Subscribe delivers the query's snapshot now and again after every change.
// A failing first query is returned to the caller.
func (s *Store) Subscribe(ctx context.Context, q interfaces.OrderQuery, handler interfaces.SnapshotHandler) (func(), error) {
	return s.subs.subscribe(ctx, func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.Query(ctx, q)
	}, handler)
}

// Notify wakes every subscription.
func (s *Store) Notify() {
	s.subs.notify()
}

// Subscribers reports the number of live subscriptions.
func (s *Store) Subscribers() int {
	return s.subs.len()
}

func (s *Store) publish(ctx context.Context, msg interfaces.OrderEventMessage) {
	publishEvent(ctx, s.publisher, s.logger, s.origin, msg)
}

// publishEvent tags msg with origin. A failed publish is logged: the write it
// reports has already happened.
func publishEvent(ctx context.Context, publisher interfaces.MessagePublisher, log logger.Logger, origin string, msg interfaces.OrderEventMessage) {
	if publisher == nil {
		return
	}
	msg.Origin = origin
	if err := publisher.PublishOrderEvent(ctx, msg); err != nil {
		log.Error("rabbitmq_publish_failed", "Failed to publish order event", "", map[string]interface{}{
			"order_id": msg.OrderID,
			"kind":     msg.Kind,
		}, err)
	}
}

package kitchen

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// Service drives the status boards and the order lifecycle.
type Service struct {
	orders interfaces.OrderStore
	logger logger.Logger
}

func NewService(orders interfaces.OrderStore, logger logger.Logger) *Service {
	return &Service{
		orders: orders,
		logger: logger,
	}
}

func (s *Service) Board(ctx context.Context, view domain.View) (domain.Board, error) {
	orders, err := s.orders.Query(ctx, interfaces.ForView(view))
	if err != nil {
		return domain.Board{}, storeErr("query board", err)
	}
	return domain.Classify(orders, view), nil
}

// Watch delivers a classified board for every snapshot of the view until ctx
// is done or the returned func is called.
func (s *Service) Watch(ctx context.Context, view domain.View, fn func(domain.Board)) (func(), error) {
	unsubscribe, err := s.orders.Subscribe(ctx, interfaces.ForView(view), func(orders []*domain.Order) {
		fn(domain.Classify(orders, view))
	})
	if err != nil {
		return nil, storeErr("subscribe board", err)
	}
	return unsubscribe, nil
}

// Advance moves an order to status. Setting the current status again is a
// no-op that returns the order unchanged.
func (s *Service) Advance(ctx context.Context, id string, status domain.Status, actor string) (*domain.Order, error) {
	// 1. Текущее состояние заказа
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, storeErr("get order", err)
	}

	// 2. Проверка перехода
	change, ok, err := order.PlanTransition(status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return order, nil
	}
	change.By = actor

	// 3. Запись; побеждает последняя запись
	updated, err := s.orders.UpdateStatus(ctx, id, change)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) ||
			errors.Is(err, domain.ErrInvalidStatus) ||
			errors.Is(err, domain.ErrInvalidStatusTransition) {
			return nil, err
		}
		s.logger.Error("db_write_failed", "Failed to update order status", "", map[string]interface{}{
			"order_id":   id,
			"new_status": status,
		}, err)
		return nil, storeErr("update order status", err)
	}

	s.logger.Info("order_status_changed", fmt.Sprintf("Order %s: %s -> %s", id, change.From, updated.Status), "", map[string]interface{}{
		"order_id":   id,
		"old_status": change.From,
		"new_status": updated.Status,
		"changed_by": actor,
	})
	return updated, nil
}

// Remove takes an order off every board by completing it.
func (s *Service) Remove(ctx context.Context, id string, actor string) (*domain.Order, error) {
	return s.Advance(ctx, id, domain.StatusCompleted, actor)
}

func (s *Service) History(ctx context.Context, id string) ([]domain.StatusLog, error) {
	logs, err := s.orders.History(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, storeErr("query status history", err)
	}
	return logs, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

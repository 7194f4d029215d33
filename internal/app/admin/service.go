package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// Service backs the admin dashboard: the guest ordering schedule and the
// per-week event analytics.
type Service struct {
	orders  interfaces.OrderRepository
	configs interfaces.ConfigRepository
	logger  logger.Logger
	loc     *time.Location
	clock   clockwork.Clock
}

// NewService builds the admin service. A nil loc means UTC and a nil clock
// the real clock.
func NewService(orders interfaces.OrderRepository, configs interfaces.ConfigRepository, logger logger.Logger, loc *time.Location, clock clockwork.Clock) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{orders: orders, configs: configs, logger: logger, loc: loc, clock: clock}
}

// GuestOrderingConfig returns the stored schedule with defaults for anything
// missing or malformed.
func (s *Service) GuestOrderingConfig(ctx context.Context) (domain.GuestOrderingConfig, error) {
	doc, _, err := s.configs.GetDocument(ctx, domain.GuestOrderingConfigID)
	if err != nil {
		return domain.GuestOrderingConfig{}, storeErr("read guest ordering config", err)
	}
	return domain.ParseGuestOrderingConfig(doc), nil
}

func (s *Service) SetGuestOrderingConfig(ctx context.Context, cfg domain.GuestOrderingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	doc, err := cfg.Document()
	if err != nil {
		return fmt.Errorf("encode guest ordering config: %w", err)
	}

	if err := s.configs.PutDocument(ctx, domain.GuestOrderingConfigID, doc); err != nil {
		s.logger.Error("db_write_failed", "Failed to save guest ordering config", "", nil, err)
		return storeErr("save guest ordering config", err)
	}

	s.logger.Info("guest_ordering_updated", "Guest ordering schedule updated", "", map[string]interface{}{
		"enabled": cfg.Enabled,
		"window":  cfg.Describe(),
	})
	return nil
}

func (s *Service) Weeks(ctx context.Context) ([]string, error) {
	orders, err := s.orders.Query(ctx, interfaces.OrderQuery{})
	if err != nil {
		return nil, storeErr("query orders", err)
	}
	weeks := domain.Weeks(orders, s.loc)
	if weeks == nil {
		weeks = []string{}
	}
	return weeks, nil
}

// Analytics summarizes one ISO week ("2025-W42"); an empty week means the most
// recent week with orders.
func (s *Service) Analytics(ctx context.Context, week string) (domain.WeeklyAnalytics, error) {
	if week != "" {
		if err := validateWeek(week); err != nil {
			return domain.WeeklyAnalytics{}, err
		}
	}

	orders, err := s.orders.Query(ctx, interfaces.OrderQuery{})
	if err != nil {
		return domain.WeeklyAnalytics{}, storeErr("query orders", err)
	}

	if week == "" {
		weeks := domain.Weeks(orders, s.loc)
		if len(weeks) == 0 {
			return domain.Analyze(nil, domain.WeekKey(s.clock.Now(), s.loc), s.loc), nil
		}
		week = weeks[0]
	}
	return domain.Analyze(orders, week, s.loc), nil
}

func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	orders, err := s.orders.Query(ctx, interfaces.OrderQuery{Statuses: []domain.Status{domain.StatusCompleted}})
	if err != nil {
		return nil, storeErr("query completed orders", err)
	}
	return domain.Leaderboard(orders), nil
}

func validateWeek(week string) error {
	var year, num int
	if n, err := fmt.Sscanf(week, "%4d-W%2d", &year, &num); err != nil || n != 2 || num < 1 || num > 53 ||
		fmt.Sprintf("%d-W%02d", year, num) != week {
		return fmt.Errorf("%w: week must look like 2025-W42", domain.ErrValidation)
	}
	return nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

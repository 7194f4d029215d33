package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

const (
	DefaultRecentLimit = 10
	maxRecentLimit     = 50
)

type Options struct {
	Location *time.Location
	Cooldown time.Duration
	Menu     []string
	Clock    clockwork.Clock
}

// Service is the guest ordering flow: eligibility, submission and the guest's
// own order list.
type Service struct {
	orders  interfaces.OrderRepository
	configs interfaces.ConfigRepository
	users   interfaces.UserRepository
	logger  logger.Logger

	clock    clockwork.Clock
	loc      *time.Location
	cooldown time.Duration
	menu     []string

	mu       sync.Mutex
	inFlight map[string]bool
	// armed holds the time of each guest's last successful submission from
	// this process, so the cooldown applies before the store reflects it.
	armed map[string]time.Time
}

func NewService(
	orders interfaces.OrderRepository,
	configs interfaces.ConfigRepository,
	users interfaces.UserRepository,
	logger logger.Logger,
	opts Options,
) *Service {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = domain.DefaultCooldown
	}

	return &Service{
		orders:   orders,
		configs:  configs,
		users:    users,
		logger:   logger,
		clock:    opts.Clock,
		loc:      opts.Location,
		cooldown: opts.Cooldown,
		menu:     opts.Menu,
		inFlight: make(map[string]bool),
		armed:    make(map[string]time.Time),
	}
}

func (s *Service) Eligibility(ctx context.Context, submitter domain.Submitter) (domain.Decision, error) {
	if submitter.IsZero() {
		return domain.Decision{}, fmt.Errorf("%w: unknown guest", domain.ErrValidation)
	}

	in, err := s.eligibilityInput(ctx, submitter)
	if err != nil {
		return domain.Decision{}, err
	}
	return domain.Evaluate(in), nil
}

func (s *Service) Submit(ctx context.Context, cmd interfaces.SubmitOrderCommand) (*domain.Order, error) {
	if cmd.Submitter.IsZero() {
		return nil, fmt.Errorf("%w: unknown guest", domain.ErrValidation)
	}

	// 1. Защита от двойной отправки
	release, err := s.begin(cmd.Submitter)
	if err != nil {
		return nil, err
	}
	defer release()

	// 2. Проверка политики: ничего не пишем при отказе
	in, err := s.eligibilityInput(ctx, cmd.Submitter)
	if err != nil {
		return nil, err
	}
	in.Selection = cmd.SelectedOptions
	in.CheckSelection = true

	decision := domain.Evaluate(in)
	if !decision.Allowed {
		s.logger.Info("order_rejected", "Guest order rejected by policy", "", map[string]interface{}{
			"submitter": cmd.Submitter.Key(),
			"reason":    decision.Rejections[0].Reason,
		})
		return nil, decision.Err()
	}

	// 3. Создание доменной сущности
	name := s.displayName(ctx, cmd)
	order, err := domain.NewOrder(name, cmd.SelectedOptions, cmd.Notes, cmd.Submitter, s.menu)
	if err != nil {
		return nil, err
	}

	// 4. Сохранение; при ошибке кулдаун не включается
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("db_write_failed", "Failed to create order", "", map[string]interface{}{
			"submitter": cmd.Submitter.Key(),
		}, err)
		return nil, storeErr("create order", err)
	}

	// 5. Оптимистично включаем кулдаун
	s.arm(cmd.Submitter)

	s.logger.Info("order_created", fmt.Sprintf("Order %s created", order.ID), "", map[string]interface{}{
		"order_id":  order.ID,
		"submitter": cmd.Submitter.Key(),
		"options":   order.SelectedOptions,
	})
	return order, nil
}

// SubmitAsAdmin records an order entered by staff. Window and cooldown do not
// apply and the order carries no submitter.
func (s *Service) SubmitAsAdmin(ctx context.Context, cmd interfaces.SubmitOrderCommand) (*domain.Order, error) {
	order, err := domain.NewOrder(cmd.Name, cmd.SelectedOptions, cmd.Notes, domain.Submitter{}, s.menu)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("db_write_failed", "Failed to create staff order", "", nil, err)
		return nil, storeErr("create order", err)
	}

	s.logger.Info("order_created", fmt.Sprintf("Staff order %s created", order.ID), "", map[string]interface{}{
		"order_id":   order.ID,
		"entered_by": cmd.Submitter.Key(),
	})
	return order, nil
}

func (s *Service) RecentOrders(ctx context.Context, submitter domain.Submitter, limit int) ([]*domain.Order, error) {
	if submitter.IsZero() {
		return nil, fmt.Errorf("%w: unknown guest", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	orders, err := s.orders.Query(ctx, interfaces.LatestBy(submitter, limit))
	if err != nil {
		return nil, storeErr("query recent orders", err)
	}
	return orders, nil
}

func (s *Service) eligibilityInput(ctx context.Context, submitter domain.Submitter) (domain.EligibilityInput, error) {
	doc, _, err := s.configs.GetDocument(ctx, domain.GuestOrderingConfigID)
	if err != nil {
		return domain.EligibilityInput{}, storeErr("read guest ordering config", err)
	}

	latest, err := s.orders.Query(ctx, interfaces.LatestBy(submitter, 1))
	if err != nil {
		return domain.EligibilityInput{}, storeErr("query last order", err)
	}

	var last *time.Time
	if len(latest) > 0 && !latest[0].CreatedAt.IsZero() {
		at := latest[0].CreatedAt
		last = &at
	}

	s.mu.Lock()
	if armedAt, ok := s.armed[submitter.Key()]; ok && (last == nil || armedAt.After(*last)) {
		last = &armedAt
	}
	s.mu.Unlock()

	return domain.EligibilityInput{
		Config:    domain.ParseGuestOrderingConfig(doc),
		Now:       s.clock.Now(),
		Location:  s.loc,
		LastOrder: last,
		Cooldown:  s.cooldown,
	}, nil
}

func (s *Service) begin(submitter domain.Submitter) (func(), error) {
	key := submitter.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[key] {
		return nil, domain.ErrSubmissionInFlight
	}
	s.inFlight[key] = true

	return func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, nil
}

func (s *Service) arm(submitter domain.Submitter) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, at := range s.armed {
		if now.Sub(at) >= s.cooldown {
			delete(s.armed, key)
		}
	}
	s.armed[submitter.Key()] = now
}

// displayName falls back from the typed name to the account profile.
func (s *Service) displayName(ctx context.Context, cmd interfaces.SubmitOrderCommand) string {
	if cmd.Submitter.Kind != domain.SubmitterAccount || s.users == nil {
		return domain.DisplayName(cmd.Name)
	}

	user, err := s.users.FindByID(ctx, cmd.Submitter.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn("user_lookup_failed", "Falling back to guest name", "", map[string]interface{}{
				"user_id": cmd.Submitter.ID,
				"reason":  err.Error(),
			})
		}
		return domain.DisplayName(cmd.Name)
	}
	return domain.DisplayName(cmd.Name, user.Name, user.Email)
}

func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

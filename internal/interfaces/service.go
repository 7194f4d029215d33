package interfaces

//go:generate mockgen -destination=mocks/mock_service.go . OrderingService,KitchenService,AdminService,ChatService

import (
	"context"

	"github.com/YelzhanWeb/pancakes/internal/domain"
)

// Команды для сервисов
type SubmitOrderCommand struct {
	Submitter       domain.Submitter
	Name            string
	SelectedOptions []string
	Notes           string
}

type PostChatCommand struct {
	Submitter domain.Submitter
	Name      string
	Text      string
}

// Интерфейсы Сервисов (Business Logic)
type OrderingService interface {
	Eligibility(ctx context.Context, submitter domain.Submitter) (domain.Decision, error)
	Submit(ctx context.Context, cmd SubmitOrderCommand) (*domain.Order, error)
	SubmitAsAdmin(ctx context.Context, cmd SubmitOrderCommand) (*domain.Order, error)
	RecentOrders(ctx context.Context, submitter domain.Submitter, limit int) ([]*domain.Order, error)
}

type KitchenService interface {
	Board(ctx context.Context, view domain.View) (domain.Board, error)
	Watch(ctx context.Context, view domain.View, fn func(domain.Board)) (func(), error)
	Advance(ctx context.Context, id string, status domain.Status, actor string) (*domain.Order, error)
	Remove(ctx context.Context, id string, actor string) (*domain.Order, error)
	History(ctx context.Context, id string) ([]domain.StatusLog, error)
}

type AdminService interface {
	GuestOrderingConfig(ctx context.Context) (domain.GuestOrderingConfig, error)
	SetGuestOrderingConfig(ctx context.Context, cfg domain.GuestOrderingConfig) error
	Weeks(ctx context.Context) ([]string, error)
	Analytics(ctx context.Context, week string) (domain.WeeklyAnalytics, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type ChatService interface {
	Post(ctx context.Context, cmd PostChatCommand) (*domain.ChatMessage, error)
	Recent(ctx context.Context) ([]*domain.ChatMessage, error)
	Watch(ctx context.Context, fn func([]*domain.ChatMessage)) (func(), error)
}

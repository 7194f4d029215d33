package interfaces

//go:generate mockgen -destination=mocks/mock_repository.go . OrderRepository,OrderStore,ConfigRepository,UserRepository,ChatRepository,ChatStore

import (
	"context"

	"github.com/YelzhanWeb/pancakes/internal/domain"
)

type SortOrder int

const (
	OldestFirst SortOrder = iota
	NewestFirst
)

// OrderQuery selects orders by status and submitter, ordered by creation time.
// Zero values mean "any status", "any submitter" and "no limit".
type OrderQuery struct {
	Statuses  []domain.Status
	Submitter *domain.Submitter
	Sort      SortOrder
	Limit     int
}

// ForView is the live board query for a view.
func ForView(view domain.View) OrderQuery {
	return OrderQuery{Statuses: view.Statuses(), Sort: OldestFirst}
}

// LatestBy is the one-shot "most recent orders of this guest" lookup.
func LatestBy(s domain.Submitter, limit int) OrderQuery {
	return OrderQuery{Submitter: &s, Sort: NewestFirst, Limit: limit}
}

// StatusMutator is the single place order transitions are written. Writes are
// last-write-wins; a compare-and-set upgrade only needs to touch this seam.
type StatusMutator interface {
	// UpdateStatus writes change.To (and a store-assigned completedAt when
	// change.Complete is set). It fails with domain.ErrOrderNotFound when no
	// non-terminal record with id exists. The returned order is the record
	// after the write.
	UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.Order, error)
}

// Интерфейсы Репозиториев (Adapter/Postgres, Adapter/SQLite)
type OrderRepository interface {
	StatusMutator
	// Create assigns ID and CreatedAt on the passed order.
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	Query(ctx context.Context, q OrderQuery) ([]*domain.Order, error)
	// History lists the status log of an order, oldest first.
	History(ctx context.Context, id string) ([]domain.StatusLog, error)
}

// SnapshotHandler receives the full current result of a subscription query.
type SnapshotHandler func(orders []*domain.Order)

// OrderStore is an OrderRepository with live subscriptions.
type OrderStore interface {
	OrderRepository
	// Subscribe delivers a snapshot right away and again after every change,
	// until ctx is done or the returned func is called.
	Subscribe(ctx context.Context, q OrderQuery, handler SnapshotHandler) (unsubscribe func(), err error)
}

// ConfigRepository stores singleton config documents as raw JSON.
type ConfigRepository interface {
	GetDocument(ctx context.Context, id string) (doc []byte, found bool, err error)
	PutDocument(ctx context.Context, id string, doc []byte) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type ChatRepository interface {
	// CreateMessage assigns ID and CreatedAt on the passed message.
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	// RecentMessages returns the latest limit messages, oldest first.
	RecentMessages(ctx context.Context, limit int) ([]*domain.ChatMessage, error)
}

// ChatHandler receives the latest messages, oldest first.
type ChatHandler func(messages []*domain.ChatMessage)

// ChatStore is a ChatRepository with live subscriptions.
type ChatStore interface {
	ChatRepository
	Subscribe(ctx context.Context, limit int, handler ChatHandler) (unsubscribe func(), err error)
}

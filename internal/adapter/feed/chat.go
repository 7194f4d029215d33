package feed

import (
	"context"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// ChatFeed is the chat counterpart of Store: posts wake local subscriptions
// and go out as chat events for other instances.
type ChatFeed struct {
	repo      interfaces.ChatRepository
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	origin    string
	subs      *hub[[]*domain.ChatMessage]
}

func NewChatFeed(repo interfaces.ChatRepository, publisher interfaces.MessagePublisher, logger logger.Logger, origin string) *ChatFeed {
	return &ChatFeed{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		origin:    origin,
		subs:      newHub[[]*domain.ChatMessage](logger),
	}
}

func (f *ChatFeed) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if err := f.repo.CreateMessage(ctx, msg); err != nil {
		return err
	}
	f.Notify()
	publishEvent(ctx, f.publisher, f.logger, f.origin, interfaces.OrderEventMessage{
		Kind:      interfaces.EventChatMessage,
		OrderID:   msg.ID,
		Name:      msg.Name,
		Timestamp: msg.CreatedAt,
	})
	return nil
}

func (f *ChatFeed) RecentMessages(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	return f.repo.RecentMessages(ctx, limit)
}

func (f *ChatFeed) Subscribe(ctx context.Context, limit int, handler interfaces.ChatHandler) (func(), error) {
	return f.subs.subscribe(ctx, func(ctx context.Context) ([]*domain.ChatMessage, error) {
		return f.repo.RecentMessages(ctx, limit)
	}, handler)
}

func (f *ChatFeed) Notify() {
	f.subs.notify()
}

func (f *ChatFeed) Subscribers() int {
	return f.subs.len()
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// Service is the guest chat beside the order form.
type Service struct {
	messages interfaces.ChatStore
	users    interfaces.UserRepository
	logger   logger.Logger
}

// NewService builds the chat service. users may be nil; senders then go by
// the name they type.
func NewService(messages interfaces.ChatStore, users interfaces.UserRepository, logger logger.Logger) *Service {
	return &Service{
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

func (s *Service) Post(ctx context.Context, cmd interfaces.PostChatCommand) (*domain.ChatMessage, error) {
	// 1. Имя отправителя
	name := s.senderName(ctx, cmd)

	// 2. Валидация сообщения
	msg, err := domain.NewChatMessage(cmd.Submitter, name, cmd.Text)
	if err != nil {
		return nil, err
	}

	// 3. Сохранение
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		s.logger.Error("db_write_failed", "Failed to post chat message", "", map[string]interface{}{
			"submitter": cmd.Submitter.Key(),
		}, err)
		return nil, storeErr("create chat message", err)
	}

	s.logger.Debug("chat_message_posted", fmt.Sprintf("Chat message %s posted", msg.ID), "", map[string]interface{}{
		"message_id": msg.ID,
		"submitter":  cmd.Submitter.Key(),
	})
	return msg, nil
}

// Recent returns the latest messages, oldest first.
func (s *Service) Recent(ctx context.Context) ([]*domain.ChatMessage, error) {
	messages, err := s.messages.RecentMessages(ctx, domain.ChatHistoryLimit)
	if err != nil {
		return nil, storeErr("query chat messages", err)
	}
	return messages, nil
}

// Watch delivers the latest messages now and after every post until the
// returned func is called or ctx ends.
func (s *Service) Watch(ctx context.Context, fn func([]*domain.ChatMessage)) (func(), error) {
	unsubscribe, err := s.messages.Subscribe(ctx, domain.ChatHistoryLimit, fn)
	if err != nil {
		return nil, storeErr("subscribe chat", err)
	}
	return unsubscribe, nil
}

// senderName falls back from the typed name to the account profile.
func (s *Service) senderName(ctx context.Context, cmd interfaces.PostChatCommand) string {
	if strings.TrimSpace(cmd.Name) != "" || cmd.Submitter.Kind != domain.SubmitterAccount || s.users == nil {
		return cmd.Name
	}

	user, err := s.users.FindByID(ctx, cmd.Submitter.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn("user_lookup_failed", "Falling back to guest name", "", map[string]interface{}{
				"user_id": cmd.Submitter.ID,
				"reason":  err.Error(),
			})
		}
		return cmd.Name
	}
	return domain.DisplayName(user.Name, user.Email)
}

func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

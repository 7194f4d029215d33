package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type chatRepository struct {
	db DB
}

func NewChatRepository(db DB) interfaces.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	userID, customerID := msg.Submitter.Columns()
	query := `
		INSERT INTO chat_messages (user_id, customer_id, name, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`
	err := r.db.QueryRow(ctx, query, userID, customerID, msg.Name, msg.Text).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return chatErr("insert chat message", err)
	}
	return nil
}

func (r *chatRepository) RecentMessages(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id::text, user_id, customer_id, name, text, created_at
		FROM chat_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, chatErr("query chat messages", err)
	}
	defer rows.Close()

	messages := make([]*domain.ChatMessage, 0, limit)
	for rows.Next() {
		var (
			msg        domain.ChatMessage
			userID     *string
			customerID *string
		)
		if err := rows.Scan(&msg.ID, &userID, &customerID, &msg.Name, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, chatErr("scan chat message", err)
		}
		msg.Submitter = domain.SubmitterFromColumns(userID, customerID)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, chatErr("query chat messages", err)
	}

	// Выбираем последние сообщения, а показываем от старых к новым
	slices.Reverse(messages)
	return messages, nil
}

func chatErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

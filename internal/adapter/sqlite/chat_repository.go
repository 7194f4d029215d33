package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) interfaces.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	id := uuid.NewString()
	userID, customerID := msg.Submitter.Columns()
	query := `
		INSERT INTO chat_messages (id, user_id, customer_id, name, text, created_at)
		VALUES (?, ?, ?, ?, ?, ` + nowMillis + `)
		RETURNING created_at
	`
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, id, userID, customerID, msg.Name, msg.Text).Scan(&createdAt)
	if err != nil {
		return chatErr("insert chat message", err)
	}
	msg.ID = id
	msg.CreatedAt = time.UnixMilli(createdAt).UTC()
	return nil
}

// Messages posted in the same millisecond keep insertion order through rowid.
func (r *chatRepository) RecentMessages(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, user_id, customer_id, name, text, created_at
		FROM chat_messages
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, chatErr("query chat messages", err)
	}
	defer rows.Close()

	messages := make([]*domain.ChatMessage, 0, limit)
	for rows.Next() {
		var (
			msg        domain.ChatMessage
			userID     sql.NullString
			customerID sql.NullString
			createdAt  int64
		)
		if err := rows.Scan(&msg.ID, &userID, &customerID, &msg.Name, &msg.Text, &createdAt); err != nil {
			return nil, chatErr("scan chat message", err)
		}
		msg.Submitter = domain.SubmitterFromColumns(nullable(userID), nullable(customerID))
		msg.CreatedAt = time.UnixMilli(createdAt).UTC()
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, chatErr("query chat messages", err)
	}

	slices.Reverse(messages)
	return messages, nil
}

func chatErr(op string, err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintCheck {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

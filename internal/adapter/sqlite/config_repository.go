package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type configRepository struct {
	db *sql.DB
}

func NewConfigRepository(db *sql.DB) interfaces.ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) GetDocument(ctx context.Context, id string) ([]byte, bool, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM config_documents WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get config %s: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return []byte(doc), true, nil
}

func (r *configRepository) PutDocument(ctx context.Context, id string, doc []byte) error {
	query := `
		INSERT INTO config_documents (id, doc, updated_at)
		VALUES (?, ?, ` + nowMillis + `)
		ON CONFLICT (id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, id, string(doc)); err != nil {
		return fmt.Errorf("put config %s: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return nil
}

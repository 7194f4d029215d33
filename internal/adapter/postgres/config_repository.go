package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type configRepository struct {
	db DB
}

func NewConfigRepository(db DB) interfaces.ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) GetDocument(ctx context.Context, id string) ([]byte, bool, error) {
	var doc string
	err := r.db.QueryRow(ctx, `SELECT doc::text FROM config_documents WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
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
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, id, string(doc)); err != nil {
		return fmt.Errorf("put config %s: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

const orderColumns = `id, name, selected_options, notes, status, user_id, customer_id, created_at, completed_at`

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	options, err := json.Marshal(order.SelectedOptions)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	userID, customerID := order.Submitter.Columns()
	query := `
		INSERT INTO orders (id, name, selected_options, notes, status, user_id, customer_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ` + nowMillis + `)
		RETURNING created_at
	`
	var createdAt int64
	err = tx.QueryRowContext(ctx, query,
		id, order.Name, string(options), order.Notes, string(order.Status), userID, customerID,
	).Scan(&createdAt)
	if err != nil {
		return classify("insert order", err)
	}

	if err := logStatus(ctx, tx, id, order.Status, order.Submitter.Actor()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return classify("commit order", err)
	}

	order.ID = id
	order.CreatedAt = time.UnixMilli(createdAt).UTC()
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify("get order", err)
	}
	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE orders
		SET status = ?,
		    completed_at = CASE WHEN ? THEN ` + nowMillis + ` ELSE completed_at END
		WHERE id = ? AND status <> 'completed'
		RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRowContext(ctx, query, string(change.To), change.Complete, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, explainNoMatch(ctx, tx, id)
	}
	if err != nil {
		return nil, classify("update order status", err)
	}

	if err := logStatus(ctx, tx, order.ID, order.Status, actorOrDefault(change.By)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, classify("commit status", err)
	}
	return order, nil
}

func (r *orderRepository) Query(ctx context.Context, q interfaces.OrderQuery) ([]*domain.Order, error) {
	where, args := buildFilter(q)
	query := `SELECT ` + orderColumns + ` FROM orders` + where + orderBy(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("query orders", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, classify("scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("query orders", err)
	}
	return orders, nil
}

func (r *orderRepository) History(ctx context.Context, id string) ([]domain.StatusLog, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return nil, classify("find order", err)
	}
	if !exists {
		return nil, domain.ErrOrderNotFound
	}

	query := `
		SELECT status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = ?
		ORDER BY changed_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, classify("query status history", err)
	}
	defer rows.Close()

	logs := make([]domain.StatusLog, 0)
	for rows.Next() {
		var (
			entry     domain.StatusLog
			status    string
			changedAt int64
		)
		if err := rows.Scan(&status, &entry.ChangedBy, &changedAt); err != nil {
			return nil, classify("scan status log", err)
		}
		entry.Status = domain.Status(status)
		entry.ChangedAt = time.UnixMilli(changedAt).UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("query status history", err)
	}
	return logs, nil
}

func logStatus(ctx context.Context, tx *sql.Tx, orderID string, status domain.Status, changedBy string) error {
	query := `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES (?, ?, ?, ` + nowMillis + `)
	`
	if _, err := tx.ExecContext(ctx, query, orderID, string(status), changedBy); err != nil {
		return classify("log status", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		order      domain.Order
		options    string
		status     string
		userID     sql.NullString
		customerID sql.NullString
		createdAt  int64
		completed  sql.NullInt64
	)
	err := row.Scan(
		&order.ID, &order.Name, &options, &order.Notes, &status,
		&userID, &customerID, &createdAt, &completed,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &order.SelectedOptions); err != nil {
		return nil, fmt.Errorf("decode options of %s: %w", order.ID, err)
	}
	if order.SelectedOptions == nil {
		order.SelectedOptions = []string{}
	}
	order.Status = domain.Status(status)
	order.Submitter = domain.SubmitterFromColumns(nullable(userID), nullable(customerID))
	order.CreatedAt = time.UnixMilli(createdAt).UTC()
	if completed.Valid {
		at := time.UnixMilli(completed.Int64).UTC()
		order.CompletedAt = &at
	}
	return &order, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func buildFilter(q interfaces.OrderQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if len(q.Statuses) > 0 {
		marks := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			marks[i] = "?"
			args = append(args, string(s))
		}
		conds = append(conds, "status IN ("+strings.Join(marks, ", ")+")")
	}
	if q.Submitter != nil {
		userID, customerID := q.Submitter.Columns()
		switch {
		case userID != nil:
			conds = append(conds, "user_id = ?")
			args = append(args, *userID)
		case customerID != nil:
			conds = append(conds, "customer_id = ?")
			args = append(args, *customerID)
		default:
			conds = append(conds, "user_id IS NULL AND customer_id IS NULL")
		}
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Rows written in the same millisecond keep insertion order through rowid.
func orderBy(q interfaces.OrderQuery) string {
	clause := " ORDER BY created_at ASC, rowid ASC"
	if q.Sort == interfaces.NewestFirst {
		clause = " ORDER BY created_at DESC, rowid DESC"
	}
	if q.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return clause
}

// explainNoMatch tells a missing order from a completed one after an UPDATE
// that matched nothing.
func explainNoMatch(ctx context.Context, tx *sql.Tx, id string) error {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return classify("find order", err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	return fmt.Errorf("%w: order already completed", domain.ErrInvalidStatusTransition)
}

func actorOrDefault(by string) string {
	if by = strings.TrimSpace(by); by != "" {
		return by
	}
	return "unknown"
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

const orderColumns = `id::text, name, selected_options, notes, status, user_id, customer_id, created_at, completed_at`

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	userID, customerID := order.Submitter.Columns()
	query := `
		INSERT INTO orders (name, selected_options, notes, status, user_id, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at
	`
	err = tx.QueryRow(ctx, query,
		order.Name, order.SelectedOptions, order.Notes, string(order.Status), userID, customerID,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return classify("insert order", err)
	}

	if err := logStatus(ctx, tx, order.ID, order.Status, order.Submitter.Actor()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return classify("commit order", err)
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify("get order", err)
	}
	return order, nil
}

// UpdateStatus writes the status and, on completion, a database-assigned
// completed_at. Completed rows never match the UPDATE.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, classify("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE orders
		SET status = $2,
		    completed_at = CASE WHEN $3::boolean THEN now() ELSE completed_at END
		WHERE id = $1 AND status <> 'completed'
		RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRow(ctx, query, id, string(change.To), change.Complete))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, explainNoMatch(tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id))
	}
	if err != nil {
		return nil, classify("update order status", err)
	}

	if err := logStatus(ctx, tx, order.ID, order.Status, actorOrDefault(change.By)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify("commit status", err)
	}
	return order, nil
}

func (r *orderRepository) Query(ctx context.Context, q interfaces.OrderQuery) ([]*domain.Order, error) {
	where, args := buildFilter(q)
	query := `SELECT ` + orderColumns + ` FROM orders` + where + orderBy(q)

	rows, err := r.db.Query(ctx, query, args...)
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
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return nil, classify("find order", err)
	}
	if !exists {
		return nil, domain.ErrOrderNotFound
	}

	query := `
		SELECT status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, classify("query status history", err)
	}
	defer rows.Close()

	logs := make([]domain.StatusLog, 0)
	for rows.Next() {
		var (
			entry  domain.StatusLog
			status string
		)
		if err := rows.Scan(&status, &entry.ChangedBy, &entry.ChangedAt); err != nil {
			return nil, classify("scan status log", err)
		}
		entry.Status = domain.Status(status)
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("query status history", err)
	}
	return logs, nil
}

func logStatus(ctx context.Context, tx Tx, orderID string, status domain.Status, changedBy string) error {
	query := `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, orderID, string(status), changedBy); err != nil {
		return classify("log status", err)
	}
	return nil
}

func scanOrder(row Row) (*domain.Order, error) {
	var (
		order      domain.Order
		status     string
		userID     *string
		customerID *string
		completed  *time.Time
	)
	err := row.Scan(
		&order.ID, &order.Name, &order.SelectedOptions, &order.Notes, &status,
		&userID, &customerID, &order.CreatedAt, &completed,
	)
	if err != nil {
		return nil, err
	}
	order.Status = domain.Status(status)
	order.Submitter = domain.SubmitterFromColumns(userID, customerID)
	order.CompletedAt = completed
	if order.SelectedOptions == nil {
		order.SelectedOptions = []string{}
	}
	return &order, nil
}

// buildFilter renders the WHERE clause of an OrderQuery with positional args.
func buildFilter(q interfaces.OrderQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if q.Submitter != nil {
		userID, customerID := q.Submitter.Columns()
		switch {
		case userID != nil:
			args = append(args, *userID)
			conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
		case customerID != nil:
			args = append(args, *customerID)
			conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
		default:
			conds = append(conds, "user_id IS NULL AND customer_id IS NULL")
		}
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(q interfaces.OrderQuery) string {
	clause := " ORDER BY created_at ASC, id ASC"
	if q.Sort == interfaces.NewestFirst {
		clause = " ORDER BY created_at DESC, id DESC"
	}
	if q.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return clause
}

// explainNoMatch reads an EXISTS row for an UPDATE that matched nothing: the
// order is either missing or already completed.
func explainNoMatch(row Row) error {
	var exists bool
	if err := row.Scan(&exists); err != nil {
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

// classify maps driver errors onto domain errors. Anything unrecognised is an
// infrastructure failure the caller may retry.
func classify(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrOrderNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.CheckViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrInvalidStatus)
		case pgErr.Code == pgerrcode.InvalidTextRepresentation:
			// malformed uuid
			return domain.ErrOrderNotFound
		case pgerrcode.IsConnectionException(pgErr.Code):
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createOrder(t *testing.T, repo interfaces.OrderRepository, name string, submitter domain.Submitter) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(name, []string{"Banana", "Plain"}, "", submitter, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	order := createOrder(t, repo, "Ann", domain.AnonymousDevice("d1"))

	require.NotEmpty(t, order.ID)
	assert.True(t, order.CreatedAt.After(before), "created_at is assigned at write time")

	got, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, []string{"Banana", "Plain"}, got.SelectedOptions)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, domain.AnonymousDevice("d1"), got.Submitter)
	assert.Equal(t, order.CreatedAt, got.CreatedAt)
	assert.Nil(t, got.CompletedAt)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()
	order := createOrder(t, repo, "Ben", domain.Account("u1"))

	cooking, err := repo.UpdateStatus(ctx, order.ID, domain.StatusChange{From: domain.StatusPending, To: domain.StatusCooking, By: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCooking, cooking.Status)
	assert.Nil(t, cooking.CompletedAt)
	assert.Equal(t, order.CreatedAt, cooking.CreatedAt)

	done, err := repo.UpdateStatus(ctx, order.ID, domain.StatusChange{From: domain.StatusCooking, To: domain.StatusCompleted, Complete: true, By: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.False(t, done.CompletedAt.Before(done.CreatedAt))

	_, err = repo.UpdateStatus(ctx, order.ID, domain.StatusChange{To: domain.StatusCooking})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "completed orders are never mutated")
	assert.NotErrorIs(t, err, domain.ErrOrderNotFound)

	again, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, again.Status)

	_, err = repo.UpdateStatus(ctx, "missing", domain.StatusChange{To: domain.StatusCooking})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepositoryRejectsInconsistentCompletion(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	order := createOrder(t, repo, "Cy", domain.Submitter{})

	_, err := repo.UpdateStatus(context.Background(), order.ID, domain.StatusChange{To: domain.StatusCompleted})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = repo.UpdateStatus(context.Background(), order.ID, domain.StatusChange{To: "Burnt"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestOrderRepositoryQuery(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	first := createOrder(t, repo, "Ann", domain.AnonymousDevice("d1"))
	second := createOrder(t, repo, "Ben", domain.Account("u1"))
	third := createOrder(t, repo, "Ann again", domain.AnonymousDevice("d1"))

	_, err := repo.UpdateStatus(ctx, second.ID, domain.StatusChange{To: domain.StatusDone})
	require.NoError(t, err)

	kitchen, err := repo.Query(ctx, interfaces.ForView(domain.ViewKitchen))
	require.NoError(t, err)
	require.Len(t, kitchen, 2)
	assert.Equal(t, first.ID, kitchen[0].ID)
	assert.Equal(t, third.ID, kitchen[1].ID)

	home, err := repo.Query(ctx, interfaces.ForView(domain.ViewHome))
	require.NoError(t, err)
	assert.Len(t, home, 3)

	latest, err := repo.Query(ctx, interfaces.LatestBy(domain.AnonymousDevice("d1"), 1))
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, third.ID, latest[0].ID)

	none, err := repo.Query(ctx, interfaces.LatestBy(domain.AnonymousDevice("nobody"), 1))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepositoryHistory(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()
	order := createOrder(t, repo, "Ann", domain.AnonymousDevice("d1"))

	_, err := repo.UpdateStatus(ctx, order.ID, domain.StatusChange{To: domain.StatusCooking, By: "admin:u9"})
	require.NoError(t, err)

	history, err := repo.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.StatusPending, history[0].Status)
	assert.Equal(t, "device:d1", history[0].ChangedBy)
	assert.Equal(t, domain.StatusCooking, history[1].Status)
	assert.Equal(t, "admin:u9", history[1].ChangedBy)

	_, err = repo.History(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestConfigRepository(t *testing.T) {
	repo := NewConfigRepository(openTestDB(t))
	ctx := context.Background()

	_, found, err := repo.GetDocument(ctx, domain.GuestOrderingConfigID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.PutDocument(ctx, domain.GuestOrderingConfigID, []byte(`{"enabled":false}`)))
	require.NoError(t, repo.PutDocument(ctx, domain.GuestOrderingConfigID, []byte(`{"enabled":true,"dayOfWeek":5}`)))

	doc, found, err := repo.GetDocument(ctx, domain.GuestOrderingConfigID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"enabled":true,"dayOfWeek":5}`, string(doc))
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO users (id, email, name, role) VALUES ('u1', 'ann@example.com', NULL, 'admin'), ('u2', NULL, 'Ben', 'chef')`)
	require.NoError(t, err)

	repo := NewUserRepository(db)
	ctx := context.Background()

	admin, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", admin.Email)
	assert.Empty(t, admin.Name)
	assert.True(t, admin.IsAdmin())

	other, err := repo.FindByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, other.Role)

	_, err = repo.FindByID(ctx, "u3")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

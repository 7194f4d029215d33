package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
	mock_interfaces "github.com/YelzhanWeb/pancakes/internal/interfaces/mocks"
)

type fixture struct {
	ordering *mock_interfaces.MockOrderingService
	kitchen  *mock_interfaces.MockKitchenService
	admin    *mock_interfaces.MockAdminService
	chat     *mock_interfaces.MockChatService
	users    *mock_interfaces.MockUserRepository
	watcher  *stubWatcher
	health   error
	router   http.Handler
}

type stubWatcher struct {
	decision domain.Decision
}

func (s *stubWatcher) Run(ctx context.Context, _ domain.Submitter, emit func(domain.Decision)) error {
	emit(s.decision)
	<-ctx.Done()
	return ctx.Err()
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ordering: mock_interfaces.NewMockOrderingService(ctrl),
		kitchen:  mock_interfaces.NewMockKitchenService(ctrl),
		admin:    mock_interfaces.NewMockAdminService(ctrl),
		chat:     mock_interfaces.NewMockChatService(ctrl),
		users:    mock_interfaces.NewMockUserRepository(ctrl),
		watcher:  &stubWatcher{},
	}
	f.router = NewRouter(RouterDeps{
		Ordering: f.ordering,
		Kitchen:  f.kitchen,
		Admin:    f.admin,
		Chat:     f.chat,
		Users:    f.users,
		Watcher:  f.watcher,
		Health:   func(context.Context) error { return f.health },
		Logger:   logger.Nop(),
	})
	return f
}

func (f *fixture) asAdmin(id string) {
	f.users.EXPECT().FindByID(gomock.Any(), id).
		Return(&domain.User{ID: id, Role: domain.RoleAdmin}, nil).AnyTimes()
}

func (f *fixture) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateOrderIssuesDeviceID(t *testing.T) {
	f := newFixture(t)
	var got interfaces.SubmitOrderCommand
	f.ordering.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd interfaces.SubmitOrderCommand) (*domain.Order, error) {
			got = cmd
			return &domain.Order{ID: "o1", Name: cmd.Name, Status: domain.StatusPending}, nil
		})

	rec := f.do(http.MethodPost, "/api/orders", `{"name":"Ann","selectedOptions":["Banana"]}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	deviceID := rec.Header().Get(HeaderDeviceID)
	require.NotEmpty(t, deviceID)
	assert.Equal(t, domain.AnonymousDevice(deviceID), got.Submitter)
	assert.Equal(t, []string{"Banana"}, got.SelectedOptions)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "o1", order.ID)
}

func TestCreateOrderKeepsDeviceID(t *testing.T) {
	f := newFixture(t)
	f.ordering.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd interfaces.SubmitOrderCommand) (*domain.Order, error) {
			assert.Equal(t, domain.AnonymousDevice("dev-1"), cmd.Submitter)
			return &domain.Order{ID: "o1"}, nil
		})

	rec := f.do(http.MethodPost, "/api/orders", `{"name":"Ann","selectedOptions":["Plain"]}`,
		map[string]string{HeaderDeviceID: "dev-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get(HeaderDeviceID))
}

func TestCreateOrderPolicyRejection(t *testing.T) {
	f := newFixture(t)
	f.ordering.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, &domain.PolicyError{
		Rejections: []domain.Rejection{
			{Reason: domain.ReasonOutsideWindow, Message: "closed"},
			{Reason: domain.ReasonCooldown, Message: "wait", MinutesRemaining: 7},
		},
	})

	rec := f.do(http.MethodPost, "/api/orders", `{"name":"Ann","selectedOptions":["Plain"]}`,
		map[string]string{HeaderDeviceID: "dev-1"})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "closed", resp.Error)
	assert.Equal(t, domain.ReasonOutsideWindow, resp.Reason)
	assert.Len(t, resp.Rejections, 2)
	assert.Equal(t, 7, resp.MinutesRemaining)
}

func TestCreateOrderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", fmt.Errorf("%w: name must be 1-100 characters", domain.ErrValidation), http.StatusBadRequest},
		{"in flight", domain.ErrSubmissionInFlight, http.StatusConflict},
		{"store", fmt.Errorf("create order: %w: %w", domain.ErrStoreUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.ordering.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := f.do(http.MethodPost, "/api/orders", `{"name":"Ann","selectedOptions":["Plain"]}`,
				map[string]string{HeaderDeviceID: "dev-1"})

			assert.Equal(t, tt.code, rec.Code)
			assert.NotContains(t, rec.Body.String(), "dial tcp")
		})
	}
}

func TestCreateOrderRejectsBadBody(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`{"name":`, `{"name":"Ann","price":3}`} {
		rec := f.do(http.MethodPost, "/api/orders", body, map[string]string{HeaderDeviceID: "dev-1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestDeviceIDTooLong(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/eligibility", "", map[string]string{HeaderDeviceID: strings.Repeat("x", 65)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEligibilityForAccount(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().FindByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", Role: domain.RoleCustomer}, nil)
	f.ordering.EXPECT().Eligibility(gomock.Any(), domain.Account("u1")).
		Return(domain.Decision{Allowed: true, Enabled: true, WithinWindow: true, Window: "Wednesdays 22:00-00:00"}, nil)

	rec := f.do(http.MethodGet, "/api/eligibility", "", map[string]string{HeaderUserID: "u1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var d domain.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.True(t, d.Allowed)
	assert.Equal(t, "Wednesdays 22:00-00:00", d.Window)
}

func TestIdentityStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().FindByID(gomock.Any(), "u1").
		Return(nil, fmt.Errorf("find user: %w", domain.ErrStoreUnavailable))

	rec := f.do(http.MethodGet, "/api/eligibility", "", map[string]string{HeaderUserID: "u1"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		setup   func(f *fixture)
	}{
		{"anonymous device", map[string]string{HeaderDeviceID: "dev-1"}, func(*fixture) {}},
		{"customer account", map[string]string{HeaderUserID: "u1"}, func(f *fixture) {
			f.users.EXPECT().FindByID(gomock.Any(), "u1").
				Return(&domain.User{ID: "u1", Role: domain.RoleCustomer}, nil).AnyTimes()
		}},
		{"unknown account", map[string]string{HeaderUserID: "u2"}, func(f *fixture) {
			f.users.EXPECT().FindByID(gomock.Any(), "u2").Return(nil, domain.ErrUserNotFound).AnyTimes()
		}},
	}
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/orders/o1/status"},
		{http.MethodPost, "/api/orders/o1/remove"},
		{http.MethodGet, "/api/orders/o1/history"},
		{http.MethodGet, "/api/admin/config/guest-ordering"},
		{http.MethodPut, "/api/admin/config/guest-ordering"},
		{http.MethodGet, "/api/admin/weeks"},
		{http.MethodGet, "/api/admin/analytics"},
		{http.MethodPost, "/api/admin/orders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			for _, route := range routes {
				rec := f.do(route.method, route.path, `{}`, tt.headers)
				assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		code   int
		called bool
	}{
		{"ok", `{"status":"Cooking"}`, nil, http.StatusOK, true},
		{"case insensitive", `{"status":"cooking"}`, nil, http.StatusOK, true},
		{"unknown status", `{"status":"Burnt"}`, nil, http.StatusBadRequest, false},
		{"not found", `{"status":"Cooking"}`, domain.ErrOrderNotFound, http.StatusNotFound, true},
		{"invalid transition", `{"status":"Cooking"}`, domain.ErrInvalidStatusTransition, http.StatusConflict, true},
		{"completed meanwhile", `{"status":"Cooking"}`, fmt.Errorf("%w: order already completed", domain.ErrInvalidStatusTransition), http.StatusConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.asAdmin("admin1")
			if tt.called {
				var order *domain.Order
				if tt.err == nil {
					order = &domain.Order{ID: "o1", Status: domain.StatusCooking}
				}
				f.kitchen.EXPECT().Advance(gomock.Any(), "o1", domain.StatusCooking, "account:admin1").Return(order, tt.err)
			}

			rec := f.do(http.MethodPost, "/api/orders/o1/status", tt.body, map[string]string{HeaderUserID: "admin1"})

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	now := time.Now()
	f.kitchen.EXPECT().Remove(gomock.Any(), "o1", "account:admin1").
		Return(&domain.Order{ID: "o1", Status: domain.StatusCompleted, CompletedAt: &now}, nil)

	rec := f.do(http.MethodPost, "/api/orders/o1/remove", "", map[string]string{HeaderUserID: "admin1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, domain.StatusCompleted, order.Status)
}

func TestRemoveAlreadyCompleted(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	f.kitchen.EXPECT().Remove(gomock.Any(), "o1", "account:admin1").
		Return(nil, fmt.Errorf("%w: order already completed", domain.ErrInvalidStatusTransition))

	rec := f.do(http.MethodPost, "/api/orders/o1/remove", "", map[string]string{HeaderUserID: "admin1"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	f.kitchen.EXPECT().History(gomock.Any(), "o1").Return([]domain.StatusLog{
		{Status: domain.StatusPending, ChangedBy: "device:d1"},
		{Status: domain.StatusCooking, ChangedBy: "account:admin1"},
	}, nil)

	rec := f.do(http.MethodGet, "/api/orders/o1/history", "", map[string]string{HeaderUserID: "admin1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var history []domain.StatusLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 2)
}

func TestBoard(t *testing.T) {
	f := newFixture(t)
	orders := []*domain.Order{{ID: "o1", Status: domain.StatusDone}}
	f.kitchen.EXPECT().Board(gomock.Any(), domain.ViewHome).Return(domain.Classify(orders, domain.ViewHome), nil)

	rec := f.do(http.MethodGet, "/api/board?view=home", "", map[string]string{HeaderDeviceID: "screen"})

	require.Equal(t, http.StatusOK, rec.Code)
	var board domain.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	assert.Equal(t, domain.ViewHome, board.View)
	assert.Len(t, board.Buckets, 4)
}

func TestBoardInvalidView(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/board?view=lobby", "", map[string]string{HeaderDeviceID: "screen"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardStream(t *testing.T) {
	f := newFixture(t)
	var unsubscribed atomic.Bool
	f.kitchen.EXPECT().Watch(gomock.Any(), domain.ViewKitchen, gomock.Any()).DoAndReturn(
		func(_ context.Context, view domain.View, fn func(domain.Board)) (func(), error) {
			fn(domain.Classify([]*domain.Order{{ID: "o1", Status: domain.StatusPending}}, view))
			return func() { unsubscribed.Store(true) }, nil
		})

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/board/stream", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderDeviceID, "screen")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	event, data := readEvent(t, bufio.NewReader(resp.Body))
	assert.Equal(t, "board", event)
	var board domain.Board
	require.NoError(t, json.Unmarshal([]byte(data), &board))
	assert.Equal(t, 1, board.Len())

	resp.Body.Close()
	require.Eventually(t, unsubscribed.Load, time.Second, 10*time.Millisecond)
}

func TestBoardStreamSubscribeFailure(t *testing.T) {
	f := newFixture(t)
	f.kitchen.EXPECT().Watch(gomock.Any(), domain.ViewKitchen, gomock.Any()).
		Return(nil, fmt.Errorf("watch: %w", domain.ErrStoreUnavailable))

	rec := f.do(http.MethodGet, "/api/board/stream", "", map[string]string{HeaderDeviceID: "screen"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEligibilityStream(t *testing.T) {
	f := newFixture(t)
	f.watcher.decision = domain.Decision{Enabled: true, Window: "Wednesdays 22:00-00:00"}

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/eligibility/stream", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderDeviceID, "dev-1")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	event, data := readEvent(t, bufio.NewReader(resp.Body))
	assert.Equal(t, "eligibility", event)
	var d domain.Decision
	require.NoError(t, json.Unmarshal([]byte(data), &d))
	assert.False(t, d.Allowed)
	assert.Equal(t, "Wednesdays 22:00-00:00", d.Window)
}

func readEvent(t *testing.T, r *bufio.Reader) (event, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestMyOrders(t *testing.T) {
	f := newFixture(t)
	f.ordering.EXPECT().RecentOrders(gomock.Any(), domain.AnonymousDevice("dev-1"), 5).
		Return([]*domain.Order{{ID: "o1"}}, nil)

	rec := f.do(http.MethodGet, "/api/orders/mine?limit=5", "", map[string]string{HeaderDeviceID: "dev-1"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/orders/mine?limit=abc", "", map[string]string{HeaderDeviceID: "dev-1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit", decodeError(t, rec).Errors[0].Field)
}

func TestCreateAdminOrder(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	f.ordering.EXPECT().SubmitAsAdmin(gomock.Any(), interfaces.SubmitOrderCommand{
		Name:            "Walk-in",
		SelectedOptions: []string{"Plain"},
	}).Return(&domain.Order{ID: "o9", Name: "Walk-in"}, nil)

	rec := f.do(http.MethodPost, "/api/admin/orders", `{"name":"Walk-in","selectedOptions":["Plain"]}`,
		map[string]string{HeaderUserID: "admin1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSetGuestOrderingConfig(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	want := domain.GuestOrderingConfig{Enabled: true, DayOfWeek: 5, StartHour: 20, EndHour: 2}
	f.admin.EXPECT().SetGuestOrderingConfig(gomock.Any(), want).Return(nil)

	rec := f.do(http.MethodPut, "/api/admin/config/guest-ordering",
		`{"enabled":true,"dayOfWeek":5,"startHour":20,"endHour":2}`, map[string]string{HeaderUserID: "admin1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.GuestOrderingConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestSetGuestOrderingConfigRequiresEveryField(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")

	rec := f.do(http.MethodPut, "/api/admin/config/guest-ordering", `{"enabled":false}`,
		map[string]string{HeaderUserID: "admin1"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decodeError(t, rec).Errors, 3)
}

func TestSetGuestOrderingConfigOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	f.admin.EXPECT().SetGuestOrderingConfig(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: startHour must be 0-23", domain.ErrValidation))

	rec := f.do(http.MethodPut, "/api/admin/config/guest-ordering",
		`{"enabled":true,"dayOfWeek":3,"startHour":24,"endHour":0}`, map[string]string{HeaderUserID: "admin1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalytics(t *testing.T) {
	f := newFixture(t)
	f.asAdmin("admin1")
	f.admin.EXPECT().Analytics(gomock.Any(), "2025-W07").
		Return(domain.WeeklyAnalytics{Week: "2025-W07", TotalOrders: 3}, nil)
	f.admin.EXPECT().Weeks(gomock.Any()).Return([]string{"2025-W07"}, nil)

	rec := f.do(http.MethodGet, "/api/admin/analytics?week=2025-W07", "", map[string]string{HeaderUserID: "admin1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var a domain.WeeklyAnalytics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, 3, a.TotalOrders)

	rec = f.do(http.MethodGet, "/api/admin/weeks", "", map[string]string{HeaderUserID: "admin1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["2025-W07"]`, rec.Body.String())
}

func TestLeaderboardIsPublic(t *testing.T) {
	f := newFixture(t)
	f.admin.EXPECT().Leaderboard(gomock.Any()).Return([]domain.LeaderboardEntry{{Name: "Ann", Pancakes: 4}}, nil)

	rec := f.do(http.MethodGet, "/api/leaderboard", "", map[string]string{HeaderDeviceID: "dev-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"Ann","pancakes":4}]`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "", nil).Code)

	f.health = errors.New("connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/healthz", "", nil).Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPostChat(t *testing.T) {
	f := newFixture(t)
	f.chat.EXPECT().Post(gomock.Any(), interfaces.PostChatCommand{
		Submitter: domain.AnonymousDevice("dev-1"),
		Name:      "Ann",
		Text:      "any banana left?",
	}).Return(&domain.ChatMessage{ID: "m1", Name: "Ann", Text: "any banana left?"}, nil)

	rec := f.do(http.MethodPost, "/api/chat", `{"name":"Ann","text":"any banana left?"}`,
		map[string]string{HeaderDeviceID: "dev-1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var msg domain.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "m1", msg.ID)
}

func TestPostChatBlankText(t *testing.T) {
	f := newFixture(t)
	f.chat.EXPECT().Post(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: message must not be empty", domain.ErrValidation))

	rec := f.do(http.MethodPost, "/api/chat", `{"text":"   "}`, map[string]string{HeaderDeviceID: "dev-1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatMessages(t *testing.T) {
	f := newFixture(t)
	f.chat.EXPECT().Recent(gomock.Any()).Return([]*domain.ChatMessage{{ID: "m1"}, {ID: "m2"}}, nil)

	rec := f.do(http.MethodGet, "/api/chat", "", map[string]string{HeaderDeviceID: "dev-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var messages []domain.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
}

func TestChatStream(t *testing.T) {
	f := newFixture(t)
	var unsubscribed atomic.Bool
	f.chat.EXPECT().Watch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func([]*domain.ChatMessage)) (func(), error) {
			fn([]*domain.ChatMessage{{ID: "m1", Name: "Ann", Text: "hi"}})
			return func() { unsubscribed.Store(true) }, nil
		})

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/chat/stream", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderDeviceID, "dev-1")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	event, data := readEvent(t, bufio.NewReader(resp.Body))
	assert.Equal(t, "chat", event)
	var messages []domain.ChatMessage
	require.NoError(t, json.Unmarshal([]byte(data), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Text)

	resp.Body.Close()
	require.Eventually(t, unsubscribed.Load, time.Second, 10*time.Millisecond)
}

func TestChatStreamSubscribeFailure(t *testing.T) {
	f := newFixture(t)
	f.chat.EXPECT().Watch(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

	rec := f.do(http.MethodGet, "/api/chat/stream", "", map[string]string{HeaderDeviceID: "dev-1"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

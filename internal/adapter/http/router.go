package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

type RouterDeps struct {
	Ordering interfaces.OrderingService
	Kitchen  interfaces.KitchenService
	Admin    interfaces.AdminService
	Chat     interfaces.ChatService
	Users    interfaces.UserRepository
	Watcher  EligibilityWatcher
	// Health checks the order store; nil reports healthy.
	Health func(ctx context.Context) error
	Logger logger.Logger
}

// NewRouter mounts the API. It must sit behind an authenticating proxy that
// owns the X-User-ID header (see IdentityMiddleware); the admin routes rely
// on it.
func NewRouter(deps RouterDeps) http.Handler {
	orders := NewOrderHandler(deps.Ordering, deps.Watcher, deps.Logger)
	board := NewBoardHandler(deps.Kitchen, deps.Logger)
	admin := NewAdminHandler(deps.Admin, deps.Logger)
	chat := NewChatHandler(deps.Chat, deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(deps.Logger))
	r.Use(LoggingMiddleware(deps.Logger))

	r.Get("/healthz", healthHandler(deps.Health))

	r.Route("/api", func(r chi.Router) {
		r.Use(IdentityMiddleware(deps.Users, deps.Logger))

		// Гостевые маршруты
		r.Get("/eligibility", orders.Eligibility)
		r.Get("/eligibility/stream", orders.EligibilityStream)
		r.Post("/orders", orders.CreateOrder)
		r.Get("/orders/mine", orders.MyOrders)

		// Табло
		r.Get("/board", board.Board)
		r.Get("/board/stream", board.Stream)
		r.Get("/leaderboard", admin.Leaderboard)

		// Чат гостей
		r.Get("/chat", chat.Messages)
		r.Post("/chat", chat.Post)
		r.Get("/chat/stream", chat.Stream)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(deps.Logger))

			r.Post("/orders/{id}/status", board.Advance)
			r.Post("/orders/{id}/remove", board.Remove)
			r.Get("/orders/{id}/history", board.History)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/config/guest-ordering", admin.GuestOrderingConfig)
				r.Put("/config/guest-ordering", admin.SetGuestOrderingConfig)
				r.Get("/weeks", admin.Weeks)
				r.Get("/analytics", admin.Analytics)
				r.Post("/orders", orders.CreateAdminOrder)
			})
		})
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

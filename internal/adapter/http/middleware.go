package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/YelzhanWeb/pancakes/internal/adapter/logger"
	"github.com/YelzhanWeb/pancakes/internal/domain"
	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderDeviceID  = "X-Device-ID"
	HeaderRequestID = "X-Request-ID"

	maxDeviceIDLength = 64
)

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := middleware.GetReqID(r.Context())
			w.Header().Set(HeaderRequestID, requestID)

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic_recovered", "Panic recovered", middleware.GetReqID(r.Context()), map[string]interface{}{
						"path": r.URL.Path,
					}, fmt.Errorf("%v", rec))
					writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Identity is the caller as resolved from the request headers.
type Identity struct {
	Submitter domain.Submitter
	// User is nil for anonymous devices.
	User *domain.User
}

func (i Identity) IsAdmin() bool {
	return i.User.IsAdmin()
}

type identityKey struct{}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by IdentityMiddleware.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

// IdentityMiddleware resolves the caller. Authentication happens upstream: a
// signed-in account arrives as X-User-ID, anything else is an anonymous
// device. A device without an id gets a fresh one back in X-Device-ID.
//
// X-User-ID is trusted as sent. The authenticating proxy in front of the
// service must set it for signed-in users and strip any client-supplied
// value; without that proxy anyone can claim an admin account.
func IdentityMiddleware(users interfaces.UserRepository, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := middleware.GetReqID(r.Context())
			var id Identity

			if userID := r.Header.Get(HeaderUserID); userID != "" {
				user, err := users.FindByID(r.Context(), userID)
				switch {
				case errors.Is(err, domain.ErrUserNotFound):
					user = &domain.User{ID: userID, Role: domain.RoleCustomer}
				case err != nil:
					logger.Error("identity_failed", "Failed to load user profile", requestID, map[string]interface{}{
						"user_id": userID,
					}, err)
					respondError(w, err)
					return
				}
				id = Identity{Submitter: domain.Account(userID), User: user}
			} else {
				deviceID := r.Header.Get(HeaderDeviceID)
				if utf8.RuneCountInString(deviceID) > maxDeviceIDLength {
					writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid device id"})
					return
				}
				if deviceID == "" {
					deviceID = uuid.NewString()
					w.Header().Set(HeaderDeviceID, deviceID)
				}
				id = Identity{Submitter: domain.AnonymousDevice(deviceID)}
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin rejects callers whose profile does not carry the admin role.
func RequireAdmin(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFrom(r.Context())
			if !id.IsAdmin() {
				logger.Warn("admin_denied", "Admin route called without admin role", middleware.GetReqID(r.Context()), map[string]interface{}{
					"submitter": id.Submitter.Key(),
					"path":      r.URL.Path,
				})
				writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

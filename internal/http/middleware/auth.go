package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type contextKey string

const actorKey contextKey = "actor"

// Users resolves the account behind a token.
type Users interface {
	User(ctx context.Context, id int64) (*rental.User, error)
}

// Auth authenticates the request from a bearer token, a "token" cookie or the
// X-Auth-Token header, and stores the current account in the context. Tokens
// for accounts that no longer exist are rejected.
func Auth(tokens *auth.TokenService, users Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.User(r.Context(), claims.UserID)
			if errors.Is(err, rental.ErrNotFound) {
				slog.Warn("token references unknown user", "user_id", claims.UserID)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)

				return
			}

			if err != nil {
				slog.Error("failed to resolve user", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), *user)))
		})
	}
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}

	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return r.Header.Get("X-Auth-Token")
}

func WithActor(ctx context.Context, u rental.User) context.Context {
	return context.WithValue(ctx, actorKey, u)
}

// Actor returns the authenticated account.
func Actor(ctx context.Context) (rental.User, bool) {
	u, ok := ctx.Value(actorKey).(rental.User)
	return u, ok
}

// RequireRole lets the request through only for the given roles.
func RequireRole(roles ...rental.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := Actor(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(roles, actor.Role) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

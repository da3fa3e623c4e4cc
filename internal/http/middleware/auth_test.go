package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type stubUsers map[int64]rental.User

func (s stubUsers) User(_ context.Context, id int64) (*rental.User, error) {
	if id == 99 {
		return nil, errors.New("store unavailable")
	}

	u, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, rental.ErrNotFound)
	}

	return &u, nil
}

func echoActor(w http.ResponseWriter, r *http.Request) {
	actor, ok := Actor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}

	_, _ = w.Write([]byte(actor.Email))
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	users := stubUsers{1: {ID: 1, Email: "admin@example.com", Role: rental.RoleAdmin}}

	token := func(id int64) string {
		tok, err := tokens.Generate(id, "x@example.com", "admin")
		require.NoError(t, err)

		return tok
	}

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{
			name:     "Bearer",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(1)) },
			wantCode: http.StatusOK,
			wantBody: "admin@example.com",
		},
		{
			name:     "Cookie",
			setup:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token(1)}) },
			wantCode: http.StatusOK,
			wantBody: "admin@example.com",
		},
		{
			name:     "Header",
			setup:    func(r *http.Request) { r.Header.Set("X-Auth-Token", token(1)) },
			wantCode: http.StatusOK,
			wantBody: "admin@example.com",
		},
		{
			name:     "Missing",
			setup:    func(*http.Request) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "Garbage",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "DanglingUser",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(7)) },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "StoreFailure",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(99)) },
			wantCode: http.StatusInternalServerError,
		},
	}

	h := Auth(tokens, users)(http.HandlerFunc(echoActor))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(rental.RoleAdmin, rental.RoleManager)(http.HandlerFunc(echoActor))

	tests := []struct {
		name     string
		actor    *rental.User
		wantCode int
	}{
		{name: "Allowed", actor: &rental.User{Email: "m@example.com", Role: rental.RoleManager}, wantCode: http.StatusOK},
		{name: "Denied", actor: &rental.User{Role: rental.RoleTenant}, wantCode: http.StatusForbidden},
		{name: "Anonymous", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.actor != nil {
				req = req.WithContext(WithActor(req.Context(), *tt.actor))
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

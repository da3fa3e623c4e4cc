package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: name is required", rental.ErrValidation), want: http.StatusBadRequest},
		{err: fmt.Errorf("unit 4: %w", rental.ErrNotFound), want: http.StatusNotFound},
		{err: rental.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: rental.ErrNoSession, want: http.StatusUnauthorized},
		{err: rental.ErrForbidden, want: http.StatusForbidden},
		{err: rental.ErrEmailTaken, want: http.StatusConflict},
		{err: rental.ErrUnitOccupied, want: http.StatusConflict},
		{err: rental.ErrAlreadyPaid, want: http.StatusConflict},
		{err: rental.ErrInvalidTransition, want: http.StatusConflict},
		{err: rental.ErrRoleMismatch, want: http.StatusConflict},
		{err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error\n", rec.Body.String())
}

func TestID(t *testing.T) {
	tests := []struct {
		param  string
		want   int64
		wantOK bool
	}{
		{param: "42", want: 42, wantOK: true},
		{param: "0"},
		{param: "-1"},
		{param: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.param)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()
			got, ok := ID(rec, req, "id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)

			if !ok {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

// Package httpx holds the request and response helpers shared by the API handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/middleware"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// ID parses the named int64 URL parameter, writing a 400 on failure.
func ID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

// Status maps a domain error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, rental.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, rental.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rental.ErrInvalidCredentials), errors.Is(err, rental.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, rental.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, rental.ErrEmailTaken),
		errors.Is(err, rental.ErrUnitOccupied),
		errors.Is(err, rental.ErrAlreadyPaid),
		errors.Is(err, rental.ErrInvalidTransition),
		errors.Is(err, rental.ErrRoleMismatch):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Error writes err with its mapped status. Unexpected errors are logged and
// reported without detail.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

// Actor returns the authenticated account, writing a 401 when there is none.
func Actor(w http.ResponseWriter, r *http.Request) (rental.User, bool) {
	actor, ok := middleware.Actor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}

	return actor, ok
}

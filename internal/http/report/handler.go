package report

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/http/middleware"
	"github.com/MrJamesThe3rd/rentbook/internal/report"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the reports. The dashboard is open to every role and
// filtered per actor; the owner portal is for owners; the rest is staff only.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)

	r.With(middleware.RequireRole(rental.RoleOwner)).Get("/owner", h.owner)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(rental.RoleAdmin, rental.RoleManager))

		r.Get("/occupancy", h.occupancy)
		r.Get("/revenue", h.revenue)
		r.Get("/expenses", h.expenses)
		r.Get("/profit", h.profit)
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	year := 0

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = y
	}

	d, err := h.svc.Dashboard(r.Context(), actor, year)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) occupancy(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Occupancy(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	rows, err := h.svc.Revenue(r.Context(), actor)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) expenses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Expenses(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) profit(w http.ResponseWriter, r *http.Request) {
	pl, err := h.svc.ProfitLoss(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, pl)
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	rows, err := h.svc.Owner(r.Context(), actor)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, rows)
}

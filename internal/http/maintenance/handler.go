package maintenance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type Handler struct {
	svc *rental.Service
}

func NewHandler(svc *rental.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/assign", h.assign)
	r.Post("/{id}/complete", h.complete)
}

type createRequest struct {
	TenantID    int64           `json:"tenantId"`
	PropertyID  int64           `json:"propertyId"`
	UnitID      int64           `json:"unitId"`
	Description string          `json:"description"`
	Priority    rental.Priority `json:"priority"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	requests, err := h.svc.Requests(r.Context(), actor)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, requests)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	var req createRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	mr, err := h.svc.CreateRequest(r.Context(), actor, rental.RequestParams{
		TenantID:    req.TenantID,
		PropertyID:  req.PropertyID,
		UnitID:      req.UnitID,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, mr)
}

type updateRequest struct {
	Description string          `json:"description"`
	Priority    rental.Priority `json:"priority"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req updateRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	mr, err := h.svc.UpdateRequest(r.Context(), actor, id, req.Description, req.Priority)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, mr)
}

type assignRequest struct {
	VendorID int64 `json:"vendorId"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req assignRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	mr, err := h.svc.AssignRequest(r.Context(), actor, id, req.VendorID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, mr)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	mr, err := h.svc.CompleteRequest(r.Context(), actor, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, mr)
}

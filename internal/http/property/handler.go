package property

import (
	"net/http"
	"strconv"

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
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Get("/{id}/units", h.propertyUnits)
}

func (h *Handler) UnitRoutes(r chi.Router) {
	r.Get("/", h.listUnits)
	r.Post("/", h.createUnit)
	r.Get("/{id}", h.getUnit)
	r.Put("/{id}", h.updateUnit)
}

type propertyRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	OwnerID   *int64 `json:"ownerId,omitempty"`
	ManagerID *int64 `json:"managerId,omitempty"`
}

func (req propertyRequest) params() rental.PropertyParams {
	return rental.PropertyParams{
		Name:      req.Name,
		Address:   req.Address,
		OwnerID:   req.OwnerID,
		ManagerID: req.ManagerID,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.Properties(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, props)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.CreateProperty(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.Property(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req propertyRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.UpdateProperty(r.Context(), id, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) propertyUnits(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.svc.Property(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}

	h.writeUnits(w, r, &id)
}

type unitRequest struct {
	PropertyID int64  `json:"propertyId"`
	Number     string `json:"number"`
	Rent       int64  `json:"rent"`
}

func (req unitRequest) params() rental.UnitParams {
	return rental.UnitParams{PropertyID: req.PropertyID, Number: req.Number, Rent: req.Rent}
}

func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	var propertyID *int64

	if s := r.URL.Query().Get("propertyId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid propertyId", http.StatusBadRequest)
			return
		}

		propertyID = &id
	}

	h.writeUnits(w, r, propertyID)
}

func (h *Handler) writeUnits(w http.ResponseWriter, r *http.Request, propertyID *int64) {
	units, err := h.svc.Units(r.Context(), propertyID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, units)
}

func (h *Handler) createUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.CreateUnit(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, u)
}

func (h *Handler) getUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.svc.Unit(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) updateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req unitRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.UpdateUnit(r.Context(), id, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, u)
}

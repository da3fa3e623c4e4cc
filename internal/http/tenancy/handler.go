package tenancy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// Handler serves tenants, leases and their payment schedules.
type Handler struct {
	svc *rental.Service
}

func NewHandler(svc *rental.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) TenantRoutes(r chi.Router) {
	r.Get("/", h.listTenants)
	r.Post("/", h.createTenant)
	r.Get("/{id}", h.getTenant)
	r.Put("/{id}", h.updateTenant)
}

func (h *Handler) LeaseRoutes(r chi.Router) {
	r.Get("/", h.listLeases)
	r.Post("/", h.createLease)
	r.Get("/{id}", h.getLease)
	r.Put("/{id}", h.updateLease)
}

func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Get("/", h.listPayments)
	r.Post("/{id}/settle", h.settle)
}

type tenantRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PropertyID int64  `json:"propertyId"`
	UnitID     int64  `json:"unitId"`
}

func (req tenantRequest) params() rental.TenantParams {
	return rental.TenantParams{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
		UnitID:     req.UnitID,
	}
}

type createTenantResponse struct {
	rental.Tenant
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
}

func (h *Handler) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.svc.Tenants(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, tenants)
}

func (h *Handler) createTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	nt, err := h.svc.CreateTenant(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, createTenantResponse{Tenant: nt.Tenant, TemporaryPassword: nt.Password})
}

func (h *Handler) getTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.svc.Tenant(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req tenantRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	t, err := h.svc.UpdateTenant(r.Context(), id, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, t)
}

type leaseRequest struct {
	TenantID   int64       `json:"tenantId"`
	PropertyID int64       `json:"propertyId"`
	UnitID     int64       `json:"unitId"`
	StartDate  rental.Date `json:"startDate"`
	EndDate    rental.Date `json:"endDate"`
	Rent       int64       `json:"rent"`
}

func (req leaseRequest) params() rental.LeaseParams {
	return rental.LeaseParams{
		TenantID:   req.TenantID,
		PropertyID: req.PropertyID,
		UnitID:     req.UnitID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Rent:       req.Rent,
	}
}

type createLeaseResponse struct {
	Lease    rental.Lease     `json:"lease"`
	Payments []rental.Payment `json:"payments"`
}

func (h *Handler) listLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := h.svc.Leases(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, leases)
}

func (h *Handler) createLease(w http.ResponseWriter, r *http.Request) {
	var req leaseRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	lease, payments, err := h.svc.CreateLease(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, createLeaseResponse{Lease: *lease, Payments: payments})
}

func (h *Handler) getLease(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.svc.Lease(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) updateLease(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req leaseRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	l, err := h.svc.UpdateLease(r.Context(), id, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	payments, err := h.svc.Payments(r.Context(), actor)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payments)
}

type settleResponse struct {
	Payment rental.Payment     `json:"payment"`
	Entry   rental.LedgerEntry `json:"ledgerEntry"`
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	p, entry, err := h.svc.SettlePayment(r.Context(), actor, id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, settleResponse{Payment: *p, Entry: *entry})
}

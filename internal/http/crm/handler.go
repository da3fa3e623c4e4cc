package crm

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// Handler serves leads, messages and file records.
type Handler struct {
	svc *rental.Service
}

func NewHandler(svc *rental.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) LeadRoutes(r chi.Router) {
	r.Get("/", h.listLeads)
	r.Post("/", h.createLead)
	r.Put("/{id}", h.updateLead)
}

func (h *Handler) MessageRoutes(r chi.Router) {
	r.Get("/", h.listMessages)
	r.Post("/", h.sendMessage)
}

func (h *Handler) FileRoutes(r chi.Router) {
	r.Get("/", h.listFiles)
	r.Post("/", h.createFile)
	r.Put("/{id}", h.updateFile)
}

type leadRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Stage string `json:"stage"`
	Notes string `json:"notes"`
}

func (req leadRequest) params() rental.LeadParams {
	return rental.LeadParams{Name: req.Name, Email: req.Email, Phone: req.Phone, Stage: req.Stage, Notes: req.Notes}
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.svc.Leads(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, leads)
}

func (h *Handler) createLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	l, err := h.svc.CreateLead(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, l)
}

func (h *Handler) updateLead(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req leadRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	l, err := h.svc.UpdateLead(r.Context(), id, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, l)
}

type messageRequest struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	messages, err := h.svc.Messages(r.Context(), actor)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, messages)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.SendMessage(r.Context(), actor, rental.MessageParams{
		Subject:    req.Subject,
		Body:       req.Body,
		Recipients: req.Recipients,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, m)
}

type fileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

func (req fileRequest) params() rental.FileParams {
	return rental.FileParams{Name: req.Name, Description: req.Description, Tags: req.Tags}
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.Files(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, files)
}

func (h *Handler) createFile(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	f, err := h.svc.CreateFile(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) updateFile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req fileRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	f, err := h.svc.UpdateFile(r.Context(), id, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, f)
}

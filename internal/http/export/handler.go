package export

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// staffOnly lists exports that are not filtered per actor.
var staffOnly = []export.Kind{export.KindLedger}

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{kind}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	kind, err := export.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if slices.Contains(staffOnly, kind) && actor.Role != rental.RoleAdmin && actor.Role != rental.RoleManager {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Write(r.Context(), &buf, actor, kind); err != nil {
		httpx.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(kind)+".csv"))

	_, _ = w.Write(buf.Bytes())
}

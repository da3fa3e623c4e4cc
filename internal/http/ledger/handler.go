package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/importer"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc       *rental.Service
	importSvc *importer.Service
}

func NewHandler(svc *rental.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/import", h.importCSV)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter rental.LedgerFilter

	q := r.URL.Query()

	if s := q.Get("type"); s != "" {
		filter.Type = new(rental.LedgerType(s))
	}

	var err error

	if filter.From, err = dateParam(q.Get("from")); err != nil {
		httpx.Error(w, err)
		return
	}

	if filter.To, err = dateParam(q.Get("to")); err != nil {
		httpx.Error(w, err)
		return
	}

	entries, err := h.svc.Ledger(r.Context(), filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, entries)
}

func dateParam(s string) (*rental.Date, error) {
	if s == "" {
		return nil, nil
	}

	d, err := rental.ParseDate(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

type entryRequest struct {
	Date        rental.Date       `json:"date"`
	Description string            `json:"description"`
	Amount      int64             `json:"amount"`
	Type        rental.LedgerType `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.AddLedgerEntry(r.Context(), rental.LedgerParams{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, e)
}

type importResponse struct {
	Format   importer.Format      `json:"format"`
	Charset  string               `json:"charset"`
	Skipped  int                  `json:"skipped"`
	Imported int                  `json:"imported"`
	DryRun   bool                 `json:"dryRun"`
	Entries  []rental.LedgerEntry `json:"entries"`
}

// importCSV books every row of an uploaded ledger CSV. With dry_run=true the
// parsed rows are returned without being stored.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.importSvc.Parse(file, importer.Format(r.FormValue("format")))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := importResponse{
		Format:  res.Format,
		Charset: res.Charset,
		Skipped: res.Skipped,
		DryRun:  r.FormValue("dry_run") == "true",
		Entries: []rental.LedgerEntry{},
	}

	if resp.DryRun {
		for _, p := range res.Entries {
			resp.Entries = append(resp.Entries, rental.LedgerEntry{
				Date:        p.Date,
				Description: p.Description,
				Amount:      p.Amount,
				Type:        p.Type,
			})
		}

		httpx.JSON(w, http.StatusOK, resp)

		return
	}

	entries, err := h.svc.AddLedgerEntries(r.Context(), res.Entries)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	if entries != nil {
		resp.Entries = entries
	}

	resp.Imported = len(entries)

	httpx.JSON(w, http.StatusCreated, resp)
}

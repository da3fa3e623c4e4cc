package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/rentbook/internal/http/account"
	"github.com/MrJamesThe3rd/rentbook/internal/http/crm"
	"github.com/MrJamesThe3rd/rentbook/internal/http/export"
	"github.com/MrJamesThe3rd/rentbook/internal/http/ledger"
	"github.com/MrJamesThe3rd/rentbook/internal/http/maintenance"
	authmw "github.com/MrJamesThe3rd/rentbook/internal/http/middleware"
	"github.com/MrJamesThe3rd/rentbook/internal/http/property"
	"github.com/MrJamesThe3rd/rentbook/internal/http/report"
	"github.com/MrJamesThe3rd/rentbook/internal/http/tenancy"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type Handlers struct {
	Account     *account.Handler
	Property    *property.Handler
	Tenancy     *tenancy.Handler
	Maintenance *maintenance.Handler
	Ledger      *ledger.Handler
	CRM         *crm.Handler
	Report      *report.Handler
	Export      *export.Handler
}

func New(h Handlers, authenticate func(http.Handler) http.Handler, origins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	staff := authmw.RequireRole(rental.RoleAdmin, rental.RoleManager)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Account.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				h.Account.Routes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Use(authmw.RequireRole(rental.RoleAdmin))
				h.Account.UserRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(staff)

				r.Route("/properties", h.Property.Routes)
				r.Route("/units", h.Property.UnitRoutes)
				r.Route("/tenants", h.Tenancy.TenantRoutes)
				r.Route("/leases", h.Tenancy.LeaseRoutes)
				r.Route("/ledger", h.Ledger.Routes)
				r.Route("/leads", h.CRM.LeadRoutes)
				r.Route("/files", h.CRM.FileRoutes)
			})

			r.Route("/payments", h.Tenancy.PaymentRoutes)
			r.Route("/maintenance", h.Maintenance.Routes)
			r.Route("/messages", h.CRM.MessageRoutes)
			r.Route("/reports", h.Report.Routes)
			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}

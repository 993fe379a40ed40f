package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/prima-crm/prima-crm/internal/auth"
	"github.com/prima-crm/prima-crm/internal/dashboard"
	"github.com/prima-crm/prima-crm/internal/leads"
	"github.com/prima-crm/prima-crm/internal/quotation"
	"github.com/prima-crm/prima-crm/internal/revenue"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthService *auth.Service

	AuthHandler           *auth.Handler
	QuotationHandler      *quotation.Handler
	QuotationAdminHandler *quotation.AdminHandler
	DashboardHandler      *dashboard.Handler
	LeadsHandler          *leads.Handler
	RevenueHandler        *revenue.Handler
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(params.AuthService, params.Config.DevMode()))

		r.Route("/quotations-step", params.QuotationHandler.MountRoutes)
		r.Route("/admin-panel/quotations", params.QuotationAdminHandler.MountRoutes)
		r.Route("/dashboard-approval", params.DashboardHandler.MountRoutes)
		r.Route("/leads", params.LeadsHandler.MountRoutes)
		r.Route("/revenue", params.RevenueHandler.MountRoutes)
	})

	return r
}

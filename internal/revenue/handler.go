package revenue

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

// Handler serves the revenue summary endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
	devMode bool
}

// NewHandler creates the revenue handler.
func NewHandler(logger *slog.Logger, service *Service, devMode bool) *Handler {
	return &Handler{logger: logger, service: service, devMode: devMode}
}

// MountRoutes registers routes under /revenue.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("revenue summary failed", "error", err)
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, summary)
}

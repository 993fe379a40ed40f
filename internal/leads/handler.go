package leads

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// Handler serves the read-only leads endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	devMode bool
}

// NewHandler creates the leads handler.
func NewHandler(logger *slog.Logger, service *Service, devMode bool) *Handler {
	return &Handler{logger: logger, service: service, devMode: devMode}
}

// MountRoutes registers routes under /leads.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized, h.devMode)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	list, pagination, err := h.service.List(r.Context(), actor, page, perPage)
	if err != nil {
		h.logger.Error("list leads failed", "error", err)
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OKList(w, list, pagination.Total)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized, h.devMode)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	l, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, l)
}

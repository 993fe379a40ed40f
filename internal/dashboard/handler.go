package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// Handler serves the approval dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	devMode bool
}

// NewHandler creates the dashboard handler.
func NewHandler(logger *slog.Logger, service *Service, devMode bool) *Handler {
	return &Handler{logger: logger, service: service, devMode: devMode}
}

// MountRoutes registers routes under /dashboard-approval.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/list", h.list)
	r.Post("/{id}/approve", h.approve)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized, h.devMode)
		return
	}
	tipe, err := ParseTipe(r.URL.Query().Get("tipe"))
	if err != nil {
		httpx.RespondError(w, err, h.devMode)
		return
	}

	items, err := h.service.List(r.Context(), actor, tipe)
	if err != nil {
		h.logger.Error("dashboard list failed", "error", err, "tipe", string(tipe))
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OKList(w, items, len(items))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized, h.devMode)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid quotation id")
		return
	}

	rec, err := h.service.Approve(r.Context(), actor, id)
	if err != nil {
		h.logger.Error("approval failed", "error", err, "quotation_id", id)
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, rec)
}

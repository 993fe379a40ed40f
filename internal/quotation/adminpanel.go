package quotation

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// adminSections maps the admin-panel URL slugs onto step numbers.
var adminSections = map[string]int{
	"hc":         3,
	"kaporlap":   7,
	"devices":    8,
	"chemical":   9,
	"ohc":        10,
	"harga-jual": 11,
}

// AdminHandler serves the admin-panel step endpoints. These edit quotations
// that already progressed past the step, so updates never move the pointer.
type AdminHandler struct {
	logger  *slog.Logger
	service *Service
	devMode bool
}

// NewAdminHandler creates the admin-panel handler.
func NewAdminHandler(logger *slog.Logger, service *Service, devMode bool) *AdminHandler {
	return &AdminHandler{logger: logger, service: service, devMode: devMode}
}

// MountRoutes registers routes under /admin-panel/quotations.
func (h *AdminHandler) MountRoutes(r chi.Router) {
	r.Put("/{id}/{section}", h.updateSection)
	r.Get("/{id}/step-data/{step}", h.stepData)
}

func (h *AdminHandler) updateSection(w http.ResponseWriter, r *http.Request) {
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
	section := chi.URLParam(r, "section")
	step, ok := adminSections[section]
	if !ok {
		httpx.Fail(w, http.StatusNotFound, "unknown section "+section)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	view, err := h.service.UpdateAdminStep(r.Context(), actor, id, step, raw)
	if err != nil {
		h.logger.Error("admin step update failed", "error", err, "quotation_id", id, "section", section)
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, view)
}

func (h *AdminHandler) stepData(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid quotation id")
		return
	}
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid step number")
		return
	}

	view, err := h.service.GetAdminStep(r.Context(), id, step)
	if err != nil {
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, view)
}

package quotation

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// Handler serves the generic step-wizard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	devMode bool
}

// NewHandler creates the step-wizard handler.
func NewHandler(logger *slog.Logger, service *Service, devMode bool) *Handler {
	return &Handler{logger: logger, service: service, devMode: devMode}
}

// MountRoutes registers routes under /quotations-step.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}/step/{step}", h.getStep)
	r.Post("/{id}/step/{step}", h.updateStep)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized, h.devMode)
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	q, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("create quotation failed", "error", err)
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.JSON(w, http.StatusCreated, httpx.Envelope{Success: true, Data: q})
}

func (h *Handler) getStep(w http.ResponseWriter, r *http.Request) {
	id, step, ok := h.params(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetStep(r.Context(), id, step)
	if err != nil {
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, view)
}

func (h *Handler) updateStep(w http.ResponseWriter, r *http.Request) {
	actor, ok := shared.ActorFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized, h.devMode)
		return
	}
	id, step, ok := h.params(w, r)
	if !ok {
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	// edit rides along in the same body as the step payload.
	var flags struct {
		Edit bool `json:"edit"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &flags); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "malformed request body")
			return
		}
	}

	view, err := h.service.UpdateStep(r.Context(), actor, id, step, raw, flags.Edit)
	if err != nil {
		h.logger.Error("update step failed", "error", err, "quotation_id", id, "step", step)
		httpx.RespondError(w, err, h.devMode)
		return
	}
	httpx.OK(w, view)
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) (id int64, step int, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid quotation id")
		return 0, 0, false
	}
	step, err = strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid step number")
		return 0, 0, false
	}
	return id, step, true
}

package quotation

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prima-crm/prima-crm/internal/shared"
)

func newTestRouter(t *testing.T) (chi.Router, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, newMockLookups(), logger)

	r := chi.NewRouter()
	r.Route("/quotations-step", NewHandler(logger, svc, true).MountRoutes)
	r.Route("/admin-panel/quotations", NewAdminHandler(logger, svc, true).MountRoutes)
	return r, repo
}

func doRequest(t *testing.T, r chi.Router, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authed {
		req = req.WithContext(shared.ContextWithActor(req.Context(), testActor))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func TestCreateQuotationEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)

	rr := doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1,"nama_perusahaan":"PT Maju"}`, true)

	require.Equal(t, http.StatusCreated, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]any)
	assert.Equal(t, float64(1), data["step"])
	assert.Len(t, repo.quotations, 1)
}

func TestStepEndpointsRequireActor(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, r, http.MethodPost, "/quotations-step/1/step/1", `{}`, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetUnknownStepReturns404(t *testing.T) {
	r, _ := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)

	rr := doRequest(t, r, http.MethodGet, "/quotations-step/1/step/42", "", true)

	require.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, false, env["success"])
}

func TestUpdateStepValidationEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)

	rr := doRequest(t, r, http.MethodPost, "/quotations-step/1/step/1", `{}`, true)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, false, env["success"])
	errs := env["errors"].(map[string]any)
	assert.Contains(t, errs, "jenis_kontrak")
}

func TestUpdateStepAdvancesAndProjects(t *testing.T) {
	r, repo := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)

	rr := doRequest(t, r, http.MethodPost, "/quotations-step/1/step/1", `{"jenis_kontrak":"Reguler","top":"7 Hari"}`, true)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	data := env["data"].(map[string]any)
	assert.Equal(t, "Reguler", data["jenis_kontrak"])
	assert.Equal(t, float64(2), data["step"])
	assert.Equal(t, 2, repo.quotations[1].Step)
}

func TestUpdateStepHonoursEditFlag(t *testing.T) {
	r, repo := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)
	repo.quotations[1].Step = 5

	rr := doRequest(t, r, http.MethodPost, "/quotations-step/1/step/1", `{"jenis_kontrak":"Reguler","edit":true}`, true)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, repo.quotations[1].Step)
}

func TestAdminPanelUnknownSection(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doRequest(t, r, http.MethodPut, "/admin-panel/quotations/1/kontrak", `{}`, true)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminPanelStepDataOutsideAllowedSet(t *testing.T) {
	r, _ := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)

	rr := doRequest(t, r, http.MethodGet, "/admin-panel/quotations/1/step-data/1", "", true)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	msg := env["message"].(string)
	assert.Contains(t, msg, "allowed steps")
}

func TestAdminPanelUpdateNeverMovesPointer(t *testing.T) {
	r, repo := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)
	doRequest(t, r, http.MethodPost, "/quotations-step/1/step/2", `{"sites":[{"nama_site":"Site A"}],"edit":true}`, true)

	siteID := repo.sites[1][0].ID
	payload, _ := json.Marshal(map[string]any{"headcount": []map[string]any{
		{"quotation_site_id": siteID, "position_id": 1, "jumlah_hc": 4},
	}})
	rr := doRequest(t, r, http.MethodPut, "/admin-panel/quotations/1/hc", string(payload), true)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, repo.quotations[1].Step)
	require.Len(t, repo.headcount[1], 1)
}

func TestGetStepReturnsEmptyLists(t *testing.T) {
	r, _ := newTestRouter(t)
	doRequest(t, r, http.MethodPost, "/quotations-step/", `{"leads_id":1}`, true)

	rr := doRequest(t, r, http.MethodGet, "/quotations-step/1/step/8", "", true)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	data := env["data"].(map[string]any)
	devices, ok := data["devices"].([]any)
	require.True(t, ok, "empty collection must serialise as a list, not null")
	assert.Empty(t, devices)
}

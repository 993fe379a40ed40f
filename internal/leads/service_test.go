package leads

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/shared"
)

type mockLeadsRepo struct {
	leads map[int64]*Lead
	teams map[int64][]int64
}

func (m *mockLeadsRepo) List(ctx context.Context, actor shared.Actor, page, perPage int) ([]Lead, int, error) {
	var out []Lead
	for _, l := range m.leads {
		out = append(out, *l)
	}
	return out, len(out), nil
}

func (m *mockLeadsRepo) Get(ctx context.Context, id int64) (*Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (m *mockLeadsRepo) TeamMembers(ctx context.Context, userID int64) ([]int64, error) {
	return m.teams[userID], nil
}

func newTestService() *Service {
	repo := &mockLeadsRepo{
		leads: map[int64]*Lead{
			1: {ID: 1, NamaPerusahaan: "PT Maju", SalesID: 5, ROID: 20, CRMID: 40},
		},
		teams: map[int64][]int64{
			7: {5, 6, 7},
		},
	}
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetOwnLeadAllowed(t *testing.T) {
	svc := newTestService()

	// sales IC sees only leads assigned to them.
	l, err := svc.Get(context.Background(), shared.Actor{ID: 5, RoleID: 29}, 1)
	require.NoError(t, err)
	assert.Equal(t, "PT Maju", l.NamaPerusahaan)

	_, err = svc.Get(context.Background(), shared.Actor{ID: 6, RoleID: 29}, 1)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestGetTeamLeadSeesTeamLeads(t *testing.T) {
	svc := newTestService()

	// user 7 leads the team containing sales user 5.
	l, err := svc.Get(context.Background(), shared.Actor{ID: 7, RoleID: 31}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
}

func TestGetOwnerScopedDivisions(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), shared.Actor{ID: 20, RoleID: 26}, 1)
	require.NoError(t, err, "RO officer owns this lead")

	_, err = svc.Get(context.Background(), shared.Actor{ID: 21, RoleID: 26}, 1)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.Get(context.Background(), shared.Actor{ID: 40, RoleID: 33}, 1)
	require.NoError(t, err, "CRM officer owns this lead")
}

func TestGetUnknownRoleDefaultsToAllow(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), shared.Actor{ID: 99, RoleID: 1}, 1)
	assert.NoError(t, err)
}

func TestGetUnknownLead(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), shared.Actor{ID: 5, RoleID: 29}, 42)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

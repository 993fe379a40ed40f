package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
	"github.com/prima-crm/prima-crm/internal/quotation"
	"github.com/prima-crm/prima-crm/internal/shared"
)

type mockDashboardRepo struct {
	items     []Item
	listCalls int
	approvals []ApprovalRecord
}

func (m *mockDashboardRepo) List(ctx context.Context, actor shared.Actor, tipe Tipe) ([]Item, error) {
	m.listCalls++
	return m.items, nil
}

func (m *mockDashboardRepo) RecordApproval(ctx context.Context, rec ApprovalRecord) error {
	m.approvals = append(m.approvals, rec)
	return nil
}

type mockQuotationStore struct {
	quotations map[int64]*quotation.Quotation
}

func (m *mockQuotationStore) Get(ctx context.Context, id int64) (*quotation.Quotation, error) {
	q, ok := m.quotations[id]
	if !ok {
		return nil, quotation.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *mockQuotationStore) SetApproval(ctx context.Context, id int64, slot int, at time.Time, updatedBy string) error {
	q, ok := m.quotations[id]
	if !ok {
		return quotation.ErrNotFound
	}
	switch slot {
	case 1:
		q.Ot1 = &at
	case 2:
		q.Ot2 = &at
	case 3:
		q.Ot3 = &at
	}
	q.UpdatedBy = updatedBy
	return nil
}

func newTestService(t *testing.T) (*Service, *mockDashboardRepo, *mockQuotationStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &mockDashboardRepo{items: []Item{{ID: 1, NamaPerusahaan: "PT Maju"}}}
	store := &mockQuotationStore{quotations: map[int64]*quotation.Quotation{
		1: {
			ID:                1,
			Step:              quotation.StepComplete,
			StatusQuotationID: quotation.StatusSubmitted,
			Top:               quotation.TopLongTerm,
		},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, store, NewCache(client, time.Minute), logger)
	return svc, repo, store
}

var tier1Actor = shared.Actor{ID: 5, RoleID: 24, Name: "Budi"}

func TestListUsesCache(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.List(ctx, tier1Actor, TipeMenungguAnda)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(ctx, tier1Actor, TipeMenungguAnda)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls, "second lookup must be served from cache")
}

func TestListCacheKeyedByActorAndTipe(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, tier1Actor, TipeMenungguAnda)
	require.NoError(t, err)
	_, err = svc.List(ctx, tier1Actor, TipeMenungguApproval)
	require.NoError(t, err)
	_, err = svc.List(ctx, shared.Actor{ID: 6, RoleID: 24}, TipeMenungguAnda)
	require.NoError(t, err)

	assert.Equal(t, 3, repo.listCalls)
}

func TestApproveStampsMarkerAndRecordsAudit(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Approve(ctx, tier1Actor, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Slot)
	assert.Equal(t, tier1Actor.ID, rec.UserID)
	assert.NotEmpty(t, rec.ID)
	require.NotNil(t, store.quotations[1].Ot1)
	require.Len(t, repo.approvals, 1)
	assert.Equal(t, rec.ID, repo.approvals[0].ID)
}

func TestApproveInvalidatesListCache(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, tier1Actor, TipeMenungguAnda)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = svc.Approve(ctx, tier1Actor, 1)
	require.NoError(t, err)

	_, err = svc.List(ctx, tier1Actor, TipeMenungguAnda)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "approval must invalidate cached lists")
}

func TestApproveEnforcesSequentialPipeline(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	tier2 := shared.Actor{ID: 8, RoleID: 25, Name: "Dewi"}
	tier3 := shared.Actor{ID: 9, RoleID: 23, Name: "Rina"}

	_, err := svc.Approve(ctx, tier2, 1)
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = svc.Approve(ctx, tier1Actor, 1)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, tier3, 1)
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = svc.Approve(ctx, tier2, 1)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, tier3, 1)
	require.NoError(t, err)

	require.NotNil(t, store.quotations[1].Ot3)
}

func TestApproveRejectsNonApprover(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Approve(context.Background(), shared.Actor{ID: 2, RoleID: 29}, 1)

	assert.ErrorIs(t, err, ErrNotApprover)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestApproveUnknownQuotation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Approve(context.Background(), tier1Actor, 99)

	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

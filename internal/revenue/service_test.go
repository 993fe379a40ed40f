package revenue

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRevenueRepo struct {
	calls int
	items []MonthlyRevenue
}

func (m *mockRevenueRepo) MonthlySummary(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	m.calls++
	return m.items, nil
}

func newTestService(t *testing.T) (*Service, *mockRevenueRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &mockRevenueRepo{items: []MonthlyRevenue{
		{Bulan: "Agustus", Tahun: 2026, Total: 1250000, TotalDisplay: "Rp 1.250.000"},
	}}
	return NewService(repo, client, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestGetSummaryCachesResult(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "Agustus", first.Items[0].Bulan)

	_, err = svc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second lookup must come from cache")
}

func TestRefreshOverwritesCache(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	repo.items = append(repo.items, MonthlyRevenue{Bulan: "September", Tahun: 2026})
	refreshed, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, refreshed.Items, 2)

	cached, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Items, 2)
	assert.Equal(t, 2, repo.calls)
}

func TestNilRedisFallsBackToRepository(t *testing.T) {
	repo := &mockRevenueRepo{}
	svc := NewService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	_, err = svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

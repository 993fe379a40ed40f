package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prima-crm/prima-crm/internal/quotation"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// QuotationStore is the slice of the quotation repository the approval write
// needs.
type QuotationStore interface {
	Get(ctx context.Context, id int64) (*quotation.Quotation, error)
	SetApproval(ctx context.Context, id int64, slot int, at time.Time, updatedBy string) error
}

// Service serves the approval dashboard and the approval writes.
type Service struct {
	repo       Repository
	quotations QuotationStore
	cache      *Cache
	logger     *slog.Logger
}

// NewService wires the dashboard service. cache may be nil; lookups then go
// straight to the repository.
func NewService(repo Repository, quotations QuotationStore, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, quotations: quotations, cache: cache, logger: logger}
}

// List returns the dashboard rows for the actor's bucket, cache-aware.
func (s *Service) List(ctx context.Context, actor shared.Actor, tipe Tipe) ([]Item, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx, actor, tipe)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]Item), nil
	}

	key, err := s.cache.BuildKey(ctx, keyList(actor.ID, tipe))
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := s.cache.FetchJSON(ctx, key, &items, loader); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Approve stamps the next approval marker the actor's tier is responsible
// for, records the audit row and invalidates the dashboard cache.
func (s *Service) Approve(ctx context.Context, actor shared.Actor, quotationID int64) (*ApprovalRecord, error) {
	tier := ResolveApprover(actor.RoleID)
	q, err := s.quotations.Get(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	slot, err := NextSlot(tier, q)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.quotations.SetApproval(ctx, quotationID, slot, now, actor.Name); err != nil {
		return nil, err
	}
	rec := ApprovalRecord{
		ID:          uuid.NewString(),
		QuotationID: quotationID,
		Slot:        slot,
		UserID:      actor.ID,
		RoleID:      actor.RoleID,
		ApprovedAt:  now,
	}
	if err := s.repo.RecordApproval(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("dashboard cache bump failed", "error", err)
	}

	s.logger.Info("quotation approved",
		slog.Int64("quotation_id", quotationID),
		slog.Int("slot", slot),
		slog.Int64("user_id", actor.ID),
	)
	return &rec, nil
}

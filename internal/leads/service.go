package leads

import (
	"context"
	"log/slog"

	"github.com/prima-crm/prima-crm/internal/shared"
	"github.com/prima-crm/prima-crm/internal/visibility"
)

// Service reads leads on behalf of an actor, enforcing the visibility filter
// on single-record access as well as on lists.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the leads service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the actor's visible leads, paginated.
func (s *Service) List(ctx context.Context, actor shared.Actor, page, perPage int) ([]Lead, shared.Pagination, error) {
	list, total, err := s.repo.List(ctx, actor, page, perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return list, shared.NewPagination(page, perPage, total), nil
}

// Get loads one lead and verifies the actor may see it. The list scope is
// applied in SQL; the single-record path re-checks with the pure predicate.
func (s *Service) Get(ctx context.Context, actor shared.Actor, id int64) (*Lead, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ownership := visibility.LeadOwnership{SalesID: l.SalesID, ROID: l.ROID, CRMID: l.CRMID}
	team := func(userID int64) []int64 {
		ids, err := s.repo.TeamMembers(ctx, userID)
		if err != nil {
			s.logger.Warn("team lookup failed", "error", err, "user_id", userID)
			return nil
		}
		return ids
	}
	if !visibility.Matches(actor, ownership, team) {
		return nil, ErrForbidden
	}
	return l, nil
}

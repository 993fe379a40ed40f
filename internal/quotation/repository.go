package quotation

import (
	"context"
	"time"
)

// Repository persists the quotation aggregate and its child collections.
// Implementations must honour replace semantics for list children and merge
// semantics for the pricing maps; see the individual method comments.
type Repository interface {
	// WithTx runs fn against a transactional view of the repository. Used by
	// the progression controller so a step mutation and the step-pointer
	// advance commit or roll back together.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	// Get loads the base quotation row. Soft-deleted rows are not found.
	Get(ctx context.Context, id int64) (*Quotation, error)
	// LoadRelations eager-loads the named child collections onto q.
	LoadRelations(ctx context.Context, q *Quotation, rels ...Relation) error
	// Create inserts a new quotation at step 1 and returns its id.
	Create(ctx context.Context, q Quotation) (int64, error)

	// UpdateHeader applies scalar field updates to the quotation row.
	UpdateHeader(ctx context.Context, id int64, updates map[string]any) error
	// AdvanceStep moves the step pointer. The write is guarded by the
	// updated_at the caller loaded; ErrConflict signals a lost update.
	AdvanceStep(ctx context.Context, id int64, step int, updatedBy string, expectedUpdatedAt time.Time) error

	// ReplaceSites swaps the full site list.
	ReplaceSites(ctx context.Context, quotationID int64, sites []Site) error
	// ReplaceHeadcount supersedes every headcount row belonging to the
	// quotation's sites and reconciles the detail lines: a (site, position)
	// pair that survives keeps its detail row and pricing data.
	ReplaceHeadcount(ctx context.Context, quotationID int64, entries []HeadcountEntry) error
	// ReplaceLineItems swaps the full item list of one kind.
	ReplaceLineItems(ctx context.Context, quotationID int64, kind ItemKind, items []LineItem) error
	// ReplaceTrainings swaps the chosen training ids and the note.
	ReplaceTrainings(ctx context.Context, quotationID int64, ids []int64, catatan string) error
	// UpsertVisitInfo writes the visit schedules and bank percentage.
	UpsertVisitInfo(ctx context.Context, quotationID int64, sel TrainingSelection) error

	// UpsertHpp merges the HPP slice into one detail line.
	UpsertHpp(ctx context.Context, detailID int64, hpp HppPayload) error
	// UpsertCoss merges the COSS slice into one detail line.
	UpsertCoss(ctx context.Context, detailID int64, coss CossPayload) error
	// ReplaceTunjangan swaps the allowance list of one detail line. Detail
	// ids absent from a step-11 payload keep their existing lists.
	ReplaceTunjangan(ctx context.Context, detailID int64, entries []TunjanganEntry) error

	// SetApproval stamps one of the sequential approval markers (1..3).
	SetApproval(ctx context.Context, id int64, slot int, at time.Time, updatedBy string) error
}

package quotation

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/prima-crm/prima-crm/internal/masterdata"
	"github.com/prima-crm/prima-crm/internal/shared"
)

// Service is the step progression controller. It owns the read-mutate-advance
// cycle: load the aggregate with the step's relations, dispatch to the step
// mutator, then move the step pointer, all inside one transaction.
type Service struct {
	repo    Repository
	lookups masterdata.Lookups
	logger  *slog.Logger
	check   *validator.Validate
}

// NewService wires the progression controller.
func NewService(repo Repository, lookups masterdata.Lookups, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		lookups: lookups,
		logger:  logger,
		check:   newValidator(),
	}
}

// nextStep computes the pointer candidate after completing a step. Finishing
// the last wizard step parks the quotation at the StepComplete sentinel.
func nextStep(step int) int {
	if step == 11 {
		return StepComplete
	}
	return step + 1
}

// CreateRequest starts a quotation from a converted lead.
type CreateRequest struct {
	LeadsID        int64  `json:"leads_id" validate:"required,gt=0"`
	NamaPerusahaan string `json:"nama_perusahaan" validate:"omitempty,max=255"`
	Kebutuhan      string `json:"kebutuhan" validate:"omitempty,max=255"`
}

// Create opens a new quotation at step 1.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateRequest) (*Quotation, error) {
	if err := checkStruct(s.check, req); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, Quotation{
		LeadsID:           req.LeadsID,
		Step:              1,
		StatusQuotationID: 1,
		IsAktif:           0,
		NamaPerusahaan:    req.NamaPerusahaan,
		Kebutuhan:         req.Kebutuhan,
		CreatedBy:         actor.Name,
		UpdatedBy:         actor.Name,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// GetStep loads a quotation and projects the view-model for one step.
func (s *Service) GetStep(ctx context.Context, id int64, step int) (StepView, error) {
	if _, ok := steps[step]; !ok {
		return nil, ErrUnknownStep
	}
	q, err := s.load(ctx, id, step)
	if err != nil {
		return nil, err
	}
	return ProjectStep(step, q)
}

// GetAdminStep is GetStep restricted to the admin-panel step set.
func (s *Service) GetAdminStep(ctx context.Context, id int64, step int) (StepView, error) {
	if !adminPanelSteps[step] {
		return nil, ErrStepNotAllowed
	}
	return s.GetStep(ctx, id, step)
}

// UpdateStep validates and applies a step payload, then advances the step
// pointer unless edit is set. The pointer only moves forward: it becomes
// max(current, next(step)). Mutation and advance share one transaction and
// an optimistic guard on updated_at catches racing writers.
func (s *Service) UpdateStep(ctx context.Context, actor shared.Actor, id int64, step int, raw json.RawMessage, edit bool) (StepView, error) {
	mut, ok := mutators[step]
	if !ok {
		return nil, ErrUnknownStep
	}

	q, err := s.load(ctx, id, step)
	if err != nil {
		return nil, err
	}

	payload, err := mut.decode(raw)
	if err != nil {
		return nil, err
	}
	deps := mutatorDeps{lookups: s.lookups, validate: s.check}
	if err := mut.validate(ctx, deps, q, payload); err != nil {
		return nil, err
	}

	// candidate 0 in edit mode: GREATEST keeps the pointer where it is.
	candidate := 0
	if !edit {
		candidate = nextStep(step)
	}

	// The guarded pointer update runs first: it fails fast on a concurrent
	// writer and its row lock serialises the child-collection writes below.
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.AdvanceStep(ctx, id, candidate, actor.Name, q.UpdatedAt); err != nil {
			return err
		}
		return mut.apply(ctx, repo, q, payload)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quotation step updated",
		slog.Int64("quotation_id", id),
		slog.Int("step", step),
		slog.Bool("edit", edit),
		slog.String("actor", actor.Name),
	)

	fresh, err := s.load(ctx, id, step)
	if err != nil {
		return nil, err
	}
	return ProjectStep(step, fresh)
}

// UpdateAdminStep applies an admin-panel update. The admin panel edits
// quotations that already progressed past the step, so it always runs in
// edit mode and never moves the pointer.
func (s *Service) UpdateAdminStep(ctx context.Context, actor shared.Actor, id int64, step int, raw json.RawMessage) (StepView, error) {
	if !adminPanelSteps[step] {
		return nil, ErrStepNotAllowed
	}
	return s.UpdateStep(ctx, actor, id, step, raw, true)
}

func (s *Service) load(ctx context.Context, id int64, step int) (*Quotation, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rels, err := StepRelations(step)
	if err != nil {
		return nil, err
	}
	if len(rels) > 0 {
		if err := s.repo.LoadRelations(ctx, q, rels...); err != nil {
			return nil, err
		}
	}
	return q, nil
}

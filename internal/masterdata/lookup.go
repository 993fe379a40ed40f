// Package masterdata exposes existence lookups over the pricing-component
// master tables. The wizard only needs to know whether a referenced id
// exists; full CRUD for these tables lives elsewhere.
package masterdata

import "context"

// Lookups answers existence checks used by step validation.
type Lookups interface {
	// MissingPositions returns the subset of ids with no matching position.
	MissingPositions(ctx context.Context, ids []int64) ([]int64, error)
	// MissingBarang returns the subset of ids with no matching goods record.
	MissingBarang(ctx context.Context, ids []int64) ([]int64, error)
	// MissingTrainings returns the subset of ids with no matching training.
	MissingTrainings(ctx context.Context, ids []int64) ([]int64, error)
	// SalaryRuleExists reports whether the salary rule id exists.
	SalaryRuleExists(ctx context.Context, id int64) (bool, error)
	// ManagementFeeExists reports whether the management fee id exists.
	ManagementFeeExists(ctx context.Context, id int64) (bool, error)
}

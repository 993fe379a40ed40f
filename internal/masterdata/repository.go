package masterdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed Lookups.
func NewRepository(pool *pgxpool.Pool) Lookups {
	return &repository{pool: pool}
}

func (r *repository) missingIDs(ctx context.Context, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT x.id FROM unnest($1::bigint[]) AS x(id)
		WHERE NOT EXISTS (SELECT 1 FROM %s t WHERE t.id = x.id AND t.deleted_at IS NULL)
	`, table)
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("masterdata: check %s: %w", table, err)
	}
	defer rows.Close()

	var missing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}

func (r *repository) MissingPositions(ctx context.Context, ids []int64) ([]int64, error) {
	return r.missingIDs(ctx, "positions", ids)
}

func (r *repository) MissingBarang(ctx context.Context, ids []int64) ([]int64, error) {
	return r.missingIDs(ctx, "barang", ids)
}

func (r *repository) MissingTrainings(ctx context.Context, ids []int64) ([]int64, error) {
	return r.missingIDs(ctx, "trainings", ids)
}

func (r *repository) exists(ctx context.Context, table string, id int64) (bool, error) {
	var found bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND deleted_at IS NULL)", table)
	if err := r.pool.QueryRow(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("masterdata: check %s: %w", table, err)
	}
	return found, nil
}

func (r *repository) SalaryRuleExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "salary_rules", id)
}

func (r *repository) ManagementFeeExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "management_fees", id)
}

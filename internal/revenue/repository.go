package revenue

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prima-crm/prima-crm/internal/shared"
)

// queryTimeout bounds the aggregation scan. The query walks every approved
// quotation's items, so it must stay cancellable instead of running open-ended.
const queryTimeout = 30 * time.Second

// Repository computes the revenue aggregation.
type Repository interface {
	MonthlySummary(ctx context.Context, months int) ([]MonthlyRevenue, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed revenue repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) MonthlySummary(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	if months <= 0 {
		months = 12
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', q.ot1) AS bulan,
			COALESCE(SUM(i.harga * i.jumlah), 0)::bigint AS total
		FROM quotations q
		JOIN quotation_items i ON i.quotation_id = q.id
		WHERE q.deleted_at IS NULL
			AND q.ot1 IS NOT NULL
			AND q.ot1 >= date_trunc('month', NOW()) - ($1 - 1) * INTERVAL '1 month'
		GROUP BY 1
		ORDER BY 1`,
		months,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []MonthlyRevenue{}
	for rows.Next() {
		var month time.Time
		var total int64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, err
		}
		items = append(items, MonthlyRevenue{
			Bulan:        shared.MonthNameID(month.Month()),
			Tahun:        month.Year(),
			Total:        total,
			TotalDisplay: shared.FormatRupiah(total),
		})
	}
	return items, rows.Err()
}

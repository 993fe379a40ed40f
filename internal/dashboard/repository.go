package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prima-crm/prima-crm/internal/shared"
	"github.com/prima-crm/prima-crm/internal/visibility"
)

// Repository reads the dashboard rows and records approval audit entries.
type Repository interface {
	// List returns the flattened rows matching the base filter, the actor's
	// visibility scope and the tipe bucket.
	List(ctx context.Context, actor shared.Actor, tipe Tipe) ([]Item, error)
	// RecordApproval writes the audit row for one approval marker.
	RecordApproval(ctx context.Context, rec ApprovalRecord) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed dashboard repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, actor shared.Actor, tipe Tipe) ([]Item, error) {
	conds := []string{"q.deleted_at IS NULL", "q.is_aktif = 0"}
	var args []any
	argPos := 1

	scope, scopeArgs, argPos := visibility.ScopeSQL(actor, argPos)
	if scope != "" {
		conds = append(conds, scope)
		args = append(args, scopeArgs...)
	}
	bucket, bucketArgs, _ := BucketSQL(tipe, ResolveApprover(actor.RoleID), argPos)
	conds = append(conds, bucket)
	args = append(args, bucketArgs...)

	query := `
		SELECT q.id, q.leads_id, q.nama_perusahaan, q.kebutuhan, q.step,
			q.status_quotation_id, COALESCE(sq.nama, ''), q.jenis_kontrak, q.top,
			q.ot1, q.ot2, q.ot3, q.created_by, q.created_at,
			COALESCE(sites.names, '{}'), COALESCE(items.total, 0)
		FROM quotations q
		JOIN leads l ON l.id = q.leads_id AND l.deleted_at IS NULL
		LEFT JOIN status_quotations sq ON sq.id = q.status_quotation_id
		LEFT JOIN LATERAL (
			SELECT array_agg(s.nama_site ORDER BY s.id) AS names
			FROM quotation_sites s WHERE s.quotation_id = q.id
		) sites ON TRUE
		LEFT JOIN LATERAL (
			SELECT SUM(i.harga * i.jumlah)::bigint AS total
			FROM quotation_items i WHERE i.quotation_id = q.id
		) items ON TRUE
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY q.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		var createdAt time.Time
		var total int64
		err := rows.Scan(
			&it.ID, &it.LeadsID, &it.NamaPerusahaan, &it.Kebutuhan, &it.Step,
			&it.StatusQuotationID, &it.StatusName, &it.JenisKontrak, &it.Top,
			&it.Ot1, &it.Ot2, &it.Ot3, &it.CreatedBy, &createdAt,
			&it.NamaSites, &total,
		)
		if err != nil {
			return nil, err
		}
		if it.NamaSites == nil {
			it.NamaSites = []string{}
		}
		it.TanggalDibuat = shared.FormatDateID(createdAt)
		it.TotalHarga = shared.FormatRupiah(total)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) RecordApproval(ctx context.Context, rec ApprovalRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO quotation_approvals (id, quotation_id, slot, user_id, role_id, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.QuotationID, rec.Slot, rec.UserID, rec.RoleID, rec.ApprovedAt,
	)
	return err
}

package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prima-crm/prima-crm/internal/shared"
	"github.com/prima-crm/prima-crm/internal/visibility"
)

// Repository reads leads within an actor's visibility scope.
type Repository interface {
	List(ctx context.Context, actor shared.Actor, page, perPage int) ([]Lead, int, error)
	Get(ctx context.Context, id int64) (*Lead, error)
	// TeamMembers returns the user ids sharing the given user's sales team.
	TeamMembers(ctx context.Context, userID int64) ([]int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed leads repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const leadColumns = `id, nama_perusahaan, nama_pic, email, telepon, alamat,
	sales_id, ro_id, crm_id, status_leads_id,
	created_by, updated_by, created_at, updated_at, deleted_at`

func scanLead(row pgx.Row) (*Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.NamaPerusahaan, &l.NamaPIC, &l.Email, &l.Telepon, &l.Alamat,
		&l.SalesID, &l.ROID, &l.CRMID, &l.StatusLeadsID,
		&l.CreatedBy, &l.UpdatedBy, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, actor shared.Actor, page, perPage int) ([]Lead, int, error) {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}

	conds := []string{"l.deleted_at IS NULL"}
	var args []any
	argPos := 1
	scope, scopeArgs, argPos := visibility.ScopeSQL(actor, argPos)
	if scope != "" {
		conds = append(conds, scope)
		args = append(args, scopeArgs...)
	}
	where := strings.Join(conds, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM leads l WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM leads l WHERE %s ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d`,
		prefixColumns("l", leadColumns), where, argPos, argPos+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *l)
	}
	return list, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1 AND deleted_at IS NULL`, leadColumns)
	return scanLead(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) TeamMembers(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.user_id FROM sales_team_members m
		WHERE m.team_id = (SELECT team_id FROM sales_team_members WHERE user_id = $1)`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

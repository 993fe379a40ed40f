package quotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/prima-crm/prima-crm/internal/platform/db"
)

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed quotation repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const quotationColumns = `id, leads_id, step, status_quotation_id, is_aktif, jenis_kontrak, top,
	nama_perusahaan, kebutuhan, penagihan, persen_insentif, salary_rule_id, management_fee_id,
	persen_management_fee, ot1, ot2, ot3, created_by, updated_by, created_at, updated_at, deleted_at`

func scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	err := row.Scan(
		&q.ID, &q.LeadsID, &q.Step, &q.StatusQuotationID, &q.IsAktif, &q.JenisKontrak, &q.Top,
		&q.NamaPerusahaan, &q.Kebutuhan, &q.Penagihan, &q.PersenInsentif, &q.SalaryRuleID,
		&q.ManagementFeeID, &q.PersenManagementFee, &q.Ot1, &q.Ot2, &q.Ot3,
		&q.CreatedBy, &q.UpdatedBy, &q.CreatedAt, &q.UpdatedAt, &q.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE id = $1 AND deleted_at IS NULL`, quotationColumns)
	return scanQuotation(r.db.QueryRow(ctx, query, id))
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotations (leads_id, step, status_quotation_id, is_aktif, nama_perusahaan,
			kebutuhan, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id
	`, q.LeadsID, q.Step, q.StatusQuotationID, q.IsAktif, q.NamaPerusahaan, q.Kebutuhan,
		q.CreatedBy, q.UpdatedBy).Scan(&id)
	return id, err
}

// headerColumns whitelists the fields UpdateHeader may touch.
var headerColumns = map[string]bool{
	"jenis_kontrak": true, "top": true, "kebutuhan": true, "nama_perusahaan": true,
	"salary_rule_id": true, "management_fee_id": true, "persen_management_fee": true,
	"penagihan": true, "persen_insentif": true, "updated_by": true,
}

func (r *repository) UpdateHeader(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE quotations SET updated_at = NOW()"
	var args []any
	argPos := 1
	for col, val := range updates {
		if !headerColumns[col] {
			return fmt.Errorf("quotation: unexpected header column %q", col)
		}
		query += fmt.Sprintf(", %s = $%d", col, argPos)
		args = append(args, val)
		argPos++
	}
	query += fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) AdvanceStep(ctx context.Context, id int64, step int, updatedBy string, expectedUpdatedAt time.Time) error {
	// GREATEST keeps the pointer monotonic; the updated_at guard turns a
	// racing writer into an explicit conflict instead of a lost update.
	tag, err := r.db.Exec(ctx, `
		UPDATE quotations
		SET step = GREATEST(step, $2), updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND updated_at = $4
	`, id, step, updatedBy, expectedUpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (r *repository) SetApproval(ctx context.Context, id int64, slot int, at time.Time, updatedBy string) error {
	if slot < 1 || slot > 3 {
		return fmt.Errorf("quotation: approval slot %d out of range", slot)
	}
	query := fmt.Sprintf(`
		UPDATE quotations SET ot%d = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, slot)
	tag, err := r.db.Exec(ctx, query, id, at, updatedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ReplaceSites(ctx context.Context, quotationID int64, sites []Site) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quotation_sites WHERE quotation_id = $1`, quotationID); err != nil {
		return err
	}
	for _, s := range sites {
		_, err := r.db.Exec(ctx, `
			INSERT INTO quotation_sites (quotation_id, nama_site, provinsi, kota, umk_id)
			VALUES ($1, $2, $3, $4, $5)
		`, quotationID, s.NamaSite, s.Provinsi, s.Kota, s.UmkID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ReplaceHeadcount(ctx context.Context, quotationID int64, entries []HeadcountEntry) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM quotation_headcounts
		WHERE quotation_site_id IN (SELECT id FROM quotation_sites WHERE quotation_id = $1)
	`, quotationID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		_, err := r.db.Exec(ctx, `
			INSERT INTO quotation_headcounts (quotation_site_id, position_id, jumlah_hc, jabatan_kebutuhan, nama_site)
			VALUES ($1, $2, $3, $4, $5)
		`, e.QuotationSiteID, e.PositionID, e.JumlahHC, e.JabatanKebutuhan, e.NamaSite)
		if err != nil {
			return err
		}
	}
	return r.reconcileDetails(ctx, quotationID, entries)
}

// reconcileDetails keeps detail lines (and their pricing data) for
// (site, position) pairs that survive a headcount replace, inserts lines for
// new pairs and drops lines for removed ones.
func (r *repository) reconcileDetails(ctx context.Context, quotationID int64, entries []HeadcountEntry) error {
	siteIDs := make([]int64, len(entries))
	positionIDs := make([]int64, len(entries))
	counts := make([]int, len(entries))
	for i, e := range entries {
		siteIDs[i] = e.QuotationSiteID
		positionIDs[i] = e.PositionID
		counts[i] = e.JumlahHC
	}

	_, err := r.db.Exec(ctx, `
		DELETE FROM quotation_details d
		WHERE d.quotation_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM unnest($2::bigint[], $3::bigint[]) AS n(site_id, position_id)
			WHERE n.site_id = d.quotation_site_id AND n.position_id = d.position_id
		  )
	`, quotationID, siteIDs, positionIDs)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO quotation_details (quotation_id, quotation_site_id, position_id, jumlah_hc)
		SELECT $1, n.site_id, n.position_id, n.jumlah_hc
		FROM unnest($2::bigint[], $3::bigint[], $4::int[]) AS n(site_id, position_id, jumlah_hc)
		ON CONFLICT (quotation_site_id, position_id)
		DO UPDATE SET jumlah_hc = EXCLUDED.jumlah_hc
	`, quotationID, siteIDs, positionIDs, counts)
	return err
}

func (r *repository) ReplaceLineItems(ctx context.Context, quotationID int64, kind ItemKind, items []LineItem) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1 AND kind = $2`, quotationID, kind)
	if err != nil {
		return err
	}
	for _, it := range items {
		_, err := r.db.Exec(ctx, `
			INSERT INTO quotation_items (quotation_id, kind, quotation_detail_id, barang_id, jumlah, harga, masa_pakai)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, quotationID, kind, it.QuotationDetailID, it.BarangID, it.Jumlah, it.Harga, it.MasaPakai)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ReplaceTrainings(ctx context.Context, quotationID int64, ids []int64, catatan string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quotation_trainings WHERE quotation_id = $1`, quotationID); err != nil {
		return err
	}
	for _, trainingID := range ids {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO quotation_trainings (quotation_id, training_id) VALUES ($1, $2)
		`, quotationID, trainingID); err != nil {
			return err
		}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO quotation_training_info (quotation_id, catatan_training)
		VALUES ($1, $2)
		ON CONFLICT (quotation_id) DO UPDATE SET catatan_training = EXCLUDED.catatan_training
	`, quotationID, catatan)
	return err
}

func (r *repository) UpsertVisitInfo(ctx context.Context, quotationID int64, sel TrainingSelection) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO quotation_training_info (quotation_id,
			jumlah_kunjungan_operasional, bulan_tahun_kunjungan_operasional, keterangan_kunjungan_operasional,
			jumlah_kunjungan_tim_crm, bulan_tahun_kunjungan_tim_crm, keterangan_kunjungan_tim_crm,
			persen_bunga_bank)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (quotation_id) DO UPDATE SET
			jumlah_kunjungan_operasional = EXCLUDED.jumlah_kunjungan_operasional,
			bulan_tahun_kunjungan_operasional = EXCLUDED.bulan_tahun_kunjungan_operasional,
			keterangan_kunjungan_operasional = EXCLUDED.keterangan_kunjungan_operasional,
			jumlah_kunjungan_tim_crm = EXCLUDED.jumlah_kunjungan_tim_crm,
			bulan_tahun_kunjungan_tim_crm = EXCLUDED.bulan_tahun_kunjungan_tim_crm,
			keterangan_kunjungan_tim_crm = EXCLUDED.keterangan_kunjungan_tim_crm,
			persen_bunga_bank = EXCLUDED.persen_bunga_bank
	`, quotationID,
		sel.JumlahKunjunganOperasional, sel.BulanTahunKunjunganOperasional, sel.KeteranganKunjunganOperasional,
		sel.JumlahKunjunganTimCrm, sel.BulanTahunKunjunganTimCrm, sel.KeteranganKunjunganTimCrm,
		sel.PersenBungaBank)
	return err
}

func (r *repository) UpsertHpp(ctx context.Context, detailID int64, hpp HppPayload) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotation_details SET thr = $2, kompensasi = $3, persen_insentif = $4
		WHERE id = $1
	`, detailID, hpp.Thr, hpp.Kompensasi, hpp.PersenInsentif)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpsertCoss(ctx context.Context, detailID int64, coss CossPayload) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotation_details
		SET provisi_seragam = $2, provisi_peralatan = $3, provisi_chemical = $4, provisi_ohc = $5
		WHERE id = $1
	`, detailID, coss.ProvisiSeragam, coss.ProvisiPeralatan, coss.ProvisiChemical, coss.ProvisiOhc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ReplaceTunjangan(ctx context.Context, detailID int64, entries []TunjanganEntry) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM quotation_tunjangan WHERE quotation_detail_id = $1`, detailID); err != nil {
		return err
	}
	for _, t := range entries {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO quotation_tunjangan (quotation_detail_id, nama_tunjangan, nominal)
			VALUES ($1, $2, $3)
		`, detailID, t.NamaTunjangan, t.Nominal); err != nil {
			return err
		}
	}
	return nil
}

// LoadRelations eager-loads the requested child collections. On the pool the
// loads run concurrently; a transaction connection serves one query at a
// time, so inside WithTx they run sequentially.
func (r *repository) LoadRelations(ctx context.Context, q *Quotation, rels ...Relation) error {
	// tunjangan rows attach to detail lines, so details load up front.
	for _, rel := range rels {
		if rel == RelDetails || rel == RelTunjangan {
			if err := r.loadDetails(ctx, q); err != nil {
				return err
			}
			break
		}
	}

	loaders := make([]func(context.Context) error, 0, len(rels))
	for _, rel := range rels {
		switch rel {
		case RelSites:
			loaders = append(loaders, func(ctx context.Context) error { return r.loadSites(ctx, q) })
		case RelDetails:
			// loaded above
		case RelHeadcount:
			loaders = append(loaders, func(ctx context.Context) error { return r.loadHeadcount(ctx, q) })
		case RelKaporlap:
			loaders = append(loaders, r.itemLoader(q, ItemKaporlap, &q.Kaporlap))
		case RelDevices:
			loaders = append(loaders, r.itemLoader(q, ItemDevice, &q.Devices))
		case RelChemical:
			loaders = append(loaders, r.itemLoader(q, ItemChemical, &q.Chemical))
		case RelOhc:
			loaders = append(loaders, r.itemLoader(q, ItemOhc, &q.Ohc))
		case RelTraining:
			loaders = append(loaders, func(ctx context.Context) error { return r.loadTraining(ctx, q) })
		case RelTunjangan:
			loaders = append(loaders, func(ctx context.Context) error { return r.loadTunjangan(ctx, q) })
		default:
			return fmt.Errorf("quotation: unknown relation %q", rel)
		}
	}

	if _, pooled := r.db.(*pgxpool.Pool); !pooled {
		for _, load := range loaders {
			if err := load(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, load := range loaders {
		g.Go(func() error { return load(gctx) })
	}
	return g.Wait()
}

func (r *repository) itemLoader(q *Quotation, kind ItemKind, dest *[]LineItem) func(context.Context) error {
	return func(ctx context.Context) error {
		items, err := r.loadItems(ctx, q.ID, kind)
		if err != nil {
			return err
		}
		*dest = items
		return nil
	}
}

func (r *repository) loadSites(ctx context.Context, q *Quotation) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, quotation_id, nama_site, provinsi, kota, umk_id
		FROM quotation_sites WHERE quotation_id = $1 ORDER BY id
	`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	q.Sites = q.Sites[:0]
	for rows.Next() {
		var s Site
		if err := rows.Scan(&s.ID, &s.QuotationID, &s.NamaSite, &s.Provinsi, &s.Kota, &s.UmkID); err != nil {
			return err
		}
		q.Sites = append(q.Sites, s)
	}
	return rows.Err()
}

func (r *repository) loadDetails(ctx context.Context, q *Quotation) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, quotation_id, quotation_site_id, position_id, jumlah_hc,
			thr, kompensasi, persen_insentif,
			provisi_seragam, provisi_peralatan, provisi_chemical, provisi_ohc
		FROM quotation_details WHERE quotation_id = $1 ORDER BY id
	`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	q.Details = q.Details[:0]
	for rows.Next() {
		var d Detail
		err := rows.Scan(&d.ID, &d.QuotationID, &d.QuotationSiteID, &d.PositionID, &d.JumlahHC,
			&d.Thr, &d.Kompensasi, &d.PersenInsentif,
			&d.ProvisiSeragam, &d.ProvisiPeralatan, &d.ProvisiChemical, &d.ProvisiOhc)
		if err != nil {
			return err
		}
		q.Details = append(q.Details, d)
	}
	return rows.Err()
}

func (r *repository) loadHeadcount(ctx context.Context, q *Quotation) error {
	rows, err := r.db.Query(ctx, `
		SELECT h.id, h.quotation_site_id, h.position_id, h.jumlah_hc, h.jabatan_kebutuhan, h.nama_site
		FROM quotation_headcounts h
		JOIN quotation_sites s ON s.id = h.quotation_site_id
		WHERE s.quotation_id = $1 ORDER BY h.id
	`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	q.Headcount = q.Headcount[:0]
	for rows.Next() {
		var e HeadcountEntry
		if err := rows.Scan(&e.ID, &e.QuotationSiteID, &e.PositionID, &e.JumlahHC, &e.JabatanKebutuhan, &e.NamaSite); err != nil {
			return err
		}
		q.Headcount = append(q.Headcount, e)
	}
	return rows.Err()
}

func (r *repository) loadItems(ctx context.Context, quotationID int64, kind ItemKind) ([]LineItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, quotation_id, kind, quotation_detail_id, barang_id, jumlah, harga, masa_pakai
		FROM quotation_items WHERE quotation_id = $1 AND kind = $2 ORDER BY id
	`, quotationID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.Kind, &it.QuotationDetailID, &it.BarangID, &it.Jumlah, &it.Harga, &it.MasaPakai); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) loadTraining(ctx context.Context, q *Quotation) error {
	sel := TrainingSelection{QuotationID: q.ID}

	err := r.db.QueryRow(ctx, `
		SELECT catatan_training,
			jumlah_kunjungan_operasional, bulan_tahun_kunjungan_operasional, keterangan_kunjungan_operasional,
			jumlah_kunjungan_tim_crm, bulan_tahun_kunjungan_tim_crm, keterangan_kunjungan_tim_crm,
			persen_bunga_bank
		FROM quotation_training_info WHERE quotation_id = $1
	`, q.ID).Scan(&sel.CatatanTraining,
		&sel.JumlahKunjunganOperasional, &sel.BulanTahunKunjunganOperasional, &sel.KeteranganKunjunganOperasional,
		&sel.JumlahKunjunganTimCrm, &sel.BulanTahunKunjunganTimCrm, &sel.KeteranganKunjunganTimCrm,
		&sel.PersenBungaBank)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	rows, err := r.db.Query(ctx, `
		SELECT training_id FROM quotation_trainings WHERE quotation_id = $1 ORDER BY training_id
	`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		sel.TrainingIDs = append(sel.TrainingIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	q.Training = &sel
	return nil
}

func (r *repository) loadTunjangan(ctx context.Context, q *Quotation) error {
	if len(q.Details) == 0 {
		if err := r.loadDetails(ctx, q); err != nil {
			return err
		}
	}
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.quotation_detail_id, t.nama_tunjangan, t.nominal
		FROM quotation_tunjangan t
		JOIN quotation_details d ON d.id = t.quotation_detail_id
		WHERE d.quotation_id = $1 ORDER BY t.id
	`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byDetail := make(map[int64][]TunjanganEntry)
	for rows.Next() {
		var t TunjanganEntry
		if err := rows.Scan(&t.ID, &t.QuotationDetailID, &t.NamaTunjangan, &t.Nominal); err != nil {
			return err
		}
		byDetail[t.QuotationDetailID] = append(byDetail[t.QuotationDetailID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range q.Details {
		q.Details[i].Tunjangan = byDetail[q.Details[i].ID]
	}
	return nil
}

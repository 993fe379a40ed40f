package quotation

import "time"

// StepComplete is the sentinel step value meaning the wizard is finished and
// the quotation sits in the approval pipeline.
const StepComplete = 100

// StatusSubmitted is the status_quotation_id of a quotation submitted for
// approval.
const StatusSubmitted int64 = 2

// TopLongTerm is the terms-of-payment label that routes a quotation through
// approval tiers 2 and 3. Shorter terms stop after tier 1.
const TopLongTerm = "Lebih Dari 7 Hari"

// Quotation is the aggregate root moving through the step wizard and the
// approval pipeline. Step only ever moves forward (monotonic max) unless the
// caller is in edit mode; ot1..ot3 are the sequential approval markers.
type Quotation struct {
	ID                int64      `json:"id" db:"id"`
	LeadsID           int64      `json:"leads_id" db:"leads_id"`
	Step              int        `json:"step" db:"step"`
	StatusQuotationID int64      `json:"status_quotation_id" db:"status_quotation_id"`
	IsAktif           int        `json:"is_aktif" db:"is_aktif"`
	JenisKontrak      string     `json:"jenis_kontrak" db:"jenis_kontrak"`
	Top               string     `json:"top" db:"top"`
	NamaPerusahaan    string     `json:"nama_perusahaan" db:"nama_perusahaan"`
	Kebutuhan         string     `json:"kebutuhan" db:"kebutuhan"`
	Penagihan         string     `json:"penagihan" db:"penagihan"`
	PersenInsentif    *float64   `json:"persen_insentif,omitempty" db:"persen_insentif"`
	SalaryRuleID      *int64     `json:"salary_rule_id,omitempty" db:"salary_rule_id"`
	ManagementFeeID   *int64     `json:"management_fee_id,omitempty" db:"management_fee_id"`
	PersenManagementFee *float64 `json:"persen_management_fee,omitempty" db:"persen_management_fee"`
	Ot1               *time.Time `json:"ot1,omitempty" db:"ot1"`
	Ot2               *time.Time `json:"ot2,omitempty" db:"ot2"`
	Ot3               *time.Time `json:"ot3,omitempty" db:"ot3"`
	CreatedBy         string     `json:"created_by" db:"created_by"`
	UpdatedBy         string     `json:"updated_by" db:"updated_by"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	Sites     []Site            `json:"sites,omitempty" db:"-"`
	Details   []Detail          `json:"details,omitempty" db:"-"`
	Headcount []HeadcountEntry  `json:"headcount,omitempty" db:"-"`
	Kaporlap  []LineItem        `json:"kaporlaps,omitempty" db:"-"`
	Devices   []LineItem        `json:"devices,omitempty" db:"-"`
	Chemical  []LineItem        `json:"chemicals,omitempty" db:"-"`
	Ohc       []LineItem        `json:"ohcs,omitempty" db:"-"`
	Training  *TrainingSelection `json:"training,omitempty" db:"-"`
}

// Site is one client location covered by the quotation.
type Site struct {
	ID          int64  `json:"id" db:"id"`
	QuotationID int64  `json:"quotation_id" db:"quotation_id"`
	NamaSite    string `json:"nama_site" db:"nama_site"`
	Provinsi    string `json:"provinsi" db:"provinsi"`
	Kota        string `json:"kota" db:"kota"`
	UmkID       *int64 `json:"umk_id,omitempty" db:"umk_id"`
}

// Detail is one site×position line. It is regenerated whenever headcount is
// replaced and is the key for hpp/coss/tunjangan pricing data and kaporlap
// items.
type Detail struct {
	ID              int64    `json:"id" db:"id"`
	QuotationID     int64    `json:"quotation_id" db:"quotation_id"`
	QuotationSiteID int64    `json:"quotation_site_id" db:"quotation_site_id"`
	PositionID      int64    `json:"position_id" db:"position_id"`
	JumlahHC        int      `json:"jumlah_hc" db:"jumlah_hc"`
	Thr             *float64 `json:"thr,omitempty" db:"thr"`
	Kompensasi      *float64 `json:"kompensasi,omitempty" db:"kompensasi"`
	PersenInsentif  *float64 `json:"persen_insentif,omitempty" db:"persen_insentif"`
	ProvisiSeragam   *float64 `json:"provisi_seragam,omitempty" db:"provisi_seragam"`
	ProvisiPeralatan *float64 `json:"provisi_peralatan,omitempty" db:"provisi_peralatan"`
	ProvisiChemical  *float64 `json:"provisi_chemical,omitempty" db:"provisi_chemical"`
	ProvisiOhc       *float64 `json:"provisi_ohc,omitempty" db:"provisi_ohc"`

	Tunjangan []TunjanganEntry `json:"tunjangan,omitempty" db:"-"`
}

// HeadcountEntry is the requested headcount for one site and position.
// Keyed by (site, position); a headcount update supersedes all existing rows
// for the quotation's sites.
type HeadcountEntry struct {
	ID              int64  `json:"id" db:"id"`
	QuotationSiteID int64  `json:"quotation_site_id" db:"quotation_site_id"`
	PositionID      int64  `json:"position_id" db:"position_id"`
	JumlahHC        int    `json:"jumlah_hc" db:"jumlah_hc"`
	JabatanKebutuhan string `json:"jabatan_kebutuhan" db:"jabatan_kebutuhan"`
	NamaSite        string `json:"nama_site" db:"nama_site"`
}

// ItemKind discriminates the four flat item collections.
type ItemKind string

const (
	ItemKaporlap ItemKind = "kaporlap"
	ItemDevice   ItemKind = "device"
	ItemChemical ItemKind = "chemical"
	ItemOhc      ItemKind = "ohc"
)

// LineItem is a priced goods row scoped to the quotation. Kaporlap rows also
// carry the detail line they belong to.
type LineItem struct {
	ID                int64    `json:"id" db:"id"`
	QuotationID       int64    `json:"quotation_id" db:"quotation_id"`
	Kind              ItemKind `json:"-" db:"kind"`
	QuotationDetailID *int64   `json:"quotation_detail_id,omitempty" db:"quotation_detail_id"`
	BarangID          int64    `json:"barang_id" db:"barang_id"`
	Jumlah            int      `json:"jumlah" db:"jumlah"`
	Harga             float64  `json:"harga" db:"harga"`
	MasaPakai         int      `json:"masa_pakai" db:"masa_pakai"`
}

// TrainingSelection holds the chosen trainings plus the visit schedules and
// the bank interest percentage collected on the same wizard pages.
type TrainingSelection struct {
	QuotationID     int64   `json:"quotation_id" db:"quotation_id"`
	TrainingIDs     []int64 `json:"trainings" db:"-"`
	CatatanTraining string  `json:"catatan_training" db:"catatan_training"`

	JumlahKunjunganOperasional     int    `json:"jumlah_kunjungan_operasional" db:"jumlah_kunjungan_operasional"`
	BulanTahunKunjunganOperasional string `json:"bulan_tahun_kunjungan_operasional" db:"bulan_tahun_kunjungan_operasional"`
	KeteranganKunjunganOperasional string `json:"keterangan_kunjungan_operasional" db:"keterangan_kunjungan_operasional"`
	JumlahKunjunganTimCrm          int    `json:"jumlah_kunjungan_tim_crm" db:"jumlah_kunjungan_tim_crm"`
	BulanTahunKunjunganTimCrm      string `json:"bulan_tahun_kunjungan_tim_crm" db:"bulan_tahun_kunjungan_tim_crm"`
	KeteranganKunjunganTimCrm      string `json:"keterangan_kunjungan_tim_crm" db:"keterangan_kunjungan_tim_crm"`

	PersenBungaBank float64 `json:"persen_bunga_bank" db:"persen_bunga_bank"`
}

// TunjanganEntry is one allowance row attached to a detail line. The list is
// replaced wholesale per detail id when pricing data comes in.
type TunjanganEntry struct {
	ID                int64   `json:"id" db:"id"`
	QuotationDetailID int64   `json:"quotation_detail_id" db:"quotation_detail_id"`
	NamaTunjangan     string  `json:"nama_tunjangan" db:"nama_tunjangan"`
	Nominal           float64 `json:"nominal" db:"nominal"`
}

package quotation

// Payloads for the step wizard. Field names are part of the wire contract
// and must not be renamed.

// Step1Payload carries the contract basics.
type Step1Payload struct {
	JenisKontrak   string `json:"jenis_kontrak" validate:"required,max=100"`
	Top            string `json:"top" validate:"omitempty,max=100"`
	Kebutuhan      string `json:"kebutuhan" validate:"omitempty,max=255"`
	NamaPerusahaan string `json:"nama_perusahaan" validate:"omitempty,max=255"`
}

// SitePayload is one site row in a step-2 update.
type SitePayload struct {
	NamaSite string `json:"nama_site" validate:"required,max=255"`
	Provinsi string `json:"provinsi" validate:"omitempty,max=100"`
	Kota     string `json:"kota" validate:"omitempty,max=100"`
	UmkID    *int64 `json:"umk_id,omitempty" validate:"omitempty,gt=0"`
}

// Step2Payload replaces the quotation's site list.
type Step2Payload struct {
	Sites []SitePayload `json:"sites" validate:"required,min=1,dive"`
}

// HeadcountPayload is one headcount row in a step-3 update.
type HeadcountPayload struct {
	QuotationSiteID  int64  `json:"quotation_site_id" validate:"required,gt=0"`
	PositionID       int64  `json:"position_id" validate:"required,gt=0"`
	JumlahHC         int    `json:"jumlah_hc" validate:"required,gt=0"`
	JabatanKebutuhan string `json:"jabatan_kebutuhan" validate:"omitempty,max=255"`
}

// Step3Payload replaces all headcount rows for the quotation's sites.
type Step3Payload struct {
	Headcount []HeadcountPayload `json:"headcount" validate:"required,min=1,dive"`
}

// Step4Payload sets the salary rule and management fee.
type Step4Payload struct {
	SalaryRuleID        int64    `json:"salary_rule_id" validate:"required,gt=0"`
	ManagementFeeID     int64    `json:"management_fee_id" validate:"required,gt=0"`
	PersenManagementFee *float64 `json:"persen_management_fee,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Step5Payload replaces the training selection.
type Step5Payload struct {
	Trainings       []int64 `json:"trainings" validate:"required,min=1,dive,gt=0"`
	CatatanTraining string  `json:"catatan_training" validate:"omitempty,max=500"`
}

// Step6Payload sets the visit schedules and the bank interest percentage.
type Step6Payload struct {
	JumlahKunjunganOperasional     int     `json:"jumlah_kunjungan_operasional" validate:"gte=0"`
	BulanTahunKunjunganOperasional string  `json:"bulan_tahun_kunjungan_operasional" validate:"omitempty,max=50"`
	KeteranganKunjunganOperasional string  `json:"keterangan_kunjungan_operasional" validate:"omitempty,max=255"`
	JumlahKunjunganTimCrm          int     `json:"jumlah_kunjungan_tim_crm" validate:"gte=0"`
	BulanTahunKunjunganTimCrm      string  `json:"bulan_tahun_kunjungan_tim_crm" validate:"omitempty,max=50"`
	KeteranganKunjunganTimCrm      string  `json:"keterangan_kunjungan_tim_crm" validate:"omitempty,max=255"`
	PersenBungaBank                float64 `json:"persen_bunga_bank" validate:"gte=0,lte=100"`
}

// ItemPayload is one goods row for the kaporlap/devices/chemical/ohc steps.
type ItemPayload struct {
	BarangID          int64   `json:"barang_id" validate:"required,gt=0"`
	QuotationDetailID *int64  `json:"quotation_detail_id,omitempty" validate:"omitempty,gt=0"`
	Jumlah            int     `json:"jumlah" validate:"required,gt=0"`
	Harga             float64 `json:"harga" validate:"gte=0"`
	MasaPakai         int     `json:"masa_pakai" validate:"gte=0"`
}

// Step7Payload replaces the kaporlap list. Each row is tied to a detail line.
type Step7Payload struct {
	Kaporlaps []ItemPayload `json:"kaporlaps" validate:"required,min=1,dive"`
}

// Step8Payload replaces the devices list.
type Step8Payload struct {
	Devices []ItemPayload `json:"devices" validate:"required,min=1,dive"`
}

// Step9Payload replaces the chemicals list.
type Step9Payload struct {
	Chemicals []ItemPayload `json:"chemicals" validate:"required,min=1,dive"`
}

// Step10Payload replaces the OHC list.
type Step10Payload struct {
	Ohcs []ItemPayload `json:"ohcs" validate:"required,min=1,dive"`
}

// HppPayload is the cost-basis slice for one detail line.
type HppPayload struct {
	Thr            float64 `json:"thr" validate:"gte=0"`
	Kompensasi     float64 `json:"kompensasi" validate:"gte=0"`
	PersenInsentif float64 `json:"persen_insentif" validate:"gte=0,lte=100"`
}

// CossPayload is the provision slice for one detail line.
type CossPayload struct {
	ProvisiSeragam   float64 `json:"provisi_seragam" validate:"gte=0"`
	ProvisiPeralatan float64 `json:"provisi_peralatan" validate:"gte=0"`
	ProvisiChemical  float64 `json:"provisi_chemical" validate:"gte=0"`
	ProvisiOhc       float64 `json:"provisi_ohc" validate:"gte=0"`
}

// TunjanganPayload is one allowance row.
type TunjanganPayload struct {
	NamaTunjangan string  `json:"nama_tunjangan" validate:"required,max=255"`
	Nominal       float64 `json:"nominal" validate:"gte=0"`
}

// Step11Payload carries the harga-jual pricing data. The three maps are
// keyed by quotation_detail_id and merge into existing rows: keys absent
// from the payload stay untouched.
type Step11Payload struct {
	Penagihan      string                       `json:"penagihan" validate:"omitempty,max=100"`
	PersenInsentif *float64                     `json:"persen_insentif,omitempty" validate:"omitempty,gte=0,lte=100"`
	HppData        map[int64]HppPayload         `json:"hpp_data" validate:"omitempty,dive"`
	CossData       map[int64]CossPayload        `json:"coss_data" validate:"omitempty,dive"`
	TunjanganData  map[int64][]TunjanganPayload `json:"tunjangan_data" validate:"omitempty,dive,dive"`
}

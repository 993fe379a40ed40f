package dashboard

import "time"

// Item is one flattened dashboard row: the quotation merged with its status
// name, site names and display-formatted fields.
type Item struct {
	ID                int64      `json:"id"`
	LeadsID           int64      `json:"leads_id"`
	NamaPerusahaan    string     `json:"nama_perusahaan"`
	Kebutuhan         string     `json:"kebutuhan"`
	Step              int        `json:"step"`
	StatusQuotationID int64      `json:"status_quotation_id"`
	StatusName        string     `json:"status_name"`
	JenisKontrak      string     `json:"jenis_kontrak"`
	Top               string     `json:"top"`
	Ot1               *time.Time `json:"ot1,omitempty"`
	Ot2               *time.Time `json:"ot2,omitempty"`
	Ot3               *time.Time `json:"ot3,omitempty"`
	NamaSites         []string   `json:"nama_sites"`
	CreatedBy         string     `json:"created_by"`
	TanggalDibuat     string     `json:"tanggal_dibuat"`
	TotalHarga        string     `json:"total_harga"`
}

// ApprovalRecord is the audit row written alongside every approval marker.
type ApprovalRecord struct {
	ID          string    `json:"id"`
	QuotationID int64     `json:"quotation_id"`
	Slot        int       `json:"slot"`
	UserID      int64     `json:"user_id"`
	RoleID      int64     `json:"role_id"`
	ApprovedAt  time.Time `json:"approved_at"`
}

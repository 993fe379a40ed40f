package leads

import "time"

// Lead is a prospect owned by one sales user and optionally assigned RO and
// CRM officers. Quotations are created from converted leads.
type Lead struct {
	ID             int64      `json:"id" db:"id"`
	NamaPerusahaan string     `json:"nama_perusahaan" db:"nama_perusahaan"`
	NamaPIC        string     `json:"nama_pic" db:"nama_pic"`
	Email          string     `json:"email" db:"email"`
	Telepon        string     `json:"telepon" db:"telepon"`
	Alamat         string     `json:"alamat" db:"alamat"`
	SalesID        int64      `json:"sales_id" db:"sales_id"`
	ROID           int64      `json:"ro_id" db:"ro_id"`
	CRMID          int64      `json:"crm_id" db:"crm_id"`
	StatusLeadsID  int64      `json:"status_leads_id" db:"status_leads_id"`
	CreatedBy      string     `json:"created_by" db:"created_by"`
	UpdatedBy      string     `json:"updated_by" db:"updated_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

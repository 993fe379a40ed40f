package revenue

import "time"

// MonthlyRevenue is the aggregated approved-quotation value for one month.
type MonthlyRevenue struct {
	Bulan        string `json:"bulan"`
	Tahun        int    `json:"tahun"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

// Summary is the cached revenue aggregation.
type Summary struct {
	Items       []MonthlyRevenue `json:"items"`
	GeneratedAt time.Time        `json:"generated_at"`
}

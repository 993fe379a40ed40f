package dashboard

import (
	"fmt"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

// Tipe selects the dashboard bucket.
type Tipe string

const (
	TipeNone             Tipe = ""
	TipeMenungguAnda     Tipe = "menunggu-anda"
	TipeMenungguApproval Tipe = "menunggu-approval"
	TipeBelumLengkap     Tipe = "quotation-belum-lengkap"
)

// ParseTipe validates the query parameter against the enumerated set.
func ParseTipe(raw string) (Tipe, error) {
	switch t := Tipe(raw); t {
	case TipeNone, TipeMenungguAnda, TipeMenungguApproval, TipeBelumLengkap:
		return t, nil
	default:
		return TipeNone, fmt.Errorf("%w: unknown tipe %q", httpx.ErrValidation, raw)
	}
}

package dashboard

import (
	"fmt"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

var (
	// ErrNotApprover rejects approval writes from roles outside the three
	// approver tiers.
	ErrNotApprover = fmt.Errorf("%w: role has no approval authority", httpx.ErrForbidden)

	// ErrNotEligible rejects an approval the pipeline is not ready for:
	// the quotation is not submitted, the tier's marker is already set, or
	// an earlier marker is still missing.
	ErrNotEligible = fmt.Errorf("%w: quotation is not awaiting this approval", httpx.ErrValidation)
)

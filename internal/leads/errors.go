package leads

import (
	"fmt"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

var (
	ErrNotFound  = fmt.Errorf("%w: lead", httpx.ErrNotFound)
	ErrForbidden = fmt.Errorf("%w: lead outside your scope", httpx.ErrForbidden)
)

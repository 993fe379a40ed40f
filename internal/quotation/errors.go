package quotation

import (
	"fmt"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

// Domain errors. Each wraps an httpx sentinel so handlers can hand them
// straight to httpx.RespondError.
var (
	// ErrNotFound indicates the quotation id is unknown or soft-deleted.
	ErrNotFound = fmt.Errorf("%w: quotation", httpx.ErrNotFound)
	// ErrUnknownStep indicates the step number has no registered handler.
	ErrUnknownStep = fmt.Errorf("%w: step", httpx.ErrNotFound)
	// ErrStepNotAllowed indicates the step is outside the admin-panel set.
	ErrStepNotAllowed = fmt.Errorf("%w: allowed steps are 3, 7, 8, 9, 10, 11", httpx.ErrInvalidStep)
	// ErrConflict indicates a concurrent writer updated the quotation first.
	ErrConflict = fmt.Errorf("%w: quotation was modified by another user", httpx.ErrConflict)
)

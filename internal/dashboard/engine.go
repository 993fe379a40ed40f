package dashboard

import (
	"fmt"

	"github.com/prima-crm/prima-crm/internal/quotation"
)

// Approver role ids. Tier 2 has two role variants sharing one gate.
const (
	roleTier1  int64 = 24
	roleTier2a int64 = 25
	roleTier2b int64 = 28
	roleTier3  int64 = 23
)

// ApproverTier is the caller's position in the sequential approval pipeline.
type ApproverTier int

const (
	ApproverNone ApproverTier = iota
	ApproverTier1
	ApproverTier2
	ApproverTier3
)

// ResolveApprover maps a raw role id onto its approver tier. Resolved once
// per request; everything downstream switches on the tier, never on the id.
func ResolveApprover(roleID int64) ApproverTier {
	switch roleID {
	case roleTier1:
		return ApproverTier1
	case roleTier2a, roleTier2b:
		return ApproverTier2
	case roleTier3:
		return ApproverTier3
	default:
		return ApproverNone
	}
}

// BucketSQL renders the tipe filter as a SQL predicate over the quotation
// alias `q`. argPos is the next positional placeholder; the returned position
// accounts for any arguments appended.
//
// Tiers 2 and 3 only see long-payment-term quotations: short terms stop
// after tier 1. A caller outside the approver tiers gets an always-false
// predicate for menunggu-anda.
func BucketSQL(tipe Tipe, tier ApproverTier, argPos int) (cond string, args []any, nextPos int) {
	switch tipe {
	case TipeMenungguApproval:
		return fmt.Sprintf("q.status_quotation_id = %d AND q.step = %d",
			quotation.StatusSubmitted, quotation.StepComplete), nil, argPos
	case TipeBelumLengkap:
		return fmt.Sprintf("q.step <> %d", quotation.StepComplete), nil, argPos
	case TipeMenungguAnda:
		base := fmt.Sprintf("q.status_quotation_id = %d AND q.step = %d",
			quotation.StatusSubmitted, quotation.StepComplete)
		switch tier {
		case ApproverTier1:
			return base + " AND q.ot1 IS NULL", nil, argPos
		case ApproverTier2:
			return fmt.Sprintf("%s AND q.ot2 IS NULL AND q.top = $%d", base, argPos),
				[]any{quotation.TopLongTerm}, argPos + 1
		case ApproverTier3:
			return fmt.Sprintf("%s AND q.ot1 IS NOT NULL AND q.ot2 IS NOT NULL AND q.ot3 IS NULL AND q.top = $%d", base, argPos),
				[]any{quotation.TopLongTerm}, argPos + 1
		default:
			return "1 = 0", nil, argPos
		}
	default:
		return fmt.Sprintf("q.status_quotation_id = %d", quotation.StatusSubmitted), nil, argPos
	}
}

// NextSlot decides which approval marker the caller's tier may stamp on the
// quotation, enforcing the ot1 -> ot2 -> ot3 order and the long-term gate.
func NextSlot(tier ApproverTier, q *quotation.Quotation) (int, error) {
	if tier == ApproverNone {
		return 0, ErrNotApprover
	}
	if q.Step != quotation.StepComplete || q.StatusQuotationID != quotation.StatusSubmitted {
		return 0, ErrNotEligible
	}
	switch tier {
	case ApproverTier1:
		if q.Ot1 != nil {
			return 0, ErrNotEligible
		}
		return 1, nil
	case ApproverTier2:
		if q.Top != quotation.TopLongTerm || q.Ot1 == nil || q.Ot2 != nil {
			return 0, ErrNotEligible
		}
		return 2, nil
	case ApproverTier3:
		if q.Top != quotation.TopLongTerm || q.Ot1 == nil || q.Ot2 == nil || q.Ot3 != nil {
			return 0, ErrNotEligible
		}
		return 3, nil
	}
	return 0, ErrNotApprover
}

package visibility

import (
	"fmt"

	"github.com/prima-crm/prima-crm/internal/shared"
)

// LeadOwnership is the slice of a lead the filter inspects.
type LeadOwnership struct {
	SalesID int64
	ROID    int64
	CRMID   int64
}

// TeamResolver returns the user ids belonging to the same team as the given
// user. Implemented against the sales_team_members table.
type TeamResolver func(userID int64) []int64

// Matches is the pure form of the filter: whether the actor may see a lead.
func Matches(actor shared.Actor, lead LeadOwnership, team TeamResolver) bool {
	switch ResolveTier(actor.RoleID) {
	case TierSalesIC:
		return lead.SalesID == actor.ID
	case TierSalesLead:
		if team == nil {
			return lead.SalesID == actor.ID
		}
		for _, memberID := range team(actor.ID) {
			if lead.SalesID == memberID {
				return true
			}
		}
		return false
	case TierROOwner:
		return lead.ROID == actor.ID
	case TierCRMOwner:
		return lead.CRMID == actor.ID
	case TierSalesDivision, TierRODivision, TierCRMDivision, TierUnrestricted:
		return true
	default:
		return true
	}
}

// ScopeSQL renders the filter as a SQL predicate over the lead alias `l`.
// argPos is the next positional placeholder; the returned position accounts
// for any arguments appended. An empty condition means unrestricted.
func ScopeSQL(actor shared.Actor, argPos int) (cond string, args []any, nextPos int) {
	switch ResolveTier(actor.RoleID) {
	case TierSalesIC:
		return fmt.Sprintf("l.sales_id = $%d", argPos), []any{actor.ID}, argPos + 1
	case TierSalesLead:
		cond = fmt.Sprintf(`l.sales_id IN (
			SELECT m.user_id FROM sales_team_members m
			WHERE m.team_id = (SELECT team_id FROM sales_team_members WHERE user_id = $%d)
		)`, argPos)
		return cond, []any{actor.ID}, argPos + 1
	case TierROOwner:
		return fmt.Sprintf("l.ro_id = $%d", argPos), []any{actor.ID}, argPos + 1
	case TierCRMOwner:
		return fmt.Sprintf("l.crm_id = $%d", argPos), []any{actor.ID}, argPos + 1
	default:
		return "", nil, argPos
	}
}

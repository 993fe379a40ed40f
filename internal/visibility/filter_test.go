package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prima-crm/prima-crm/internal/shared"
)

func staticTeam(members map[int64][]int64) TeamResolver {
	return func(userID int64) []int64 {
		return members[userID]
	}
}

func TestResolveTier(t *testing.T) {
	cases := []struct {
		roleID int64
		want   Tier
	}{
		{RoleSalesIC, TierSalesIC},
		{RoleSalesLead, TierSalesLead},
		{RoleSalesAdmin, TierSalesDivision},
		{RoleSalesManager, TierSalesDivision},
		{RoleROOfficer, TierROOwner},
		{RoleROManager, TierRODivision},
		{RoleCRMOfficer, TierCRMOwner},
		{RoleCRMManager, TierCRMDivision},
		{999, TierUnrestricted},
		{1, TierUnrestricted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveTier(tc.roleID), "role %d", tc.roleID)
	}
}

func TestMatchesSalesIC(t *testing.T) {
	actor := shared.Actor{ID: 7, RoleID: RoleSalesIC}

	assert.True(t, Matches(actor, LeadOwnership{SalesID: 7}, nil))
	assert.False(t, Matches(actor, LeadOwnership{SalesID: 8}, nil))
}

func TestMatchesSalesLeadSeesWholeTeam(t *testing.T) {
	team := staticTeam(map[int64][]int64{
		10: {10, 11, 12},
	})
	actor := shared.Actor{ID: 10, RoleID: RoleSalesLead}

	assert.True(t, Matches(actor, LeadOwnership{SalesID: 11}, team))
	assert.True(t, Matches(actor, LeadOwnership{SalesID: 12}, team))
	assert.False(t, Matches(actor, LeadOwnership{SalesID: 99}, team))
}

func TestMatchesOwnerTiers(t *testing.T) {
	ro := shared.Actor{ID: 3, RoleID: RoleROOfficer}
	assert.True(t, Matches(ro, LeadOwnership{ROID: 3}, nil))
	assert.False(t, Matches(ro, LeadOwnership{ROID: 4}, nil))

	crm := shared.Actor{ID: 5, RoleID: RoleCRMOfficer}
	assert.True(t, Matches(crm, LeadOwnership{CRMID: 5}, nil))
	assert.False(t, Matches(crm, LeadOwnership{CRMID: 6}, nil))
}

func TestMatchesUnknownRoleDefaultAllow(t *testing.T) {
	actor := shared.Actor{ID: 1, RoleID: 777}
	assert.True(t, Matches(actor, LeadOwnership{SalesID: 99, ROID: 98, CRMID: 97}, nil))
}

func TestScopeSQL(t *testing.T) {
	cond, args, next := ScopeSQL(shared.Actor{ID: 7, RoleID: RoleSalesIC}, 3)
	assert.Equal(t, "l.sales_id = $3", cond)
	require.Len(t, args, 1)
	assert.Equal(t, int64(7), args[0])
	assert.Equal(t, 4, next)

	cond, args, next = ScopeSQL(shared.Actor{ID: 7, RoleID: RoleSalesManager}, 3)
	assert.Empty(t, cond)
	assert.Empty(t, args)
	assert.Equal(t, 3, next)

	cond, args, _ = ScopeSQL(shared.Actor{ID: 10, RoleID: RoleSalesLead}, 1)
	assert.Contains(t, cond, "sales_team_members")
	require.Len(t, args, 1)
	assert.Equal(t, int64(10), args[0])
}

// Package visibility restricts which leads and quotations a caller may see.
// Role ids are resolved once into a closed tier enum; everything downstream
// switches on the tier so a new role id cannot silently fall through.
package visibility

// Tier classifies a raw role id into a visibility behaviour.
type Tier int

const (
	// TierSalesIC sees only records assigned to their own user id.
	TierSalesIC Tier = iota
	// TierSalesLead sees records assigned to any member of their own team.
	TierSalesLead
	// TierSalesDivision sees every Sales-division record.
	TierSalesDivision
	// TierROOwner sees records whose ro_id equals the caller.
	TierROOwner
	// TierRODivision sees every RO-division record.
	TierRODivision
	// TierCRMOwner sees records whose crm_id equals the caller.
	TierCRMOwner
	// TierCRMDivision sees every CRM-division record.
	TierCRMDivision
	// TierUnrestricted applies no filter. Roles outside the three divisions
	// land here; that default-allow matches current behaviour for superadmin
	// roles and is pending product confirmation for truly unknown ids.
	TierUnrestricted
)

// Role ids per division. The numbers mirror the production role table.
const (
	RoleSalesIC      int64 = 29
	RoleSalesAdmin   int64 = 30
	RoleSalesLead    int64 = 31
	RoleSalesManager int64 = 32

	RoleROOfficer int64 = 26
	RoleROManager int64 = 27

	RoleCRMOfficer int64 = 33
	RoleCRMManager int64 = 34
)

// ResolveTier maps a raw role id to its visibility tier.
func ResolveTier(roleID int64) Tier {
	switch roleID {
	case RoleSalesIC:
		return TierSalesIC
	case RoleSalesLead:
		return TierSalesLead
	case RoleSalesAdmin, RoleSalesManager:
		return TierSalesDivision
	case RoleROOfficer:
		return TierROOwner
	case RoleROManager:
		return TierRODivision
	case RoleCRMOfficer:
		return TierCRMOwner
	case RoleCRMManager:
		return TierCRMDivision
	default:
		return TierUnrestricted
	}
}

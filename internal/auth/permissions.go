package auth

// Role is a fixed staff classification assigned at user creation.
type Role string

const (
	RoleFrontOffice Role = "FRONT_OFFICE"
	RoleAccounting  Role = "ACCOUNTING"
	RoleMarketing   Role = "MARKETING"
	RoleSupervisor  Role = "SUPERVISOR"
	RoleOwner       Role = "OWNER"
)

// Permission is an opaque "<resource>:<action>" token. Permissions are not
// hierarchical; holding "members:write" does not imply "members:read".
type Permission string

const (
	ResourceMembers             = "members"
	ResourceMemberTransactions  = "member_transactions"
	ResourceMemberAbsences      = "member_absences"
	ResourceCompanyTransactions = "company_transactions"
	ResourceCampaigns           = "campaigns"
	ResourceCampaignLogs        = "campaign_logs"
	ResourceAnalytics           = "analytics"
	ResourceActivityLogs        = "activity_logs"
)

func ReadPermission(resource string) Permission {
	return Permission(resource + ":read")
}

func WritePermission(resource string) Permission {
	return Permission(resource + ":write")
}

// rolePermissions is the single source of truth for authorization. It is
// fixed at process start and never mutated at runtime.
var rolePermissions = map[Role][]Permission{
	RoleFrontOffice: {
		"members:read", "members:write",
		"member_transactions:read", "member_transactions:write",
		"member_absences:read", "member_absences:write",
	},
	RoleAccounting: {
		"company_transactions:read", "company_transactions:write",
	},
	RoleMarketing: {
		"campaigns:read", "campaigns:write",
		"campaign_logs:read", "campaign_logs:write",
	},
	RoleSupervisor: {
		"members:read", "member_transactions:read", "member_absences:read",
		"company_transactions:read", "campaigns:read", "campaign_logs:read",
	},
	RoleOwner: {
		"members:read", "members:write",
		"member_transactions:read", "member_transactions:write",
		"member_absences:read", "member_absences:write",
		"company_transactions:read", "company_transactions:write",
		"campaigns:read", "campaigns:write",
		"campaign_logs:read", "campaign_logs:write",
		"analytics:read", "activity_logs:read",
	},
}

// HasPermission reports whether role holds permission. Unknown roles and
// unknown permission strings return false, never an error.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func CanRead(role Role, resource string) bool {
	return HasPermission(role, ReadPermission(resource))
}

func CanWrite(role Role, resource string) bool {
	return HasPermission(role, WritePermission(resource))
}

func AllRoles() []Role {
	return []Role{RoleFrontOffice, RoleAccounting, RoleMarketing, RoleSupervisor, RoleOwner}
}

// PermissionsForRole returns a copy of the role's permission set.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func ValidRole(role Role) bool {
	_, ok := rolePermissions[role]
	return ok
}

package user

type Permission string

const (
	// Own reports
	PermissionReportCreate  Permission = "report.create"
	PermissionReportViewOwn Permission = "report.view_own"
	PermissionReportEditOwn Permission = "report.edit_own"

	// Team reports
	PermissionReportViewTeam Permission = "report.view_team"
	PermissionTeamAggregate  Permission = "team.aggregate"

	// Organization
	PermissionOrgViewTree Permission = "organization.view_tree"

	// Storage administration
	PermissionStorageClear Permission = "storage.clear"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleCTO: {
		PermissionReportCreate,
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportViewTeam,
		PermissionTeamAggregate,
		PermissionOrgViewTree,
		PermissionStorageClear,
	},
	RoleVP: {
		PermissionReportCreate,
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportViewTeam,
		PermissionTeamAggregate,
		PermissionOrgViewTree,
	},
	RoleDirector: {
		PermissionReportCreate,
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportViewTeam,
		PermissionTeamAggregate,
		PermissionOrgViewTree,
	},
	RoleManager: {
		PermissionReportCreate,
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionReportViewTeam,
		PermissionTeamAggregate,
		PermissionOrgViewTree,
	},
	RoleEngineer: {
		PermissionReportCreate,
		PermissionReportViewOwn,
		PermissionReportEditOwn,
		PermissionOrgViewTree,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

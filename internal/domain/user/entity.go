package user

type Role string

const (
	RoleCTO      Role = "CTO"      // Sees the whole organization
	RoleVP       Role = "VP"       // Engineers, managers and directors
	RoleDirector Role = "Director" // Engineers and managers
	RoleManager  Role = "Manager"  // Direct reports only
	RoleEngineer Role = "Engineer" // Own reports only
)

// Roles lists every role from the top of the hierarchy down.
var Roles = []Role{RoleCTO, RoleVP, RoleDirector, RoleManager, RoleEngineer}

type User struct {
	ID        string
	Name      string
	Role      Role
	ManagerID *string
}

// IsValid checks the role is one of the five hierarchy levels
func (r Role) IsValid() bool {
	switch r {
	case RoleCTO, RoleVP, RoleDirector, RoleManager, RoleEngineer:
		return true
	}
	return false
}

// Level returns the position in the hierarchy, Engineer = 0 and CTO = 4.
// Unknown roles return -1.
func (r Role) Level() int {
	switch r {
	case RoleEngineer:
		return 0
	case RoleManager:
		return 1
	case RoleDirector:
		return 2
	case RoleVP:
		return 3
	case RoleCTO:
		return 4
	}
	return -1
}

// IsLeader checks if the role sits above Manager
func (r Role) IsLeader() bool {
	return r.Level() >= RoleDirector.Level()
}

// IsRoot checks if user has no manager
func (u *User) IsRoot() bool {
	return u.ManagerID == nil || *u.ManagerID == ""
}

// ReportsTo checks if user's direct manager is managerID
func (u *User) ReportsTo(managerID string) bool {
	return u.ManagerID != nil && *u.ManagerID == managerID
}

package fixtures

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
)

func strPtr(s string) *string { return &s }

// Users returns the demo organization: 1 CTO, 2 VPs, 4 Directors, 8 Managers and 24 Engineers.
// Each call returns a fresh slice.
func Users() []user.User {
	return []user.User{
		{ID: "cto-001", Name: "Sarah Chen", Role: user.RoleCTO, ManagerID: nil},
		{ID: "vp-001", Name: "Michael Rodriguez", Role: user.RoleVP, ManagerID: strPtr("cto-001")},
		{ID: "vp-002", Name: "Jennifer Kim", Role: user.RoleVP, ManagerID: strPtr("cto-001")},
		{ID: "dir-001", Name: "David Thompson", Role: user.RoleDirector, ManagerID: strPtr("vp-001")},
		{ID: "dir-002", Name: "Lisa Wang", Role: user.RoleDirector, ManagerID: strPtr("vp-001")},
		{ID: "dir-003", Name: "Robert Johnson", Role: user.RoleDirector, ManagerID: strPtr("vp-002")},
		{ID: "dir-004", Name: "Amanda Foster", Role: user.RoleDirector, ManagerID: strPtr("vp-002")},
		{ID: "mgr-001", Name: "Kevin Park", Role: user.RoleManager, ManagerID: strPtr("dir-001")},
		{ID: "mgr-002", Name: "Jessica Martinez", Role: user.RoleManager, ManagerID: strPtr("dir-001")},
		{ID: "mgr-003", Name: "Thomas Lee", Role: user.RoleManager, ManagerID: strPtr("dir-002")},
		{ID: "mgr-004", Name: "Rachel Brown", Role: user.RoleManager, ManagerID: strPtr("dir-002")},
		{ID: "mgr-005", Name: "Daniel Garcia", Role: user.RoleManager, ManagerID: strPtr("dir-003")},
		{ID: "mgr-006", Name: "Emily Davis", Role: user.RoleManager, ManagerID: strPtr("dir-003")},
		{ID: "mgr-007", Name: "Christopher Wilson", Role: user.RoleManager, ManagerID: strPtr("dir-004")},
		{ID: "mgr-008", Name: "Samantha Taylor", Role: user.RoleManager, ManagerID: strPtr("dir-004")},
		{ID: "eng-001", Name: "Alex Rivera", Role: user.RoleEngineer, ManagerID: strPtr("mgr-001")},
		{ID: "eng-002", Name: "Maya Patel", Role: user.RoleEngineer, ManagerID: strPtr("mgr-001")},
		{ID: "eng-003", Name: "James Cooper", Role: user.RoleEngineer, ManagerID: strPtr("mgr-001")},
		{ID: "eng-004", Name: "Sophie Zhang", Role: user.RoleEngineer, ManagerID: strPtr("mgr-002")},
		{ID: "eng-005", Name: "Marcus Johnson", Role: user.RoleEngineer, ManagerID: strPtr("mgr-002")},
		{ID: "eng-006", Name: "Olivia Chen", Role: user.RoleEngineer, ManagerID: strPtr("mgr-002")},
		{ID: "eng-007", Name: "Ryan O'Connor", Role: user.RoleEngineer, ManagerID: strPtr("mgr-003")},
		{ID: "eng-008", Name: "Priya Sharma", Role: user.RoleEngineer, ManagerID: strPtr("mgr-003")},
		{ID: "eng-009", Name: "Ben Miller", Role: user.RoleEngineer, ManagerID: strPtr("mgr-003")},
		{ID: "eng-010", Name: "Grace Liu", Role: user.RoleEngineer, ManagerID: strPtr("mgr-004")},
		{ID: "eng-011", Name: "Carlos Rodriguez", Role: user.RoleEngineer, ManagerID: strPtr("mgr-004")},
		{ID: "eng-012", Name: "Zoe Anderson", Role: user.RoleEngineer, ManagerID: strPtr("mgr-004")},
		{ID: "eng-013", Name: "Nathan Kim", Role: user.RoleEngineer, ManagerID: strPtr("mgr-005")},
		{ID: "eng-014", Name: "Isabella Wright", Role: user.RoleEngineer, ManagerID: strPtr("mgr-005")},
		{ID: "eng-015", Name: "Tyler Scott", Role: user.RoleEngineer, ManagerID: strPtr("mgr-005")},
		{ID: "eng-016", Name: "Hannah Martinez", Role: user.RoleEngineer, ManagerID: strPtr("mgr-006")},
		{ID: "eng-017", Name: "Jordan Thompson", Role: user.RoleEngineer, ManagerID: strPtr("mgr-006")},
		{ID: "eng-018", Name: "Ethan Lewis", Role: user.RoleEngineer, ManagerID: strPtr("mgr-006")},
		{ID: "eng-019", Name: "Chloe Davis", Role: user.RoleEngineer, ManagerID: strPtr("mgr-007")},
		{ID: "eng-020", Name: "Lucas Green", Role: user.RoleEngineer, ManagerID: strPtr("mgr-007")},
		{ID: "eng-021", Name: "Ava Wilson", Role: user.RoleEngineer, ManagerID: strPtr("mgr-007")},
		{ID: "eng-022", Name: "Noah Turner", Role: user.RoleEngineer, ManagerID: strPtr("mgr-008")},
		{ID: "eng-023", Name: "Emma Garcia", Role: user.RoleEngineer, ManagerID: strPtr("mgr-008")},
		{ID: "eng-024", Name: "Liam Foster", Role: user.RoleEngineer, ManagerID: strPtr("mgr-008")},
	}
}

// Directory builds a snapshot over Users
func Directory() *user.Directory {
	return user.NewDirectory(Users())
}

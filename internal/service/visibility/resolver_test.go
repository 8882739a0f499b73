package visibility

import (
	"testing"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
)

const day = "2025-09-11"

func authors(reports []report.Report) []string {
	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.UserID)
	}
	return ids
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(fixtures.Directory())
	all := fixtures.DemoReports()

	tests := []struct {
		name   string
		role   user.Role
		userID string
		date   string
		want   int
	}{
		{"engineer sees own report", user.RoleEngineer, "eng-001", day, 1},
		{"engineer sees own reports across dates", user.RoleEngineer, "eng-001", "", 2},
		{"engineer without id sees nothing", user.RoleEngineer, "", day, 0},
		{"manager sees direct reports", user.RoleManager, "mgr-001", day, 3},
		{"manager of quiet team", user.RoleManager, "mgr-008", day, 0},
		{"synthetic manager has no direct reports", user.RoleManager, "user_manager_demo", day, 0},
		{"manager id of a leaf sees nothing", user.RoleManager, "eng-001", day, 0},
		{"manager id of a director sees only managers", user.RoleManager, "dir-001", day, 2},
		{"director sees engineers and managers", user.RoleDirector, "dir-001", day, 9},
		{"vp adds directors", user.RoleVP, "vp-001", day, 11},
		{"second vp sees the same set", user.RoleVP, "vp-002", day, 11},
		{"cto sees everything", user.RoleCTO, "cto-001", day, 13},
		{"leader without id sees everyone", user.RoleDirector, "", day, 13},
		{"unknown role fails open", user.Role("Intern"), "x", day, 13},
		{"date with no reports", user.RoleCTO, "cto-001", "2024-01-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(all, tt.role, tt.userID, tt.date)
			assert.Len(t, got, tt.want)
			assert.NotNil(t, got)
		})
	}
}

func TestResolver_Resolve_KeepsOrderAndScope(t *testing.T) {
	resolver := NewResolver(fixtures.Directory())

	got := resolver.Resolve(fixtures.DemoReports(), user.RoleManager, "mgr-001", day)
	assert.Equal(t, []string{"eng-001", "eng-002", "eng-003"}, authors(got))

	for _, r := range resolver.Resolve(fixtures.DemoReports(), user.RoleDirector, "dir-003", day) {
		u, _ := fixtures.Directory().GetByID(r.UserID)
		assert.Contains(t, []user.Role{user.RoleEngineer, user.RoleManager}, u.Role)
	}
}

func TestResolver_Resolve_SyntheticAuthorsHiddenFromLeaders(t *testing.T) {
	resolver := NewResolver(fixtures.Directory())
	reports := append(fixtures.DemoReports(), report.Report{
		ID: "report_1_abc", UserID: "user_engineer_demo", Date: day, Content: "demo",
	})

	cto := resolver.Resolve(reports, user.RoleCTO, "cto-001", day)
	assert.NotContains(t, authors(cto), "user_engineer_demo")

	self := resolver.Resolve(reports, user.RoleEngineer, "user_engineer_demo", day)
	assert.Equal(t, []string{"user_engineer_demo"}, authors(self))
}

func TestResolver_VisibleAuthors(t *testing.T) {
	resolver := NewResolver(fixtures.Directory())

	assert.Len(t, resolver.VisibleAuthors(user.RoleEngineer, "eng-001"), 1)
	assert.Empty(t, resolver.VisibleAuthors(user.RoleEngineer, "ghost"))
	assert.Len(t, resolver.VisibleAuthors(user.RoleManager, "mgr-001"), 3)
	assert.Empty(t, resolver.VisibleAuthors(user.RoleManager, "user_manager_demo"))
	assert.Empty(t, resolver.VisibleAuthors(user.RoleManager, "eng-005"))
	assert.Len(t, resolver.VisibleAuthors(user.RoleDirector, "dir-001"), 32)
	assert.Len(t, resolver.VisibleAuthors(user.RoleVP, "vp-001"), 36)
	assert.Len(t, resolver.VisibleAuthors(user.RoleCTO, "cto-001"), 39)
}

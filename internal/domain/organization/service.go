package organization

import (
	"context"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/project"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
)

type Service interface {
	ListUsers(ctx context.Context) []user.User
	GetUser(ctx context.Context, id string) (user.User, error)
	GetDirectReports(ctx context.Context, managerID string) ([]user.User, error)
	GetTeam(ctx context.Context, managerID string) ([]user.User, error)
	GetManager(ctx context.Context, userID string) (user.User, error)
	GetTeamProjects(ctx context.Context, teamID string) ([]project.Project, error)
	BuildTree(ctx context.Context, role user.Role, userID, date string) ([]TreeNode, error)
	TeamView(ctx context.Context, managerID, date string) (TeamViewResponse, error)
	// TeamReports returns the direct reports of managerID and the latest report
	// on date of each member who filed one
	TeamReports(ctx context.Context, managerID, date string) ([]user.User, []report.Report, error)
}

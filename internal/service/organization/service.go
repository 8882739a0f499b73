package organization

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/organization"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/project"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	reportsvc "github.com/lastnext24/lastnext24-backend-go/internal/service/report"
)

type OrganizationServiceImpl struct {
	dir      *user.Directory
	projects []project.Project
	source   report.Source
}

func NewOrganizationService(dir *user.Directory, projects []project.Project, source report.Source) organization.Service {
	return &OrganizationServiceImpl{
		dir:      dir,
		projects: projects,
		source:   source,
	}
}

func (s *OrganizationServiceImpl) ListUsers(ctx context.Context) []user.User {
	return s.dir.All()
}

func (s *OrganizationServiceImpl) GetUser(ctx context.Context, id string) (user.User, error) {
	u, ok := s.dir.GetByID(id)
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *OrganizationServiceImpl) GetDirectReports(ctx context.Context, managerID string) ([]user.User, error) {
	if _, err := s.GetUser(ctx, managerID); err != nil {
		return nil, err
	}
	return s.dir.DirectReports(managerID), nil
}

func (s *OrganizationServiceImpl) GetTeam(ctx context.Context, managerID string) ([]user.User, error) {
	if _, err := s.GetUser(ctx, managerID); err != nil {
		return nil, err
	}
	return s.dir.AllTeamMembers(managerID), nil
}

func (s *OrganizationServiceImpl) GetManager(ctx context.Context, userID string) (user.User, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return user.User{}, err
	}
	m, ok := s.dir.Manager(userID)
	if !ok {
		return user.User{}, user.ErrManagerNotFound
	}
	return m, nil
}

func (s *OrganizationServiceImpl) GetTeamProjects(ctx context.Context, teamID string) ([]project.Project, error) {
	if _, err := s.GetUser(ctx, teamID); err != nil {
		return nil, err
	}
	return project.ByTeam(s.projects, teamID), nil
}

// BuildTree returns the part of the organization role can browse. CTO gets the
// whole forest. VP, Director and Manager get the subtree under the session
// user when it is a directory user of that role, otherwise under the first
// user holding the role. Engineers get themselves only.
func (s *OrganizationServiceImpl) BuildTree(ctx context.Context, role user.Role, userID, date string) ([]organization.TreeNode, error) {
	all, err := s.source.AllReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	byUser := groupByUser(all, date)

	switch role {
	case user.RoleCTO:
		return s.nodes(s.dir.Roots(), byUser), nil

	case user.RoleVP, user.RoleDirector, user.RoleManager:
		start, ok := s.dir.GetByID(userID)
		if !ok || start.Role != role {
			if start, ok = s.dir.FirstWithRole(role); !ok {
				return []organization.TreeNode{}, nil
			}
		}
		return s.nodes(s.dir.DirectReports(start.ID), byUser), nil

	case user.RoleEngineer:
		u, ok := s.dir.GetByID(userID)
		if !ok {
			return []organization.TreeNode{}, nil
		}
		return []organization.TreeNode{{
			User:     user.ToResponse(u),
			Reports:  orEmpty(byUser[u.ID]),
			Children: []organization.TreeNode{},
		}}, nil

	default:
		return nil, user.ErrInvalidRole
	}
}

func (s *OrganizationServiceImpl) nodes(users []user.User, byUser map[string][]report.Report) []organization.TreeNode {
	return s.walk(users, byUser, make(map[string]bool))
}

// walk emits each user at most once so a manager cycle in the directory
// cannot recurse forever.
func (s *OrganizationServiceImpl) walk(users []user.User, byUser map[string][]report.Report, seen map[string]bool) []organization.TreeNode {
	nodes := make([]organization.TreeNode, 0, len(users))
	for _, u := range users {
		if seen[u.ID] {
			slog.Warn("manager cycle in directory, skipping user", "user_id", u.ID)
			continue
		}
		seen[u.ID] = true
		nodes = append(nodes, organization.TreeNode{
			User:     user.ToResponse(u),
			Reports:  orEmpty(byUser[u.ID]),
			Children: s.walk(s.dir.DirectReports(u.ID), byUser, seen),
		})
	}
	return nodes
}

// TeamView lists every direct report of managerID with their latest report on date
func (s *OrganizationServiceImpl) TeamView(ctx context.Context, managerID, date string) (organization.TeamViewResponse, error) {
	members, err := s.GetDirectReports(ctx, managerID)
	if err != nil {
		return organization.TeamViewResponse{}, err
	}
	all, err := s.source.AllReports(ctx)
	if err != nil {
		return organization.TeamViewResponse{}, fmt.Errorf("failed to load reports: %w", err)
	}
	byUser := groupByUser(all, date)

	resp := organization.TeamViewResponse{
		ManagerID: managerID,
		Date:      date,
		Members:   make([]organization.TeamMemberStatus, 0, len(members)),
		Total:     len(members),
	}
	for _, m := range members {
		status := organization.TeamMemberStatus{Member: user.ToResponse(m)}
		if reports := byUser[m.ID]; len(reports) > 0 {
			latest := reports[0]
			status.Report = &latest
			status.HasReport = true
			resp.Reported++
		}
		resp.Members = append(resp.Members, status)
	}
	return resp, nil
}

func (s *OrganizationServiceImpl) TeamReports(ctx context.Context, managerID, date string) ([]user.User, []report.Report, error) {
	members, err := s.GetDirectReports(ctx, managerID)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.source.AllReports(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reports: %w", err)
	}
	return members, LatestReports(all, members, date), nil
}

// LatestReports returns the newest report on date of each member who has one,
// in member order
func LatestReports(all []report.Report, members []user.User, date string) []report.Report {
	byUser := groupByUser(all, date)
	latest := make([]report.Report, 0, len(members))
	for _, m := range members {
		if reports := byUser[m.ID]; len(reports) > 0 {
			latest = append(latest, reports[0])
		}
	}
	return latest
}

// groupByUser buckets reports by author, newest first. An empty date keeps every date.
func groupByUser(all []report.Report, date string) map[string][]report.Report {
	byUser := make(map[string][]report.Report)
	for _, r := range all {
		if date != "" && r.Date != date {
			continue
		}
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	for id := range byUser {
		reportsvc.SortNewestFirst(byUser[id], func(r report.Report) string { return r.CreatedAt })
	}
	return byUser
}

func orEmpty(reports []report.Report) []report.Report {
	if reports == nil {
		return []report.Report{}
	}
	return reports
}

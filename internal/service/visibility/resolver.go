// Package visibility decides which reports a role may read.
package visibility

import (
	"log/slog"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
)

// leaderScope lists the author roles each leadership level can read.
// This is a role-class filter, not a walk of the leader's own subtree:
// two VPs see the same reports.
var leaderScope = map[user.Role][]user.Role{
	user.RoleDirector: {user.RoleEngineer, user.RoleManager},
	user.RoleVP:       {user.RoleEngineer, user.RoleManager, user.RoleDirector},
	user.RoleCTO:      user.Roles,
}

type Resolver struct {
	dir *user.Directory
}

func NewResolver(dir *user.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve filters reports down to what role/userID may see. A non-empty date
// keeps only reports with exactly that date. Input order is preserved.
func (r *Resolver) Resolve(reports []report.Report, role user.Role, userID, date string) []report.Report {
	if date != "" {
		reports = filter(reports, func(rp report.Report) bool { return rp.Date == date })
	}

	switch role {
	case user.RoleEngineer:
		if userID == "" {
			return []report.Report{}
		}
		return filter(reports, func(rp report.Report) bool { return rp.UserID == userID })

	case user.RoleManager:
		if userID == "" {
			return []report.Report{}
		}
		team := idSet(r.dir.DirectReports(userID))
		return filter(reports, func(rp report.Report) bool { return team[rp.UserID] })

	case user.RoleDirector, user.RoleVP, user.RoleCTO:
		allowed := idSet(r.leaderAuthors(role, userID))
		return filter(reports, func(rp report.Report) bool { return allowed[rp.UserID] })

	default:
		slog.Warn("unknown role, returning all reports", "role", role, "user_id", userID)
		return filter(reports, func(report.Report) bool { return true })
	}
}

// VisibleAuthors returns the directory users whose reports role/userID can read
func (r *Resolver) VisibleAuthors(role user.Role, userID string) []user.User {
	switch role {
	case user.RoleEngineer:
		if u, ok := r.dir.GetByID(userID); ok {
			return []user.User{u}
		}
		return []user.User{}
	case user.RoleManager:
		return r.dir.DirectReports(userID)
	case user.RoleDirector, user.RoleVP, user.RoleCTO:
		return r.leaderAuthors(role, userID)
	default:
		return r.dir.All()
	}
}

func (r *Resolver) leaderAuthors(role user.Role, userID string) []user.User {
	if userID == "" {
		return r.dir.All()
	}
	return r.dir.WithRoles(leaderScope[role]...)
}

func filter(reports []report.Report, keep func(report.Report) bool) []report.Report {
	out := make([]report.Report, 0, len(reports))
	for _, rp := range reports {
		if keep(rp) {
			out = append(out, rp)
		}
	}
	return out
}

func idSet(users []user.User) map[string]bool {
	set := make(map[string]bool, len(users))
	for _, u := range users {
		set[u.ID] = true
	}
	return set
}

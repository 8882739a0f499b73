package user

import (
	"fmt"
	"strings"
)

// Directory is an immutable snapshot of the organization. Build it once and
// pass it to whatever needs to walk the hierarchy.
type Directory struct {
	users    []User
	byID     map[string]int
	children map[string][]int
}

// NewDirectory copies users into a new snapshot. Insertion order is kept for
// every listing.
func NewDirectory(users []User) *Directory {
	d := &Directory{
		users:    make([]User, len(users)),
		byID:     make(map[string]int, len(users)),
		children: make(map[string][]int),
	}
	for i, u := range users {
		if u.ManagerID != nil {
			id := *u.ManagerID
			u.ManagerID = &id
		}
		d.users[i] = u
		d.byID[u.ID] = i
		if !u.IsRoot() {
			d.children[*u.ManagerID] = append(d.children[*u.ManagerID], i)
		}
	}
	return d
}

// All returns every user in insertion order
func (d *Directory) All() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

// Len returns the number of users
func (d *Directory) Len() int {
	return len(d.users)
}

func (d *Directory) GetByID(id string) (User, bool) {
	i, ok := d.byID[id]
	if !ok {
		return User{}, false
	}
	return d.users[i], true
}

// DirectReports returns users whose manager is managerID (one level down)
func (d *Directory) DirectReports(managerID string) []User {
	return d.collect(d.children[managerID])
}

// AllTeamMembers walks every level below managerID. Engineers are leaves and
// are not descended into.
func (d *Directory) AllTeamMembers(managerID string) []User {
	direct := d.DirectReports(managerID)
	members := append([]User{}, direct...)
	for _, u := range direct {
		if u.Role != RoleEngineer {
			members = append(members, d.AllTeamMembers(u.ID)...)
		}
	}
	return members
}

// Manager returns the direct manager of userID
func (d *Directory) Manager(userID string) (User, bool) {
	u, ok := d.GetByID(userID)
	if !ok || u.IsRoot() {
		return User{}, false
	}
	return d.GetByID(*u.ManagerID)
}

// Roots returns users without a manager
func (d *Directory) Roots() []User {
	var roots []User
	for _, u := range d.users {
		if u.IsRoot() {
			roots = append(roots, u)
		}
	}
	return roots
}

// FirstWithRole returns the first user holding role
func (d *Directory) FirstWithRole(role Role) (User, bool) {
	for _, u := range d.users {
		if u.Role == role {
			return u, true
		}
	}
	return User{}, false
}

// WithRoles returns users whose role is in roles
func (d *Directory) WithRoles(roles ...Role) []User {
	var result []User
	for _, u := range d.users {
		for _, r := range roles {
			if u.Role == r {
				result = append(result, u)
				break
			}
		}
	}
	return result
}

// IDs returns the ids of users, in order
func IDs(users []User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// Validate reports structural problems: dangling manager references and
// managers that are not exactly one level above. The hierarchy is never
// enforced at runtime, so this is informational.
func (d *Directory) Validate() error {
	var problems []string
	for _, u := range d.users {
		if u.IsRoot() {
			continue
		}
		m, ok := d.GetByID(*u.ManagerID)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: manager %s does not exist", u.ID, *u.ManagerID))
			continue
		}
		if m.Role.Level() != u.Role.Level()+1 {
			problems = append(problems, fmt.Sprintf("%s (%s): manager %s is %s", u.ID, u.Role, m.ID, m.Role))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid hierarchy: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (d *Directory) collect(idx []int) []User {
	out := make([]User, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.users[i])
	}
	return out
}

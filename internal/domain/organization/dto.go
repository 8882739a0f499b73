package organization

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
)

// TreeNode is one user in the org tree with that user's reports for the day
type TreeNode struct {
	User     user.UserResponse `json:"user"`
	Reports  []report.Report   `json:"reports"`
	Children []TreeNode        `json:"children"`
}

// TeamMemberStatus pairs a direct report with their latest report of the day
type TeamMemberStatus struct {
	Member    user.UserResponse `json:"member"`
	Report    *report.Report    `json:"report"`
	HasReport bool              `json:"has_report"`
}

type TeamViewResponse struct {
	ManagerID string             `json:"manager_id"`
	Date      string             `json:"date"`
	Members   []TeamMemberStatus `json:"members"`
	Reported  int                `json:"reported"`
	Total     int                `json:"total"`
}

type TreeResponse struct {
	Role  string     `json:"role"`
	Date  string     `json:"date"`
	Nodes []TreeNode `json:"nodes"`
}

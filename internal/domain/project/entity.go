package project

// Project is a demo project owned by a manager's team. TeamID is the manager's user id.
type Project struct {
	ID          string
	Name        string
	TeamID      string
	Description string
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TeamID      string `json:"team_id"`
	Description string `json:"description"`
}

func ToResponses(projects []Project) []ProjectResponse {
	result := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, ProjectResponse{
			ID:          p.ID,
			Name:        p.Name,
			TeamID:      p.TeamID,
			Description: p.Description,
		})
	}
	return result
}

// ByTeam filters projects owned by teamID
func ByTeam(projects []Project, teamID string) []Project {
	var result []Project
	for _, p := range projects {
		if p.TeamID == teamID {
			result = append(result, p)
		}
	}
	return result
}

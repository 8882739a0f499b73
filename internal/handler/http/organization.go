package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/organization"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/project"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

type OrganizationHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	DirectReports(w http.ResponseWriter, r *http.Request)
	Team(w http.ResponseWriter, r *http.Request)
	Manager(w http.ResponseWriter, r *http.Request)
	TeamProjects(w http.ResponseWriter, r *http.Request)
	Tree(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	orgService organization.Service
}

func NewOrganizationHandler(orgService organization.Service) OrganizationHandler {
	return &organizationHandlerImpl{orgService: orgService}
}

// ListUsers handles GET /api/v1/organization/users?role=
func (h *organizationHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.orgService.ListUsers(r.Context())

	if role := r.URL.Query().Get("role"); role != "" {
		if !user.Role(role).IsValid() {
			response.HandleError(w, user.ErrInvalidRole)
			return
		}
		filtered := make([]user.User, 0, len(users))
		for _, u := range users {
			if u.Role == user.Role(role) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	response.Success(w, user.ToResponses(users))
}

// GetUser handles GET /api/v1/organization/users/{id}
func (h *organizationHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.orgService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

// DirectReports handles GET /api/v1/organization/users/{id}/direct-reports
func (h *organizationHandlerImpl) DirectReports(w http.ResponseWriter, r *http.Request) {
	users, err := h.orgService.GetDirectReports(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponses(users))
}

// Team handles GET /api/v1/organization/users/{id}/team
func (h *organizationHandlerImpl) Team(w http.ResponseWriter, r *http.Request) {
	users, err := h.orgService.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponses(users))
}

// Manager handles GET /api/v1/organization/users/{id}/manager
func (h *organizationHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	m, err := h.orgService.GetManager(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(m))
}

// TeamProjects handles GET /api/v1/organization/teams/{teamID}/projects
func (h *organizationHandlerImpl) TeamProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.orgService.GetTeamProjects(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, project.ToResponses(projects))
}

// Tree handles GET /api/v1/organization/tree?date=, rooted by the session role
func (h *organizationHandlerImpl) Tree(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	date := dateParam(r)
	if _, valid := validator.IsValidDate(date); !valid {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	nodes, err := h.orgService.BuildTree(r.Context(), identity.Role, identity.UserID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, organization.TreeResponse{
		Role:  string(identity.Role),
		Date:  date,
		Nodes: nodes,
	})
}

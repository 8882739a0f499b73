package session

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

// syntheticIDs stand in for a logged-in user when only a role is chosen
var syntheticIDs = map[user.Role]string{
	user.RoleEngineer: "user_engineer_demo",
	user.RoleManager:  "user_manager_demo",
	user.RoleDirector: "user_director_demo",
	user.RoleVP:       "user_vp_demo",
	user.RoleCTO:      "user_cto_demo",
}

// SyntheticUserID returns the demo user id for role, or "" for unknown roles
func SyntheticUserID(role user.Role) string {
	return syntheticIDs[role]
}

// IsSynthetic reports whether id is one of the demo user ids
func IsSynthetic(id string) bool {
	for _, s := range syntheticIDs {
		if s == id {
			return true
		}
	}
	return false
}

type CreateSessionRequest struct {
	Role   string `json:"role"`
	UserID string `json:"user_id,omitempty"`
}

func (r *CreateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role == "" {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role is required"})
	} else if !user.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of CTO, VP, Director, Manager, Engineer"})
	}

	if r.UserID != "" && !validator.IsDirectoryUserID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id must be an organization user id"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IdentityResponse struct {
	UserID    string  `json:"user_id"`
	Role      string  `json:"role"`
	Name      *string `json:"name,omitempty"`
	Synthetic bool    `json:"synthetic"`
}

type SessionResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   int64            `json:"expires_at"`
	Identity    IdentityResponse `json:"identity"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

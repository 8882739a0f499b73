package chat

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

const DefaultMaxSources = 5

type ChatRequest struct {
	Query       string `json:"query"`
	UserRole    string `json:"user_role"`
	UserID      string `json:"user_id,omitempty"`
	ContextDate string `json:"context_date,omitempty"`
	MaxSources  *int   `json:"max_sources,omitempty"`
}

func (r *ChatRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Query) {
		errs = append(errs, validator.ValidationError{
			Field:   "query",
			Message: "Query is required and must not be empty",
		})
	}

	if r.UserRole == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "user_role",
			Message: "User role is required",
		})
	}

	if r.MaxSources != nil && *r.MaxSources < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_sources",
			Message: "max_sources cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Source is a cited report
type Source struct {
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	UserRole       string  `json:"user_role"`
	Date           string  `json:"date"`
	ContentSnippet string  `json:"content_snippet"`
	RelevanceScore float64 `json:"relevance_score"`
}

type ChatResponse struct {
	Response       string   `json:"response"`
	Sources        []Source `json:"sources"`
	ProcessingTime int64    `json:"processing_time"`
	TokenCount     int      `json:"token_count"`
	Cached         bool     `json:"cached,omitempty"`
}

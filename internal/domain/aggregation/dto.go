package aggregation

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

const (
	SourceLocal = "local"
	SourceAI    = "ai"
)

type AggregationRequest struct {
	Reports     []report.Report
	TeamMembers []user.User
	ManagerRole user.Role
	Date        string
}

type ReportingRate struct {
	Reported   int `json:"reported"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type AggregationResponse struct {
	Summary           string        `json:"summary"`
	AggregatedContent string        `json:"aggregated_content"`
	KeyHighlights     []string      `json:"key_highlights"`
	ReportingRate     ReportingRate `json:"reporting_rate"`
	Source            string        `json:"source"`
}

// AuthoredReport is a report with its author resolved, as sent to a summarizer
type AuthoredReport struct {
	Author  string `json:"author"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TeamAggregationRequest is the HTTP body for aggregating a manager's team
type TeamAggregationRequest struct {
	ManagerID string `json:"manager_id,omitempty"`
	Date      string `json:"date,omitempty"`
	UseAI     bool   `json:"use_ai,omitempty"`
}

func (r *TeamAggregationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FormatRequest struct {
	Content  string `json:"content"`
	FromRole string `json:"from_role"`
	ToRole   string `json:"to_role"`
}

func (r *FormatRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "content is required"})
	}
	if !user.Role(r.FromRole).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "from_role", Message: "from_role must be one of CTO, VP, Director, Manager, Engineer"})
	}
	if !user.Role(r.ToRole).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "to_role", Message: "to_role must be one of CTO, VP, Director, Manager, Engineer"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FormatResponse struct {
	Content string `json:"content"`
}

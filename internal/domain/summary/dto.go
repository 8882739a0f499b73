package summary

import (
	"strings"

	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
)

type Type string

const (
	TypeIndividual Type = "individual"
	TypeAggregate  Type = "aggregate"
	TypeExecutive  Type = "executive"

	DefaultMaxLength = 500
)

type SummarizeRequest struct {
	// Reports is decoded loosely so non-string entries can be skipped rather than rejected
	Reports     []interface{} `json:"reports"`
	Context     string        `json:"context,omitempty"`
	SummaryType Type          `json:"summary_type,omitempty"`
	MaxLength   *int          `json:"max_length,omitempty"`
}

func (r *SummarizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Reports) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "reports",
			Message: "Reports array is required and must not be empty",
		})
	} else if len(r.ValidReports()) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "reports",
			Message: "At least one valid report is required",
		})
	}

	if r.MaxLength != nil && *r.MaxLength <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_length",
			Message: "max_length must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidReports keeps the entries that are non-blank strings
func (r *SummarizeRequest) ValidReports() []string {
	valid := make([]string, 0, len(r.Reports))
	for _, entry := range r.Reports {
		if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
			valid = append(valid, s)
		}
	}
	return valid
}

// Kind resolves the summary type. Unknown values fall back to aggregate.
func (r *SummarizeRequest) Kind() Type {
	switch r.SummaryType {
	case TypeIndividual, TypeExecutive:
		return r.SummaryType
	}
	return TypeAggregate
}

func (r *SummarizeRequest) Length() int {
	if r.MaxLength == nil {
		return DefaultMaxLength
	}
	return *r.MaxLength
}

type SummarizeResponse struct {
	Summary             string   `json:"summary"`
	IndividualSummaries []string `json:"individual_summaries,omitempty"`
	ProcessingTime      int64    `json:"processing_time"`
	TokenCount          int      `json:"token_count"`
	Cached              bool     `json:"cached,omitempty"`
}

package aggregation

import (
	"context"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
)

type Service interface {
	// Aggregate always uses the local formatter
	Aggregate(ctx context.Context, req AggregationRequest) AggregationResponse
	// AggregateWithAI asks the team summarizer for the summary and falls back
	// to Aggregate on any failure
	AggregateWithAI(ctx context.Context, req AggregationRequest) AggregationResponse
	FormatForManagementLevel(content string, fromRole, toRole user.Role) string
}

// TeamSummarizer writes the executive summary for a team's reports
type TeamSummarizer interface {
	SummarizeTeam(ctx context.Context, reports []AuthoredReport, level string, date string) (string, error)
}

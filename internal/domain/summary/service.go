package summary

import (
	"context"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
)

type Service interface {
	Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResponse, error)
	aggregation.TeamSummarizer
}

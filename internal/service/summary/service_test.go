package summary

import (
	"context"
	"fmt"
	"testing"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/summary"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/llm"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	prompt string
	opts   llm.CompletionOptions
}

type scriptedCompleter struct {
	calls []call
	reply func(n int) string
}

func (s *scriptedCompleter) Complete(ctx context.Context, op string, prompt string, opts llm.CompletionOptions) (string, error) {
	s.calls = append(s.calls, call{prompt: prompt, opts: opts})
	if s.reply == nil {
		return "summary", nil
	}
	return s.reply(len(s.calls)), nil
}

func intPtr(i int) *int { return &i }

func TestSummaryService_Individual(t *testing.T) {
	fake := &scriptedCompleter{reply: func(n int) string { return fmt.Sprintf("S%d", n) }}
	svc := NewSummaryService(fake, nil)

	resp, err := svc.Summarize(context.Background(), summary.SummarizeRequest{
		Reports:     []interface{}{"first report", 42, "  ", "second report"},
		SummaryType: summary.TypeIndividual,
		MaxLength:   intPtr(200),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, resp.IndividualSummaries)
	assert.Equal(t, "S1\n\n---\n\nS2", resp.Summary)
	require.Len(t, fake.calls, 2)
	assert.Contains(t, fake.calls[0].prompt, "approximately 200 characters")
	assert.Contains(t, fake.calls[0].prompt, "Report:\nfirst report")
	assert.Equal(t, llm.CompletionOptions{MaxTokens: 400, Temperature: 0.3}, fake.calls[0].opts)
}

func TestSummaryService_Aggregate(t *testing.T) {
	fake := &scriptedCompleter{}
	svc := NewSummaryService(fake, nil)

	resp, err := svc.Summarize(context.Background(), summary.SummarizeRequest{
		Reports:     []interface{}{"a", "b"},
		Context:     "Sprint 12",
		SummaryType: "unknown",
	})

	require.NoError(t, err)
	assert.Equal(t, "summary", resp.Summary)
	assert.Nil(t, resp.IndividualSummaries)
	require.Len(t, fake.calls, 1)
	p := fake.calls[0].prompt
	assert.Contains(t, p, "create an aggregate summary")
	assert.Contains(t, p, "\nContext: Sprint 12\n")
	assert.Contains(t, p, "Report 1: a\n\nReport 2: b")
	assert.Equal(t, llm.CompletionOptions{MaxTokens: 1500, Temperature: 0.3}, fake.calls[0].opts)
}

func TestSummaryService_Executive(t *testing.T) {
	fake := &scriptedCompleter{reply: func(int) string { return "" }}
	svc := NewSummaryService(fake, nil)

	resp, err := svc.Summarize(context.Background(), summary.SummarizeRequest{
		Reports:     []interface{}{"a"},
		SummaryType: summary.TypeExecutive,
		MaxLength:   intPtr(100),
	})

	require.NoError(t, err)
	assert.Equal(t, "Unable to generate summary", resp.Summary)
	assert.Contains(t, fake.calls[0].prompt, "executive summary")
	assert.NotContains(t, fake.calls[0].prompt, "Context:")
	assert.Equal(t, llm.CompletionOptions{MaxTokens: 300, Temperature: 0.2}, fake.calls[0].opts)
}

func TestSummaryService_Errors(t *testing.T) {
	_, err := NewSummaryService(nil, nil).Summarize(context.Background(), summary.SummarizeRequest{Reports: []interface{}{"a"}})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	svc := NewSummaryService(&scriptedCompleter{}, nil)
	_, err = svc.Summarize(context.Background(), summary.SummarizeRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Reports array is required and must not be empty", verrs[0].Message)

	_, err = svc.Summarize(context.Background(), summary.SummarizeRequest{Reports: []interface{}{1, " "}})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "At least one valid report is required", verrs[0].Message)
}

func TestSummaryService_SummarizeTeam(t *testing.T) {
	fake := &scriptedCompleter{reply: func(int) string { return "Team is healthy" }}
	svc := NewSummaryService(fake, nil).(*SummaryServiceImpl)

	out, err := svc.SummarizeTeam(context.Background(), []aggregation.AuthoredReport{
		{Author: "Alex Rivera", Role: "Engineer", Content: "Finished X"},
	}, "manager", "2025-09-11")

	require.NoError(t, err)
	assert.Equal(t, "Team is healthy", out)
	p := fake.calls[0].prompt
	assert.Contains(t, p, "Context: manager team status for 2025-09-11")
	assert.Contains(t, p, "Report 1: Alex Rivera (Engineer): Finished X")
	assert.Equal(t, 0.2, fake.calls[0].opts.Temperature)
}

package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/aggregation"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/summary"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cache"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/llm"
)

const (
	opSummarize      = "summarization"
	emptyCompletion  = "Unable to generate summary"
	individualJoiner = "\n\n---\n\n"
)

type SummaryServiceImpl struct {
	llm   llm.Completer
	cache *cache.Cache[summary.SummarizeResponse]
	now   func() time.Time
}

// NewSummaryService builds the summarizer. completer may be nil when no API key
// is configured, in which case every call fails with llm.ErrNotConfigured.
func NewSummaryService(completer llm.Completer, responseCache *cache.Cache[summary.SummarizeResponse]) summary.Service {
	return &SummaryServiceImpl{llm: completer, cache: responseCache, now: time.Now}
}

func (s *SummaryServiceImpl) Summarize(ctx context.Context, req summary.SummarizeRequest) (summary.SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.SummarizeResponse{}, err
	}
	if s.llm == nil {
		return summary.SummarizeResponse{}, &llm.OperationError{Op: opSummarize, Err: llm.ErrNotConfigured}
	}

	reports := req.ValidReports()
	kind := req.Kind()
	length := req.Length()

	inputs := make([][]byte, 0, len(reports)+1)
	inputs = append(inputs, []byte(req.Context))
	for _, r := range reports {
		inputs = append(inputs, []byte(r))
	}
	key := cache.Key("summary", string(kind), strconv.Itoa(length), cache.Hash(inputs...))
	if cached, ok := s.cache.Get(key); ok {
		cached.Cached = true
		return cached, nil
	}

	start := s.now()
	var resp summary.SummarizeResponse

	switch kind {
	case summary.TypeIndividual:
		individual, err := s.individual(ctx, reports, length)
		if err != nil {
			return summary.SummarizeResponse{}, err
		}
		resp.IndividualSummaries = individual
		resp.Summary = strings.Join(individual, individualJoiner)
	case summary.TypeExecutive:
		out, err := s.complete(ctx, executivePrompt(reports, req.Context, length), llm.CompletionOptions{
			MaxTokens:   min(length*3, 1500),
			Temperature: 0.2,
		})
		if err != nil {
			return summary.SummarizeResponse{}, err
		}
		resp.Summary = out
	default:
		out, err := s.complete(ctx, aggregatePrompt(reports, req.Context, length), llm.CompletionOptions{
			MaxTokens:   min(length*3, 1500),
			Temperature: 0.3,
		})
		if err != nil {
			return summary.SummarizeResponse{}, err
		}
		resp.Summary = out
	}

	resp.ProcessingTime = s.now().Sub(start).Milliseconds()
	resp.TokenCount = llm.EstimateTokens(resp.Summary)
	s.cache.Set(key, resp)

	slog.Info("summary generated", "type", kind, "reports", len(reports), "duration_ms", resp.ProcessingTime)
	return resp, nil
}

// SummarizeTeam writes an executive summary for a manager's team, used by the
// AI aggregation path
func (s *SummaryServiceImpl) SummarizeTeam(ctx context.Context, reports []aggregation.AuthoredReport, level string, date string) (string, error) {
	if s.llm == nil {
		return "", &llm.OperationError{Op: opSummarize, Err: llm.ErrNotConfigured}
	}
	entries := make([]string, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, fmt.Sprintf("%s (%s): %s", r.Author, r.Role, r.Content))
	}
	context := fmt.Sprintf("%s team status for %s", level, date)
	return s.complete(ctx, executivePrompt(entries, context, summary.DefaultMaxLength), llm.CompletionOptions{
		MaxTokens:   min(summary.DefaultMaxLength*3, 1500),
		Temperature: 0.2,
	})
}

// individual summarizes each report in turn; the upstream is called
// sequentially so output order matches input order
func (s *SummaryServiceImpl) individual(ctx context.Context, reports []string, length int) ([]string, error) {
	out := make([]string, 0, len(reports))
	opts := llm.CompletionOptions{MaxTokens: min(length*2, 1000), Temperature: 0.3}
	for _, r := range reports {
		text, err := s.complete(ctx, individualPrompt(r, length), opts)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func (s *SummaryServiceImpl) complete(ctx context.Context, prompt string, opts llm.CompletionOptions) (string, error) {
	out, err := s.llm.Complete(ctx, opSummarize, prompt, opts)
	if err != nil {
		return "", err
	}
	if out == "" {
		return emptyCompletion, nil
	}
	return out, nil
}

func individualPrompt(report string, length int) string {
	return fmt.Sprintf(`Please summarize the following team member report in approximately %d characters or less. Focus on:
- Key accomplishments and progress
- Current challenges or blockers
- Next steps or priorities

Report:
%s

Summary:`, length, report)
}

func aggregatePrompt(reports []string, context string, length int) string {
	return fmt.Sprintf(`Please create an aggregate summary of the following team reports in approximately %d characters or less. %s

Focus on:
- Overall team progress and achievements
- Common themes and patterns
- Key challenges across the team
- Priority items that need attention

Reports:
%s

Aggregate Summary:`, length, contextSection(context), numbered(reports))
}

func executivePrompt(reports []string, context string, length int) string {
	return fmt.Sprintf(`Please create an executive summary of the following team reports for leadership review in approximately %d characters or less. %s

Focus on:
- High-level business impact and outcomes
- Critical risks or blockers requiring leadership attention
- Strategic wins and progress on key objectives
- Resource needs or recommendations

Present this as a concise, actionable summary suitable for executive decision-making.

Reports:
%s

Executive Summary:`, length, contextSection(context), numbered(reports))
}

func contextSection(context string) string {
	if context == "" {
		return ""
	}
	return "\nContext: " + context + "\n"
}

func numbered(reports []string) string {
	lines := make([]string, 0, len(reports))
	for i, r := range reports {
		lines = append(lines, fmt.Sprintf("Report %d: %s", i+1, r))
	}
	return strings.Join(lines, "\n\n")
}
